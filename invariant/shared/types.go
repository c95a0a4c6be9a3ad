package shared

import (
	"math/big"
)

// Enums and common types shared by math and the invariant client.
type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

// Direction restricts a tickmap scan to one side of the current tick.
type Direction uint8

const (
	DirectionBoth Direction = 0
	DirectionUp   Direction = 1
	DirectionDown Direction = 2
)

type SimulationStatus uint8

const (
	SimulationStatusOk SimulationStatus = iota
	SimulationStatusWrongLimit
	SimulationStatusPriceLimitReached
	SimulationStatusTickNotFound
	SimulationStatusNoGainSwap
	SimulationStatusTooLargeGap
	SimulationStatusLimitReached
	SimulationStatusSwapStepLimitReached
)

var simulationStatusMessages = map[SimulationStatus]string{
	SimulationStatusOk:                   "Ok",
	SimulationStatusWrongLimit:           "Price limit is on the wrong side of price",
	SimulationStatusPriceLimitReached:    "Price would cross swap limit",
	SimulationStatusTickNotFound:         "tick crossed but not passed to simulation",
	SimulationStatusNoGainSwap:           "Amount out is zero",
	SimulationStatusTooLargeGap:          "Too large liquidity gap",
	SimulationStatusLimitReached:         "At the end of price range",
	SimulationStatusSwapStepLimitReached: "Swap step limit reached",
}

func (s SimulationStatus) String() string {
	if msg, ok := simulationStatusMessages[s]; ok {
		return msg
	}
	return "unknown simulation status"
}

// Fatal reports whether the status aborts a simulation without a usable result.
func (s SimulationStatus) Fatal() bool {
	return s == SimulationStatusWrongLimit || s == SimulationStatusTickNotFound
}

func (s SimulationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TickBound is a tick index that may be absent, used for full range positions.
type TickBound struct {
	index   int32
	bounded bool
}

func Bounded(index int32) TickBound {
	return TickBound{index: index, bounded: true}
}

func Unbounded() TickBound {
	return TickBound{}
}

func (b TickBound) IsBounded() bool {
	return b.bounded
}

// Index returns the tick index and whether the bound is set.
func (b TickBound) Index() (int32, bool) {
	return b.index, b.bounded
}

type Tick struct {
	Index                      int32
	Sign                       bool
	LiquidityChange            *big.Int
	LiquidityGross             *big.Int
	SqrtPrice                  *big.Int
	FeeGrowthOutsideX          *big.Int
	FeeGrowthOutsideY          *big.Int
	SecondsPerLiquidityOutside *big.Int
}

type PoolData struct {
	CurrentTickIndex int32
	TickSpacing      uint16
	Liquidity        *big.Int
	Fee              *big.Int
	SqrtPrice        *big.Int
	FeeGrowthGlobalX *big.Int
	FeeGrowthGlobalY *big.Int
}

type SwapResult struct {
	NextPrice *big.Int
	AmountIn  *big.Int
	AmountOut *big.Int
	FeeAmount *big.Int
}

// LimitingTick is the tick a swap step is bounded by.
type LimitingTick struct {
	Index       int32
	Initialized bool
}

type CloserLimitResult struct {
	SwapLimit    *big.Int
	LimitingTick *LimitingTick
}

type SimulateSwapParams struct {
	XToY       bool
	ByAmountIn bool
	SwapAmount *big.Int
	// PriceLimit is optional; nil swaps up to the protocol price bounds.
	PriceLimit        *big.Int
	Slippage          *big.Int
	Ticks             map[int32]Tick
	Tickmap           *Tickmap
	Pool              PoolData
	MaxCrosses        int
	MaxVirtualCrosses int
}

type SimulationResult struct {
	Status               SimulationStatus `json:"status"`
	AmountPerTick        []*big.Int       `json:"amountPerTick"`
	CrossedTicks         []int32          `json:"crossedTicks"`
	AccumulatedAmountIn  *big.Int         `json:"accumulatedAmountIn"`
	AccumulatedAmountOut *big.Int         `json:"accumulatedAmountOut"`
	AccumulatedFee       *big.Int         `json:"accumulatedFee"`
	PriceAfterSwap       *big.Int         `json:"priceAfterSwap"`
	PriceImpact          *big.Int         `json:"priceImpact"`
	MinReceived          *big.Int         `json:"minReceived"`
	LiquidityAfterSwap   *big.Int         `json:"liquidityAfterSwap"`
	CurrentTickAfterSwap int32            `json:"currentTickAfterSwap"`
}

// LiquidityResult is the liquidity reachable from a token amount with the complementary token needed.
type LiquidityResult struct {
	X         *big.Int `json:"x"`
	Y         *big.Int `json:"y"`
	Liquidity *big.Int `json:"liquidity"`
}

type SingleTokenLiquidity struct {
	Liquidity *big.Int
	Amount    *big.Int
}

type PositionClaimData struct {
	Liquidity        *big.Int
	FeeGrowthInsideX *big.Int
	FeeGrowthInsideY *big.Int
	TokensOwedX      *big.Int
	TokensOwedY      *big.Int
}

type FeeGrowthInside struct {
	X *big.Int `json:"feeGrowthInsideX"`
	Y *big.Int `json:"feeGrowthInsideY"`
}

type TokensOwed struct {
	X *big.Int `json:"tokensOwedX"`
	Y *big.Int `json:"tokensOwedY"`
}

type SwapInput struct {
	XToY       bool     `json:"xToY"`
	ByAmountIn bool     `json:"byAmountIn"`
	SwapAmount *big.Int `json:"swapAmount"`
}

type PositionRange struct {
	LowerTick int32
	UpperTick int32
	// KnownPrice is the sqrt price of the pool the position is opened on.
	KnownPrice *big.Int
}

type SwapAndCreatePositionSimulation struct {
	SwapInput      *SwapInput        `json:"swapInput,omitempty"`
	SwapSimulation *SimulationResult `json:"swapSimulation,omitempty"`
	Position       LiquidityResult   `json:"position"`
}

type FeeTier struct {
	Fee         *big.Int
	TickSpacing uint16
}
