package invariant

import (
	"math/big"

	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

type (
	Tick                            = shared.Tick
	Tickmap                         = shared.Tickmap
	PoolData                        = shared.PoolData
	TickBound                       = shared.TickBound
	SimulationStatus                = shared.SimulationStatus
	SimulationResult                = shared.SimulationResult
	SimulationError                 = shared.SimulationError
	LiquidityResult                 = shared.LiquidityResult
	PositionClaimData               = shared.PositionClaimData
	PositionRange                   = shared.PositionRange
	TokensOwed                      = shared.TokensOwed
	SwapAndCreatePositionSimulation = shared.SwapAndCreatePositionSimulation
)

// Snapshot is the state of one pool at a point in time: the pool account, its tickmap
// and the tick accounts needed by a simulation.
type Snapshot struct {
	Address   solana.PublicKey
	TokenX    solana.PublicKey
	TokenY    solana.PublicKey
	DecimalsX int32
	DecimalsY int32
	Pool      shared.PoolData
	Ticks     map[int32]shared.Tick
	Tickmap   *shared.Tickmap
}

type SwapRequest struct {
	XToY       bool
	ByAmountIn bool
	Amount     *big.Int
	// PriceLimit is optional, nil swaps up to the protocol bounds.
	PriceLimit *big.Int
}

// LadderQuote is the outcome of one amount of a swap ladder.
type LadderQuote struct {
	Amount *big.Int                `json:"amount"`
	Result shared.SimulationResult `json:"result"`
	Err    error                   `json:"-"`
}
