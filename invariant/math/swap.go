package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

// stepOutcome tells the swap loop whether to run another step.
type stepOutcome uint8

const (
	stepContinue stepOutcome = iota
	stepStop
)

type swapState struct {
	xToY       bool
	byAmountIn bool
	ticks      map[int32]shared.Tick
	tickmap    *shared.Tickmap
	spacing    uint16
	fee        *big.Int

	priceLimit *big.Int
	maxSteps   int
	maxCrosses int

	liquidity    *big.Int
	sqrtPrice    *big.Int
	currentTick  int32
	previousTick int32
	remaining    *big.Int

	accumulatedIn     *big.Int
	accumulatedOut    *big.Int
	accumulatedFee    *big.Int
	accumulatedAmount *big.Int
	amountPerTick     []*big.Int
	crossedTicks      []int32
	swapSteps         int
	status            shared.SimulationStatus
}

// SimulateSwap runs the swap loop of the pool program against a snapshot without mutating it.
// Fatal statuses (WrongLimit, TickNotFound) are returned with a *shared.SimulationError; every
// other status is reported in the result.
func SimulateSwap(params shared.SimulateSwapParams) (shared.SimulationResult, error) {
	pool := params.Pool
	if pool.TickSpacing == 0 {
		return shared.SimulationResult{}, fmt.Errorf("pool tick spacing is zero: %w", shared.ErrInvalidArgument)
	}
	if pool.SqrtPrice == nil || pool.SqrtPrice.Sign() <= 0 {
		return shared.SimulationResult{}, fmt.Errorf("pool sqrt price must be positive: %w", shared.ErrInvalidArgument)
	}
	if params.SwapAmount == nil || params.SwapAmount.Sign() < 0 {
		return shared.SimulationResult{}, fmt.Errorf("swap amount must be non-negative: %w", shared.ErrInvalidArgument)
	}

	maxCrosses := params.MaxCrosses
	if maxCrosses <= 0 {
		maxCrosses = shared.TickCrossesPerIx
	}
	maxVirtualCrosses := params.MaxVirtualCrosses
	if maxVirtualCrosses <= 0 {
		maxVirtualCrosses = shared.TickVirtualCrossesPerIx
	}
	slippage := params.Slippage
	if slippage == nil {
		slippage = big.NewInt(0)
	}
	fee := clone(pool.Fee)

	var priceLimit *big.Int
	switch {
	case params.PriceLimit != nil:
		priceLimit = CalculatePriceAfterSlippage(params.PriceLimit, slippage, !params.XToY)
	case params.XToY:
		priceLimit = MustCalculatePriceSqrt(shared.MinTick)
	default:
		priceLimit = MustCalculatePriceSqrt(shared.MaxTick)
	}

	startingSqrtPrice := new(big.Int).Set(pool.SqrtPrice)
	s := &swapState{
		xToY:              params.XToY,
		byAmountIn:        params.ByAmountIn,
		ticks:             params.Ticks,
		tickmap:           params.Tickmap,
		spacing:           pool.TickSpacing,
		fee:               fee,
		priceLimit:        priceLimit,
		maxSteps:          maxCrosses + maxVirtualCrosses,
		maxCrosses:        maxCrosses,
		liquidity:         clone(pool.Liquidity),
		sqrtPrice:         new(big.Int).Set(pool.SqrtPrice),
		currentTick:       AlignTickToSpacing(pool.CurrentTickIndex, pool.TickSpacing),
		previousTick:      shared.MaxTick + 1,
		remaining:         new(big.Int).Set(params.SwapAmount),
		accumulatedIn:     big.NewInt(0),
		accumulatedOut:    big.NewInt(0),
		accumulatedFee:    big.NewInt(0),
		accumulatedAmount: big.NewInt(0),
		amountPerTick:     []*big.Int{},
		crossedTicks:      []int32{},
		status:            shared.SimulationStatusOk,
	}
	if s.tickmap == nil {
		s.tickmap = shared.NewTickmap()
	}

	if (s.xToY && s.sqrtPrice.Cmp(priceLimit) < 0) || (!s.xToY && s.sqrtPrice.Cmp(priceLimit) > 0) {
		s.status = shared.SimulationStatusWrongLimit
		return s.result(startingSqrtPrice, slippage), &shared.SimulationError{Status: s.status}
	}

	for s.remaining.Sign() > 0 {
		outcome, err := s.step()
		if err != nil {
			return s.result(startingSqrtPrice, slippage), err
		}
		if outcome == stepStop {
			break
		}
	}

	// a swap that produced nothing has no gain, whatever stopped it
	if s.accumulatedOut.Sign() == 0 && !s.status.Fatal() {
		s.status = shared.SimulationStatusNoGainSwap
	}

	return s.result(startingSqrtPrice, slippage), nil
}

func (s *swapState) step() (stepOutcome, error) {
	limit, err := GetCloserLimit(s.priceLimit, s.xToY, s.currentTick, s.spacing, s.tickmap)
	if err != nil {
		return stepStop, err
	}

	result, err := CalculateSwapStep(s.sqrtPrice, limit.SwapLimit, s.liquidity, s.remaining, s.byAmountIn, s.fee)
	if err != nil {
		return stepStop, fmt.Errorf("swap step %d: %w", s.swapSteps+1, err)
	}
	s.swapSteps++

	s.accumulatedIn.Add(s.accumulatedIn, result.AmountIn)
	s.accumulatedOut.Add(s.accumulatedOut, result.AmountOut)
	s.accumulatedFee.Add(s.accumulatedFee, result.FeeAmount)

	amountDiff := new(big.Int)
	if s.byAmountIn {
		amountDiff.Add(result.AmountIn, result.FeeAmount)
	} else {
		amountDiff.Set(result.AmountOut)
	}
	s.remaining.Sub(s.remaining, amountDiff)
	s.sqrtPrice = result.NextPrice

	if s.sqrtPrice.Cmp(s.priceLimit) == 0 && s.remaining.Sign() > 0 {
		s.status = shared.SimulationStatusPriceLimitReached
		return stepStop, nil
	}

	if result.NextPrice.Cmp(limit.SwapLimit) == 0 && limit.LimitingTick != nil {
		if err := s.cross(*limit.LimitingTick); err != nil {
			return stepStop, err
		}
	} else {
		if s.currentTick, err = GetTickFromPrice(s.currentTick, s.spacing, s.sqrtPrice, s.xToY); err != nil {
			return stepStop, err
		}
	}

	// amounts are grouped per initialized tick range
	s.accumulatedAmount.Add(s.accumulatedAmount, amountDiff)
	if (limit.LimitingTick != nil && limit.LimitingTick.Initialized) || s.remaining.Sign() == 0 {
		s.amountPerTick = append(s.amountPerTick, s.accumulatedAmount)
		s.accumulatedAmount = big.NewInt(0)
	}

	if s.swapSteps > s.maxSteps || len(s.crossedTicks) > s.maxCrosses {
		s.status = shared.SimulationStatusSwapStepLimitReached
		return stepStop, nil
	}

	if s.currentTick == s.previousTick && s.remaining.Sign() != 0 {
		s.status = shared.SimulationStatusLimitReached
		return stepStop, nil
	}
	s.previousTick = s.currentTick
	return stepContinue, nil
}

func (s *swapState) cross(limiting shared.LimitingTick) error {
	remaining := s.remaining
	if remaining.Sign() < 0 {
		remaining = big.NewInt(0)
	}
	isEnough, err := IsEnoughAmountToPushPrice(remaining, s.sqrtPrice, s.liquidity, s.fee, s.byAmountIn, s.xToY)
	if err != nil {
		return err
	}

	if limiting.Initialized {
		tick, ok := s.ticks[limiting.Index]
		if !ok {
			s.status = shared.SimulationStatusTickNotFound
			return &shared.SimulationError{Status: s.status}
		}
		s.crossedTicks = append(s.crossedTicks, limiting.Index)

		if !s.xToY || isEnough {
			s.liquidity = CrossTickLiquidity(s.liquidity, s.currentTick, tick)
		} else if s.remaining.Sign() != 0 {
			// the rest cannot move the price past the tick, it is taken without crossing
			if s.byAmountIn {
				s.accumulatedIn.Add(s.accumulatedIn, s.remaining)
			}
			s.remaining = big.NewInt(0)
		}
	}

	if s.xToY && isEnough {
		s.currentTick = limiting.Index - int32(s.spacing)
	} else {
		s.currentTick = limiting.Index
	}
	return nil
}

func (s *swapState) result(startingSqrtPrice, slippage *big.Int) shared.SimulationResult {
	minReceived := new(big.Int).Set(s.accumulatedOut)
	if s.byAmountIn {
		endingPriceAfterSlippage := CalculatePriceAfterSlippage(s.sqrtPrice, slippage, !s.xToY)
		minReceived = CalculateMinReceivedTokensByAmountIn(endingPriceAfterSlippage, s.xToY, s.accumulatedIn, s.fee)
	}

	return shared.SimulationResult{
		Status:               s.status,
		AmountPerTick:        s.amountPerTick,
		CrossedTicks:         s.crossedTicks,
		AccumulatedAmountIn:  s.accumulatedIn,
		AccumulatedAmountOut: s.accumulatedOut,
		AccumulatedFee:       s.accumulatedFee,
		PriceAfterSwap:       s.sqrtPrice,
		PriceImpact:          CalculatePriceImpact(startingSqrtPrice, s.sqrtPrice),
		MinReceived:          minReceived,
		LiquidityAfterSwap:   s.liquidity,
		CurrentTickAfterSwap: s.currentTick,
	}
}

// CrossTickLiquidity applies a tick's liquidity change when the price crosses it from currentTick.
// The result never drops below zero.
func CrossTickLiquidity(liquidity *big.Int, currentTick int32, tick shared.Tick) *big.Int {
	change := clone(tick.LiquidityChange)
	if (currentTick >= tick.Index) != tick.Sign {
		return new(big.Int).Add(liquidity, change)
	}
	out := new(big.Int).Sub(liquidity, change)
	if out.Sign() < 0 {
		return big.NewInt(0)
	}
	return out
}
