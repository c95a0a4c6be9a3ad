package math

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

// DefaultMinPrecision is the search precision used when none is given, 1% of the swapped amount.
var DefaultMinPrecision = ToDecimal(1, 2)

// positionSearch holds what differs between opening the position on another pool, whose price
// is known up front, and on the pool the swap moves.
type positionSearch struct {
	amountX  *big.Int
	amountY  *big.Int
	swap     shared.SimulateSwapParams
	position shared.PositionRange

	precision *big.Int
	samePool  bool
}

// SimulateSwapAndCreatePosition finds the swap on swap.Pool that lets amountX and amountY fill a
// position over position.LowerTick..UpperTick on a pool priced at position.KnownPrice with the
// least left over. minPrecision is a share of the swapped amount on shared.Denominator; nil
// means DefaultMinPrecision.
func SimulateSwapAndCreatePosition(amountX, amountY *big.Int, swap shared.SimulateSwapParams, position shared.PositionRange, minPrecision *big.Int) (shared.SwapAndCreatePositionSimulation, error) {
	if position.KnownPrice == nil || position.KnownPrice.Sign() <= 0 {
		return shared.SwapAndCreatePositionSimulation{}, fmt.Errorf("known price must be positive: %w", shared.ErrInvalidArgument)
	}
	if minPrecision == nil {
		minPrecision = DefaultMinPrecision
	}
	search := &positionSearch{
		amountX:   clone(amountX),
		amountY:   clone(amountY),
		swap:      swap,
		position:  position,
		precision: minPrecision,
	}
	return search.run()
}

// SimulateSwapAndCreatePositionOnTheSamePool is SimulateSwapAndCreatePosition for a position on
// swap.Pool itself, so every trial deposits at the price the trial swap leaves behind.
func SimulateSwapAndCreatePositionOnTheSamePool(amountX, amountY, slippage *big.Int, swap shared.SimulateSwapParams, position shared.PositionRange) (shared.SwapAndCreatePositionSimulation, error) {
	if swap.Pool.SqrtPrice == nil {
		return shared.SwapAndCreatePositionSimulation{}, fmt.Errorf("pool sqrt price is required: %w", shared.ErrInvalidArgument)
	}
	swap.Slippage = slippage
	position.KnownPrice = new(big.Int).Set(swap.Pool.SqrtPrice)

	search := &positionSearch{
		amountX:  clone(amountX),
		amountY:  clone(amountY),
		swap:     swap,
		position: position,
		samePool: true,
	}
	return search.run()
}

func (p *positionSearch) run() (shared.SwapAndCreatePositionSimulation, error) {
	if p.position.LowerTick >= p.position.UpperTick {
		return shared.SwapAndCreatePositionSimulation{}, fmt.Errorf("lower tick %d not below upper tick %d: %w", p.position.LowerTick, p.position.UpperTick, shared.ErrInvalidArgument)
	}
	lowerSqrtPrice, upperSqrtPrice, err := rangeSqrtPrices(p.position.LowerTick, p.position.UpperTick)
	if err != nil {
		return shared.SwapAndCreatePositionSimulation{}, err
	}
	knownPrice := p.position.KnownPrice

	// only Y is usable below the current price, only X above it
	if upperSqrtPrice.Cmp(knownPrice) < 0 {
		out, done, err := p.singleSided(true, upperSqrtPrice)
		if err != nil || done {
			return out, err
		}
	}
	if lowerSqrtPrice.Cmp(knownPrice) > 0 {
		out, done, err := p.singleSided(false, lowerSqrtPrice)
		if err != nil || done {
			return out, err
		}
	}

	return p.binarySearch()
}

// singleSided swaps the whole unusable token. On the same pool the result only stands when the
// swap leaves the price outside the range; done is false otherwise.
func (p *positionSearch) singleSided(xToY bool, bound *big.Int) (out shared.SwapAndCreatePositionSimulation, done bool, err error) {
	amountIn, kept := p.amountX, p.amountY
	if !xToY {
		amountIn, kept = p.amountY, p.amountX
	}

	if amountIn.Sign() == 0 {
		x, y := big.NewInt(0), clone(kept)
		if !xToY {
			x, y = clone(kept), big.NewInt(0)
		}
		deposit, err := GetMaxLiquidity(x, y, p.position.LowerTick, p.position.UpperTick, p.position.KnownPrice)
		if err != nil {
			return out, true, err
		}
		return shared.SwapAndCreatePositionSimulation{Position: deposit}, true, nil
	}

	input := shared.SwapInput{XToY: xToY, ByAmountIn: true, SwapAmount: new(big.Int).Set(amountIn)}
	sim, err := p.simulate(input)
	if err != nil {
		return out, true, err
	}

	depositPrice := p.position.KnownPrice
	if p.samePool {
		outside := (xToY && bound.Cmp(sim.PriceAfterSwap) < 0) || (!xToY && bound.Cmp(sim.PriceAfterSwap) > 0)
		if !outside {
			return out, false, nil
		}
		depositPrice = sim.PriceAfterSwap
	}

	received := new(big.Int).Add(kept, sim.AccumulatedAmountOut)
	x, y := big.NewInt(0), received
	if !xToY {
		x, y = received, big.NewInt(0)
	}
	deposit, err := GetMaxLiquidity(x, y, p.position.LowerTick, p.position.UpperTick, depositPrice)
	if err != nil {
		return out, true, err
	}
	return shared.SwapAndCreatePositionSimulation{
		SwapInput:      &input,
		SwapSimulation: &sim,
		Position:       deposit,
	}, true, nil
}

func (p *positionSearch) binarySearch() (shared.SwapAndCreatePositionSimulation, error) {
	x, y, xDiff, yDiff, err := p.ratio(p.amountX, p.amountY, p.position.KnownPrice)
	if err != nil {
		return shared.SwapAndCreatePositionSimulation{}, err
	}

	xUtilization := utilization(x, p.amountX)
	yUtilization := utilization(y, p.amountY)
	if minBig(xUtilization, yUtilization).Cmp(shared.Denominator) == 0 {
		deposit, err := GetMaxLiquidity(lessOne(x), lessOne(y), p.position.LowerTick, p.position.UpperTick, p.position.KnownPrice)
		if err != nil {
			return shared.SwapAndCreatePositionSimulation{}, err
		}
		return shared.SwapAndCreatePositionSimulation{Position: deposit}, nil
	}

	// swap away from the token with more left over
	xToY, amount := true, xDiff
	if xUtilization.Cmp(yUtilization) > 0 {
		xToY, amount = false, yDiff
	}

	precision := big.NewInt(1)
	if !p.samePool {
		precision = MulDiv(amount, p.precision, shared.Denominator, shared.RoundingDown)
		if precision.Sign() <= 0 {
			precision = big.NewInt(1)
		}
	}

	var (
		low  = big.NewInt(0)
		high = new(big.Int).Set(amount)

		best            *shared.SimulationResult
		bestUtilization *big.Int
		bestAmount      *big.Int
		bestX, bestY    *big.Int
	)

	for new(big.Int).Add(low, precision).Cmp(high) < 0 {
		mid := new(big.Int).Add(low, high)
		mid.Add(mid, big.NewInt(1))
		mid.Quo(mid, big.NewInt(2))

		input := shared.SwapInput{XToY: xToY, ByAmountIn: true, SwapAmount: mid}
		sim, err := p.simulate(input)
		status := sim.Status
		if err != nil {
			var simErr *shared.SimulationError
			if !errors.As(err, &simErr) {
				return shared.SwapAndCreatePositionSimulation{}, err
			}
			status = simErr.Status
		}

		switch status {
		case shared.SimulationStatusOk:
		case shared.SimulationStatusNoGainSwap:
			low = mid
			continue
		default:
			high = clone(sim.AccumulatedAmountIn)
			if !p.samePool {
				high.Add(high, clone(sim.AccumulatedFee))
			}
			continue
		}

		spent := new(big.Int).Add(sim.AccumulatedAmountIn, sim.AccumulatedFee)
		xAfter, yAfter := new(big.Int).Sub(p.amountX, spent), new(big.Int).Add(p.amountY, sim.AccumulatedAmountOut)
		if !xToY {
			xAfter, yAfter = new(big.Int).Add(p.amountX, sim.AccumulatedAmountOut), new(big.Int).Sub(p.amountY, spent)
		}

		depositPrice := p.position.KnownPrice
		if p.samePool {
			depositPrice = sim.PriceAfterSwap
		}
		x, y, xDiff, yDiff, err := p.ratio(xAfter, yAfter, depositPrice)
		if err != nil {
			return shared.SwapAndCreatePositionSimulation{}, err
		}

		if xDiff.Sign() <= 0 && yDiff.Sign() <= 0 {
			deposit, err := GetMaxLiquidity(lessOne(x), lessOne(y), p.position.LowerTick, p.position.UpperTick, depositPrice)
			if err != nil {
				return shared.SwapAndCreatePositionSimulation{}, err
			}
			return shared.SwapAndCreatePositionSimulation{
				SwapInput:      &input,
				SwapSimulation: &sim,
				Position:       deposit,
			}, nil
		}

		xUtilization := utilization(x, xAfter)
		yUtilization := utilization(y, yAfter)
		lowest := minBig(xUtilization, yUtilization)

		if (xToY && xUtilization.Cmp(yUtilization) <= 0) || (!xToY && yUtilization.Cmp(xUtilization) <= 0) {
			low = mid
		} else {
			high = mid
		}

		if bestUtilization == nil || lowest.Cmp(bestUtilization) > 0 {
			trial := sim
			best, bestUtilization, bestAmount = &trial, lowest, mid
			bestX, bestY = x, y
		}
	}

	if best == nil {
		return shared.SwapAndCreatePositionSimulation{
			Position: shared.LiquidityResult{X: big.NewInt(0), Y: big.NewInt(0), Liquidity: big.NewInt(0)},
		}, nil
	}

	depositPrice := p.position.KnownPrice
	if p.samePool {
		depositPrice = best.PriceAfterSwap
	}
	deposit, err := GetMaxLiquidity(lessOne(bestX), lessOne(bestY), p.position.LowerTick, p.position.UpperTick, depositPrice)
	if err != nil {
		return shared.SwapAndCreatePositionSimulation{}, err
	}
	return shared.SwapAndCreatePositionSimulation{
		SwapInput:      &shared.SwapInput{XToY: xToY, ByAmountIn: true, SwapAmount: bestAmount},
		SwapSimulation: best,
		Position:       deposit,
	}, nil
}

func (p *positionSearch) simulate(input shared.SwapInput) (shared.SimulationResult, error) {
	params := p.swap
	params.XToY = input.XToY
	params.ByAmountIn = input.ByAmountIn
	params.SwapAmount = input.SwapAmount
	params.PriceLimit = p.swap.Pool.SqrtPrice
	return SimulateSwap(params)
}

// ratio is what the deposit takes from x and y at price and what it leaves of each.
func (p *positionSearch) ratio(x, y, price *big.Int) (depositX, depositY, xDiff, yDiff *big.Int, err error) {
	deposit, err := GetMaxLiquidity(x, y, p.position.LowerTick, p.position.UpperTick, price)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return deposit.X, deposit.Y, new(big.Int).Sub(x, deposit.X), new(big.Int).Sub(y, deposit.Y), nil
}

// utilization is used/available on shared.Denominator, full when nothing is available.
func utilization(used, available *big.Int) *big.Int {
	if available.Sign() == 0 {
		return new(big.Int).Set(shared.Denominator)
	}
	return MulDiv(used, shared.Denominator, available, shared.RoundingDown)
}

// lessOne is v-1, or v itself when v is at most 1.
func lessOne(v *big.Int) *big.Int {
	if v.Cmp(big.NewInt(1)) > 0 {
		return new(big.Int).Sub(v, big.NewInt(1))
	}
	return new(big.Int).Set(v)
}
