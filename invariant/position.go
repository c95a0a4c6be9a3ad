package invariant

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/krazyTry/invariant-go/invariant/math"
	"github.com/krazyTry/invariant-go/invariant/shared"
)

// CreatePositionQuote picks the swap on the snapshot pool that best balances amountX and
// amountY for a position over position.LowerTick..UpperTick. With a nil position.KnownPrice
// the position is opened on the snapshot pool itself, otherwise on a pool at that price.
func (m *Invariant) CreatePositionQuote(s *Snapshot, amountX, amountY *big.Int, position shared.PositionRange) (shared.SwapAndCreatePositionSimulation, error) {
	if s == nil {
		return shared.SwapAndCreatePositionSimulation{}, fmt.Errorf("nil snapshot: %w", shared.ErrInvalidArgument)
	}

	swap := m.swapParams(s, SwapRequest{})
	var (
		result   shared.SwapAndCreatePositionSimulation
		err      error
		samePool = position.KnownPrice == nil
	)
	if samePool {
		result, err = math.SimulateSwapAndCreatePositionOnTheSamePool(amountX, amountY, m.slippage, swap, position)
	} else {
		result, err = math.SimulateSwapAndCreatePosition(amountX, amountY, swap, position, m.minPrecision)
	}
	if err != nil {
		return result, err
	}

	fields := []zap.Field{
		zap.Stringer("pool", s.Address),
		zap.Bool("samePool", samePool),
		zap.Int32("lowerTick", position.LowerTick),
		zap.Int32("upperTick", position.UpperTick),
		zap.Stringer("liquidity", result.Position.Liquidity),
	}
	if result.SwapInput != nil {
		fields = append(fields,
			zap.Bool("xToY", result.SwapInput.XToY),
			zap.Stringer("swapAmount", result.SwapInput.SwapAmount),
		)
	}
	m.logger.Debug("position simulated", fields...)
	return result, nil
}

// LiquidityQuote is the liquidity x and y provide over lowerTick..upperTick at the snapshot price.
// Unbounded ticks stand for the edges of the pool's price range.
func (m *Invariant) LiquidityQuote(s *Snapshot, x, y *big.Int, lowerTick, upperTick shared.TickBound) (shared.LiquidityResult, error) {
	if s == nil {
		return shared.LiquidityResult{}, fmt.Errorf("nil snapshot: %w", shared.ErrInvalidArgument)
	}
	return math.GetLiquidity(x, y, lowerTick, upperTick, s.Pool.SqrtPrice, true, s.Pool.TickSpacing)
}

// Price is the snapshot price of X in Y, adjusted for the token decimals.
func (s *Snapshot) Price() decimal.Decimal {
	return math.SqrtPriceToPrice(s.Pool.SqrtPrice, s.DecimalsX, s.DecimalsY)
}
