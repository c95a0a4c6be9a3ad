package invariant

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/krazyTry/invariant-go/invariant/math"
	"github.com/krazyTry/invariant-go/invariant/shared"
)

func (m *Invariant) swapParams(s *Snapshot, req SwapRequest) shared.SimulateSwapParams {
	return shared.SimulateSwapParams{
		XToY:              req.XToY,
		ByAmountIn:        req.ByAmountIn,
		SwapAmount:        req.Amount,
		PriceLimit:        req.PriceLimit,
		Slippage:          m.slippage,
		Ticks:             s.Ticks,
		Tickmap:           s.Tickmap,
		Pool:              s.Pool,
		MaxCrosses:        m.maxCrosses,
		MaxVirtualCrosses: m.maxVirtualCrosses,
	}
}

// SwapQuote simulates a swap on the snapshot. The snapshot is not modified.
func (m *Invariant) SwapQuote(s *Snapshot, req SwapRequest) (shared.SimulationResult, error) {
	if s == nil {
		return shared.SimulationResult{}, fmt.Errorf("nil snapshot: %w", shared.ErrInvalidArgument)
	}

	result, err := math.SimulateSwap(m.swapParams(s, req))
	if err != nil {
		var simErr *shared.SimulationError
		if errors.As(err, &simErr) {
			m.logger.Warn("swap simulation aborted",
				zap.Stringer("pool", s.Address),
				zap.Stringer("status", simErr.Status),
				zap.Int32s("crossedTicks", result.CrossedTicks),
			)
		}
		return result, err
	}

	fields := []zap.Field{
		zap.Stringer("pool", s.Address),
		zap.Bool("xToY", req.XToY),
		zap.Bool("byAmountIn", req.ByAmountIn),
		zap.Stringer("amount", req.Amount),
		zap.Stringer("status", result.Status),
		zap.Stringer("amountIn", result.AccumulatedAmountIn),
		zap.Stringer("amountOut", result.AccumulatedAmountOut),
		zap.Stringer("fee", result.AccumulatedFee),
		zap.Int("crossed", len(result.CrossedTicks)),
	}
	if result.Status != shared.SimulationStatusOk {
		m.logger.Warn("swap simulation stopped early", fields...)
	} else {
		m.logger.Debug("swap simulated", fields...)
	}
	return result, nil
}

// SwapLadder quotes many amounts in the same direction concurrently. Quotes keep the order of
// amounts; a failed simulation is reported in its quote.
func (m *Invariant) SwapLadder(ctx context.Context, s *Snapshot, xToY, byAmountIn bool, amounts []*big.Int) ([]LadderQuote, error) {
	if s == nil {
		return nil, fmt.Errorf("nil snapshot: %w", shared.ErrInvalidArgument)
	}

	pool, err := ants.NewPool(m.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	quotes := make([]LadderQuote, len(amounts))
	var wg sync.WaitGroup
	for i, amount := range amounts {
		i, amount := i, amount
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		quotes[i].Amount = amount
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			quotes[i].Result, quotes[i].Err = m.SwapQuote(s, SwapRequest{
				XToY:       xToY,
				ByAmountIn: byAmountIn,
				Amount:     amount,
			})
		})
		if err != nil {
			wg.Done()
			quotes[i].Err = err
		}
	}
	wg.Wait()

	m.logger.Debug("swap ladder done", zap.Stringer("pool", s.Address), zap.Int("quotes", len(quotes)))
	return quotes, nil
}
