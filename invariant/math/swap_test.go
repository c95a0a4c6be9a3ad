package math

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

func testPool(liquidity *big.Int) shared.PoolData {
	return shared.PoolData{
		CurrentTickIndex: 0,
		TickSpacing:      10,
		Liquidity:        liquidity,
		Fee:              big.NewInt(0),
		SqrtPrice:        new(big.Int).Set(shared.PriceDenominator),
	}
}

// rangeTicks builds a position over [lower, upper] holding liquidity.
func rangeTicks(t *testing.T, lower, upper int32, liquidity *big.Int) (map[int32]shared.Tick, *shared.Tickmap) {
	t.Helper()
	ticks := map[int32]shared.Tick{
		lower: {Index: lower, Sign: true, LiquidityChange: liquidity, LiquidityGross: liquidity, SqrtPrice: MustCalculatePriceSqrt(lower)},
		upper: {Index: upper, Sign: false, LiquidityChange: liquidity, LiquidityGross: liquidity, SqrtPrice: MustCalculatePriceSqrt(upper)},
	}
	return ticks, newTickmap(t, 10, lower, upper)
}

func TestSimulateSwapEmptyPool(t *testing.T) {
	for _, xToY := range []bool{true, false} {
		for _, byAmountIn := range []bool{true, false} {
			result, err := SimulateSwap(shared.SimulateSwapParams{
				XToY:       xToY,
				ByAmountIn: byAmountIn,
				SwapAmount: big.NewInt(1_000_000),
				Tickmap:    shared.NewTickmap(),
				Pool:       testPool(big.NewInt(0)),
			})
			require.NoError(t, err)
			assert.Equal(t, shared.SimulationStatusNoGainSwap, result.Status, "xToY %t byAmountIn %t", xToY, byAmountIn)
			assert.Equal(t, 0, result.AccumulatedAmountOut.Sign())
			assert.Empty(t, result.CrossedTicks)
		}
	}
}

func TestSimulateSwapCrossRemovesLiquidity(t *testing.T) {
	ticks, tickmap := rangeTicks(t, -100, 100, big.NewInt(1_000_000))

	result, err := SimulateSwap(shared.SimulateSwapParams{
		XToY:       false,
		ByAmountIn: true,
		SwapAmount: big.NewInt(1_000),
		Ticks:      ticks,
		Tickmap:    tickmap,
		Pool:       testPool(big.NewInt(0)),
	})
	require.NoError(t, err)
	assert.Equal(t, []int32{100}, result.CrossedTicks)
	assert.Equal(t, 0, result.LiquidityAfterSwap.Sign())
	assert.Equal(t, shared.SimulationStatusNoGainSwap, result.Status)
}

func TestSimulateSwapThroughRange(t *testing.T) {
	liquidity := bigInt(t, "1000000000000000000")
	ticks, tickmap := rangeTicks(t, -100, 100, liquidity)
	pool := testPool(liquidity)

	result, err := SimulateSwap(shared.SimulateSwapParams{
		XToY:       false,
		ByAmountIn: true,
		SwapAmount: big.NewInt(10_000_000_000),
		Ticks:      ticks,
		Tickmap:    tickmap,
		Pool:       pool,
	})
	require.NoError(t, err)
	assert.Equal(t, []int32{100}, result.CrossedTicks)
	assert.Equal(t, 0, result.LiquidityAfterSwap.Sign())
	assert.Equal(t, shared.SimulationStatusSwapStepLimitReached, result.Status)
	assert.Equal(t, 1, result.AccumulatedAmountOut.Sign())
	require.NotEmpty(t, result.AmountPerTick)
	assert.Equal(t, 1, result.AmountPerTick[0].Sign())

	// the snapshot is left untouched
	assert.Equal(t, 0, pool.Liquidity.Cmp(liquidity))
	assert.Equal(t, 0, pool.SqrtPrice.Cmp(shared.PriceDenominator))
}

func TestSimulateSwapWithinRange(t *testing.T) {
	liquidity := bigInt(t, "1000000000000000000")

	result, err := SimulateSwap(shared.SimulateSwapParams{
		XToY:       false,
		ByAmountIn: true,
		SwapAmount: big.NewInt(1_000),
		Tickmap:    shared.NewTickmap(),
		Pool:       testPool(liquidity),
	})
	require.NoError(t, err)
	assert.Equal(t, shared.SimulationStatusOk, result.Status)
	assert.Equal(t, "1000", result.AccumulatedAmountIn.String())
	assert.Equal(t, "0", result.AccumulatedFee.String())
	assert.Equal(t, 1, result.AccumulatedAmountOut.Sign())
	assert.LessOrEqual(t, result.AccumulatedAmountOut.Int64(), int64(1_000))
	assert.Empty(t, result.CrossedTicks)
	assert.Equal(t, int32(0), result.CurrentTickAfterSwap)
	assert.Equal(t, 1, result.PriceAfterSwap.Cmp(shared.PriceDenominator))
	require.Len(t, result.AmountPerTick, 1)
	assert.Equal(t, "1000", result.AmountPerTick[0].String())
}

func TestSimulateSwapPriceLimitReached(t *testing.T) {
	limit := MustCalculatePriceSqrt(50)

	result, err := SimulateSwap(shared.SimulateSwapParams{
		XToY:       false,
		ByAmountIn: true,
		SwapAmount: big.NewInt(10_000_000_000),
		PriceLimit: limit,
		Tickmap:    shared.NewTickmap(),
		Pool:       testPool(bigInt(t, "1000000000000000000")),
	})
	require.NoError(t, err)
	assert.Equal(t, shared.SimulationStatusPriceLimitReached, result.Status)
	assert.Equal(t, 0, result.PriceAfterSwap.Cmp(limit))
	assert.Equal(t, 1, result.AccumulatedAmountOut.Sign())
}

func TestSimulateSwapWrongLimit(t *testing.T) {
	_, err := SimulateSwap(shared.SimulateSwapParams{
		XToY:       true,
		ByAmountIn: true,
		SwapAmount: big.NewInt(1_000),
		PriceLimit: MustCalculatePriceSqrt(100),
		Tickmap:    shared.NewTickmap(),
		Pool:       testPool(bigInt(t, "1000000000000000000")),
	})
	var simErr *shared.SimulationError
	require.True(t, errors.As(err, &simErr))
	assert.Equal(t, shared.SimulationStatusWrongLimit, simErr.Status)
}

func TestSimulateSwapTickNotFound(t *testing.T) {
	result, err := SimulateSwap(shared.SimulateSwapParams{
		XToY:       false,
		ByAmountIn: true,
		SwapAmount: big.NewInt(10_000_000_000),
		Ticks:      map[int32]shared.Tick{},
		Tickmap:    newTickmap(t, 10, 100),
		Pool:       testPool(bigInt(t, "1000000000000000000")),
	})
	require.ErrorIs(t, err, shared.ErrTickNotFound)
	assert.Equal(t, shared.SimulationStatusTickNotFound, result.Status)
}

func TestSimulateSwapInvalidParams(t *testing.T) {
	pool := testPool(big.NewInt(0))
	pool.TickSpacing = 0
	_, err := SimulateSwap(shared.SimulateSwapParams{SwapAmount: big.NewInt(1), Pool: pool})
	require.ErrorIs(t, err, shared.ErrInvalidArgument)

	_, err = SimulateSwap(shared.SimulateSwapParams{Pool: testPool(big.NewInt(0))})
	require.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestCrossTickLiquidity(t *testing.T) {
	change := big.NewInt(1_000)
	lower := shared.Tick{Index: -100, Sign: true, LiquidityChange: change}
	upper := shared.Tick{Index: 100, Sign: false, LiquidityChange: change}

	// entering the range from either side adds liquidity
	assert.Equal(t, "1000", CrossTickLiquidity(big.NewInt(0), -110, lower).String())
	assert.Equal(t, "1000", CrossTickLiquidity(big.NewInt(0), 100, upper).String())

	// leaving it removes liquidity, saturating at zero
	assert.Equal(t, "0", CrossTickLiquidity(big.NewInt(1_000), -100, lower).String())
	assert.Equal(t, "0", CrossTickLiquidity(big.NewInt(10), 0, upper).String())
}
