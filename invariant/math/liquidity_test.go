package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

func TestGetLiquidityByXPrice(t *testing.T) {
	current := shared.PriceDenominator
	x := big.NewInt(1_000_000)

	// range above the price takes X only
	result, err := GetLiquidityByXPrice(x, MustCalculatePriceSqrt(100), MustCalculatePriceSqrt(200), current, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Liquidity.Sign())
	assert.Equal(t, 0, result.Amount.Sign())

	byTicks, err := GetLiquidityByX(x, 100, 200, current, true)
	require.NoError(t, err)
	assert.Equal(t, 0, byTicks.Liquidity.Cmp(result.Liquidity))

	// range around the price needs Y as well
	result, err = GetLiquidityByXPrice(x, MustCalculatePriceSqrt(-100), MustCalculatePriceSqrt(100), current, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Liquidity.Sign())
	assert.Equal(t, 1, result.Amount.Sign())

	_, err = GetLiquidityByXPrice(x, MustCalculatePriceSqrt(-200), MustCalculatePriceSqrt(-100), current, true)
	require.ErrorIs(t, err, shared.ErrPriceOutOfRange)
}

func TestGetLiquidityByYPrice(t *testing.T) {
	current := shared.PriceDenominator
	y := big.NewInt(1_000_000)

	// range below the price takes Y only
	result, err := GetLiquidityByYPrice(y, MustCalculatePriceSqrt(-200), MustCalculatePriceSqrt(-100), current, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Liquidity.Sign())
	assert.Equal(t, 0, result.Amount.Sign())

	byTicks, err := GetLiquidityByY(y, -200, -100, current, true)
	require.NoError(t, err)
	assert.Equal(t, 0, byTicks.Liquidity.Cmp(result.Liquidity))

	result, err = GetLiquidityByYPrice(y, MustCalculatePriceSqrt(-100), MustCalculatePriceSqrt(100), current, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Liquidity.Sign())
	assert.Equal(t, 1, result.Amount.Sign())

	_, err = GetLiquidityByYPrice(y, MustCalculatePriceSqrt(100), MustCalculatePriceSqrt(200), current, true)
	require.ErrorIs(t, err, shared.ErrPriceOutOfRange)

	_, err = GetLiquidityByY(y, -300_000, 100, current, true)
	require.ErrorIs(t, err, shared.ErrOutOfRange)
}

func TestGetMaxLiquidity(t *testing.T) {
	current := shared.PriceDenominator
	x := big.NewInt(1_000_000)
	y := big.NewInt(1_000_000)

	result, err := GetMaxLiquidity(x, y, -100, 100, current)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Liquidity.Sign())
	assert.LessOrEqual(t, result.X.Cmp(x), 0)
	assert.LessOrEqual(t, result.Y.Cmp(y), 0)

	// one of the tokens is fully used
	assert.True(t, result.X.Cmp(x) == 0 || result.Y.Cmp(y) == 0)

	above, err := GetMaxLiquidity(x, y, 100, 200, current)
	require.NoError(t, err)
	assert.Equal(t, 0, above.X.Cmp(x))
	assert.Equal(t, 0, above.Y.Sign())

	below, err := GetMaxLiquidity(x, y, -200, -100, current)
	require.NoError(t, err)
	assert.Equal(t, 0, below.X.Sign())
	assert.Equal(t, 0, below.Y.Cmp(y))

	_, err = GetMaxLiquidity(x, y, 100, 100, current)
	require.ErrorIs(t, err, shared.ErrInvalidArgument)

	half, err := GetMaxLiquidityWithPercentage(x, y, -100, 100, current, ToDecimal(50, 2))
	require.NoError(t, err)
	assert.Equal(t, -1, half.Liquidity.Cmp(result.Liquidity))
	assert.Equal(t, 1, half.Liquidity.Sign())
}

func TestGetLiquidity(t *testing.T) {
	current := shared.PriceDenominator
	x := big.NewInt(1_000_000)
	y := big.NewInt(1_000_000)

	full, err := GetLiquidity(x, y, shared.Unbounded(), shared.Unbounded(), current, true, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, full.Liquidity.Sign())
	assert.Equal(t, 0, full.X.Cmp(x))
	assert.Equal(t, 0, full.Y.Cmp(y))

	bounded, err := GetLiquidity(x, y, shared.Bounded(-100), shared.Bounded(100), current, true, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, bounded.Liquidity.Cmp(full.Liquidity))

	_, err = GetLiquidity(x, y, shared.Unbounded(), shared.Bounded(100), current, true, 0)
	require.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestGetXY(t *testing.T) {
	liquidity := big.NewInt(1_000_000_000_000)
	lower := bigInt(t, "1000000000000000000000000")
	upper := bigInt(t, "2000000000000000000000000")

	x, err := GetX(liquidity, upper, big.NewInt(1), lower)
	require.NoError(t, err)
	assert.Equal(t, "500000", x.String())

	x, err = GetXFromLiquidity(liquidity, upper, lower)
	require.NoError(t, err)
	assert.Equal(t, "500000", x.String())

	x, err = GetX(liquidity, upper, upper, lower)
	require.NoError(t, err)
	assert.Equal(t, "0", x.String())

	y, err := GetY(liquidity, upper, bigInt(t, "3000000000000000000000000"), lower)
	require.NoError(t, err)
	assert.Equal(t, "1000000", y.String())

	y, err = GetY(liquidity, upper, big.NewInt(1), lower)
	require.NoError(t, err)
	assert.Equal(t, "0", y.String())

	_, err = GetY(liquidity, upper, big.NewInt(0), lower)
	require.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestComputeTokenAmountsFromPrice(t *testing.T) {
	x, y := ComputeTokenAmountsFromPrice(big.NewInt(1_000), big.NewInt(1_000), shared.PriceDenominator)
	assert.Equal(t, "1000", x.String())
	assert.Equal(t, "1000", y.String())
}
