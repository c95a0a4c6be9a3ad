package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

func deepPoolSwap(t *testing.T) shared.SimulateSwapParams {
	t.Helper()
	return shared.SimulateSwapParams{
		Slippage: ToDecimal(1, 2),
		Tickmap:  shared.NewTickmap(),
		Pool:     testPool(bigInt(t, "1000000000000000000000000")),
	}
}

func TestSimulateSwapAndCreatePositionOnlyY(t *testing.T) {
	amountY := big.NewInt(1_000_000)
	position := shared.PositionRange{LowerTick: -100, UpperTick: 100, KnownPrice: shared.PriceDenominator}

	result, err := SimulateSwapAndCreatePosition(big.NewInt(0), amountY, deepPoolSwap(t), position, nil)
	require.NoError(t, err)
	require.NotNil(t, result.SwapInput)
	require.NotNil(t, result.SwapSimulation)

	assert.False(t, result.SwapInput.XToY)
	assert.True(t, result.SwapInput.ByAmountIn)
	assert.Equal(t, 1, result.SwapInput.SwapAmount.Sign())
	assert.LessOrEqual(t, result.SwapInput.SwapAmount.Cmp(amountY), 0)
	assert.Equal(t, shared.SimulationStatusOk, result.SwapSimulation.Status)

	assert.Equal(t, 1, result.Position.Liquidity.Sign())
	assert.LessOrEqual(t, result.Position.X.Cmp(result.SwapSimulation.AccumulatedAmountOut), 0)
	left := new(big.Int).Sub(amountY, result.SwapInput.SwapAmount)
	assert.LessOrEqual(t, result.Position.Y.Cmp(left), 0)
}

func TestSimulateSwapAndCreatePositionRangeAbovePrice(t *testing.T) {
	position := shared.PositionRange{LowerTick: 100, UpperTick: 200, KnownPrice: shared.PriceDenominator}

	result, err := SimulateSwapAndCreatePosition(big.NewInt(0), big.NewInt(1_000_000), deepPoolSwap(t), position, nil)
	require.NoError(t, err)
	require.NotNil(t, result.SwapInput)
	assert.False(t, result.SwapInput.XToY)
	assert.Equal(t, "1000000", result.SwapInput.SwapAmount.String())
	assert.Equal(t, 1, result.Position.Liquidity.Sign())
	assert.Equal(t, 0, result.Position.Y.Sign())
}

func TestSimulateSwapAndCreatePositionRangeBelowPrice(t *testing.T) {
	position := shared.PositionRange{LowerTick: -200, UpperTick: -100, KnownPrice: shared.PriceDenominator}

	result, err := SimulateSwapAndCreatePosition(big.NewInt(0), big.NewInt(1_000_000), deepPoolSwap(t), position, nil)
	require.NoError(t, err)
	assert.Nil(t, result.SwapInput)
	assert.Nil(t, result.SwapSimulation)
	assert.Equal(t, 1, result.Position.Liquidity.Sign())
	assert.Equal(t, "1000000", result.Position.Y.String())
}

func TestSimulateSwapAndCreatePositionNothingToSwap(t *testing.T) {
	position := shared.PositionRange{LowerTick: -100, UpperTick: 100, KnownPrice: shared.PriceDenominator}

	result, err := SimulateSwapAndCreatePosition(big.NewInt(0), big.NewInt(0), deepPoolSwap(t), position, nil)
	require.NoError(t, err)
	assert.Nil(t, result.SwapInput)
	assert.Equal(t, 0, result.Position.Liquidity.Sign())
}

func TestSimulateSwapAndCreatePositionInvalid(t *testing.T) {
	_, err := SimulateSwapAndCreatePosition(big.NewInt(1), big.NewInt(1), deepPoolSwap(t), shared.PositionRange{LowerTick: -100, UpperTick: 100}, nil)
	require.ErrorIs(t, err, shared.ErrInvalidArgument)

	position := shared.PositionRange{LowerTick: 100, UpperTick: -100, KnownPrice: shared.PriceDenominator}
	_, err = SimulateSwapAndCreatePosition(big.NewInt(1), big.NewInt(1), deepPoolSwap(t), position, nil)
	require.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestSimulateSwapAndCreatePositionOnTheSamePool(t *testing.T) {
	amountY := big.NewInt(1_000_000)
	position := shared.PositionRange{LowerTick: -100, UpperTick: 100}

	result, err := SimulateSwapAndCreatePositionOnTheSamePool(big.NewInt(0), amountY, ToDecimal(1, 2), deepPoolSwap(t), position)
	require.NoError(t, err)
	require.NotNil(t, result.SwapInput)
	require.NotNil(t, result.SwapSimulation)

	assert.False(t, result.SwapInput.XToY)
	assert.LessOrEqual(t, result.SwapInput.SwapAmount.Cmp(amountY), 0)
	assert.Equal(t, 1, result.Position.Liquidity.Sign())
	assert.Equal(t, 1, result.SwapSimulation.PriceAfterSwap.Cmp(shared.PriceDenominator))
}

func TestSimulateSwapAndCreatePositionOnTheSamePoolRangeBelowPrice(t *testing.T) {
	position := shared.PositionRange{LowerTick: -200, UpperTick: -100}

	result, err := SimulateSwapAndCreatePositionOnTheSamePool(big.NewInt(1_000), big.NewInt(1_000_000), ToDecimal(1, 2), deepPoolSwap(t), position)
	require.NoError(t, err)
	require.NotNil(t, result.SwapInput)
	assert.True(t, result.SwapInput.XToY)
	assert.Equal(t, "1000", result.SwapInput.SwapAmount.String())
	assert.Equal(t, 0, result.Position.X.Sign())
	assert.Equal(t, 1, result.Position.Liquidity.Sign())
}
