package math

import (
	"fmt"
	"math/big"

	"lukechampine.com/uint128"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

var (
	tokensOwedDenominator = new(big.Int).Exp(big.NewInt(10), big.NewInt(shared.Decimal+shared.LiquidityScale), nil)
	feeToSpacingOffset    = new(big.Int).Exp(big.NewInt(10), big.NewInt(shared.Decimal-4), nil)
)

// FeeTiers are the fee tiers the program is deployed with.
var FeeTiers = []shared.FeeTier{
	{Fee: FromFee(big.NewInt(10)), TickSpacing: 1},
	{Fee: FromFee(big.NewInt(20)), TickSpacing: 5},
	{Fee: FromFee(big.NewInt(50)), TickSpacing: 5},
	{Fee: FromFee(big.NewInt(100)), TickSpacing: 10},
	{Fee: FromFee(big.NewInt(300)), TickSpacing: 30},
	{Fee: FromFee(big.NewInt(1000)), TickSpacing: 100},
}

// FromFee scales a fee in thousandths of a percent, e.g. 1 is 0.001%, to shared.Denominator.
func FromFee(fee *big.Int) *big.Int {
	return new(big.Int).Mul(fee, shared.FeeOffset)
}

// FeeToTickSpacing is the tick spacing the program pairs with fee.
func FeeToTickSpacing(fee *big.Int) uint16 {
	if fee.Cmp(FromFee(big.NewInt(10))) <= 0 {
		return 1
	}
	return uint16(new(big.Int).Quo(fee, feeToSpacingOffset).Uint64())
}

func toU128(v *big.Int) uint128.Uint128 {
	if v == nil {
		return uint128.Zero
	}
	return uint128.FromBig(WrapU128(v))
}

// CalculateFeeGrowthInside is the fee growth accrued between lowerTick and upperTick.
// Fee growth counters wrap around 2^128 like the on-chain ones.
func CalculateFeeGrowthInside(lowerTick, upperTick shared.Tick, currentTick int32, feeGrowthGlobalX, feeGrowthGlobalY *big.Int) shared.FeeGrowthInside {
	globalX, globalY := toU128(feeGrowthGlobalX), toU128(feeGrowthGlobalY)
	lowerX, lowerY := toU128(lowerTick.FeeGrowthOutsideX), toU128(lowerTick.FeeGrowthOutsideY)
	upperX, upperY := toU128(upperTick.FeeGrowthOutsideX), toU128(upperTick.FeeGrowthOutsideY)

	belowX, belowY := lowerX, lowerY
	if currentTick < lowerTick.Index {
		belowX, belowY = globalX.SubWrap(lowerX), globalY.SubWrap(lowerY)
	}

	aboveX, aboveY := upperX, upperY
	if currentTick >= upperTick.Index {
		aboveX, aboveY = globalX.SubWrap(upperX), globalY.SubWrap(upperY)
	}

	return shared.FeeGrowthInside{
		X: globalX.SubWrap(belowX).SubWrap(aboveX).Big(),
		Y: globalY.SubWrap(belowY).SubWrap(aboveY).Big(),
	}
}

// CalculateTokensOwed is the fee a position can claim given the current fee growth inside its
// range. A fee growth below the one recorded on the position is a wrapped counter.
func CalculateTokensOwed(position shared.PositionClaimData, inside shared.FeeGrowthInside) shared.TokensOwed {
	return shared.TokensOwed{
		X: tokensOwed(position.Liquidity, position.FeeGrowthInsideX, inside.X, position.TokensOwedX),
		Y: tokensOwed(position.Liquidity, position.FeeGrowthInsideY, inside.Y, position.TokensOwedY),
	}
}

func tokensOwed(liquidity, positionGrowth, insideGrowth, owed *big.Int) *big.Int {
	delta := toU128(insideGrowth).SubWrap(toU128(positionGrowth)).Big()

	earned := new(big.Int).Mul(clone(liquidity), delta)
	earned.Quo(earned, tokensOwedDenominator)

	total := earned.Add(earned, clone(owed))
	return total.Quo(total, shared.Denominator)
}

// CalculateClaimAmount is the fee claimable by a position over [lowerTick, upperTick].
func CalculateClaimAmount(position shared.PositionClaimData, lowerTick, upperTick shared.Tick, currentTick int32, feeGrowthGlobalX, feeGrowthGlobalY *big.Int) (shared.TokensOwed, error) {
	if lowerTick.Index >= upperTick.Index {
		return shared.TokensOwed{}, fmt.Errorf("lower tick %d not below upper tick %d: %w", lowerTick.Index, upperTick.Index, shared.ErrInvalidArgument)
	}
	inside := CalculateFeeGrowthInside(lowerTick, upperTick, currentTick, feeGrowthGlobalX, feeGrowthGlobalY)
	return CalculateTokensOwed(position, inside), nil
}

// CrossTickFeeGrowth returns tick with its outside fee growth flipped to the other side,
// as the program does when the price crosses it.
func CrossTickFeeGrowth(tick shared.Tick, feeGrowthGlobalX, feeGrowthGlobalY *big.Int) shared.Tick {
	crossed := tick
	crossed.FeeGrowthOutsideX = toU128(feeGrowthGlobalX).SubWrap(toU128(tick.FeeGrowthOutsideX)).Big()
	crossed.FeeGrowthOutsideY = toU128(feeGrowthGlobalY).SubWrap(toU128(tick.FeeGrowthOutsideY)).Big()
	return crossed
}
