package shared

import (
	"math/big"
)

const (
	Decimal        = 12
	LiquidityScale = 6
	PriceScale     = 24
	GrowthScale    = 24
	FeeDecimal     = 5

	MaxTick         = 221_818
	MinTick         = -MaxTick
	TickLimit       = 44_364
	TickSearchRange = 256

	TickCrossesPerIx        = 16
	TickVirtualCrossesPerIx = 10

	// TickmapSize is the byte length of a tickmap account bitmap, one bit per slot in (-TickLimit, TickLimit).
	TickmapSize = (2*TickLimit - 1 + 7) / 8
)

var (
	Denominator          = pow10(Decimal)
	LiquidityDenominator = pow10(LiquidityScale)
	PriceDenominator     = pow10(PriceScale)
	GrowthDenominator    = pow10(GrowthScale)
	FeeOffset            = pow10(Decimal - FeeDecimal)

	// PriceDenominatorSquared scales a squared sqrt price back to a unit ratio.
	PriceDenominatorSquared = new(big.Int).Mul(PriceDenominator, PriceDenominator)

	U64Max    = bigIntFromString("18446744073709551615")
	U128Max   = bigIntFromString("340282366920938463463374607431768211455")
	TwoPow128 = new(big.Int).Lsh(big.NewInt(1), 128)
)

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

func bigIntFromString(v string) *big.Int {
	out, ok := new(big.Int).SetString(v, 10)
	if !ok {
		panic("invalid big integer literal")
	}
	return out
}
