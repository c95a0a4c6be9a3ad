package math

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/invariant-go/decimal_math"
	"github.com/krazyTry/invariant-go/invariant/shared"
)

// CalculatePriceAfterSlippage shifts a sqrt price by sqrt(1 +- slippage).
func CalculatePriceAfterSlippage(sqrtPrice, slippage *big.Int, up bool) *big.Int {
	multiplier := new(big.Int)
	if up {
		multiplier.Add(shared.Denominator, slippage)
	} else {
		multiplier.Sub(shared.Denominator, slippage)
	}
	slippageSqrt := Sqrt(multiplier.Mul(multiplier, shared.Denominator))
	return MulDiv(sqrtPrice, slippageSqrt, shared.Denominator, shared.RoundingDown)
}

// CalculatePriceImpact is 1 - min(p0, p1) / max(p0, p1) over squared prices, scaled by shared.Denominator.
func CalculatePriceImpact(startingSqrtPrice, endingSqrtPrice *big.Int) *big.Int {
	startingPrice := new(big.Int).Mul(startingSqrtPrice, startingSqrtPrice)
	endingPrice := new(big.Int).Mul(endingSqrtPrice, endingSqrtPrice)

	var quotient *big.Int
	if endingPrice.Cmp(startingPrice) >= 0 {
		quotient = MulDiv(shared.Denominator, startingPrice, endingPrice, shared.RoundingDown)
	} else {
		quotient = MulDiv(shared.Denominator, endingPrice, startingPrice, shared.RoundingDown)
	}
	return new(big.Int).Sub(shared.Denominator, quotient)
}

// CalculateMinReceivedTokensByAmountIn is the output of amountIn at targetSqrtPrice, net of fee.
func CalculateMinReceivedTokensByAmountIn(targetSqrtPrice *big.Int, xToY bool, amountIn, fee *big.Int) *big.Int {
	targetPrice := new(big.Int).Mul(targetSqrtPrice, targetSqrtPrice)

	var amountOut *big.Int
	if xToY {
		amountOut = Div(new(big.Int).Mul(amountIn, targetPrice), shared.PriceDenominatorSquared)
	} else {
		amountOut = Div(new(big.Int).Mul(amountIn, shared.PriceDenominatorSquared), targetPrice)
	}
	return MulDiv(new(big.Int).Sub(shared.Denominator, fee), amountOut, shared.Denominator, shared.RoundingDown)
}

// IsEnoughAmountToPushPrice reports whether amount still moves the price away from currentSqrtPrice.
func IsEnoughAmountToPushPrice(amount, currentSqrtPrice, liquidity, fee *big.Int, byAmountIn, aToB bool) (bool, error) {
	if liquidity.Sign() == 0 {
		return true, nil
	}

	var (
		nextSqrtPrice *big.Int
		err           error
	)
	if byAmountIn {
		amountAfterFee := MulDiv(new(big.Int).Sub(shared.Denominator, fee), amount, shared.Denominator, shared.RoundingDown)
		nextSqrtPrice, err = GetNextSqrtPriceFromInput(currentSqrtPrice, liquidity, amountAfterFee, aToB)
	} else {
		nextSqrtPrice, err = GetNextSqrtPriceFromOutput(currentSqrtPrice, liquidity, amount, aToB)
	}
	if err != nil {
		// the requested output exhausts the liquidity, so the price moves
		if errors.Is(err, shared.ErrOutOfRange) {
			return true, nil
		}
		return false, err
	}
	return currentSqrtPrice.Cmp(nextSqrtPrice) != 0, nil
}

// ToDecimal scales x / 10^decimals by shared.Denominator, e.g. ToDecimal(1, 2) is 1%.
func ToDecimal(x int64, decimals int32) *big.Int {
	return toDecimalWithDenominator(x, shared.Denominator, decimals)
}

// ToPrice scales x / 10^decimals by shared.PriceDenominator.
func ToPrice(x int64, decimals int32) *big.Int {
	return toDecimalWithDenominator(x, shared.PriceDenominator, decimals)
}

func toDecimalWithDenominator(x int64, denominator *big.Int, decimals int32) *big.Int {
	out := new(big.Int).Mul(denominator, big.NewInt(x))
	return out.Quo(out, decimal_math.Pow10(int(decimals)).BigInt())
}

// FixedToDecimal converts a fixed point integer with the given scale into a decimal.
func FixedToDecimal(value *big.Int, scale int32) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -scale)
}

// SqrtPriceToPrice is the human readable Y per X price of a sqrt price for tokens with the given decimals.
func SqrtPriceToPrice(sqrtPrice *big.Int, decimalsX, decimalsY int32) decimal.Decimal {
	sqrt := FixedToDecimal(sqrtPrice, shared.PriceScale)
	return sqrt.Mul(sqrt).Mul(decimal_math.Pow10(int(decimalsX - decimalsY)))
}

// PriceToSqrtPrice is the inverse of SqrtPriceToPrice, rounded down.
func PriceToSqrtPrice(price decimal.Decimal, decimalsX, decimalsY int32) (*big.Int, error) {
	if !price.IsPositive() {
		return nil, shared.ErrInvalidArgument
	}
	raw := price.Div(decimal_math.Pow10(int(decimalsX - decimalsY)))
	sqrt, err := decimal_math.Sqrt(raw, 256)
	if err != nil {
		return nil, err
	}
	return sqrt.Shift(shared.PriceScale).Floor().BigInt(), nil
}

// GetPrice is the squared sqrt price scaled to 10^8 and adjusted by the token decimal difference.
func GetPrice(sqrtPrice *big.Int, decimalDiff int32) *big.Int {
	price := new(big.Int).Mul(sqrtPrice, sqrtPrice)
	price.Quo(price, new(big.Int).Exp(big.NewInt(10), big.NewInt(40), nil))
	switch {
	case decimalDiff > 0:
		return price.Mul(price, decimal_math.Pow10(int(decimalDiff)).BigInt())
	case decimalDiff < 0:
		return price.Quo(price, decimal_math.Pow10(int(-decimalDiff)).BigInt())
	}
	return price
}
