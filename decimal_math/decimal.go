package decimal_math

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var ErrNegativeSqrt = errors.New("square root of a negative decimal")

// Pow10 returns 10^n exactly, for negative n as well.
func Pow10(n int) decimal.Decimal {
	return decimal.New(1, int32(n))
}

// Sqrt computes the square root of x with prec bits of mantissa, truncated toward zero.
func Sqrt(x decimal.Decimal, prec uint) (decimal.Decimal, error) {
	if x.Sign() < 0 {
		return decimal.Zero, ErrNegativeSqrt
	}
	if x.IsZero() {
		return decimal.Zero, nil
	}

	root := new(big.Float).SetPrec(prec).SetMode(big.ToZero)
	root.Sqrt(x.BigFloat().SetPrec(prec))
	return decimal.NewFromString(root.Text('f', -1))
}
