package math

import (
	"math/big"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

func MulDiv(x, y, denominator *big.Int, rounding shared.Rounding) *big.Int {
	if denominator.Sign() == 0 {
		return big.NewInt(0)
	}
	mul := new(big.Int).Mul(x, y)
	div, mod := new(big.Int).QuoRem(mul, denominator, new(big.Int))
	if rounding == shared.RoundingUp && mod.Sign() > 0 {
		return div.Add(div, big.NewInt(1))
	}
	return div
}

// DivUp is the ceiling of a/b for non-negative operands.
func DivUp(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return big.NewInt(0)
	}
	div, mod := new(big.Int).QuoRem(a, b, new(big.Int))
	if mod.Sign() > 0 {
		div.Add(div, big.NewInt(1))
	}
	return div
}

func Div(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Quo(a, b)
}

// Sqrt is the integer square root rounded down.
func Sqrt(value *big.Int) *big.Int {
	if value == nil || value.Sign() <= 0 {
		return big.NewInt(0)
	}
	if value.Cmp(big.NewInt(1)) == 0 {
		return big.NewInt(1)
	}

	x := new(big.Int).Set(value)
	y := new(big.Int).Add(value, big.NewInt(1))
	y.Div(y, big.NewInt(2))

	for y.Cmp(x) < 0 {
		x.Set(y)
		y = new(big.Int).Add(x, new(big.Int).Div(value, x))
		y.Div(y, big.NewInt(2))
	}

	return x
}

// WrapU128 reduces v modulo 2^128 into [0, 2^128).
func WrapU128(v *big.Int) *big.Int {
	return new(big.Int).Mod(v, shared.TwoPow128)
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}

func maxBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) > 0 {
		return a
	}
	return b
}

func clone(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
