package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

var liquidityToPriceScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(shared.PriceScale-shared.LiquidityScale), nil)

// GetDeltaX is the token X amount moved when the price travels between priceA and priceB.
// The error wraps shared.ErrArithmeticOverflow when the amount does not fit in u64.
func GetDeltaX(priceA, priceB, liquidity *big.Int, roundUp bool) (*big.Int, error) {
	deltaPrice := new(big.Int).Sub(priceA, priceB)
	deltaPrice.Abs(deltaPrice)

	nominator := new(big.Int).Mul(liquidity, deltaPrice)
	nominator.Quo(nominator, shared.LiquidityDenominator)
	nominator.Mul(nominator, shared.PriceDenominator)

	product := new(big.Int).Mul(priceA, priceB)
	var result *big.Int
	if roundUp {
		denominator := new(big.Int).Quo(product, shared.PriceDenominator)
		result = DivUp(DivUp(nominator, denominator), shared.PriceDenominator)
	} else {
		denominator := DivUp(product, shared.PriceDenominator)
		result = Div(Div(nominator, denominator), shared.PriceDenominator)
	}
	return checkU64(result)
}

// GetDeltaY is the token Y amount moved when the price travels between priceA and priceB.
func GetDeltaY(priceA, priceB, liquidity *big.Int, roundUp bool) (*big.Int, error) {
	deltaPrice := new(big.Int).Sub(priceA, priceB)
	deltaPrice.Abs(deltaPrice)

	product := new(big.Int).Mul(deltaPrice, liquidity)
	var result *big.Int
	if roundUp {
		result = DivUp(DivUp(product, shared.LiquidityDenominator), shared.PriceDenominator)
	} else {
		result = product.Quo(product, shared.LiquidityDenominator)
		result.Quo(result, shared.PriceDenominator)
	}
	return checkU64(result)
}

func checkU64(amount *big.Int) (*big.Int, error) {
	if amount.Cmp(shared.U64Max) > 0 {
		return nil, fmt.Errorf("amount %s: %w", amount, shared.ErrArithmeticOverflow)
	}
	return amount, nil
}

// GetNextSqrtPriceXUp computes L * price / (L +- amount * price), rounded up.
func GetNextSqrtPriceXUp(price, liquidity, amount *big.Int, add bool) (*big.Int, error) {
	if amount.Sign() == 0 {
		return new(big.Int).Set(price), nil
	}

	bigLiquidity := new(big.Int).Mul(liquidity, liquidityToPriceScale)
	priceMulAmount := new(big.Int).Mul(price, amount)

	denominator := new(big.Int)
	if add {
		denominator.Add(bigLiquidity, priceMulAmount)
	} else {
		denominator.Sub(bigLiquidity, priceMulAmount)
	}
	if denominator.Sign() <= 0 {
		return nil, fmt.Errorf("next sqrt price denominator is zero or negative: %w", shared.ErrOutOfRange)
	}

	nominator := DivUp(new(big.Int).Mul(price, liquidity), shared.LiquidityDenominator)
	return DivUp(nominator.Mul(nominator, shared.PriceDenominator), denominator), nil
}

// GetNextSqrtPriceYDown computes price +- amount / L, rounded down.
func GetNextSqrtPriceYDown(price, liquidity, amount *big.Int, add bool) (*big.Int, error) {
	numerator := new(big.Int).Mul(amount, shared.PriceDenominatorSquared)
	bigLiquidity := new(big.Int).Mul(liquidity, liquidityToPriceScale)

	if add {
		return new(big.Int).Add(price, Div(numerator, bigLiquidity)), nil
	}
	result := new(big.Int).Sub(price, DivUp(numerator, bigLiquidity))
	if result.Sign() < 0 {
		return nil, fmt.Errorf("sqrt price cannot be negative: %w", shared.ErrOutOfRange)
	}
	return result, nil
}

func GetNextSqrtPriceFromInput(price, liquidity, amount *big.Int, aToB bool) (*big.Int, error) {
	if err := checkPriceAndLiquidity(price, liquidity); err != nil {
		return nil, err
	}
	if aToB {
		return GetNextSqrtPriceXUp(price, liquidity, amount, true)
	}
	return GetNextSqrtPriceYDown(price, liquidity, amount, true)
}

func GetNextSqrtPriceFromOutput(price, liquidity, amount *big.Int, aToB bool) (*big.Int, error) {
	if err := checkPriceAndLiquidity(price, liquidity); err != nil {
		return nil, err
	}
	if aToB {
		return GetNextSqrtPriceYDown(price, liquidity, amount, false)
	}
	return GetNextSqrtPriceXUp(price, liquidity, amount, false)
}

func checkPriceAndLiquidity(price, liquidity *big.Int) error {
	if price.Sign() <= 0 {
		return fmt.Errorf("sqrtPrice must be greater than 0: %w", shared.ErrInvalidArgument)
	}
	if liquidity.Sign() <= 0 {
		return fmt.Errorf("liquidity must be greater than 0: %w", shared.ErrInvalidArgument)
	}
	return nil
}
