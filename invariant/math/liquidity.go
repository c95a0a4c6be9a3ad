package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

// GetLiquidityByX is the liquidity a position over [lowerTick, upperTick] gets from x, together
// with the Y amount it needs at currentSqrtPrice.
func GetLiquidityByX(x *big.Int, lowerTick, upperTick int32, currentSqrtPrice *big.Int, roundUp bool) (shared.SingleTokenLiquidity, error) {
	lower, upper, err := rangeSqrtPrices(lowerTick, upperTick)
	if err != nil {
		return shared.SingleTokenLiquidity{}, err
	}
	return GetLiquidityByXPrice(x, lower, upper, currentSqrtPrice, roundUp)
}

// GetLiquidityByXPrice fails with shared.ErrPriceOutOfRange when the price is above the range.
// The returned Amount is the Y needed.
func GetLiquidityByXPrice(x, lowerSqrtPrice, upperSqrtPrice, currentSqrtPrice *big.Int, roundUp bool) (shared.SingleTokenLiquidity, error) {
	if upperSqrtPrice.Cmp(currentSqrtPrice) < 0 {
		return shared.SingleTokenLiquidity{}, fmt.Errorf("liquidity by x above upper price: %w", shared.ErrPriceOutOfRange)
	}

	if currentSqrtPrice.Cmp(lowerSqrtPrice) < 0 {
		nominator := new(big.Int).Mul(lowerSqrtPrice, upperSqrtPrice)
		nominator.Quo(nominator, shared.PriceDenominator)
		denominator := new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice)

		liquidity := new(big.Int).Mul(x, nominator)
		liquidity.Mul(liquidity, shared.LiquidityDenominator)
		return shared.SingleTokenLiquidity{
			Liquidity: Div(liquidity, denominator),
			Amount:    big.NewInt(0),
		}, nil
	}

	nominator := new(big.Int).Mul(currentSqrtPrice, upperSqrtPrice)
	nominator.Quo(nominator, shared.PriceDenominator)
	denominator := new(big.Int).Sub(upperSqrtPrice, currentSqrtPrice)

	liquidity := Div(new(big.Int).Mul(x, nominator), denominator)
	liquidity.Mul(liquidity, shared.LiquidityDenominator)

	priceDiff := new(big.Int).Sub(currentSqrtPrice, lowerSqrtPrice)
	return shared.SingleTokenLiquidity{
		Liquidity: liquidity,
		Amount:    calculateY(priceDiff, liquidity, roundUp),
	}, nil
}

// GetLiquidityByY is the liquidity a position over [lowerTick, upperTick] gets from y, together
// with the X amount it needs at currentSqrtPrice.
func GetLiquidityByY(y *big.Int, lowerTick, upperTick int32, currentSqrtPrice *big.Int, roundUp bool) (shared.SingleTokenLiquidity, error) {
	lower, upper, err := rangeSqrtPrices(lowerTick, upperTick)
	if err != nil {
		return shared.SingleTokenLiquidity{}, err
	}
	return GetLiquidityByYPrice(y, lower, upper, currentSqrtPrice, roundUp)
}

// GetLiquidityByYPrice fails with shared.ErrPriceOutOfRange when the price is below the range.
// The returned Amount is the X needed.
func GetLiquidityByYPrice(y, lowerSqrtPrice, upperSqrtPrice, currentSqrtPrice *big.Int, roundUp bool) (shared.SingleTokenLiquidity, error) {
	if currentSqrtPrice.Cmp(lowerSqrtPrice) < 0 {
		return shared.SingleTokenLiquidity{}, fmt.Errorf("liquidity by y below lower price: %w", shared.ErrPriceOutOfRange)
	}

	scaled := new(big.Int).Mul(y, shared.LiquidityDenominator)
	scaled.Mul(scaled, shared.PriceDenominator)

	if upperSqrtPrice.Cmp(currentSqrtPrice) <= 0 {
		priceDiff := new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice)
		return shared.SingleTokenLiquidity{
			Liquidity: Div(scaled, priceDiff),
			Amount:    big.NewInt(0),
		}, nil
	}

	priceDiff := new(big.Int).Sub(currentSqrtPrice, lowerSqrtPrice)
	liquidity := Div(scaled, priceDiff)

	denominator := new(big.Int).Mul(currentSqrtPrice, upperSqrtPrice)
	denominator.Quo(denominator, shared.PriceDenominator)
	nominator := new(big.Int).Sub(upperSqrtPrice, currentSqrtPrice)

	return shared.SingleTokenLiquidity{
		Liquidity: liquidity,
		Amount:    calculateX(nominator, denominator, liquidity, roundUp),
	}, nil
}

// GetLiquidity is the liquidity both amounts support together. Unbounded ends resolve to the
// widest ticks the spacing allows.
func GetLiquidity(x, y *big.Int, lowerTick, upperTick shared.TickBound, currentSqrtPrice *big.Int, roundUp bool, spacing uint16) (shared.LiquidityResult, error) {
	lowerIndex, upperIndex, err := resolveBounds(lowerTick, upperTick, spacing)
	if err != nil {
		return shared.LiquidityResult{}, err
	}
	lower, upper, err := rangeSqrtPrices(lowerIndex, upperIndex)
	if err != nil {
		return shared.LiquidityResult{}, err
	}

	if upper.Cmp(currentSqrtPrice) < 0 {
		byY, err := GetLiquidityByYPrice(y, lower, upper, currentSqrtPrice, roundUp)
		if err != nil {
			return shared.LiquidityResult{}, err
		}
		return shared.LiquidityResult{X: byY.Amount, Y: clone(y), Liquidity: byY.Liquidity}, nil
	}
	if currentSqrtPrice.Cmp(lower) < 0 {
		byX, err := GetLiquidityByXPrice(x, lower, upper, currentSqrtPrice, roundUp)
		if err != nil {
			return shared.LiquidityResult{}, err
		}
		return shared.LiquidityResult{X: clone(x), Y: byX.Amount, Liquidity: byX.Liquidity}, nil
	}

	byY, err := GetLiquidityByYPrice(y, lower, upper, currentSqrtPrice, roundUp)
	if err != nil {
		return shared.LiquidityResult{}, err
	}
	byX, err := GetLiquidityByXPrice(x, lower, upper, currentSqrtPrice, roundUp)
	if err != nil {
		return shared.LiquidityResult{}, err
	}
	return shared.LiquidityResult{
		X:         clone(x),
		Y:         clone(y),
		Liquidity: new(big.Int).Set(minBig(byX.Liquidity, byY.Liquidity)),
	}, nil
}

// GetMaxLiquidity is the largest liquidity x and y can fund over [lowerTick, upperTick], with
// the amounts it actually takes. Neither amount exceeds the one supplied.
func GetMaxLiquidity(x, y *big.Int, lowerTick, upperTick int32, currentSqrtPrice *big.Int) (shared.LiquidityResult, error) {
	if lowerTick >= upperTick {
		return shared.LiquidityResult{}, fmt.Errorf("lower tick %d not below upper tick %d: %w", lowerTick, upperTick, shared.ErrInvalidArgument)
	}
	lower, upper, err := rangeSqrtPrices(lowerTick, upperTick)
	if err != nil {
		return shared.LiquidityResult{}, err
	}

	if upper.Cmp(currentSqrtPrice) <= 0 {
		byY, err := GetLiquidityByYPrice(y, lower, upper, currentSqrtPrice, true)
		if err != nil {
			return shared.LiquidityResult{}, err
		}
		return shared.LiquidityResult{X: byY.Amount, Y: clone(y), Liquidity: byY.Liquidity}, nil
	}
	if currentSqrtPrice.Cmp(lower) <= 0 {
		byX, err := GetLiquidityByXPrice(x, lower, upper, currentSqrtPrice, true)
		if err != nil {
			return shared.LiquidityResult{}, err
		}
		return shared.LiquidityResult{X: clone(x), Y: byX.Amount, Liquidity: byX.Liquidity}, nil
	}

	byY, err := GetLiquidityByYPrice(y, lower, upper, currentSqrtPrice, true)
	if err != nil {
		return shared.LiquidityResult{}, err
	}
	byX, err := GetLiquidityByXPrice(x, lower, upper, currentSqrtPrice, true)
	if err != nil {
		return shared.LiquidityResult{}, err
	}

	fromX := shared.LiquidityResult{X: clone(x), Y: byX.Amount, Liquidity: byX.Liquidity}
	fromY := shared.LiquidityResult{X: byY.Amount, Y: clone(y), Liquidity: byY.Liquidity}

	if byX.Liquidity.Cmp(byY.Liquidity) > 0 {
		if byX.Amount.Cmp(y) <= 0 {
			return fromX, nil
		}
		return fromY, nil
	}
	if byY.Amount.Cmp(x) <= 0 {
		return fromY, nil
	}
	return fromX, nil
}

// GetMaxLiquidityWithPercentage scales the amounts GetMaxLiquidity takes by percentage
// (on shared.Denominator) and solves again.
func GetMaxLiquidityWithPercentage(x, y *big.Int, lowerTick, upperTick int32, currentSqrtPrice, percentage *big.Int) (shared.LiquidityResult, error) {
	full, err := GetMaxLiquidity(x, y, lowerTick, upperTick, currentSqrtPrice)
	if err != nil {
		return shared.LiquidityResult{}, err
	}
	xPart := MulDiv(full.X, percentage, shared.Denominator, shared.RoundingDown)
	yPart := MulDiv(full.Y, percentage, shared.Denominator, shared.RoundingDown)
	return GetMaxLiquidity(xPart, yPart, lowerTick, upperTick, currentSqrtPrice)
}

// GetX is the X held by liquidity over [lower, upper] at currentSqrtPrice.
func GetX(liquidity, upperSqrtPrice, currentSqrtPrice, lowerSqrtPrice *big.Int) (*big.Int, error) {
	if upperSqrtPrice.Sign() <= 0 || currentSqrtPrice.Sign() <= 0 || lowerSqrtPrice.Sign() <= 0 {
		return nil, fmt.Errorf("sqrt prices must be positive: %w", shared.ErrInvalidArgument)
	}

	var nominator, denominator *big.Int
	switch {
	case currentSqrtPrice.Cmp(upperSqrtPrice) >= 0:
		return big.NewInt(0), nil
	case currentSqrtPrice.Cmp(lowerSqrtPrice) < 0:
		denominator = new(big.Int).Mul(lowerSqrtPrice, upperSqrtPrice)
		nominator = new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice)
	default:
		denominator = new(big.Int).Mul(upperSqrtPrice, currentSqrtPrice)
		nominator = new(big.Int).Sub(upperSqrtPrice, currentSqrtPrice)
	}
	denominator.Quo(denominator, shared.PriceDenominator)

	out := Div(new(big.Int).Mul(liquidity, nominator), denominator)
	return out.Quo(out, shared.LiquidityDenominator), nil
}

// GetXFromLiquidity is the X held by liquidity over the whole range, as if the price sat below it.
func GetXFromLiquidity(liquidity, upperSqrtPrice, lowerSqrtPrice *big.Int) (*big.Int, error) {
	if upperSqrtPrice.Sign() <= 0 || lowerSqrtPrice.Sign() <= 0 {
		return nil, fmt.Errorf("sqrt prices must be positive: %w", shared.ErrInvalidArgument)
	}
	denominator := new(big.Int).Mul(lowerSqrtPrice, upperSqrtPrice)
	denominator.Quo(denominator, shared.PriceDenominator)
	nominator := new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice)

	out := Div(new(big.Int).Mul(liquidity, nominator), denominator)
	return out.Quo(out, shared.LiquidityDenominator), nil
}

// GetY is the Y held by liquidity over [lower, upper] at currentSqrtPrice.
func GetY(liquidity, upperSqrtPrice, currentSqrtPrice, lowerSqrtPrice *big.Int) (*big.Int, error) {
	if upperSqrtPrice.Sign() <= 0 || currentSqrtPrice.Sign() <= 0 || lowerSqrtPrice.Sign() <= 0 {
		return nil, fmt.Errorf("sqrt prices must be positive: %w", shared.ErrInvalidArgument)
	}

	var difference *big.Int
	switch {
	case currentSqrtPrice.Cmp(lowerSqrtPrice) < 0:
		return big.NewInt(0), nil
	case currentSqrtPrice.Cmp(upperSqrtPrice) >= 0:
		difference = new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice)
	default:
		difference = new(big.Int).Sub(currentSqrtPrice, lowerSqrtPrice)
	}

	out := new(big.Int).Mul(liquidity, difference)
	out.Quo(out, shared.PriceDenominator)
	return out.Quo(out, shared.LiquidityDenominator), nil
}

// ComputeTokenAmountsFromPrice values both amounts in X at swapPoolPrice and splits the total
// value evenly between the two tokens.
func ComputeTokenAmountsFromPrice(amountX, amountY, swapPoolPrice *big.Int) (x, y *big.Int) {
	price := new(big.Int).Mul(swapPoolPrice, swapPoolPrice)

	total := new(big.Int).Mul(amountY, price)
	total.Quo(total, shared.PriceDenominatorSquared)
	total.Add(total, amountX)

	x = Div(new(big.Int).Mul(total, shared.PriceDenominatorSquared), price)
	x.Quo(x, big.NewInt(2))

	y = new(big.Int).Mul(total, price)
	y.Quo(y, shared.PriceDenominatorSquared)
	y.Quo(y, big.NewInt(2))
	return x, y
}

func calculateY(priceDiff, liquidity *big.Int, roundUp bool) *big.Int {
	shiftedLiquidity := new(big.Int).Quo(liquidity, shared.LiquidityDenominator)
	product := new(big.Int).Mul(priceDiff, shiftedLiquidity)
	if roundUp {
		return DivUp(product, shared.PriceDenominator)
	}
	return product.Quo(product, shared.PriceDenominator)
}

func calculateX(nominator, denominator, liquidity *big.Int, roundUp bool) *big.Int {
	common := Div(new(big.Int).Mul(liquidity, nominator), denominator)
	if roundUp {
		return DivUp(common, shared.LiquidityDenominator)
	}
	return common.Quo(common, shared.LiquidityDenominator)
}

func rangeSqrtPrices(lowerTick, upperTick int32) (lower, upper *big.Int, err error) {
	if lower, err = CalculatePriceSqrt(lowerTick); err != nil {
		return nil, nil, fmt.Errorf("lower tick: %w", err)
	}
	if upper, err = CalculatePriceSqrt(upperTick); err != nil {
		return nil, nil, fmt.Errorf("upper tick: %w", err)
	}
	return lower, upper, nil
}

func resolveBounds(lowerTick, upperTick shared.TickBound, spacing uint16) (int32, int32, error) {
	lower, lowerOk := lowerTick.Index()
	upper, upperOk := upperTick.Index()
	if (!lowerOk || !upperOk) && spacing == 0 {
		return 0, 0, fmt.Errorf("tick spacing is required for full range liquidity: %w", shared.ErrInvalidArgument)
	}
	if !lowerOk {
		lower = GetMinTick(spacing)
	}
	if !upperOk {
		upper = GetMaxTick(spacing)
	}
	return lower, upper, nil
}
