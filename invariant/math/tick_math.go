package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

// tickPriceMultipliers[k] is sqrt(1.0001)^(2^k) scaled by shared.Denominator.
var tickPriceMultipliers = [18]*big.Int{
	big.NewInt(1000049998750),
	big.NewInt(1000100000000),
	big.NewInt(1000200010000),
	big.NewInt(1000400060004),
	big.NewInt(1000800280056),
	big.NewInt(1001601200560),
	big.NewInt(1003204964963),
	big.NewInt(1006420201726),
	big.NewInt(1012881622442),
	big.NewInt(1025929181080),
	big.NewInt(1052530684591),
	big.NewInt(1107820842005),
	big.NewInt(1227267017980),
	big.NewInt(1506184333421),
	big.NewInt(2268591246242),
	big.NewInt(5146506242525),
	big.NewInt(26486526504348),
	big.NewInt(701536086265529),
}

var denominatorToPriceScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(shared.PriceScale-shared.Decimal), nil)

// CalculatePriceSqrt returns the sqrt price of a tick scaled by shared.PriceDenominator.
func CalculatePriceSqrt(tickIndex int32) (*big.Int, error) {
	tick := tickIndex
	if tick < 0 {
		tick = -tick
	}
	if tick > shared.MaxTick {
		return nil, fmt.Errorf("tick %d over bounds: %w", tickIndex, shared.ErrOutOfRange)
	}

	price := new(big.Int).Set(shared.Denominator)
	for bit, multiplier := range tickPriceMultipliers {
		if tick&(1<<bit) != 0 {
			price.Mul(price, multiplier)
			price.Quo(price, shared.Denominator)
		}
	}

	if tickIndex < 0 {
		inverted := new(big.Int).Mul(shared.Denominator, shared.Denominator)
		inverted.Quo(inverted, price)
		return inverted.Mul(inverted, denominatorToPriceScale), nil
	}
	return price.Mul(price, denominatorToPriceScale), nil
}

// MustCalculatePriceSqrt is CalculatePriceSqrt for ticks already known to be in bounds.
func MustCalculatePriceSqrt(tickIndex int32) *big.Int {
	price, err := CalculatePriceSqrt(tickIndex)
	if err != nil {
		panic(err)
	}
	return price
}

// PriceToTickInRange finds the largest step-aligned tick in [low, high] whose sqrt price does not exceed price.
func PriceToTickInRange(price *big.Int, low, high, step int32) (int32, error) {
	if step <= 0 {
		return 0, fmt.Errorf("step %d must be positive: %w", step, shared.ErrInvalidArgument)
	}

	low = floorDiv(low, step)
	high = floorDiv(high, step)

	for high-low > 1 {
		mid := (high-low)/2 + low
		value, err := CalculatePriceSqrt(mid * step)
		if err != nil {
			return 0, err
		}
		switch value.Cmp(price) {
		case 0:
			return mid * step, nil
		case -1:
			low = mid
		default:
			high = mid
		}
	}

	if high > low {
		if highPrice, err := CalculatePriceSqrt(high * step); err == nil && highPrice.Cmp(price) <= 0 {
			return high * step, nil
		}
	}
	return low * step, nil
}

// AlignTickToSpacing rounds a tick down to a multiple of spacing, toward negative infinity.
func AlignTickToSpacing(tick int32, spacing uint16) int32 {
	s := int32(spacing)
	if s == 0 {
		return tick
	}
	return tick - remEuclid(tick, s)
}

// GetTickFromPrice re-derives the working tick after the price moved away from currentTick.
func GetTickFromPrice(currentTick int32, spacing uint16, price *big.Int, xToY bool) (int32, error) {
	if spacing == 0 || currentTick%int32(spacing) != 0 {
		return 0, fmt.Errorf("tick %d not aligned to spacing %d: %w", currentTick, spacing, shared.ErrInvalidArgument)
	}
	if xToY {
		return PriceToTickInRange(price, GetSearchLimit(currentTick, spacing, false), currentTick, int32(spacing))
	}
	return PriceToTickInRange(price, currentTick, GetSearchLimit(currentTick, spacing, true), int32(spacing))
}

// GetSearchLimit is the farthest tick a single tickmap lookup may reach from tick.
func GetSearchLimit(tick int32, spacing uint16, up bool) int32 {
	s := int32(spacing)
	index := tick / s
	var limit int32
	if up {
		arrayLimit := int32(shared.TickLimit - 1)
		rangeLimit := index + shared.TickSearchRange
		priceLimit := int32(shared.MaxTick) / s
		limit = minInt32(arrayLimit, minInt32(rangeLimit, priceLimit))
	} else {
		arrayLimit := int32(-shared.TickLimit + 1)
		rangeLimit := index - shared.TickSearchRange
		priceLimit := int32(shared.MinTick) / s
		limit = maxInt32(arrayLimit, maxInt32(rangeLimit, priceLimit))
	}
	return limit * s
}

// GetMaxTick is the highest tick usable by a position for the spacing.
func GetMaxTick(spacing uint16) int32 {
	s := int32(spacing)
	limitedByPrice := int32(shared.MaxTick) - int32(shared.MaxTick)%s
	limitedByTickmap := int32(shared.TickLimit)*s - s
	return minInt32(limitedByPrice, limitedByTickmap)
}

// GetMinTick is the lowest tick usable by a position for the spacing.
func GetMinTick(spacing uint16) int32 {
	s := int32(spacing)
	limitedByPrice := -int32(shared.MaxTick) + int32(shared.MaxTick)%s
	limitedByTickmap := -int32(shared.TickLimit) * s
	return maxInt32(limitedByPrice, limitedByTickmap)
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func remEuclid(a, b int32) int32 {
	r := a % b
	if r < 0 {
		if b < 0 {
			r -= b
		} else {
			r += b
		}
	}
	return r
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
