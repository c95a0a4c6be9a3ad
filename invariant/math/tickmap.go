package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

func IsInitialized(tickmap *shared.Tickmap, tick int32, spacing uint16) (bool, error) {
	index, err := shared.BitIndex(tick, spacing)
	if err != nil {
		return false, err
	}
	return tickmap.Bit(index), nil
}

// NextInitialized finds the closest initialized tick strictly above tick, within the search limit.
func NextInitialized(tickmap *shared.Tickmap, tick int32, spacing uint16) (int32, bool) {
	s := int32(spacing)
	limit := GetSearchLimit(tick, spacing, true)
	from := int(tick/s) + 1 + shared.TickLimit
	to := int(limit/s) + shared.TickLimit
	for index := from; index <= to; index++ {
		if tickmap.Bit(index) {
			return int32(index-shared.TickLimit) * s, true
		}
	}
	return 0, false
}

// PrevInitialized finds the closest initialized tick at or below tick, within the search limit.
func PrevInitialized(tickmap *shared.Tickmap, tick int32, spacing uint16) (int32, bool) {
	s := int32(spacing)
	limit := GetSearchLimit(tick, spacing, false)
	from := int(tick/s) + shared.TickLimit
	to := int(limit/s) + shared.TickLimit
	for index := from; index >= to; index-- {
		if tickmap.Bit(index) {
			return int32(index-shared.TickLimit) * s, true
		}
	}
	return 0, false
}

// FindClosestTicks collects up to limit initialized ticks around current, scanning both sides
// alternately unless direction restricts the scan. maxRange bounds the number of slots visited
// per side; a non-positive maxRange scans to the edges of the map.
func FindClosestTicks(tickmap *shared.Tickmap, current int32, spacing uint16, limit, maxRange int, direction shared.Direction) ([]int32, error) {
	if spacing == 0 || current%int32(spacing) != 0 {
		return nil, fmt.Errorf("tick %d not aligned to spacing %d: %w", current, spacing, shared.ErrInvalidArgument)
	}
	if limit <= 0 {
		return []int32{}, nil
	}
	if maxRange <= 0 {
		maxRange = 2 * shared.TickLimit
	}

	currentIndex := int(floorDiv(current, int32(spacing))) + shared.TickLimit
	above := currentIndex + 1
	below := currentIndex

	found := make([]int, 0, limit+1)
	reachedTop := direction == shared.DirectionDown
	reachedBottom := direction == shared.DirectionUp

	// above-below grows by two per iteration when scanning both sides, by one otherwise
	span := maxRange * 2
	if direction != shared.DirectionBoth {
		span = maxRange + 1
	}

	for len(found) < limit && above-below < span {
		if !reachedTop {
			if tickmap.Bit(above) {
				found = append(found, above)
			}
			reachedTop = above >= 2*shared.TickLimit
			above++
		}
		if !reachedBottom {
			if tickmap.Bit(below) {
				found = append([]int{below}, found...)
			}
			reachedBottom = below < 0
			below--
		}
		if reachedTop && reachedBottom {
			break
		}
	}

	// both sides may hit in the last iteration
	if len(found) > limit {
		found = found[:len(found)-1]
	}

	ticks := make([]int32, len(found))
	for i, index := range found {
		ticks[i] = int32(index-shared.TickLimit) * int32(spacing)
	}
	return ticks, nil
}

// GetCloserLimit picks the bound of the next swap step: the closest initialized tick in the swap
// direction, or the search limit when none is initialized, unless the price limit comes first.
func GetCloserLimit(sqrtPriceLimit *big.Int, xToY bool, currentTick int32, spacing uint16, tickmap *shared.Tickmap) (shared.CloserLimitResult, error) {
	var (
		index       int32
		initialized bool
	)
	if xToY {
		index, initialized = PrevInitialized(tickmap, currentTick, spacing)
	} else {
		index, initialized = NextInitialized(tickmap, currentTick, spacing)
	}
	if !initialized {
		index = GetSearchLimit(currentTick, spacing, !xToY)
	}

	sqrtPrice, err := CalculatePriceSqrt(index)
	if err != nil {
		return shared.CloserLimitResult{}, err
	}

	if (xToY && sqrtPrice.Cmp(sqrtPriceLimit) > 0) || (!xToY && sqrtPrice.Cmp(sqrtPriceLimit) < 0) {
		return shared.CloserLimitResult{
			SwapLimit:    sqrtPrice,
			LimitingTick: &shared.LimitingTick{Index: index, Initialized: initialized},
		}, nil
	}
	return shared.CloserLimitResult{SwapLimit: new(big.Int).Set(sqrtPriceLimit)}, nil
}
