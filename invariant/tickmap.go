package invariant

import (
	"fmt"

	"github.com/krazyTry/invariant-go/invariant/math"
	"github.com/krazyTry/invariant-go/invariant/shared"
)

// ClosestTicks lists up to limit initialized ticks around the current tick of the snapshot,
// at most maxRange spacing slots away on each side. A non-positive maxRange is unbounded.
func (m *Invariant) ClosestTicks(s *Snapshot, limit, maxRange int, direction shared.Direction) ([]int32, error) {
	if s == nil {
		return nil, fmt.Errorf("nil snapshot: %w", shared.ErrInvalidArgument)
	}
	current := math.AlignTickToSpacing(s.Pool.CurrentTickIndex, s.Pool.TickSpacing)
	return math.FindClosestTicks(s.Tickmap, current, s.Pool.TickSpacing, limit, maxRange, direction)
}

// TicksAround returns the tick records of ClosestTicks that are present in the snapshot.
func (m *Invariant) TicksAround(s *Snapshot, limit, maxRange int, direction shared.Direction) ([]shared.Tick, error) {
	indexes, err := m.ClosestTicks(s, limit, maxRange, direction)
	if err != nil {
		return nil, err
	}
	ticks := make([]shared.Tick, 0, len(indexes))
	for _, index := range indexes {
		if tick, ok := s.Ticks[index]; ok {
			ticks = append(ticks, tick)
		}
	}
	return ticks, nil
}
