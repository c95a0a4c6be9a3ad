package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

func newTickmap(t *testing.T, spacing uint16, ticks ...int32) *shared.Tickmap {
	t.Helper()
	tickmap := shared.NewTickmap()
	for _, tick := range ticks {
		require.NoError(t, tickmap.Flip(tick, spacing, true))
	}
	return tickmap
}

func TestIsInitialized(t *testing.T) {
	tickmap := newTickmap(t, 10, -100, 0, 100)

	for _, tick := range []int32{-100, 0, 100} {
		ok, err := IsInitialized(tickmap, tick, 10)
		require.NoError(t, err)
		assert.True(t, ok, "tick %d", tick)
	}
	ok, err := IsInitialized(tickmap, 10, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = IsInitialized(tickmap, 15, 10)
	require.ErrorIs(t, err, shared.ErrInvalidArgument)

	_, err = IsInitialized(tickmap, 44_364, 1)
	require.ErrorIs(t, err, shared.ErrOutOfRange)

	require.Error(t, tickmap.Flip(100, 10, true))
	require.NoError(t, tickmap.Flip(100, 10, false))
	ok, err = IsInitialized(tickmap, 100, 10)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextPrevInitialized(t *testing.T) {
	tickmap := newTickmap(t, 10, -100, 0, 100)

	tick, ok := NextInitialized(tickmap, 0, 10)
	require.True(t, ok)
	assert.Equal(t, int32(100), tick)

	tick, ok = PrevInitialized(tickmap, 0, 10)
	require.True(t, ok)
	assert.Equal(t, int32(0), tick)

	tick, ok = PrevInitialized(tickmap, -10, 10)
	require.True(t, ok)
	assert.Equal(t, int32(-100), tick)

	_, ok = NextInitialized(tickmap, 100, 10)
	assert.False(t, ok)

	// the search stops at TickSearchRange slots
	far := newTickmap(t, 10, 2_560, 2_570)
	tick, ok = NextInitialized(far, 0, 10)
	require.True(t, ok)
	assert.Equal(t, int32(2_560), tick)

	farther := newTickmap(t, 10, 2_570)
	_, ok = NextInitialized(farther, 0, 10)
	assert.False(t, ok)
}

func TestFindClosestTicks(t *testing.T) {
	tickmap := newTickmap(t, 10, -30, -10, 20, 50)

	cases := []struct {
		name      string
		limit     int
		maxRange  int
		direction shared.Direction
		want      []int32
	}{
		{"all", 10, 0, shared.DirectionBoth, []int32{-30, -10, 20, 50}},
		{"limit two", 2, 0, shared.DirectionBoth, []int32{-10, 20}},
		{"upper hit dropped", 1, 0, shared.DirectionBoth, []int32{-10}},
		{"up", 10, 0, shared.DirectionUp, []int32{20, 50}},
		{"down", 10, 0, shared.DirectionDown, []int32{-30, -10}},
		{"range", 10, 3, shared.DirectionBoth, []int32{-10, 20}},
		{"range up", 10, 3, shared.DirectionUp, []int32{20}},
		{"no limit", 0, 0, shared.DirectionBoth, []int32{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := FindClosestTicks(tickmap, 0, 10, c.limit, c.maxRange, c.direction)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)

			again, err := FindClosestTicks(tickmap, 0, 10, c.limit, c.maxRange, c.direction)
			require.NoError(t, err)
			assert.Equal(t, got, again)

			for i := 1; i < len(got); i++ {
				assert.Less(t, got[i-1], got[i])
			}
			if c.maxRange > 0 {
				for _, tick := range got {
					assert.LessOrEqual(t, tick, int32(c.maxRange*10))
					assert.GreaterOrEqual(t, tick, int32(-c.maxRange*10))
				}
			}
		})
	}

	_, err := FindClosestTicks(tickmap, 5, 10, 1, 0, shared.DirectionBoth)
	require.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestGetCloserLimit(t *testing.T) {
	empty := shared.NewTickmap()

	result, err := GetCloserLimit(MustCalculatePriceSqrt(shared.MaxTick), false, 0, 10, empty)
	require.NoError(t, err)
	require.NotNil(t, result.LimitingTick)
	assert.Equal(t, shared.LimitingTick{Index: 2_560, Initialized: false}, *result.LimitingTick)
	assert.Equal(t, 0, result.SwapLimit.Cmp(MustCalculatePriceSqrt(2_560)))

	limit := MustCalculatePriceSqrt(1_000)
	result, err = GetCloserLimit(limit, false, 0, 10, empty)
	require.NoError(t, err)
	assert.Nil(t, result.LimitingTick)
	assert.Equal(t, 0, result.SwapLimit.Cmp(limit))

	tickmap := newTickmap(t, 10, -100)
	result, err = GetCloserLimit(MustCalculatePriceSqrt(shared.MinTick), true, 0, 10, tickmap)
	require.NoError(t, err)
	require.NotNil(t, result.LimitingTick)
	assert.Equal(t, shared.LimitingTick{Index: -100, Initialized: true}, *result.LimitingTick)
	assert.Equal(t, 0, result.SwapLimit.Cmp(MustCalculatePriceSqrt(-100)))
}
