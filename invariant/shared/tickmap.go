package shared

import (
	"fmt"
)

// Tickmap is the bitmap of initialized ticks of a pool.
// Bit (tick/spacing)+TickLimit is set when a tick record exists at that index.
type Tickmap struct {
	Bitmap []byte
}

func NewTickmap() *Tickmap {
	return &Tickmap{Bitmap: make([]byte, TickmapSize)}
}

// TickmapFromBytes wraps an account bitmap, padding or rejecting it to the protocol size.
func TickmapFromBytes(raw []byte) (*Tickmap, error) {
	if len(raw) > TickmapSize {
		return nil, fmt.Errorf("tickmap has %d bytes, expected at most %d: %w", len(raw), TickmapSize, ErrOutOfRange)
	}
	bitmap := make([]byte, TickmapSize)
	copy(bitmap, raw)
	return &Tickmap{Bitmap: bitmap}, nil
}

// BitIndex maps a spacing-aligned tick to its position in the bitmap.
func BitIndex(tick int32, spacing uint16) (int, error) {
	if spacing == 0 {
		return 0, fmt.Errorf("tick spacing is zero: %w", ErrInvalidArgument)
	}
	if tick%int32(spacing) != 0 {
		return 0, fmt.Errorf("tick %d not divisible by spacing %d: %w", tick, spacing, ErrInvalidArgument)
	}
	index := int(tick/int32(spacing)) + TickLimit
	if index < 0 || index >= TickmapSize*8 {
		return 0, fmt.Errorf("tick %d outside tickmap: %w", tick, ErrOutOfRange)
	}
	return index, nil
}

// Bit reports whether the bit at index is set; indexes outside the bitmap read as unset.
func (t *Tickmap) Bit(index int) bool {
	if t == nil || index < 0 || index/8 >= len(t.Bitmap) {
		return false
	}
	return (t.Bitmap[index/8]>>(index%8))&1 == 1
}

// Flip sets the initialized flag of a tick, failing when it already holds value.
func (t *Tickmap) Flip(tick int32, spacing uint16, value bool) error {
	index, err := BitIndex(tick, spacing)
	if err != nil {
		return err
	}
	if t.Bit(index) == value {
		return fmt.Errorf("tick %d initialized state already %t: %w", tick, value, ErrInvalidArgument)
	}
	t.Bitmap[index/8] ^= 1 << (index % 8)
	return nil
}
