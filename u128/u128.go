package u128

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	binary "github.com/gagliardetto/binary"
)

var (
	ErrNegative = errors.New("value cannot be negative")
	ErrOverflow = errors.New("value overflows Uint128")
)

// Uint128 scans decimal text into a little endian binary.Uint128.
type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	}
	v, err := FromBig(i)
	if err != nil {
		return err
	}
	u.Lo, u.Hi = v.Lo, v.Hi
	return nil
}

// Parse reads a decimal 128-bit counter such as a fee growth or liquidity field.
func Parse(num string) (binary.Uint128, error) {
	u128 := binary.NewUint128LittleEndian()
	if _, err := fmt.Sscan(strings.TrimSpace(num), (*Uint128)(u128)); err != nil {
		return binary.Uint128{}, fmt.Errorf("parse u128 %q: %w", num, err)
	}
	return *u128, nil
}

func MustParse(num string) binary.Uint128 {
	v, err := Parse(num)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseBig parses num and returns it as a big integer.
func ParseBig(num string) (*big.Int, error) {
	v, err := Parse(num)
	if err != nil {
		return nil, err
	}
	return ToBig(v), nil
}

func FromBig(i *big.Int) (binary.Uint128, error) {
	if i.Sign() < 0 {
		return binary.Uint128{}, ErrNegative
	}
	if i.BitLen() > 128 {
		return binary.Uint128{}, ErrOverflow
	}
	out := binary.NewUint128LittleEndian()
	out.Lo = i.Uint64()
	out.Hi = new(big.Int).Rsh(i, 64).Uint64()
	return *out, nil
}

func ToBig(u binary.Uint128) *big.Int {
	out := new(big.Int).SetUint64(u.Hi)
	out.Lsh(out, 64)
	return out.Or(out, new(big.Int).SetUint64(u.Lo))
}
