package invariant

import (
	"fmt"
	"math/big"
	"os"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"

	"github.com/krazyTry/invariant-go/invariant/math"
	"github.com/krazyTry/invariant-go/invariant/shared"
	"github.com/krazyTry/invariant-go/u128"
)

/*
LoadSnapshot decodes a pool snapshot exported as JSON:

	{
		"address": "<pool>", "tokenX": "<mint>", "tokenY": "<mint>",
		"decimalsX": 6, "decimalsY": 9,
		"pool": {
			"currentTickIndex": 0, "tickSpacing": 10,
			"liquidity": "...", "fee": "...", "sqrtPrice": "...",
			"feeGrowthGlobalX": "...", "feeGrowthGlobalY": "..."
		},
		"ticks": [{
			"index": -100, "sign": true,
			"liquidityChange": "...", "liquidityGross": "...", "sqrtPrice": "...",
			"feeGrowthOutsideX": "...", "feeGrowthOutsideY": "..."
		}],
		"tickmap": "<hex bitmap>"
	}

Big values are decimal strings. Tick sqrt prices are derived from the index when absent and
the tickmap is rebuilt from the ticks when no bitmap is given.
*/
func LoadSnapshot(raw []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("snapshot is not valid json: %w", shared.ErrInvalidArgument)
	}
	doc := gjson.ParseBytes(raw)

	s := &Snapshot{
		DecimalsX: int32(doc.Get("decimalsX").Int()),
		DecimalsY: int32(doc.Get("decimalsY").Int()),
		Ticks:     map[int32]shared.Tick{},
	}

	var err error
	for _, key := range []struct {
		field string
		dst   *solana.PublicKey
	}{
		{"address", &s.Address},
		{"tokenX", &s.TokenX},
		{"tokenY", &s.TokenY},
	} {
		if *key.dst, err = parsePublicKey(doc.Get(key.field)); err != nil {
			return nil, fmt.Errorf("%s: %w", key.field, err)
		}
	}

	if s.Pool, err = parsePool(doc.Get("pool")); err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}

	for _, item := range doc.Get("ticks").Array() {
		tick, err := parseTick(item)
		if err != nil {
			return nil, fmt.Errorf("tick %s: %w", item.Get("index").Raw, err)
		}
		s.Ticks[tick.Index] = tick
	}

	if s.Tickmap, err = parseTickmap(doc.Get("tickmap"), s.Ticks, s.Pool.TickSpacing); err != nil {
		return nil, fmt.Errorf("tickmap: %w", err)
	}
	return s, nil
}

func LoadSnapshotFile(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadSnapshot(raw)
}

func parsePublicKey(r gjson.Result) (solana.PublicKey, error) {
	if !r.Exists() || r.String() == "" {
		return solana.PublicKey{}, nil
	}
	return solana.PublicKeyFromBase58(r.String())
}

func parsePool(r gjson.Result) (shared.PoolData, error) {
	if !r.Exists() {
		return shared.PoolData{}, fmt.Errorf("missing: %w", shared.ErrInvalidArgument)
	}
	spacing := r.Get("tickSpacing").Uint()
	if spacing == 0 || spacing > 1<<16-1 {
		return shared.PoolData{}, fmt.Errorf("tick spacing %d: %w", spacing, shared.ErrInvalidArgument)
	}

	pool := shared.PoolData{
		CurrentTickIndex: int32(r.Get("currentTickIndex").Int()),
		TickSpacing:      uint16(spacing),
	}
	var err error
	for _, field := range []struct {
		name     string
		dst      **big.Int
		required bool
	}{
		{"liquidity", &pool.Liquidity, false},
		{"fee", &pool.Fee, false},
		{"sqrtPrice", &pool.SqrtPrice, true},
		{"feeGrowthGlobalX", &pool.FeeGrowthGlobalX, false},
		{"feeGrowthGlobalY", &pool.FeeGrowthGlobalY, false},
	} {
		if *field.dst, err = parseU128(r.Get(field.name), field.required); err != nil {
			return shared.PoolData{}, fmt.Errorf("%s: %w", field.name, err)
		}
	}
	return pool, nil
}

func parseTick(r gjson.Result) (shared.Tick, error) {
	tick := shared.Tick{
		Index: int32(r.Get("index").Int()),
		Sign:  r.Get("sign").Bool(),
	}
	var err error
	for _, field := range []struct {
		name string
		dst  **big.Int
	}{
		{"liquidityChange", &tick.LiquidityChange},
		{"liquidityGross", &tick.LiquidityGross},
		{"sqrtPrice", &tick.SqrtPrice},
		{"feeGrowthOutsideX", &tick.FeeGrowthOutsideX},
		{"feeGrowthOutsideY", &tick.FeeGrowthOutsideY},
		{"secondsPerLiquidityOutside", &tick.SecondsPerLiquidityOutside},
	} {
		if *field.dst, err = parseU128(r.Get(field.name), false); err != nil {
			return shared.Tick{}, fmt.Errorf("%s: %w", field.name, err)
		}
	}

	if !r.Get("sqrtPrice").Exists() {
		if tick.SqrtPrice, err = math.CalculatePriceSqrt(tick.Index); err != nil {
			return shared.Tick{}, err
		}
	}
	return tick, nil
}

func parseU128(r gjson.Result, required bool) (*big.Int, error) {
	if !r.Exists() {
		if required {
			return nil, fmt.Errorf("missing: %w", shared.ErrInvalidArgument)
		}
		return big.NewInt(0), nil
	}
	return u128.ParseBig(r.String())
}

func parseTickmap(r gjson.Result, ticks map[int32]shared.Tick, spacing uint16) (*shared.Tickmap, error) {
	if r.Exists() {
		var bitmap binary.HexBytes
		if err := bitmap.UnmarshalJSON([]byte(r.Raw)); err != nil {
			return nil, err
		}
		return shared.TickmapFromBytes(bitmap)
	}

	tickmap := shared.NewTickmap()
	for index := range ticks {
		if err := tickmap.Flip(index, spacing, true); err != nil {
			return nil, err
		}
	}
	return tickmap, nil
}
