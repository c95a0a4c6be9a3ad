package invariant

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/krazyTry/invariant-go/invariant/math"
	"github.com/krazyTry/invariant-go/invariant/shared"
)

// Invariant runs swap, position and fee simulations against pool snapshots.
// A single instance is safe for concurrent use.
type Invariant struct {
	logger            *zap.Logger
	maxCrosses        int
	maxVirtualCrosses int
	slippage          *big.Int
	minPrecision      *big.Int
	workers           int
}

func NewInvariant(opts ...Option) *Invariant {
	o := &Invariant{
		logger:            zap.NewNop(),
		maxCrosses:        shared.TickCrossesPerIx,
		maxVirtualCrosses: shared.TickVirtualCrossesPerIx,
		slippage:          big.NewInt(0),
		minPrecision:      math.DefaultMinPrecision,
		workers:           4,
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

type Option func(*Invariant)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Invariant) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMaxCrosses caps the initialized ticks a single swap may cross.
func WithMaxCrosses(n int) Option {
	return func(m *Invariant) {
		m.maxCrosses = n
	}
}

func WithMaxVirtualCrosses(n int) Option {
	return func(m *Invariant) {
		m.maxVirtualCrosses = n
	}
}

// WithSlippage sets the slippage applied to price limits, on shared.Denominator (10^10 is 1%).
func WithSlippage(slippage *big.Int) Option {
	return func(m *Invariant) {
		if slippage != nil {
			m.slippage = new(big.Int).Set(slippage)
		}
	}
}

// WithMinPrecision sets the search precision of the swap and create position optimizer.
func WithMinPrecision(precision *big.Int) Option {
	return func(m *Invariant) {
		if precision != nil {
			m.minPrecision = new(big.Int).Set(precision)
		}
	}
}

// WithWorkers sets the size of the worker pool used by SwapLadder.
func WithWorkers(n int) Option {
	return func(m *Invariant) {
		if n > 0 {
			m.workers = n
		}
	}
}
