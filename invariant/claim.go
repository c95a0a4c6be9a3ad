package invariant

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/krazyTry/invariant-go/invariant/math"
	"github.com/krazyTry/invariant-go/invariant/shared"
)

// ClaimQuote is the fees a position over lowerTick..upperTick could claim at the snapshot state.
func (m *Invariant) ClaimQuote(s *Snapshot, position shared.PositionClaimData, lowerTick, upperTick int32) (shared.TokensOwed, error) {
	if s == nil {
		return shared.TokensOwed{}, fmt.Errorf("nil snapshot: %w", shared.ErrInvalidArgument)
	}
	lower, ok := s.Ticks[lowerTick]
	if !ok {
		return shared.TokensOwed{}, fmt.Errorf("lower tick %d: %w", lowerTick, shared.ErrTickNotFound)
	}
	upper, ok := s.Ticks[upperTick]
	if !ok {
		return shared.TokensOwed{}, fmt.Errorf("upper tick %d: %w", upperTick, shared.ErrTickNotFound)
	}

	owed, err := math.CalculateClaimAmount(position, lower, upper, s.Pool.CurrentTickIndex, s.Pool.FeeGrowthGlobalX, s.Pool.FeeGrowthGlobalY)
	if err != nil {
		return owed, err
	}

	m.logger.Debug("claim simulated",
		zap.Stringer("pool", s.Address),
		zap.Int32("lowerTick", lowerTick),
		zap.Int32("upperTick", upperTick),
		zap.Stringer("tokensOwedX", owed.X),
		zap.Stringer("tokensOwedY", owed.Y),
	)
	return owed, nil
}
