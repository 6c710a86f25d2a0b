package scoring

import (
	"log/slog"

	"github.com/mcoot/cornhole/internal/model"
)

// Throw applies a single scoring event to a player and returns the new state.
// The bool is false when the throw was refused; the returned state is then
// identical to the input. "in" and "on" are refused when no bags remain, and
// a subtraction is refused when this round has no matching bag to take back,
// so a player never accounts for more than four bags in a round. Recorded as
// the refused-throws decision in DESIGN.md.
func Throw(p model.PlayerState, kind model.ThrowKind) (model.PlayerState, bool) {
	switch kind {
	case model.ThrowIn, model.ThrowOn:
		if p.BagsRemaining <= 0 {
			return p, false
		}
	case model.ThrowSubtractIn:
		if p.RoundBagsIn <= 0 {
			return p, false
		}
	case model.ThrowSubtractOn:
		if p.RoundBagsOn <= 0 {
			return p, false
		}
	default:
		return p, false
	}

	next := p.Clone()

	switch kind {
	case model.ThrowIn:
		next.BagsRemaining--
		next.RoundPoints += model.PointsIn
		next.RoundBagsIn++
		next.TotalBagsIn++
	case model.ThrowOn:
		next.BagsRemaining--
		next.RoundPoints += model.PointsOn
		next.RoundBagsOn++
		next.TotalBagsOn++
	case model.ThrowSubtractIn:
		next.BagsRemaining = min(model.BagsPerRound, next.BagsRemaining+1)
		next.RoundPoints = max(0, next.RoundPoints-model.PointsIn)
		next.RoundBagsIn = max(0, next.RoundBagsIn-1)
		next.TotalBagsIn = max(0, next.TotalBagsIn-1)
	case model.ThrowSubtractOn:
		next.BagsRemaining = min(model.BagsPerRound, next.BagsRemaining+1)
		next.RoundPoints = max(0, next.RoundPoints-model.PointsOn)
		next.RoundBagsOn = max(0, next.RoundBagsOn-1)
		next.TotalBagsOn = max(0, next.TotalBagsOn-1)
	}

	return next, true
}

// Service owns the per-player throw rules
type Service struct {
	logger *slog.Logger
}

// New creates a new scoring Service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Throw applies kind to p, logging refused throws
func (s *Service) Throw(p model.PlayerState, kind model.ThrowKind) (model.PlayerState, bool) {
	next, ok := Throw(p, kind)
	if !ok {
		s.logger.Debug("throw refused",
			slog.String("player", p.Name),
			slog.String("kind", string(kind)),
			slog.Int("bags_remaining", p.BagsRemaining),
		)
	}
	return next, ok
}

// PlayerStats is a summary of one player's game so far
type PlayerStats struct {
	Name            string  `json:"name"`
	TotalPoints     int     `json:"totalPoints"`
	RoundsPlayed    int     `json:"roundsPlayed"`
	RoundScores     []int   `json:"roundScores"`
	PointsPerRound  float64 `json:"ppr"`
	BagsIn          int     `json:"bagsIn"`
	BagsOn          int     `json:"bagsOn"`
	TotalBagsThrown int     `json:"totalBagsThrown"`
	InPercentage    float64 `json:"inPercentage"`
}

// Stats summarises p after the given number of completed rounds
func (s *Service) Stats(p model.PlayerState, rounds int) PlayerStats {
	stats := PlayerStats{
		Name:            p.Name,
		TotalPoints:     p.TotalPoints,
		RoundsPlayed:    rounds,
		RoundScores:     p.Clone().RoundScores,
		BagsIn:          p.TotalBagsIn,
		BagsOn:          p.TotalBagsOn,
		TotalBagsThrown: p.TotalBagsIn + p.TotalBagsOn,
	}
	if rounds > 0 {
		stats.PointsPerRound = float64(p.TotalPoints) / float64(rounds)
	}
	if stats.TotalBagsThrown > 0 {
		stats.InPercentage = float64(p.TotalBagsIn) / float64(stats.TotalBagsThrown) * 100
	}
	return stats
}
