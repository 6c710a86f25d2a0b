package stats

import (
	"context"
	"log/slog"
	"math"

	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/localstore"
)

// Summary is a player's record across every archived game they played
type Summary struct {
	Name           string  `json:"name"`
	GamesPlayed    int     `json:"gamesPlayed"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Ties           int     `json:"ties"`
	RoundsPlayed   int     `json:"roundsPlayed"`
	TotalPoints    int     `json:"totalPoints"`
	BagsIn         int     `json:"bagsIn"`
	BagsOn         int     `json:"bagsOn"`
	PointsPerRound float64 `json:"ppr"`
	BagsInPerRound float64 `json:"dpr"`
	InPercentage   float64 `json:"inPercentage"`
}

// ForUser summarises the games in archive that user took part in. Points per
// round counts the net points each round actually awarded under
// cancellation scoring. Returns model.ErrNoGamesForUser if there are none.
func ForUser(archive []model.GameRecord, user string) (*Summary, error) {
	s := &Summary{Name: user}

	for _, game := range archive {
		slot, ok := game.SlotOf(user)
		if !ok {
			continue
		}
		other := model.Slot2
		if slot == model.Slot2 {
			other = model.Slot1
		}

		s.GamesPlayed++
		switch {
		case game.IsTie():
			s.Ties++
		case game.Winner == user:
			s.Wins++
		default:
			s.Losses++
		}

		s.RoundsPlayed += game.TotalRounds
		for _, r := range game.Rounds {
			s.TotalPoints += max(0, r.RoundScore(slot)-r.RoundScore(other))
			s.BagsIn += r.BagsIn(slot)
			s.BagsOn += r.BagsOn(slot)
		}
	}

	if s.GamesPlayed == 0 {
		return nil, model.ErrNoGamesForUser
	}

	if s.RoundsPlayed > 0 {
		s.PointsPerRound = round2(float64(s.TotalPoints) / float64(s.RoundsPlayed))
		s.BagsInPerRound = round2(float64(s.BagsIn) / float64(s.RoundsPlayed))
	}
	if thrown := s.BagsIn + s.BagsOn; thrown > 0 {
		s.InPercentage = round2(float64(s.BagsIn) / float64(thrown) * 100)
	}
	return s, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Service computes statistics from the local archive
type Service struct {
	store  *localstore.Manager
	logger *slog.Logger
}

// New creates a new stats Service
func New(store *localstore.Manager, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// User summarises the archived games of the named player
func (s *Service) User(ctx context.Context, name string) (*Summary, error) {
	archive, err := s.store.Archive(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := ForUser(archive, name)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("computed stats",
		slog.String("name", name),
		slog.Int("games", summary.GamesPlayed),
	)
	return summary, nil
}
