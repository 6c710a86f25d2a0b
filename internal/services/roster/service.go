package roster

import (
	"context"
	"log/slog"

	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/remote"
	"github.com/mcoot/cornhole/internal/services/localstore"
)

// Result is a roster together with whether it came from the local cache
// after the record store could not be reached
type Result struct {
	Players []model.RosterEntry `json:"players"`
	Stale   bool                `json:"stale"`
}

// Service keeps the local copy of the player roster
type Service struct {
	remote *remote.Client
	store  *localstore.Manager
	logger *slog.Logger
}

// New creates a new roster Service
func New(remote *remote.Client, store *localstore.Manager, logger *slog.Logger) *Service {
	return &Service{
		remote: remote,
		store:  store,
		logger: logger,
	}
}

// Refresh fetches the roster from the record store and caches it. When the
// fetch fails the cached roster is returned marked stale.
func (s *Service) Refresh(ctx context.Context) (*Result, error) {
	players, err := s.remote.Roster(ctx)
	if err != nil {
		s.logger.Warn("roster fetch failed, using cache",
			slog.String("error", err.Error()),
		)
		cached, cacheErr := s.store.Roster(ctx)
		if cacheErr != nil {
			return nil, cacheErr
		}
		return &Result{Players: cached, Stale: true}, nil
	}

	if err := s.store.CacheRoster(ctx, players); err != nil {
		return nil, err
	}

	s.logger.Debug("roster refreshed", slog.Int("players", len(players)))
	return &Result{Players: players}, nil
}

// Cached returns the roster from the local cache only
func (s *Service) Cached(ctx context.Context) ([]model.RosterEntry, error) {
	return s.store.Roster(ctx)
}

// Lookup finds a player in the cached roster by name
func (s *Service) Lookup(ctx context.Context, name string) (model.RosterEntry, bool, error) {
	players, err := s.store.Roster(ctx)
	if err != nil {
		return model.RosterEntry{}, false, err
	}
	for _, p := range players {
		if p.Name == name {
			return p, true, nil
		}
	}
	return model.RosterEntry{}, false, nil
}
