package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/remote"
	"github.com/mcoot/cornhole/internal/services/localstore"
)

// Service handles login against the record store and the cached session
type Service struct {
	remote    *remote.Client
	store     *localstore.Manager
	validator Validator
	logger    *slog.Logger

	exchange sync.Mutex
}

// New creates a new auth Service
func New(remote *remote.Client, store *localstore.Manager, validator Validator, logger *slog.Logger) *Service {
	return &Service{
		remote:    remote,
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Login exchanges a name and passcode for a profile and token, caching both
// only when the record store accepts them. A second login while one is in
// flight is rejected with model.ErrExchangeInFlight.
func (s *Service) Login(ctx context.Context, name, passcode string) (*model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrPlayerMissing
	}
	if passcode == "" {
		return nil, model.ErrEmptyPasscode
	}

	if !s.exchange.TryLock() {
		return nil, model.ErrExchangeInFlight
	}
	defer s.exchange.Unlock()

	result, err := s.remote.Login(ctx, name, passcode)
	if err != nil {
		s.logger.Warn("login failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	cred := result.Credential()
	if err := s.store.SaveCredential(ctx, cred); err != nil {
		return nil, err
	}

	s.logger.Info("logged in",
		slog.String("player_id", string(cred.Profile.ID)),
		slog.String("name", cred.Profile.Name),
	)
	return &cred.Profile, nil
}

// Logout drops the cached profile and token
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.PurgeCredential(ctx); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// Current returns the cached profile if its token is still valid. An invalid
// token is purged and model.ErrInvalidSession returned; with nothing cached
// the error is model.ErrNoSession.
func (s *Service) Current(ctx context.Context) (*model.Profile, error) {
	cred, err := s.store.Credential(ctx)
	if err != nil {
		return nil, err
	}

	if !s.validator.Valid(cred.Token) {
		s.logger.Info("purging expired session",
			slog.String("player_id", string(cred.Profile.ID)),
		)
		if err := s.store.PurgeCredential(ctx); err != nil {
			return nil, err
		}
		return nil, model.ErrInvalidSession
	}

	return &cred.Profile, nil
}

// Identify returns the validated profile, or nil when there is no usable
// session. Only storage failures are returned as errors.
func (s *Service) Identify(ctx context.Context) (*model.Profile, error) {
	profile, err := s.Current(ctx)
	if errors.Is(err, model.ErrNoSession) || errors.Is(err, model.ErrInvalidSession) {
		return nil, nil
	}
	return profile, err
}

// UpdateBoard changes the logged-in player's board on the record store and
// then in the cached profile
func (s *Service) UpdateBoard(ctx context.Context, board string) (*model.Profile, error) {
	profile, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.remote.UpdateBoard(ctx, profile.ID, board); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateProfileBoard(ctx, board)
	if err != nil {
		return nil, err
	}

	s.logger.Info("board updated",
		slog.String("player_id", string(updated.ID)),
		slog.String("board", board),
	)
	return updated, nil
}
