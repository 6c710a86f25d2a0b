package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"time"

	"github.com/mcoot/cornhole/internal/dependencies/clock"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/storage"
)

// Config holds configuration for the local store manager
type Config struct {
	// MaxArchiveSize bounds the number of archived games kept locally
	MaxArchiveSize int
}

// DefaultConfig returns default local store configuration
func DefaultConfig() Config {
	return Config{
		MaxArchiveSize: 50,
	}
}

// Manager buffers in-flight rounds, archives finished games and caches the
// roster and session on a string-keyed storage surface. Reads and writes are
// last-write-wins; a single active session is assumed.
type Manager struct {
	storage storage.Store
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new local store Manager
func New(store storage.Store, clock clock.Clock, cfg Config, logger *slog.Logger) *Manager {
	if cfg.MaxArchiveSize <= 0 {
		cfg.MaxArchiveSize = DefaultConfig().MaxArchiveSize
	}
	return &Manager{
		storage: store,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// MaxArchiveSize returns the configured archive bound
func (m *Manager) MaxArchiveSize() int {
	return m.cfg.MaxArchiveSize
}

// Round buffer

// BufferRound appends a finished round to the in-flight buffer
func (m *Manager) BufferRound(ctx context.Context, record model.RoundRecord) error {
	rounds, err := m.RoundBuffer(ctx)
	if err != nil {
		return err
	}
	rounds = append(rounds, record)
	return m.writeJSON(ctx, keyRoundBuffer, rounds)
}

// RoundBuffer returns the buffered rounds of the game in progress
func (m *Manager) RoundBuffer(ctx context.Context) ([]model.RoundRecord, error) {
	return readJSON(ctx, m, keyRoundBuffer, []model.RoundRecord{})
}

// DiscardRounds clears the in-flight round buffer
func (m *Manager) DiscardRounds(ctx context.Context) error {
	return m.storage.Remove(ctx, keyRoundBuffer)
}

// Archive

// CommitGame appends a finished game to the archive and applies the decay
// policy: once the archive exceeds its bound the oldest games by date are
// evicted until it fits. A game with the same date replaces the stored one.
func (m *Manager) CommitGame(ctx context.Context, game model.GameRecord) error {
	games, err := m.Archive(ctx)
	if err != nil {
		return err
	}

	kept := games[:0]
	for _, g := range games {
		if !g.Date.Equal(game.Date) {
			kept = append(kept, g)
		}
	}
	games = append(kept, game)

	if len(games) > m.cfg.MaxArchiveSize {
		evicted := len(games) - m.cfg.MaxArchiveSize
		games = decay(games, m.cfg.MaxArchiveSize)
		m.logger.Info("archive decayed",
			slog.Int("evicted", evicted),
			slog.Int("max_size", m.cfg.MaxArchiveSize),
		)
	}

	return m.writeJSON(ctx, keyArchive, games)
}

// decay keeps the newest max games, returned in chronological order
func decay(games []model.GameRecord, max int) []model.GameRecord {
	sorted := make([]model.GameRecord, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	sorted = sorted[:max]
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// Archive returns all archived games
func (m *Manager) Archive(ctx context.Context) ([]model.GameRecord, error) {
	return readJSON(ctx, m, keyArchive, []model.GameRecord{})
}

// MarkUploaded records a successful reconciliation with the remote store
func (m *Manager) MarkUploaded(ctx context.Context) (time.Time, error) {
	now := m.clock.Now().UTC()
	if err := m.storage.Set(ctx, keyLastUpload, now.Format(time.RFC3339Nano)); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// LastUpload returns when the archive was last uploaded; zero if never
func (m *Manager) LastUpload(ctx context.Context) (time.Time, error) {
	raw, err := m.storage.Get(ctx, keyLastUpload)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		m.logger.Warn("discarding corrupt cached value",
			slog.String("key", keyLastUpload),
			slog.String("error", err.Error()),
		)
		return time.Time{}, nil
	}
	return t, nil
}

// Roster cache

// CacheRoster overwrites the cached roster
func (m *Manager) CacheRoster(ctx context.Context, roster []model.RosterEntry) error {
	if roster == nil {
		roster = []model.RosterEntry{}
	}
	return m.writeJSON(ctx, keyRoster, roster)
}

// Roster reads the cached roster without any network access
func (m *Manager) Roster(ctx context.Context) ([]model.RosterEntry, error) {
	return readJSON(ctx, m, keyRoster, []model.RosterEntry{})
}

// User metadata

// UserMetadata returns the metadata for a user; empty if none
func (m *Manager) UserMetadata(ctx context.Context, userID model.PlayerID) (model.UserMetadata, error) {
	all, err := m.allMetadata(ctx)
	if err != nil {
		return nil, err
	}
	if meta, ok := all[userID]; ok && meta != nil {
		return meta, nil
	}
	return model.UserMetadata{}, nil
}

// SetUserMetadata merges patch into the user's metadata. Existing fields are
// kept, patch fields overwrite, and the redirect counter always increments.
func (m *Manager) SetUserMetadata(ctx context.Context, userID model.PlayerID, patch model.UserMetadata) (model.UserMetadata, error) {
	all, err := m.allMetadata(ctx)
	if err != nil {
		return nil, err
	}

	existing := all[userID]
	merged := model.UserMetadata{}
	maps.Copy(merged, existing)
	maps.Copy(merged, patch)
	merged[model.RedirectCountKey] = existing.RedirectCount() + 1

	all[userID] = merged
	if err := m.writeJSON(ctx, keyUserMetadata, all); err != nil {
		return nil, err
	}
	return merged, nil
}

func (m *Manager) allMetadata(ctx context.Context) (map[model.PlayerID]model.UserMetadata, error) {
	all, err := readJSON(ctx, m, keyUserMetadata, map[model.PlayerID]model.UserMetadata{})
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = map[model.PlayerID]model.UserMetadata{}
	}
	return all, nil
}

// Session credential

// SaveCredential caches the token and profile of a successful login. If the
// profile cannot be written the new token is removed again, so a token is
// never left paired with another player's profile.
func (m *Manager) SaveCredential(ctx context.Context, cred model.Credential) error {
	if err := m.storage.Set(ctx, keyToken, cred.Token); err != nil {
		return err
	}
	if err := m.writeJSON(ctx, keyProfile, cred.Profile); err != nil {
		if removeErr := m.storage.Remove(ctx, keyToken); removeErr != nil {
			m.logger.Warn("failed to remove token after profile write failed",
				slog.String("error", removeErr.Error()),
			)
		}
		return err
	}
	return nil
}

// Credential returns the cached credential, or model.ErrNoSession if either
// half of it is missing or unreadable
func (m *Manager) Credential(ctx context.Context) (*model.Credential, error) {
	token, err := m.storage.Get(ctx, keyToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, model.ErrNoSession
		}
		return nil, err
	}

	profile, err := readJSON[*model.Profile](ctx, m, keyProfile, nil)
	if err != nil {
		return nil, err
	}
	if profile == nil || token == "" {
		return nil, model.ErrNoSession
	}

	return &model.Credential{Token: token, Profile: *profile}, nil
}

// PurgeCredential removes the cached profile and token together
func (m *Manager) PurgeCredential(ctx context.Context) error {
	if err := m.storage.Remove(ctx, keyProfile); err != nil {
		return err
	}
	return m.storage.Remove(ctx, keyToken)
}

// UpdateProfileBoard changes the board on the cached profile
func (m *Manager) UpdateProfileBoard(ctx context.Context, board string) (*model.Profile, error) {
	profile, err := readJSON[*model.Profile](ctx, m, keyProfile, nil)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, model.ErrNoSession
	}
	profile.Board = board
	if err := m.writeJSON(ctx, keyProfile, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// readJSON decodes the value under key. A missing key yields fallback, and so
// does a corrupt value, which is logged rather than returned as an error.
func readJSON[T any](ctx context.Context, m *Manager, key string, fallback T) (T, error) {
	raw, err := m.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("read %s: %w", key, err)
	}
	if raw == "" {
		return fallback, nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		m.logger.Warn("discarding corrupt cached value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return fallback, nil
	}
	return v, nil
}

func (m *Manager) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := m.storage.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
