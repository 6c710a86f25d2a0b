package upload

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/remote"
	"github.com/mcoot/cornhole/internal/services/localstore"
)

// Result describes a completed upload
type Result struct {
	User       string    `json:"user"`
	Submitted  int       `json:"submitted"`
	Accepted   int       `json:"accepted"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Gateway sends archived games to the record store
type Gateway struct {
	remote *remote.Client
	store  *localstore.Manager
	logger *slog.Logger

	inFlight sync.Mutex
}

// New creates a new upload Gateway
func New(remote *remote.Client, store *localstore.Manager, logger *slog.Logger) *Gateway {
	return &Gateway{
		remote: remote,
		store:  store,
		logger: logger,
	}
}

// Pending returns the archived games the user took part in
func (g *Gateway) Pending(ctx context.Context, user string) ([]model.GameRecord, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, model.ErrNoUser
	}

	archive, err := g.store.Archive(ctx)
	if err != nil {
		return nil, err
	}
	return owned(archive, user), nil
}

// Upload submits the user's games. The last-upload time is recorded only
// after the record store accepts them; on failure nothing local changes.
// Only one upload may run at a time; others fail with model.ErrUploadInFlight.
func (g *Gateway) Upload(ctx context.Context, user string) (*Result, error) {
	games, err := g.Pending(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, model.ErrNothingToUpload
	}

	if !g.inFlight.TryLock() {
		return nil, model.ErrUploadInFlight
	}
	defer g.inFlight.Unlock()

	accepted, err := g.remote.UploadGames(ctx, games)
	if err != nil {
		g.logger.Warn("upload failed",
			slog.String("user", user),
			slog.Int("games", len(games)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	uploadedAt, err := g.store.MarkUploaded(ctx)
	if err != nil {
		return nil, err
	}

	g.logger.Info("games uploaded",
		slog.String("user", user),
		slog.Int("submitted", len(games)),
		slog.Int("accepted", len(accepted)),
	)

	return &Result{
		User:       strings.TrimSpace(user),
		Submitted:  len(games),
		Accepted:   len(accepted),
		UploadedAt: uploadedAt,
	}, nil
}

func owned(archive []model.GameRecord, user string) []model.GameRecord {
	games := make([]model.GameRecord, 0, len(archive))
	for _, game := range archive {
		if game.HasPlayer(user) {
			games = append(games, game)
		}
	}
	return games
}
