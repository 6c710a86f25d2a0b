package game

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/cornhole/internal/dependencies/clock"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/localstore"
	"github.com/mcoot/cornhole/internal/services/round"
	"github.com/mcoot/cornhole/internal/services/scoring"
)

// Identity resolves the logged-in player, if any. Implementations purge an
// invalid credential and report nil rather than an error.
type Identity interface {
	Identify(ctx context.Context) (*model.Profile, error)
}

// Session is the mutable state of one game, passed to every Controller call
type Session struct {
	State     model.GameState
	Board     string
	Owner     *model.Profile
	Round     round.Round
	History   []model.RoundRecord
	Result    *model.GameRecord
	StartedAt time.Time
}

// Controller manages the game state machine and its persistence
type Controller struct {
	coordinator *round.Coordinator
	scoring     *scoring.Service
	store       *localstore.Manager
	identity    Identity
	clock       clock.Clock
	logger      *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	coordinator *round.Coordinator,
	scoringService *scoring.Service,
	store *localstore.Manager,
	identity Identity,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		coordinator: coordinator,
		scoring:     scoringService,
		store:       store,
		identity:    identity,
		clock:       clock,
		logger:      logger,
	}
}

// NewSession returns a session waiting for players to be chosen
func (c *Controller) NewSession() *Session {
	return &Session{
		State:   model.GameStateSetup,
		History: []model.RoundRecord{},
	}
}

// Start begins a game between two different players. A valid cached login
// becomes the session owner, and its board is used when board is blank.
func (c *Controller) Start(ctx context.Context, s *Session, p1, p2 model.RosterEntry, board string) error {
	if s.State != model.GameStateSetup {
		return model.ErrGameNotInSetup
	}

	p1.Name = strings.TrimSpace(p1.Name)
	p2.Name = strings.TrimSpace(p2.Name)
	if p1.Name == "" || p2.Name == "" {
		return model.ErrPlayerMissing
	}
	if p1.Name == p2.Name || (p1.ID != "" && p1.ID == p2.ID) {
		return model.ErrSamePlayer
	}

	owner, err := c.identity.Identify(ctx)
	if err != nil {
		return err
	}

	board = strings.TrimSpace(board)
	if board == "" && owner != nil {
		board = owner.Board
	}

	// Rounds left over from an abandoned game must not leak into this one
	if err := c.store.DiscardRounds(ctx); err != nil {
		return err
	}

	s.State = model.GameStateActive
	s.Board = board
	s.Owner = owner
	s.Round = round.New(
		model.NewPlayerState(p1.ID, p1.Name),
		model.NewPlayerState(p2.ID, p2.Name),
	)
	s.History = []model.RoundRecord{}
	s.Result = nil
	s.StartedAt = c.clock.Now()

	attrs := []any{
		slog.String("player1", p1.Name),
		slog.String("player2", p2.Name),
		slog.String("board", board),
	}
	if owner != nil {
		attrs = append(attrs, slog.String("owner", string(owner.ID)))
	}
	c.logger.Info("game started", attrs...)

	return nil
}

// Throw records a throw for the player in slot. The bool is false when the
// throw was refused, which leaves the session unchanged.
func (c *Controller) Throw(_ context.Context, s *Session, slot model.Slot, kind model.ThrowKind) (bool, error) {
	if s.State != model.GameStateActive {
		return false, model.ErrGameNotActive
	}

	next, ok, err := c.coordinator.Throw(s.Round, slot, kind)
	if err != nil || !ok {
		return false, err
	}
	s.Round = next
	return true, nil
}

// EndRound finalizes the current round, buffers its record and starts the next
func (c *Controller) EndRound(ctx context.Context, s *Session) (*model.RoundRecord, error) {
	if s.State != model.GameStateActive {
		return nil, model.ErrGameNotActive
	}

	result, err := c.coordinator.End(s.Round)
	if err != nil {
		return nil, err
	}

	if err := c.store.BufferRound(ctx, result.Record); err != nil {
		return nil, err
	}

	s.Round = result.Next
	s.History = append(s.History, result.Record)

	return &result.Record, nil
}

// EndGame decides the winner from the scored rounds and commits the game to
// the archive. Points thrown in an unfinished round do not count. Calling it
// again on an ended session returns the same record without committing.
func (c *Controller) EndGame(ctx context.Context, s *Session) (*model.GameRecord, error) {
	switch s.State {
	case model.GameStateEnded:
		return s.Result, nil
	case model.GameStateActive:
	default:
		return nil, model.ErrGameNotActive
	}

	record := c.buildRecord(s)

	if err := c.store.CommitGame(ctx, record); err != nil {
		c.logger.Error("failed to commit game",
			slog.String("date", record.Date.Format(time.RFC3339Nano)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if err := c.store.DiscardRounds(ctx); err != nil {
		c.logger.Warn("failed to clear round buffer",
			slog.String("error", err.Error()),
		)
	}

	s.State = model.GameStateEnded
	s.Result = &record

	c.logger.Info("game ended",
		slog.String("winner", record.Winner),
		slog.Int("player1_score", record.Player1.Score),
		slog.Int("player2_score", record.Player2.Score),
		slog.Int("rounds", record.TotalRounds),
		slog.Duration("duration", c.clock.Since(s.StartedAt)),
	)

	return &record, nil
}

func (c *Controller) buildRecord(s *Session) model.GameRecord {
	p1, p2 := s.Round.Player1, s.Round.Player2

	winner := model.TieWinner
	switch {
	case p1.TotalPoints > p2.TotalPoints:
		winner = p1.Name
	case p2.TotalPoints > p1.TotalPoints:
		winner = p2.Name
	}

	rounds := make([]model.RoundRecord, len(s.History))
	copy(rounds, s.History)

	return model.GameRecord{
		Date:        c.clock.Now().UTC(),
		TotalRounds: len(rounds),
		Board:       s.Board,
		Winner:      winner,
		Player1:     model.GamePlayer{ID: p1.ID, Name: p1.Name, Score: p1.TotalPoints},
		Player2:     model.GamePlayer{ID: p2.ID, Name: p2.Name, Score: p2.TotalPoints},
		Rounds:      rounds,

		Player1TotalBagsIn: p1.TotalBagsIn - p1.RoundBagsIn,
		Player1TotalBagsOn: p1.TotalBagsOn - p1.RoundBagsOn,
		Player2TotalBagsIn: p2.TotalBagsIn - p2.RoundBagsIn,
		Player2TotalBagsOn: p2.TotalBagsOn - p2.RoundBagsOn,
	}
}

// Reset returns the session to setup from any state. An unfinished game's
// buffered rounds are discarded; the archive and login are left alone.
func (c *Controller) Reset(ctx context.Context, s *Session) error {
	if s.State == model.GameStateActive {
		if err := c.store.DiscardRounds(ctx); err != nil {
			return err
		}
		c.logger.Info("active game abandoned", slog.Int("rounds", len(s.History)))
	}

	*s = *c.NewSession()
	return nil
}

// Snapshot is a read-only view of a session
type Snapshot struct {
	State     model.GameState       `json:"state"`
	Board     string                `json:"board,omitempty"`
	Owner     *model.Profile        `json:"owner,omitempty"`
	Round     *round.Round          `json:"round,omitempty"`
	History   []model.RoundRecord   `json:"history"`
	Result    *model.GameRecord     `json:"result,omitempty"`
	StartedAt *time.Time            `json:"startedAt,omitempty"`
	Stats     []scoring.PlayerStats `json:"stats,omitempty"`
}

// Snapshot copies the session so callers cannot mutate it
func (c *Controller) Snapshot(s *Session) Snapshot {
	snap := Snapshot{
		State:   s.State,
		Board:   s.Board,
		History: make([]model.RoundRecord, len(s.History)),
	}
	copy(snap.History, s.History)

	if s.State == model.GameStateSetup {
		return snap
	}

	if s.Owner != nil {
		owner := *s.Owner
		snap.Owner = &owner
	}

	r := s.Round
	r.Player1 = r.Player1.Clone()
	r.Player2 = r.Player2.Clone()
	snap.Round = &r

	if s.Result != nil {
		result := *s.Result
		result.Rounds = append([]model.RoundRecord(nil), s.Result.Rounds...)
		snap.Result = &result
	}

	started := s.StartedAt
	snap.StartedAt = &started

	rounds := len(s.History)
	snap.Stats = []scoring.PlayerStats{
		c.scoring.Stats(r.Player1, rounds),
		c.scoring.Stats(r.Player2, rounds),
	}

	return snap
}
