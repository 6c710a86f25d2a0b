package round

import (
	"log/slog"

	"github.com/mcoot/cornhole/internal/dependencies/clock"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/scoring"
)

// Phase is the lifecycle position of a single round
type Phase string

const (
	PhaseActive    Phase = "active"    // Players throwing
	PhaseEnding    Phase = "ending"    // Raw values captured, scoring in progress
	PhaseFinalized Phase = "finalized" // Totals updated, record produced
)

// Round is the state of one round of a two-player game
type Round struct {
	Number  int               `json:"number"`
	Phase   Phase             `json:"phase"`
	Player1 model.PlayerState `json:"player1"`
	Player2 model.PlayerState `json:"player2"`
}

// New returns the first round of a game between p1 and p2
func New(p1, p2 model.PlayerState) Round {
	return Round{
		Number:  1,
		Phase:   PhaseActive,
		Player1: p1.Clone(),
		Player2: p2.Clone(),
	}
}

// Player returns the state in the given slot
func (r Round) Player(slot model.Slot) model.PlayerState {
	if slot == model.Slot2 {
		return r.Player2
	}
	return r.Player1
}

// Result is everything produced by ending a round
type Result struct {
	Finalized Round
	Record    model.RoundRecord
	Next      Round
}

// Coordinator drives two players through rounds and applies cancellation scoring
type Coordinator struct {
	scoring *scoring.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// NewCoordinator creates a new round Coordinator
func NewCoordinator(scoringService *scoring.Service, clock clock.Clock, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		scoring: scoringService,
		clock:   clock,
		logger:  logger,
	}
}

// Throw records a throw for one player. The bool reports whether the throw
// was accepted; a refused throw returns r unchanged and a nil error.
func (c *Coordinator) Throw(r Round, slot model.Slot, kind model.ThrowKind) (Round, bool, error) {
	if r.Phase != PhaseActive {
		return r, false, model.ErrRoundNotActive
	}
	if !slot.Valid() {
		return r, false, model.ErrInvalidSlot
	}

	next := r
	var ok bool
	if slot == model.Slot1 {
		next.Player1, ok = c.scoring.Throw(r.Player1, kind)
	} else {
		next.Player2, ok = c.scoring.Throw(r.Player2, kind)
	}
	if !ok {
		return r, false, nil
	}
	return next, true, nil
}

// End finalizes the round. Raw round values are captured before cancellation
// scoring touches the totals, so the record reflects play during the round.
func (c *Coordinator) End(r Round) (*Result, error) {
	switch r.Phase {
	case PhaseFinalized:
		return nil, model.ErrRoundFinalized
	case PhaseActive:
	default:
		return nil, model.ErrRoundNotActive
	}

	ending := Round{
		Number:  r.Number,
		Phase:   PhaseEnding,
		Player1: r.Player1.Clone(),
		Player2: r.Player2.Clone(),
	}
	record := c.snapshot(ending)

	finalized := ending
	finalized.Phase = PhaseFinalized
	p1, p2 := &finalized.Player1, &finalized.Player2

	net1, net2 := Cancel(p1.RoundPoints, p2.RoundPoints)
	p1.TotalPoints += net1
	p1.RoundScores = append(p1.RoundScores, net1)
	p2.TotalPoints += net2
	p2.RoundScores = append(p2.RoundScores, net2)

	next := Round{
		Number:  r.Number + 1,
		Phase:   PhaseActive,
		Player1: resetForRound(finalized.Player1),
		Player2: resetForRound(finalized.Player2),
	}

	c.logger.Info("round finalized",
		slog.Int("round", record.RoundNumber),
		slog.Int("player1_round_points", record.Player1RoundScore),
		slog.Int("player2_round_points", record.Player2RoundScore),
		slog.Int("player1_net", net1),
		slog.Int("player2_net", net2),
	)

	return &Result{
		Finalized: finalized,
		Record:    record,
		Next:      next,
	}, nil
}

// snapshot captures the raw, pre-cancellation values of an ending round
func (c *Coordinator) snapshot(r Round) model.RoundRecord {
	return model.RoundRecord{
		RoundNumber:        r.Number,
		Player1RoundScore:  r.Player1.RoundPoints,
		Player2RoundScore:  r.Player2.RoundPoints,
		Player1TotalBefore: r.Player1.TotalPoints,
		Player2TotalBefore: r.Player2.TotalPoints,
		Player1RoundBagsIn: r.Player1.RoundBagsIn,
		Player1RoundBagsOn: r.Player1.RoundBagsOn,
		Player2RoundBagsIn: r.Player2.RoundBagsIn,
		Player2RoundBagsOn: r.Player2.RoundBagsOn,
		Timestamp:          c.clock.Now(),
	}
}

// Cancel applies cancellation scoring: only the difference is awarded, to the
// strictly higher scorer. A tie awards nothing to either player.
func Cancel(points1, points2 int) (net1, net2 int) {
	switch {
	case points1 > points2:
		return points1 - points2, 0
	case points2 > points1:
		return 0, points2 - points1
	default:
		return 0, 0
	}
}

func resetForRound(p model.PlayerState) model.PlayerState {
	next := p.Clone()
	next.BagsRemaining = model.BagsPerRound
	next.RoundPoints = 0
	next.RoundBagsIn = 0
	next.RoundBagsOn = 0
	return next
}
