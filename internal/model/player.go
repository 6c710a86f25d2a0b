package model

import "fmt"

// BagsPerRound is the number of bags each player throws in a round
const BagsPerRound = 4

// Points awarded per bag
const (
	PointsIn = 3
	PointsOn = 1
)

// PlayerID identifies a player in the remote roster
type PlayerID string

// ThrowKind is a single scoring event for one player
type ThrowKind string

const (
	ThrowIn         ThrowKind = "in"         // Bag through the hole
	ThrowOn         ThrowKind = "on"         // Bag on the board
	ThrowSubtractIn ThrowKind = "subtractIn" // Undo a mis-tapped "in"
	ThrowSubtractOn ThrowKind = "subtractOn" // Undo a mis-tapped "on"
)

// ParseThrowKind validates external input
func ParseThrowKind(s string) (ThrowKind, error) {
	switch k := ThrowKind(s); k {
	case ThrowIn, ThrowOn, ThrowSubtractIn, ThrowSubtractOn:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidThrowKind, s)
}

// PlayerState is one player's bag inventory and point accounting.
// It is a value: transitions return a new PlayerState rather than mutating.
type PlayerState struct {
	ID            PlayerID `json:"id"`
	Name          string   `json:"name"`
	BagsRemaining int      `json:"bags"`
	RoundPoints   int      `json:"roundPoints"`
	TotalPoints   int      `json:"totalPoints"`
	RoundBagsIn   int      `json:"roundBagsIn"`
	RoundBagsOn   int      `json:"roundBagsOn"`
	TotalBagsIn   int      `json:"totalBagsIn"`
	TotalBagsOn   int      `json:"totalBagsOn"`
	RoundScores   []int    `json:"roundScores"`
}

// NewPlayerState returns a player ready for the first round
func NewPlayerState(id PlayerID, name string) PlayerState {
	return PlayerState{
		ID:            id,
		Name:          name,
		BagsRemaining: BagsPerRound,
		RoundScores:   []int{},
	}
}

// Clone returns a copy that shares no memory with p
func (p PlayerState) Clone() PlayerState {
	c := p
	c.RoundScores = make([]int, len(p.RoundScores))
	copy(c.RoundScores, p.RoundScores)
	return c
}

// BagsAccounted reports whether every bag of the round is either in hand or scored
func (p PlayerState) BagsAccounted() bool {
	return p.BagsRemaining+p.RoundBagsIn+p.RoundBagsOn == BagsPerRound
}
