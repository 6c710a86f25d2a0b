package model

import "time"

// Slot selects one of the two players in a game
type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

// Valid reports whether s names a player slot
func (s Slot) Valid() bool {
	return s == Slot1 || s == Slot2
}

// RoundRecord captures what happened during a round, before cancellation
// scoring is applied. Never mutated after creation.
type RoundRecord struct {
	RoundNumber        int       `json:"roundNumber"`
	Player1RoundScore  int       `json:"player1RoundScore"`
	Player2RoundScore  int       `json:"player2RoundScore"`
	Player1TotalBefore int       `json:"player1TotalBefore"`
	Player2TotalBefore int       `json:"player2TotalBefore"`
	Player1RoundBagsIn int       `json:"player1RoundBagsIn"`
	Player1RoundBagsOn int       `json:"player1RoundBagsOn"`
	Player2RoundBagsIn int       `json:"player2RoundBagsIn"`
	Player2RoundBagsOn int       `json:"player2RoundBagsOn"`
	Timestamp          time.Time `json:"timestamp"`
}

// RoundScore returns the raw round points for the given slot
func (r RoundRecord) RoundScore(slot Slot) int {
	if slot == Slot2 {
		return r.Player2RoundScore
	}
	return r.Player1RoundScore
}

// BagsIn returns the bags-in count for the given slot
func (r RoundRecord) BagsIn(slot Slot) int {
	if slot == Slot2 {
		return r.Player2RoundBagsIn
	}
	return r.Player1RoundBagsIn
}

// BagsOn returns the bags-on count for the given slot
func (r RoundRecord) BagsOn(slot Slot) int {
	if slot == Slot2 {
		return r.Player2RoundBagsOn
	}
	return r.Player1RoundBagsOn
}
