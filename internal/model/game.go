package model

import "time"

// TieWinner is recorded as the winner when both players finish level
const TieWinner = "Tie"

// GameState represents the current phase of a game session
type GameState string

const (
	GameStateSetup  GameState = "setup"  // Choosing players and board
	GameStateActive GameState = "active" // Rounds being played
	GameStateEnded  GameState = "ended"  // Final record committed
)

// GamePlayer is a player's final summary inside a GameRecord
type GamePlayer struct {
	ID    PlayerID `json:"id,omitempty"`
	Name  string   `json:"name"`
	Score int      `json:"score"`
}

// GameRecord is a finished game as stored in the local archive.
// Date is the unique key.
type GameRecord struct {
	Date        time.Time     `json:"date"`
	TotalRounds int           `json:"totalRounds"`
	Board       string        `json:"board"`
	Winner      string        `json:"winner"`
	Player1     GamePlayer    `json:"player1"`
	Player2     GamePlayer    `json:"player2"`
	Rounds      []RoundRecord `json:"rounds"`

	Player1TotalBagsIn int `json:"player1TotalBagsIn"`
	Player1TotalBagsOn int `json:"player1TotalBagsOn"`
	Player2TotalBagsIn int `json:"player2TotalBagsIn"`
	Player2TotalBagsOn int `json:"player2TotalBagsOn"`
}

// IsTie returns true if the game finished level
func (g GameRecord) IsTie() bool {
	return g.Winner == TieWinner
}

// SlotOf returns which slot the named player occupied, if any
func (g GameRecord) SlotOf(name string) (Slot, bool) {
	switch name {
	case g.Player1.Name:
		return Slot1, true
	case g.Player2.Name:
		return Slot2, true
	}
	return 0, false
}

// HasPlayer reports whether the named player took part in the game
func (g GameRecord) HasPlayer(name string) bool {
	_, ok := g.SlotOf(name)
	return ok
}
