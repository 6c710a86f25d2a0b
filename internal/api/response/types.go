package response

import (
	"time"

	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/game"
)

// Status is a simple status response
type Status struct {
	Status string `json:"status"`
}

// Game is the current game snapshot
type Game = game.Snapshot

// ThrowResponse reports whether a throw was accepted
type ThrowResponse struct {
	Accepted bool `json:"accepted"`
	Game     Game `json:"game"`
}

// RoundResponse is returned when a round ends
type RoundResponse struct {
	Record model.RoundRecord `json:"record"`
	Game   Game              `json:"game"`
}

// Rounds is the buffered round list of the game in progress
type Rounds struct {
	Rounds []model.RoundRecord `json:"rounds"`
}

// History is the local archive with its upload status
type History struct {
	Games      []model.GameRecord `json:"games"`
	MaxSize    int                `json:"maxSize"`
	LastUpload *time.Time         `json:"lastUpload"`
}

// HistoryFromArchive builds a History; a zero lastUpload means never
func HistoryFromArchive(games []model.GameRecord, maxSize int, lastUpload time.Time) History {
	h := History{
		Games:   games,
		MaxSize: maxSize,
	}
	if !lastUpload.IsZero() {
		h.LastUpload = &lastUpload
	}
	return h
}

// Session is the logged-in profile
type Session struct {
	Profile model.Profile `json:"profile"`
}

// Metadata is one user's metadata
type Metadata struct {
	UserID   model.PlayerID     `json:"userId"`
	Metadata model.UserMetadata `json:"metadata"`
}

// Pending lists the games an upload would submit
type Pending struct {
	User  string             `json:"user"`
	Games []model.GameRecord `json:"games"`
}
