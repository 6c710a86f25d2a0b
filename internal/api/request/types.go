package request

import "github.com/mcoot/cornhole/internal/model"

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Board   string `json:"board,omitempty"`
}

// ThrowRequest is the request body for recording a throw
type ThrowRequest struct {
	Slot int    `json:"slot"`
	Kind string `json:"kind"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

// BoardRequest is the request body for changing the preferred board
type BoardRequest struct {
	Board string `json:"board"`
}

// UploadRequest is the optional request body for an upload
type UploadRequest struct {
	User string `json:"user,omitempty"`
}

// MetadataPatch is merged into a user's stored metadata
type MetadataPatch = model.UserMetadata
