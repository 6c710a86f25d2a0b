package model

import "errors"

// Common errors used across the application
var (
	// Validation errors
	ErrPlayerMissing    = errors.New("both players must be selected")
	ErrSamePlayer       = errors.New("players must be different")
	ErrEmptyPasscode    = errors.New("passcode is required")
	ErrInvalidThrowKind = errors.New("invalid throw kind")
	ErrInvalidSlot      = errors.New("invalid player slot")

	// Lifecycle errors
	ErrGameNotInSetup = errors.New("game is not in setup")
	ErrGameNotActive  = errors.New("game is not active")
	ErrRoundNotActive = errors.New("round is not active")
	ErrRoundFinalized = errors.New("round is already finalized")

	// Session errors
	ErrNoSession        = errors.New("no cached session")
	ErrInvalidSession   = errors.New("invalid or expired session")
	ErrExchangeInFlight = errors.New("a login exchange is already in flight")

	// Remote errors
	ErrRemoteUnavailable = errors.New("remote record store unavailable")
	ErrRemoteRejected    = errors.New("remote record store rejected the request")

	// Sync errors
	ErrNothingToUpload = errors.New("no games for this user to upload")
	ErrUploadInFlight  = errors.New("an upload is already in flight")
	ErrNoUser          = errors.New("no user identified for upload")
	ErrNotSessionUser  = errors.New("games can only be synced for the logged-in player")

	// Stats errors
	ErrNoGamesForUser = errors.New("no games found for user")
)
