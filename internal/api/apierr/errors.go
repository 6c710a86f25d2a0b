package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/remote"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidThrow      = "INVALID_THROW"
	CodeInvalidSlot       = "INVALID_SLOT"
	CodePlayerMissing     = "PLAYER_MISSING"
	CodeSamePlayer        = "SAME_PLAYER"
	CodePasscodeRequired  = "PASSCODE_REQUIRED"
	CodeGameNotInSetup    = "GAME_NOT_IN_SETUP"
	CodeGameNotActive     = "GAME_NOT_ACTIVE"
	CodeRoundNotActive    = "ROUND_NOT_ACTIVE"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeSessionExpired    = "SESSION_EXPIRED"
	CodeLoginInFlight     = "LOGIN_IN_PROGRESS"
	CodeUploadInFlight    = "UPLOAD_IN_PROGRESS"
	CodeNothingToUpload   = "NOTHING_TO_UPLOAD"
	CodeNoUser            = "NO_USER"
	CodeNotSessionUser    = "NOT_SESSION_USER"
	CodeNoGames           = "NO_GAMES"
	CodeRemoteRejected    = "REMOTE_REJECTED"
	CodeRemoteUnavailable = "REMOTE_UNAVAILABLE"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Validation errors
	switch {
	case errors.Is(err, model.ErrPlayerMissing):
		return &httpError{http.StatusBadRequest, APIError{CodePlayerMissing, "Both players must be selected"}}
	case errors.Is(err, model.ErrSamePlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeSamePlayer, "Players must be different"}}
	case errors.Is(err, model.ErrEmptyPasscode):
		return &httpError{http.StatusBadRequest, APIError{CodePasscodeRequired, "Passcode is required"}}
	case errors.Is(err, model.ErrInvalidThrowKind):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidThrow, "Throw must be in, on, subtractIn or subtractOn"}}
	case errors.Is(err, model.ErrInvalidSlot):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSlot, "Slot must be 1 or 2"}}
	case errors.Is(err, model.ErrNoUser):
		return &httpError{http.StatusBadRequest, APIError{CodeNoUser, "No current user identified for upload, log in first"}}
	}

	// Lifecycle errors
	switch {
	case errors.Is(err, model.ErrGameNotInSetup):
		return &httpError{http.StatusConflict, APIError{CodeGameNotInSetup, "A game is already in progress"}}
	case errors.Is(err, model.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "No game is in progress"}}
	case errors.Is(err, model.ErrRoundNotActive), errors.Is(err, model.ErrRoundFinalized):
		return &httpError{http.StatusConflict, APIError{CodeRoundNotActive, "Round is not active"}}
	}

	// Session errors
	switch {
	case errors.Is(err, model.ErrNoSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Not logged in"}}
	case errors.Is(err, model.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeSessionExpired, "Session expired, log in again"}}
	case errors.Is(err, model.ErrExchangeInFlight):
		return &httpError{http.StatusConflict, APIError{CodeLoginInFlight, "A login is already in progress"}}
	}

	// Sync and stats errors
	switch {
	case errors.Is(err, model.ErrNothingToUpload):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNothingToUpload, "No games to upload"}}
	case errors.Is(err, model.ErrNotSessionUser):
		return &httpError{http.StatusForbidden, APIError{CodeNotSessionUser, "Games can only be synced for the logged-in player"}}
	case errors.Is(err, model.ErrUploadInFlight):
		return &httpError{http.StatusConflict, APIError{CodeUploadInFlight, "An upload is already in progress"}}
	case errors.Is(err, model.ErrNoGamesForUser):
		return &httpError{http.StatusNotFound, APIError{CodeNoGames, "No games found for this player"}}
	}

	// Remote errors are reported with the record store's own message
	var statusErr *remote.StatusError
	switch {
	case errors.As(err, &statusErr):
		return &httpError{http.StatusBadGateway, APIError{CodeRemoteRejected, statusErr.Error()}}
	case errors.Is(err, model.ErrRemoteRejected):
		return &httpError{http.StatusBadGateway, APIError{CodeRemoteRejected, err.Error()}}
	case errors.Is(err, model.ErrRemoteUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeRemoteUnavailable, err.Error()}}
	}

	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInternalErrorf creates an internal server error with a formatted message
func NewInternalErrorf(format string, args ...any) error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, fmt.Sprintf(format, args...)}}
}
