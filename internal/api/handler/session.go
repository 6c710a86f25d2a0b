package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/cornhole/internal/api/request"
	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/services/auth"
)

// SessionHandler handles login and the cached profile
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{
		authService: authService,
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.authService.Current(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Session{Profile: *profile})
}

// Login handles POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	profile, err := h.authService.Login(r.Context(), req.Name, req.Passcode)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Session{Profile: *profile})
}

// Logout handles POST /api/v1/session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// UpdateBoard handles PUT /api/v1/session/board
func (h *SessionHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	var req request.BoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Board == "" {
		WriteError(w, NewInvalidRequestError("board is required"))
		return
	}

	profile, err := h.authService.UpdateBoard(r.Context(), req.Board)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Session{Profile: *profile})
}
