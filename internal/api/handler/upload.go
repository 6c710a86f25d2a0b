package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mcoot/cornhole/internal/api/middleware"
	"github.com/mcoot/cornhole/internal/api/request"
	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/upload"
)

// UploadHandler handles sending games to the record store
type UploadHandler struct {
	gateway *upload.Gateway
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(gateway *upload.Gateway) *UploadHandler {
	return &UploadHandler{
		gateway: gateway,
	}
}

// Upload handles POST /api/v1/sync/upload. Games are always uploaded for
// the logged-in player; a user named in the body must be that player.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req request.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user, err := sessionUser(r, req.User)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.gateway.Upload(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Pending handles GET /api/v1/sync/pending, with the same user rule as Upload
func (h *UploadHandler) Pending(w http.ResponseWriter, r *http.Request) {
	user, err := sessionUser(r, r.URL.Query().Get("user"))
	if err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.gateway.Pending(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Pending{User: user, Games: games})
}

// sessionUser returns the logged-in player's name. requested may repeat it
// but never name anyone else.
func sessionUser(r *http.Request, requested string) (string, error) {
	profile := middleware.GetProfile(r.Context())
	if profile == nil {
		return "", model.ErrNoUser
	}

	requested = strings.TrimSpace(requested)
	if requested != "" && requested != profile.Name {
		return "", model.ErrNotSessionUser
	}
	return profile.Name, nil
}
