package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cornhole/internal/api/request"
	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/localstore"
)

// MetadataHandler handles per-user metadata
type MetadataHandler struct {
	store *localstore.Manager
}

// NewMetadataHandler creates a new metadata handler
func NewMetadataHandler(store *localstore.Manager) *MetadataHandler {
	return &MetadataHandler{
		store: store,
	}
}

// Get handles GET /api/v1/users/{id}/metadata
func (h *MetadataHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	meta, err := h.store.UserMetadata(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Metadata{UserID: id, Metadata: meta})
}

// Patch handles PATCH /api/v1/users/{id}/metadata
func (h *MetadataHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var patch request.MetadataPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	meta, err := h.store.SetUserMetadata(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Metadata{UserID: id, Metadata: meta})
}
