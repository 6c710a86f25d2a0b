package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/services/localstore"
	"github.com/mcoot/cornhole/internal/services/stats"
)

// HistoryHandler handles the game archive and statistics
type HistoryHandler struct {
	store        *localstore.Manager
	statsService *stats.Service
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(store *localstore.Manager, statsService *stats.Service) *HistoryHandler {
	return &HistoryHandler{
		store:        store,
		statsService: statsService,
	}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.store.Archive(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	lastUpload, err := h.store.LastUpload(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryFromArchive(games, h.store.MaxArchiveSize(), lastUpload))
}

// Stats handles GET /api/v1/stats/{name}
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	summary, err := h.statsService.User(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
