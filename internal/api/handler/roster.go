package handler

import (
	"net/http"

	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/services/roster"
)

// RosterHandler handles the player roster
type RosterHandler struct {
	rosterService *roster.Service
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *roster.Service) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
	}
}

// List handles GET /api/v1/roster. With ?refresh=true the record store is
// asked first.
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		result, err := h.rosterService.Refresh(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, result)
		return
	}

	players, err := h.rosterService.Cached(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, roster.Result{Players: players})
}
