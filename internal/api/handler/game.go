package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/mcoot/cornhole/internal/api/request"
	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/game"
	"github.com/mcoot/cornhole/internal/services/localstore"
	"github.com/mcoot/cornhole/internal/services/roster"
)

// GameHandler handles game endpoints. It owns the single game session of the
// process; mu serializes every operation on it.
type GameHandler struct {
	gameController *game.Controller
	rosterService  *roster.Service
	store          *localstore.Manager

	mu      sync.Mutex
	session *game.Session
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, rosterService *roster.Service, store *localstore.Manager) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		rosterService:  rosterService,
		store:          store,
		session:        gameController.NewSession(),
	}
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	response.JSON(w, http.StatusOK, h.gameController.Snapshot(h.session))
}

// Start handles POST /api/v1/game/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	p1, err := h.resolve(r, req.Player1)
	if err != nil {
		WriteError(w, err)
		return
	}
	p2, err := h.resolve(r, req.Player2)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.gameController.Start(r.Context(), h.session, p1, p2, req.Board); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, h.gameController.Snapshot(h.session))
}

// resolve looks a trimmed player name up in the cached roster. Names not on
// the roster are still allowed, without an ID.
func (h *GameHandler) resolve(r *http.Request, name string) (model.RosterEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.RosterEntry{}, nil
	}
	entry, ok, err := h.rosterService.Lookup(r.Context(), name)
	if err != nil {
		return model.RosterEntry{}, err
	}
	if !ok {
		return model.RosterEntry{Name: name}, nil
	}
	return entry, nil
}

// Throw handles POST /api/v1/game/throw
func (h *GameHandler) Throw(w http.ResponseWriter, r *http.Request) {
	var req request.ThrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	kind, err := model.ParseThrowKind(req.Kind)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	accepted, err := h.gameController.Throw(r.Context(), h.session, model.Slot(req.Slot), kind)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ThrowResponse{
		Accepted: accepted,
		Game:     h.gameController.Snapshot(h.session),
	})
}

// EndRound handles POST /api/v1/game/round
func (h *GameHandler) EndRound(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	record, err := h.gameController.EndRound(r.Context(), h.session)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundResponse{
		Record: *record,
		Game:   h.gameController.Snapshot(h.session),
	})
}

// End handles POST /api/v1/game/end
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	record, err := h.gameController.EndGame(r.Context(), h.session)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, record)
}

// Reset handles POST /api/v1/game/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.gameController.Reset(r.Context(), h.session); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.gameController.Snapshot(h.session))
}

// Rounds handles GET /api/v1/game/rounds
func (h *GameHandler) Rounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.store.RoundBuffer(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Rounds{Rounds: rounds})
}
