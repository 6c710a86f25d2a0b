package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cornhole/internal/api/handler"
	"github.com/mcoot/cornhole/internal/api/middleware"
	"github.com/mcoot/cornhole/internal/services/auth"
	"github.com/mcoot/cornhole/internal/services/game"
	"github.com/mcoot/cornhole/internal/services/localstore"
	"github.com/mcoot/cornhole/internal/services/roster"
	"github.com/mcoot/cornhole/internal/services/stats"
	"github.com/mcoot/cornhole/internal/services/upload"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	RosterService  *roster.Service
	StatsService   *stats.Service
	UploadGateway  *upload.Gateway
	Store          *localstore.Manager
	CORSOrigins    []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.RosterService, cfg.Store)
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	rosterHandler := handler.NewRosterHandler(cfg.RosterService)
	historyHandler := handler.NewHistoryHandler(cfg.Store, cfg.StatsService)
	uploadHandler := handler.NewUploadHandler(cfg.UploadGateway)
	metadataHandler := handler.NewMetadataHandler(cfg.Store)

	// Create middleware
	sessionMiddleware := middleware.Session(cfg.AuthService)
	optionalSessionMiddleware := middleware.OptionalSession(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Game routes
	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/start", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/game/throw", gameHandler.Throw).Methods(http.MethodPost)
	api.HandleFunc("/game/round", gameHandler.EndRound).Methods(http.MethodPost)
	api.HandleFunc("/game/end", gameHandler.End).Methods(http.MethodPost)
	api.HandleFunc("/game/reset", gameHandler.Reset).Methods(http.MethodPost)
	api.HandleFunc("/game/rounds", gameHandler.Rounds).Methods(http.MethodGet)

	// Archive routes
	api.HandleFunc("/history", historyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/stats/{name}", historyHandler.Stats).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/session/login", sessionHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/session/logout", sessionHandler.Logout).Methods(http.MethodPost)

	// Protected session routes
	sessionProtected := api.PathPrefix("/session").Subrouter()
	sessionProtected.Use(sessionMiddleware)
	sessionProtected.HandleFunc("/board", sessionHandler.UpdateBoard).Methods(http.MethodPut)

	// Roster and metadata routes
	api.HandleFunc("/roster", rosterHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/metadata", metadataHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/metadata", metadataHandler.Patch).Methods(http.MethodPatch)

	// Sync routes act for the logged-in user
	sync := api.PathPrefix("/sync").Subrouter()
	sync.Use(optionalSessionMiddleware)
	sync.HandleFunc("/upload", uploadHandler.Upload).Methods(http.MethodPost)
	sync.HandleFunc("/pending", uploadHandler.Pending).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	if len(cfg.CORSOrigins) == 0 {
		return r
	}
	return middleware.CORS(cfg.CORSOrigins)(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
