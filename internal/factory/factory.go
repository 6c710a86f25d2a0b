package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/cornhole/internal/dependencies/clock"
	"github.com/mcoot/cornhole/internal/remote"
	"github.com/mcoot/cornhole/internal/services/auth"
	"github.com/mcoot/cornhole/internal/services/game"
	"github.com/mcoot/cornhole/internal/services/localstore"
	"github.com/mcoot/cornhole/internal/services/roster"
	"github.com/mcoot/cornhole/internal/services/round"
	"github.com/mcoot/cornhole/internal/services/scoring"
	"github.com/mcoot/cornhole/internal/services/stats"
	"github.com/mcoot/cornhole/internal/services/upload"
	"github.com/mcoot/cornhole/internal/storage"
	"github.com/mcoot/cornhole/internal/storage/memory"
	redisstorage "github.com/mcoot/cornhole/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage    storage.Store
	LocalStore *localstore.Manager

	// External dependencies
	Clock  clock.Clock
	Remote *remote.Client

	// Services
	ScoringService   *scoring.Service
	RoundCoordinator *round.Coordinator
	AuthService      *auth.Service
	RosterService    *roster.Service
	StatsService     *stats.Service
	UploadGateway    *upload.Gateway
	GameController   *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RemoteConfig points at the record store
	// If BaseURL is empty, defaults to remote.DefaultConfig()
	RemoteConfig remote.Config
	// LocalStoreConfig bounds the local archive
	LocalStoreConfig localstore.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	remoteCfg := cfg.RemoteConfig
	if remoteCfg.BaseURL == "" {
		remoteCfg.BaseURL = remote.DefaultConfig().BaseURL
	}

	return newWithDependencies(store, clock.New(), remote.NewClient(remoteCfg), cfg.LocalStoreConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, client *remote.Client, storeCfg localstore.Config, logger *slog.Logger) *App {
	localStore := localstore.New(store, clk, storeCfg, logger)

	// Create services
	scoringService := scoring.New(logger)
	coordinator := round.NewCoordinator(scoringService, clk, logger)
	authService := auth.New(client, localStore, auth.NewJWTValidator(clk), logger)
	rosterService := roster.New(client, localStore, logger)
	statsService := stats.New(localStore, logger)
	uploadGateway := upload.New(client, localStore, logger)
	gameController := game.NewController(coordinator, scoringService, localStore, authService, clk, logger)

	return &App{
		Storage:          store,
		LocalStore:       localStore,
		Clock:            clk,
		Remote:           client,
		ScoringService:   scoringService,
		RoundCoordinator: coordinator,
		AuthService:      authService,
		RosterService:    rosterService,
		StatsService:     statsService,
		UploadGateway:    uploadGateway,
		GameController:   gameController,
	}
}
