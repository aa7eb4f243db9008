package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/wwfstate/internal/dependencies/clock"
	"github.com/mcoot/wwfstate/internal/services/board"
	"github.com/mcoot/wwfstate/internal/services/game"
	"github.com/mcoot/wwfstate/internal/services/gamestate"
	"github.com/mcoot/wwfstate/internal/services/reconstruct"
	"github.com/mcoot/wwfstate/internal/services/request"
	"github.com/mcoot/wwfstate/internal/services/scoring"
	"github.com/mcoot/wwfstate/internal/storage"
	"github.com/mcoot/wwfstate/internal/storage/memory"
	redisstorage "github.com/mcoot/wwfstate/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	BoardService     *board.Service
	ScoringService   *scoring.Service
	GameStateHelper  *gamestate.Helper
	Reconstructor    *reconstruct.Reconstructor
	RequestGenerator *request.Generator
	GameController   *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the snapshot cache backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// DefaultConfig returns an in-memory configuration with no logging
func DefaultConfig() Config {
	return Config{StorageType: StorageTypeMemory}
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
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
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}

	logger.Debug("storage configured", slog.String("storage", storageType))
	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	boardService := board.New()
	scoringService := scoring.New()
	helper := gamestate.New(boardService, scoringService, clk)
	reconstructor := reconstruct.New(scoringService, helper, logger)
	generator := request.New(boardService, scoringService, helper)
	gameController := game.NewController(store, boardService, scoringService, helper, reconstructor, generator, clk, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		BoardService:     boardService,
		ScoringService:   scoringService,
		GameStateHelper:  helper,
		Reconstructor:    reconstructor,
		RequestGenerator: generator,
		GameController:   gameController,
	}
}

// Close releases the storage backend's connections, if it holds any
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
