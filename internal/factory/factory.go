package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/follgramer/DiamantesProPlayers/internal/api/sse"
	"github.com/follgramer/DiamantesProPlayers/internal/services/leaderboard"
	"github.com/follgramer/DiamantesProPlayers/internal/services/ledger"
	"github.com/follgramer/DiamantesProPlayers/internal/storage"
	"github.com/follgramer/DiamantesProPlayers/internal/storage/memory"
	redisstorage "github.com/follgramer/DiamantesProPlayers/internal/storage/redis"
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

	// Services
	LedgerService      *ledger.Service
	LeaderboardService *leaderboard.Service

	// Live update stream
	Hub *sse.Hub
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
}

// New creates a new application with all dependencies wired.
// The returned Hub's Run loop is already started.
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
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithStorage(store, logger), nil
}

// newWithStorage wires services around an existing storage backend
func newWithStorage(store storage.Storage, logger *slog.Logger) *App {
	hub := sse.NewHub(logger)
	go hub.Run()

	ledgerService := ledger.New(store, hub, logger)
	leaderboardService := leaderboard.New(store)

	return &App{
		Storage:            store,
		LedgerService:      ledgerService,
		LeaderboardService: leaderboardService,
		Hub:                hub,
	}
}

// Close releases resources held by the application
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
