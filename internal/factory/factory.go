package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/doubles-roundrobin/internal/dependencies/clock"
	"github.com/mcoot/doubles-roundrobin/internal/dependencies/random"
	"github.com/mcoot/doubles-roundrobin/internal/events"
	"github.com/mcoot/doubles-roundrobin/internal/services/scheduler"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
	"github.com/mcoot/doubles-roundrobin/internal/storage"
	boltstorage "github.com/mcoot/doubles-roundrobin/internal/storage/bolt"
	"github.com/mcoot/doubles-roundrobin/internal/storage/memory"
	pgstorage "github.com/mcoot/doubles-roundrobin/internal/storage/postgres"
	redisstorage "github.com/mcoot/doubles-roundrobin/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypeBolt     = "bolt"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Scheduler            *scheduler.Service
	TournamentController *tournament.Controller

	// Live change notifications
	Events *events.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis", "bolt" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// BoltConfig holds the database file location (required if StorageType is "bolt")
	BoltConfig *boltstorage.Config
	// PostgresConfig holds connection settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeBolt:
		if cfg.BoltConfig == nil {
			return nil, errors.New("BoltConfig required when StorageType is bolt")
		}
		return boltstorage.New(*cfg.BoltConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return pgstorage.New(*cfg.PostgresConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis', 'bolt' or 'postgres'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	schedulerService := scheduler.New(rnd)
	tournamentController := tournament.NewController(store, schedulerService, clk, rnd, logger)

	hubManager := events.NewHubManager(logger)
	tournamentController.SetNotifier(events.NewBroadcaster(hubManager, logger))

	return &App{
		Storage:              store,
		Clock:                clk,
		Random:               rnd,
		Scheduler:            schedulerService,
		TournamentController: tournamentController,
		Events:               hubManager,
	}
}

// Close disconnects event listeners and releases the storage backend's
// connections or files, if it holds any
func (a *App) Close() error {
	a.Events.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
