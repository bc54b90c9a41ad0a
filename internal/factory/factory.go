package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/barmonse/teg-server/internal/broadcast"
	"github.com/barmonse/teg-server/internal/dependencies/clock"
	"github.com/barmonse/teg-server/internal/dependencies/random"
	"github.com/barmonse/teg-server/internal/services/auth"
	"github.com/barmonse/teg-server/internal/services/catalog"
	"github.com/barmonse/teg-server/internal/services/session"
	"github.com/barmonse/teg-server/internal/storage"
	"github.com/barmonse/teg-server/internal/storage/memory"
	redisstorage "github.com/barmonse/teg-server/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Broker type constants
const (
	BrokerTypeMemory = "memory"
	BrokerTypeNATS   = "nats"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService    *catalog.Service
	SessionController *session.Controller
	AuthService       *auth.Service
	Broker            broadcast.Broker
}

// Config holds configuration for the application factory
type Config struct {
	// CountriesPath is the path to a country catalog file (optional)
	// If empty, the built-in map is loaded
	CountriesPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// BrokerType selects the event broker ("memory" or "nats")
	// If empty, defaults to "memory"
	BrokerType string
	// NATSConfig holds NATS connection settings (required if BrokerType is "nats")
	NATSConfig *broadcast.NATSConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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

	// Create event broker based on type
	var broker broadcast.Broker
	brokerType := cfg.BrokerType
	if brokerType == "" {
		brokerType = BrokerTypeMemory
	}

	switch brokerType {
	case BrokerTypeMemory:
		broker = broadcast.NewMemoryBroker(logger)
	case BrokerTypeNATS:
		if cfg.NATSConfig == nil {
			return nil, errors.New("NATSConfig required when BrokerType is nats")
		}
		natsBroker, err := broadcast.NewNATSBroker(*cfg.NATSConfig, logger)
		if err != nil {
			return nil, err
		}
		broker = natsBroker
	default:
		return nil, errors.New("invalid BrokerType: must be 'memory' or 'nats'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.TokenDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, broker, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	broker broadcast.Broker,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	// Create services
	catalogService := catalog.New(store)
	sessionController := session.NewController(store, broker, catalogService, clk, rnd, logger)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		CatalogService:    catalogService,
		SessionController: sessionController,
		AuthService:       authService,
		Broker:            broker,
	}
}
