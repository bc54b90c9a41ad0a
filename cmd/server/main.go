package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/barmonse/teg-server/internal/api"
	"github.com/barmonse/teg-server/internal/broadcast"
	"github.com/barmonse/teg-server/internal/factory"
	redisstorage "github.com/barmonse/teg-server/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		CountriesPath: os.Getenv("COUNTRIES_PATH"),
		Logger:        logger,
		StorageType:   os.Getenv("STORAGE_TYPE"),
		BrokerType:    os.Getenv("BROKER_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Configure NATS if broker type is nats
	if cfg.BrokerType == factory.BrokerTypeNATS {
		natsCfg := broadcast.DefaultNATSConfig()
		if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
			natsCfg.URL = natsURL
		}
		cfg.NATSConfig = &natsCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Broker.Close() }()

	// Load the country catalog
	if cfg.CountriesPath != "" {
		if err := app.CatalogService.LoadFromFile(context.Background(), cfg.CountriesPath); err != nil {
			logger.Error("could not load country catalog",
				slog.String("path", cfg.CountriesPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		if err := app.CatalogService.LoadDefaults(context.Background()); err != nil {
			logger.Error("could not load country catalog", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	logger.Info("country catalog loaded", slog.Int("countries", app.CatalogService.CountryCount()))

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		SessionController: app.SessionController,
		Broker:            app.Broker,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
