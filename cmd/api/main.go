// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/stocktrackhq/stocktrack-be/internal/adapters/db"
	redis_a "github.com/stocktrackhq/stocktrack-be/internal/adapters/redis_adapter"
	"github.com/stocktrackhq/stocktrack-be/internal/adapters/token"
	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
	"github.com/stocktrackhq/stocktrack-be/internal/core/services"
	"github.com/stocktrackhq/stocktrack-be/internal/handlers"
	"github.com/stocktrackhq/stocktrack-be/internal/handlers/middleware"
	"github.com/stocktrackhq/stocktrack-be/internal/pkg/config"
	"github.com/stocktrackhq/stocktrack-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting stocktrack inventory service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	if cfg.AWS.UseSecrets {
		sm, err := config.NewAWSSecretsManager(cfg.AWS.Region, cfg.AWS.SecretsPrefix, slogger)
		if err != nil {
			slogger.Error("failed to initialize secrets manager", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := cfg.ResolveSecrets(ctx, sm, slogger); err != nil {
			slogger.Error("failed to resolve secrets", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := runMigrations(ctx, cfg, slogger); err != nil {
		slogger.Error("failed to run migrations", slog.String("error", err.Error()))
		if cfg.IsProduction() {
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	if err := deps.authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		slogger.Error("failed to bootstrap admin account", slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database         *db.Database
	redisClient      *redis.Client
	cache            ports.CacheRepository
	tokenManager     ports.TokenManager
	inventoryService *services.InventoryService
	authService      *services.AuthService
	inventoryHandler *handlers.InventoryHandler
	authHandler      *handlers.AuthHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	slogger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	slogger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient

	deps.cache = redis_a.NewCache(redisClient, slogger)

	tokenManager, err := token.NewManager(&token.Config{
		Secret:     cfg.Security.JWTSecret,
		Issuer:     cfg.App.Name,
		AccessTTL:  cfg.Security.JWTExpiration,
		RefreshTTL: cfg.Security.JWTRefreshExpiration,
	}, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}
	deps.tokenManager = tokenManager

	itemRepo := db.NewItemRepository(database, slogger)
	userRepo := db.NewUserRepository(database, slogger)

	deps.inventoryService = services.NewInventoryService(itemRepo, deps.cache, slogger)
	deps.authService = services.NewAuthService(userRepo, tokenManager, slogger)

	deps.inventoryHandler = handlers.NewInventoryHandler(deps.inventoryService, slogger)
	deps.authHandler = handlers.NewAuthHandler(deps.authService, slogger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, cfg, slogger)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps, slogger)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	handler = middleware.Recovery(slogger)(handler)
	handler = middleware.Logger(slogger)(handler)
	handler = middleware.RequestID(handler)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, slogger *slog.Logger) {
	apiV1 := "/api/v1"

	authn := middleware.Authenticate(deps.tokenManager, slogger)
	protected := func(h http.HandlerFunc) http.Handler {
		return authn(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authn(middleware.RequireAdmin(h))
	}

	// Health and readiness endpoints
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	mux.HandleFunc("GET "+apiV1+"/health", deps.healthHandler.Health)

	// Auth endpoints: login and refresh are public, registration is admin-only
	mux.HandleFunc("POST "+apiV1+"/auth/login", deps.authHandler.Login)
	mux.HandleFunc("POST "+apiV1+"/auth/refresh", deps.authHandler.Refresh)
	mux.Handle("POST "+apiV1+"/auth/register", adminOnly(deps.authHandler.Register))

	// Inventory endpoints, all behind authentication
	mux.Handle("GET "+apiV1+"/items", protected(deps.inventoryHandler.ListItems))
	mux.Handle("GET "+apiV1+"/items/{id}", protected(deps.inventoryHandler.GetItem))
	mux.Handle("POST "+apiV1+"/items", protected(deps.inventoryHandler.CreateItem))
	mux.Handle("PUT "+apiV1+"/items/{id}", protected(deps.inventoryHandler.UpdateItem))
	mux.Handle("DELETE "+apiV1+"/items/{id}", protected(deps.inventoryHandler.DeleteItem))
}

func runMigrations(ctx context.Context, cfg *config.Config, slogger *slog.Logger) error {
	slogger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, slogger, 3)
}
