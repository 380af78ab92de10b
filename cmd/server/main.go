package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sso-server/internal/auth"
	"sso-server/internal/auth/providers"
	"sso-server/internal/middleware"
	"sso-server/internal/newsletter"
	"sso-server/internal/organization"
	"sso-server/internal/server"
	"sso-server/internal/shared/config"
	"sso-server/internal/shared/database"
	"sso-server/internal/shared/logger"
	"sso-server/internal/shared/metrics"
	"sso-server/internal/shared/redis"
	"sso-server/internal/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Provider keys the login routes accept. They all resolve to the configured
// strategy.
var providerKeys = []string{"onesso", "keycloak", "generic"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appLogger := logger.Init(cfg)
	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	strategy, err := newStrategy(cfg.Provider)
	if err != nil {
		return err
	}

	registry := providers.NewRegistry()
	registry.Register(strategy, providerKeys...)
	appLogger.Info("Identity provider registered",
		"strategy", strategy.Name(),
		"provider_keys", registry.Keys())

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database", "error", err)
		}
	}()

	if err := db.RunMigrations(ctx); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			appLogger.Error("Failed to close Redis", "error", err)
		}
	}()

	var registrar newsletter.Registrar
	if rdb != nil {
		registrar = newsletter.NewRedisRegistrar(rdb.Client, cfg.Newsletter.QueueKey)
	} else {
		registrar = newsletter.NewLogRegistrar(appLogger)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, appLogger)
	organizationService := organization.NewService(organization.NewRepository(db, userRepo), appLogger)
	signer := auth.NewJWTSigner(cfg.Auth)
	authService := auth.NewService(
		registry,
		userService,
		organizationService,
		signer,
		registrar,
		metrics.NewAuth(promRegistry),
		appLogger,
	)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.Server.TrustProxy)
	defer rateLimiter.Stop()

	routes := server.NewRoutes(cfg, db, rdb, authService, userService, organizationService,
		signer, rateLimiter, promRegistry)
	corsMiddleware := middleware.NewCORS(cfg.Frontend)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsMiddleware.Middleware(routes.Setup()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("SSO server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"provider_strategy", cfg.Provider.Strategy)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newStrategy picks the identity provider implementation. A live provider
// with missing settings fails here, before the server accepts requests.
func newStrategy(cfg config.ProviderConfig) (providers.Strategy, error) {
	strategyLogger := slog.With("component", "main", "operation", "new_strategy")

	if cfg.Strategy == config.StrategyMock {
		strategyLogger.Warn("Using mock identity provider, every login signs in the demo user")
		return providers.NewMockProvider(), nil
	}

	provider, err := providers.NewOneSSOProvider(cfg)
	if err != nil {
		return nil, err
	}
	return provider, nil
}
