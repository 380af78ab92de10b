package server

import (
	"log/slog"
	"net/http"

	"sso-server/internal/auth"
	authHandlers "sso-server/internal/auth/handlers"
	"sso-server/internal/middleware"
	"sso-server/internal/organization"
	serverHandlers "sso-server/internal/server/handlers"
	"sso-server/internal/shared/config"
	"sso-server/internal/shared/cookies"
	"sso-server/internal/shared/database"
	"sso-server/internal/shared/metrics"
	"sso-server/internal/shared/redis"
	"sso-server/internal/user"
	userHandlers "sso-server/internal/user/handlers"

	"github.com/prometheus/client_golang/prometheus"
)

type Routes struct {
	cfg                 *config.Config
	db                  *database.DB
	redis               *redis.Client
	authService         *auth.Service
	userService         *user.Service
	organizationService *organization.Service
	signer              *auth.JWTSigner
	rateLimiter         *middleware.RateLimiter
	gatherer            prometheus.Gatherer
}

func NewRoutes(
	cfg *config.Config,
	db *database.DB,
	rdb *redis.Client,
	authService *auth.Service,
	userService *user.Service,
	organizationService *organization.Service,
	signer *auth.JWTSigner,
	rateLimiter *middleware.RateLimiter,
	gatherer prometheus.Gatherer,
) *Routes {
	return &Routes{
		cfg:                 cfg,
		db:                  db,
		redis:               rdb,
		authService:         authService,
		userService:         userService,
		organizationService: organizationService,
		signer:              signer,
		rateLimiter:         rateLimiter,
		gatherer:            gatherer,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	// A nil *redis.Client must reach the handler as a nil interface.
	var healthHandler *serverHandlers.HealthHandler
	if r.redis != nil {
		healthHandler = serverHandlers.NewHealthHandler(r.db, r.redis)
	} else {
		healthHandler = serverHandlers.NewHealthHandler(r.db, nil)
	}

	meHandler := userHandlers.NewMeHandler(r.userService, r.organizationService)
	jwtAuth := middleware.NewJWTAuth(r.signer)

	oauthHandler := authHandlers.NewOAuthHandler(
		r.authService,
		cookies.NewPolicy(r.cfg.Frontend.URL, r.cfg.Frontend.NotSecured),
		r.cfg.Frontend.URL,
		r.cfg.Server.TrustProxy,
	)
	limited := func(h http.HandlerFunc) http.Handler {
		return r.rateLimiter.Middleware(h)
	}

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.Handle("GET /metrics", metrics.Handler(r.gatherer))

	// Protected endpoints (authenticated users)
	mux.Handle("GET /api/users/me", jwtAuth.Middleware(meHandler))

	// OAuth endpoints
	mux.Handle("GET /auth/{provider}/login", limited(oauthHandler.HandleLogin))
	mux.Handle("GET /auth/{provider}/callback", limited(oauthHandler.HandleCallback))
	mux.Handle("POST /auth/{provider}/logout", limited(oauthHandler.HandleLogout))
	mux.Handle("GET /auth/{provider}/link", limited(oauthHandler.HandleLink))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/metrics"},
		"protected_endpoints", []string{"/api/users/me"},
		"auth_endpoints", []string{
			"/auth/{provider}/login",
			"/auth/{provider}/callback",
			"/auth/{provider}/logout",
			"/auth/{provider}/link",
		},
	)

	return mux
}
