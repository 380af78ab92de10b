package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sso-server/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
}

type pinger interface {
	PingContext(ctx context.Context) error
}

type redisChecker interface {
	Healthy(ctx context.Context) bool
}

type HealthHandler struct {
	db    pinger
	redis redisChecker
}

// NewHealthHandler reports Redis as disabled when redis is nil.
func NewHealthHandler(db pinger, redis redisChecker) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "disconnected"
	if err := h.db.PingContext(ctx); err == nil {
		dbStatus = "connected"
	} else {
		logger.Warn("Database ping failed", "error", err)
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "disconnected"
		if h.redis.Healthy(ctx) {
			redisStatus = "connected"
		} else {
			logger.Warn("Redis ping failed")
		}
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  dbStatus,
		Redis:     redisStatus,
	}

	response.Success(w, http.StatusOK, resp)
}
