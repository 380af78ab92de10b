// Package newsletter records sign-up emails for the mailing list.
package newsletter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type Registrar interface {
	Register(ctx context.Context, email string) error
}

// Registration is the payload queued for the mailing list worker.
type Registration struct {
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// RedisRegistrar appends registrations to a Redis list that a separate
// mailing list worker drains.
type RedisRegistrar struct {
	client redis.Cmdable
	key    string
	now    func() time.Time
}

func NewRedisRegistrar(client redis.Cmdable, key string) *RedisRegistrar {
	return &RedisRegistrar{client: client, key: key, now: time.Now}
}

func (r *RedisRegistrar) Register(ctx context.Context, email string) error {
	payload, err := json.Marshal(Registration{Email: email, RegisteredAt: r.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode newsletter registration: %w", err)
	}

	if err := r.client.RPush(ctx, r.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to queue newsletter registration: %w", err)
	}

	slog.With("component", "newsletter", "operation", "register").
		Debug("Queued newsletter registration", "queue", r.key)
	return nil
}

// LogRegistrar only logs, for deployments without Redis.
type LogRegistrar struct {
	logger *slog.Logger
}

func NewLogRegistrar(logger *slog.Logger) *LogRegistrar {
	return &LogRegistrar{logger: logger}
}

func (r *LogRegistrar) Register(_ context.Context, email string) error {
	r.logger.Info("Newsletter registration skipped, no queue configured", "email", email)
	return nil
}
