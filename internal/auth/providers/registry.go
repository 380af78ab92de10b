package providers

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"sso-server/internal/shared/errors"
)

// Registry maps provider keys from the URL to strategies. Keys are matched
// case-insensitively.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register makes strategy reachable under each of keys, replacing any
// previous registration.
func (r *Registry) Register(strategy Strategy, keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		r.strategies[normalizeKey(key)] = strategy
	}

	slog.With("component", "provider_registry", "operation", "register").
		Debug("Registered identity provider", "strategy", strategy.Name(), "keys", keys)
}

func (r *Registry) Get(key string) (Strategy, error) {
	r.mu.RLock()
	strategy, ok := r.strategies[normalizeKey(key)]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.NotFoundf("identity provider %q is not supported", key)
	}
	return strategy, nil
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.strategies))
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
