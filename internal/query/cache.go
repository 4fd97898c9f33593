package query

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MasCreaThor/plataforma/internal/logger"
)

// Store is a byte-level cache backend. The in-memory store is the default;
// the Redis store makes cached views survive across runs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Cache is the client-side query cache: read-mostly, keyed by query, and
// invalidated (never patched) on writes. Backend failures degrade to cache
// misses — the cache must never break a read path.
type Cache struct {
	store Store
	ttl   time.Duration
	log   logger.Logger
}

func New(store Store, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{store: store, ttl: ttl, log: log}
}

// GetJSON loads a cached value into out. Returns false on miss, expiry, or
// any backend/decode failure.
func (c *Cache) GetJSON(ctx context.Context, key string, out any) bool {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn("cache entry corrupt, dropping", logger.String("key", key), logger.Error(err))
		c.Invalidate(ctx, key)
		return false
	}
	return true
}

// SetJSON stores v under key with the cache's TTL. Best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache marshal failed", logger.String("key", key), logger.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Warn("cache write failed", logger.String("key", key), logger.Error(err))
	}
}

// Invalidate drops exact keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.log.Warn("cache invalidation failed", logger.Error(err))
	}
}

// InvalidatePrefix drops every key under the given prefixes.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := c.store.DeletePrefix(ctx, prefix); err != nil {
			c.log.Warn("cache prefix invalidation failed",
				logger.String("prefix", prefix), logger.Error(err))
		}
	}
}
