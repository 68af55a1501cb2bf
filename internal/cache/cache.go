// Package cache wraps an optional Redis client with JSON get/set helpers.
// A Cache built from a nil client is a no-op, so callers never branch on
// whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent or the cache is disabled.
var ErrMiss = errors.New("cache miss")

// Cache is a JSON cache backed by Redis.
type Cache struct {
	rdb *redis.Client
}

// New creates a Cache. rdb may be nil.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Enabled reports whether a Redis client is configured.
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get decodes the value stored at key into dst.
func (c *Cache) Get(ctx context.Context, key string, dst any) error {
	if !c.Enabled() {
		return ErrMiss
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache get failed", "key", key, "error", err)
		}
		return ErrMiss
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return ErrMiss
	}
	slog.Debug("cache hit", "key", key)
	return nil
}

// Set stores value at key as JSON with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

// Invalidate deletes every key matching the given patterns.
func (c *Cache) Invalidate(ctx context.Context, patterns ...string) {
	if !c.Enabled() {
		return
	}
	for _, p := range patterns {
		iter := c.rdb.Scan(ctx, 0, p, 0).Iterator()
		for iter.Next(ctx) {
			c.rdb.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			slog.Error("cache invalidation failed", "pattern", p, "error", err)
		}
	}
}
