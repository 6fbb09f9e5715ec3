package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores JSON-encoded values in Redis and lets Redis expire them after ttl.
// Values read back are decoded copies, not the instance that was stored.
type RedisCache[T any] struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewRedisCache creates a Redis-backed cache.
// If ttl is 0, it defaults to DefaultTTL. If namespace is empty, it uses "stock".
func NewRedisCache[T any](rdb *redis.Client, ttl time.Duration, namespace string) *RedisCache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "stock"
	}
	return &RedisCache[T]{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Get returns the cached value for key. Read failures count as a miss.
func (c *RedisCache[T]) Get(key string) (T, bool) {
	var out T
	ctx := context.Background()
	k := c.cacheKey(key)

	b, err := c.rdb.Get(ctx, k).Bytes()
	if err != nil || len(b) == 0 {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, k).Err()
		var zero T
		return zero, false
	}
	return out, true
}

// Set stores value under key (best effort).
func (c *RedisCache[T]) Set(key string, value T) {
	b, err := json.Marshal(value)
	if err != nil {
		slog.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(context.Background(), c.cacheKey(key), b, c.ttl).Err(); err != nil {
		slog.Warn("failed to write cache entry", "key", key, "error", err)
	}
}

// Invalidate deletes every entry whose key starts with prefix, using SCAN.
func (c *RedisCache[T]) Invalidate(ctx context.Context, prefix string) error {
	pattern := c.cacheKey(prefix) + "*"
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

func (c *RedisCache[T]) cacheKey(key string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(key))
}
