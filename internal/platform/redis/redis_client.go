package redis

import (
	"context"
	"log/slog"
	"net"

	"github.com/redis/go-redis/v9"
)

// Config addresses the Redis instance used as the shared response cache.
type Config struct {
	Host     string
	Port     string
	Password string
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// verify connectivity before handing out the client
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
