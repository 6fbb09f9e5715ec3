package di

import (
	"context"
	"errors"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_tracker/internal/config"
	marketusecase "stock_tracker/internal/feature/market/usecase"
	portfoliousecase "stock_tracker/internal/feature/portfolio/usecase"
	watchlistusecase "stock_tracker/internal/feature/watchlist/usecase"
	"stock_tracker/internal/platform/cache"
	platformhandler "stock_tracker/internal/platform/http/handler"
	"stock_tracker/internal/platform/kvstore"
	infraredis "stock_tracker/internal/platform/redis"
)

// App is the assembled object graph shared by the server and the CLI.
type App struct {
	DB        *gorm.DB
	Redis     *redisv9.Client
	Market    *marketusecase.MarketUsecase
	Portfolio *portfoliousecase.PortfolioLedger
	Watchlist *watchlistusecase.WatchlistLedger

	cacheNamespace string
}

// Build wires every component from cfg. When the redis cache backend is selected but Redis is
// unreachable, the in-process cache is used instead.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	gdb, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	app := &App{DB: gdb, cacheNamespace: cfg.Cache.Namespace}

	if cfg.Cache.Backend == config.CacheRedis {
		rdb, err := infraredis.NewRedisClient(ctx, infraredis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			slog.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
		} else {
			app.Redis = rdb
		}
	}

	app.Market = NewMarketUsecase(cfg, app.Redis)

	app.Portfolio, app.Watchlist, err = NewLedgers(ctx, kvstore.NewStore(gdb))
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}
	return app, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// ClearCache drops every shared response cache entry. It reports false when no shared cache
// is configured; in-process caches live only as long as the process.
func (a *App) ClearCache(ctx context.Context) (bool, error) {
	if a.Redis == nil {
		return false, nil
	}
	return true, cache.NewRedisCache[struct{}](a.Redis, 0, a.cacheNamespace).Invalidate(ctx, "")
}

// HealthChecks returns the dependency checks exposed on /healthz.
func (a *App) HealthChecks() map[string]platformhandler.Check {
	checks := map[string]platformhandler.Check{
		"storage": func(ctx context.Context) error {
			sqlDB, err := a.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.Redis != nil {
		checks["cache"] = func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		}
	}
	return checks
}
