// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"stock_tracker/internal/config"
	"stock_tracker/internal/feature/market/adapters/alphavantage"
	"stock_tracker/internal/feature/market/domain/entity"
	"stock_tracker/internal/feature/market/usecase"
	"stock_tracker/internal/platform/cache"
	infrahttp "stock_tracker/internal/platform/http"
	"stock_tracker/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured AlphaVantageMarket with HTTP client and call pacing.
func NewMarket(cfg *config.Config) *alphavantage.AlphaVantageMarket {
	avCfg := alphavantage.Config{
		APIKey:  cfg.AlphaVantage.APIKey,
		BaseURL: cfg.AlphaVantage.BaseURL,
		Timeout: cfg.AlphaVantage.Timeout,
	}
	httpClient := infrahttp.NewHTTPClient(avCfg.Timeout)

	var limiter ratelimiter.Waiter
	if n := cfg.AlphaVantage.CallsPerMinute; n != nil && *n > 0 {
		limiter = ratelimiter.NewRateLimiter(*n, time.Minute)
	}
	return alphavantage.NewAlphaVantageMarket(avCfg, httpClient, limiter)
}

// NewCaches returns Redis-backed caches when rdb is non-nil, otherwise in-process ones.
func NewCaches(cfg *config.Config, rdb *redis.Client) usecase.Caches {
	ttl := cfg.Cache.TTL
	if rdb != nil {
		ns := cfg.Cache.Namespace
		return usecase.Caches{
			Quotes:  cache.NewRedisCache[entity.Quote](rdb, ttl, ns),
			History: cache.NewRedisCache[[]entity.HistoricalPoint](rdb, ttl, ns),
			Search:  cache.NewRedisCache[[]entity.SearchMatch](rdb, ttl, ns),
		}
	}
	return usecase.Caches{
		Quotes:  cache.NewMemoryCache[entity.Quote](ttl),
		History: cache.NewMemoryCache[[]entity.HistoricalPoint](ttl),
		Search:  cache.NewMemoryCache[[]entity.SearchMatch](ttl),
	}
}

// NewMarketUsecase wires the provider client and caches into a MarketUsecase.
func NewMarketUsecase(cfg *config.Config, rdb *redis.Client) *usecase.MarketUsecase {
	return usecase.NewMarketUsecase(NewMarket(cfg), NewCaches(cfg, rdb))
}
