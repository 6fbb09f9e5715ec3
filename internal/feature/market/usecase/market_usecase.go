// Package usecase implements quote, history and symbol-search reads with response caching.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"stock_tracker/internal/feature/market/domain/entity"
)

// DefaultHistoryDays is the history window used when the caller passes 0 or a negative value.
const DefaultHistoryDays = 30

// MarketRepository fetches raw market data from the external provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetQuote returns the current snapshot for symbol, or domain.ErrNoData.
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
	// GetDailySeries returns daily closes in the order the provider sent them.
	GetDailySeries(ctx context.Context, symbol string) ([]entity.HistoricalPoint, error)
	// SearchSymbols returns symbol matches for a free-text query.
	SearchSymbols(ctx context.Context, query string) ([]entity.SearchMatch, error)
}

// Cache is a time-boxed key/value cache. A hit is only reported for fresh entries.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
}

// Caches groups the per-operation caches used by MarketUsecase.
type Caches struct {
	Quotes  Cache[entity.Quote]
	History Cache[[]entity.HistoricalPoint]
	Search  Cache[[]entity.SearchMatch]
}

// MarketUsecase memoizes provider reads per (operation, parameters) key.
// Concurrent misses on the same key are not coalesced; each issues its own provider call.
type MarketUsecase struct {
	market MarketRepository
	caches Caches
}

// NewMarketUsecase creates a MarketUsecase backed by the given provider and caches.
func NewMarketUsecase(market MarketRepository, caches Caches) *MarketUsecase {
	return &MarketUsecase{market: market, caches: caches}
}

// GetQuote returns the quote for symbol, served from cache when fresh.
func (u *MarketUsecase) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	key := "quote-" + symbol
	if q, ok := u.caches.Quotes.Get(key); ok {
		return q, nil
	}

	q, err := u.market.GetQuote(ctx, symbol)
	if err != nil {
		slog.Error("failed to fetch stock quote", "symbol", symbol, "error", err)
		return entity.Quote{}, err
	}

	u.caches.Quotes.Set(key, q)
	return q, nil
}

// GetHistory returns up to days daily closes for symbol, oldest first.
// The window is taken from the head of the provider series (most recent days) before reversing.
func (u *MarketUsecase) GetHistory(ctx context.Context, symbol string, days int) ([]entity.HistoricalPoint, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}

	key := fmt.Sprintf("history-%s-%d", symbol, days)
	if h, ok := u.caches.History.Get(key); ok {
		return h, nil
	}

	series, err := u.market.GetDailySeries(ctx, symbol)
	if err != nil {
		slog.Error("failed to fetch historical data", "symbol", symbol, "days", days, "error", err)
		return nil, err
	}

	n := min(days, len(series))
	out := make([]entity.HistoricalPoint, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = series[i]
	}

	u.caches.History.Set(key, out)
	return out, nil
}

// Search returns symbol matches for query. A provider answer without matches yields an empty slice.
func (u *MarketUsecase) Search(ctx context.Context, query string) ([]entity.SearchMatch, error) {
	key := "search-" + query
	if m, ok := u.caches.Search.Get(key); ok {
		return m, nil
	}

	matches, err := u.market.SearchSymbols(ctx, query)
	if err != nil {
		slog.Error("failed to search stocks", "query", query, "error", err)
		return nil, err
	}
	if matches == nil {
		matches = []entity.SearchMatch{}
	}

	u.caches.Search.Set(key, matches)
	return matches, nil
}
