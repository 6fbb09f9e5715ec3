package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stock_tracker/internal/feature/market/adapters/alphavantage/dto"
	"stock_tracker/internal/feature/market/domain"
	"stock_tracker/internal/feature/market/domain/entity"
	"stock_tracker/internal/feature/market/usecase"
	"stock_tracker/internal/shared/ratelimiter"
)

const (
	fnGlobalQuote  = "GLOBAL_QUOTE"
	fnDailySeries  = "TIME_SERIES_DAILY"
	fnSymbolSearch = "SYMBOL_SEARCH"
)

// AlphaVantageMarket is the MarketRepository implementation backed by the Alpha Vantage API.
type AlphaVantageMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Waiter
}

// Compile-time check that AlphaVantageMarket implements MarketRepository.
var _ usecase.MarketRepository = (*AlphaVantageMarket)(nil)

// NewAlphaVantageMarket creates a client. limiter may be nil to disable call pacing.
func NewAlphaVantageMarket(cfg Config, client *http.Client, limiter ratelimiter.Waiter) *AlphaVantageMarket {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &AlphaVantageMarket{cfg: cfg, client: client, limiter: limiter}
}

// GetQuote fetches the current snapshot for symbol.
func (a *AlphaVantageMarket) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	var body dto.GlobalQuoteResponse
	if err := a.query(ctx, fnGlobalQuote, url.Values{"symbol": {symbol}}, &body); err != nil {
		return entity.Quote{}, err
	}
	if body.GlobalQuote == nil || body.GlobalQuote.Symbol == "" {
		return entity.Quote{}, domain.ErrNoData
	}

	q, err := toQuote(*body.GlobalQuote)
	if err != nil {
		return entity.Quote{}, &domain.TransportError{Op: fnGlobalQuote, Err: err}
	}
	return q, nil
}

// GetDailySeries fetches the compact daily series for symbol, most recent day first.
func (a *AlphaVantageMarket) GetDailySeries(ctx context.Context, symbol string) ([]entity.HistoricalPoint, error) {
	var body dto.TimeSeriesDailyResponse
	params := url.Values{
		"symbol":     {symbol},
		"outputsize": {"compact"},
	}
	if err := a.query(ctx, fnDailySeries, params, &body); err != nil {
		return nil, err
	}

	bars, err := decodeOrderedSeries(body.TimeSeries)
	if err != nil {
		return nil, &domain.TransportError{Op: fnDailySeries, Err: err}
	}
	if len(bars) == 0 {
		return nil, domain.ErrNoData
	}

	points := make([]entity.HistoricalPoint, 0, len(bars))
	for _, b := range bars {
		c, err := decimal.NewFromString(b.Values.Close)
		if err != nil {
			return nil, &domain.TransportError{Op: fnDailySeries, Err: fmt.Errorf("parse close %q: %w", b.Values.Close, err)}
		}
		points = append(points, entity.HistoricalPoint{Date: b.Date, Close: c})
	}
	return points, nil
}

// SearchSymbols fetches symbol matches for query. Missing matches yield an empty slice.
func (a *AlphaVantageMarket) SearchSymbols(ctx context.Context, query string) ([]entity.SearchMatch, error) {
	var body dto.SymbolSearchResponse
	if err := a.query(ctx, fnSymbolSearch, url.Values{"keywords": {query}}, &body); err != nil {
		return nil, err
	}

	out := make([]entity.SearchMatch, 0, len(body.BestMatches))
	for _, m := range body.BestMatches {
		out = append(out, entity.SearchMatch{
			Symbol:      m.Symbol,
			Name:        m.Name,
			Type:        m.Type,
			Region:      m.Region,
			MarketOpen:  m.MarketOpen,
			MarketClose: m.MarketClose,
			Timezone:    m.Timezone,
			Currency:    m.Currency,
			MatchScore:  m.MatchScore,
		})
	}
	return out, nil
}

// providerReply is implemented by every response DTO through the embedded ProviderMessages.
type providerReply interface {
	Err() error
}

// query performs GET {BaseURL}/query?function=fn&...&apikey=KEY and decodes the body into out.
// Any failure along the way is reported as a *domain.TransportError.
func (a *AlphaVantageMarket) query(ctx context.Context, fn string, params url.Values, out providerReply) error {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return &domain.TransportError{Op: fn, Err: err}
		}
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("function", fn)
	q.Set("apikey", a.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(a.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &domain.TransportError{Op: fn, Err: err}
	}

	res, err := a.client.Do(req)
	if err != nil {
		return &domain.TransportError{Op: fn, Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, res.Body)
		return &domain.TransportError{Op: fn, StatusCode: res.StatusCode, Err: errors.New(http.StatusText(res.StatusCode))}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &domain.TransportError{Op: fn, StatusCode: res.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if err := out.Err(); err != nil {
		return &domain.TransportError{Op: fn, StatusCode: res.StatusCode, Err: err}
	}
	return nil
}

// toQuote converts the provider's string fields into a Quote.
func toQuote(g dto.GlobalQuote) (entity.Quote, error) {
	q := entity.Quote{Symbol: g.Symbol}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"price", g.Price, &q.Price},
		{"change", g.Change, &q.Change},
		{"change percent", strings.TrimSuffix(strings.TrimSpace(g.ChangePercent), "%"), &q.ChangePercent},
		{"high", g.High, &q.High},
		{"low", g.Low, &q.Low},
		{"open", g.Open, &q.Open},
		{"previous close", g.PreviousClose, &q.PreviousClose},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return entity.Quote{}, fmt.Errorf("parse %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = d
	}

	vol, err := strconv.ParseInt(g.Volume, 10, 64)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse volume %q: %w", g.Volume, err)
	}
	q.Volume = vol
	return q, nil
}
