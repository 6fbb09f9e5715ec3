package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedMatch struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

func TestNewRedisCache_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			expectedTTL:       DefaultTTL,
			expectedNamespace: "stock",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewRedisCache[string](nil, tt.ttl, tt.namespace)
			assert.Equal(t, tt.expectedTTL, c.ttl)
			assert.Equal(t, tt.expectedNamespace, c.namespace)
		})
	}
}

func TestRedisCache_GetHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []cachedMatch{{Symbol: "IBM", Name: "International Business Machines"}}
	b, _ := json.Marshal(cached)
	mock.ExpectGet("stock:search-IBM").SetVal(string(b))

	c := NewRedisCache[[]cachedMatch](rdb, 30*time.Minute, "stock")
	got, ok := c.Get("search-IBM")

	require.True(t, ok)
	assert.Equal(t, cached, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("stock:quote-AAPL").RedisNil()

	c := NewRedisCache[cachedMatch](rdb, 30*time.Minute, "stock")
	_, ok := c.Get("quote-AAPL")

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("stock:quote-AAPL").SetErr(errors.New("connection reset"))

	c := NewRedisCache[cachedMatch](rdb, 30*time.Minute, "stock")
	_, ok := c.Get("quote-AAPL")

	assert.False(t, ok, "read failures are treated as a miss")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetCorrupted(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("stock:quote-AAPL").SetVal("invalid json")
	mock.ExpectDel("stock:quote-AAPL").SetVal(1)

	c := NewRedisCache[cachedMatch](rdb, 30*time.Minute, "stock")
	_, ok := c.Get("quote-AAPL")

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Set(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	value := cachedMatch{Symbol: "IBM", Name: "IBM"}
	b, _ := json.Marshal(value)
	mock.ExpectSet("stock:quote-IBM", b, 30*time.Minute).SetVal("OK")

	c := NewRedisCache[cachedMatch](rdb, 30*time.Minute, "stock")
	c.Set("quote-IBM", value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SetEscapesKey(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	value := []cachedMatch{}
	b, _ := json.Marshal(value)
	mock.ExpectSet("stock:search-bank+of+america", b, 30*time.Minute).SetVal("OK")

	c := NewRedisCache[[]cachedMatch](rdb, 30*time.Minute, "stock")
	c.Set("search-bank of america", value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Invalidate(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "stock:history-AAPL-*", 200).SetVal([]string{"stock:history-AAPL-30", "stock:history-AAPL-90"}, 0)
	mock.ExpectDel("stock:history-AAPL-30", "stock:history-AAPL-90").SetVal(2)

	c := NewRedisCache[cachedMatch](rdb, 30*time.Minute, "stock")
	err := c.Invalidate(context.Background(), "history-AAPL-")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"AAPL", "AAPL"},
		{"history-AAPL-30", "history-AAPL-30"},
		{"BRK A", "BRK+A"},
		{"key:value", "key%3Avalue"},
		{"a_b", "a_b"},
		{"a*b?[c]", "a%2Ab%3F%5Bc%5D"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, safe(tt.input))
		})
	}
}

func TestSafe_DistinctInputsStayDistinct(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"search-a b", "search-a_b", "search-a:b", "search-a+b", "search-a%20b", "search-a+b ",
	}
	seen := map[string]string{}
	for _, in := range inputs {
		out := safe(in)
		if prev, ok := seen[out]; ok {
			t.Fatalf("safe(%q) and safe(%q) both map to %q", prev, in, out)
		}
		seen[out] = in
	}
}

func TestRedisCache_SimilarQueriesDoNotCollide(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	spaced, _ := json.Marshal([]cachedMatch{{Symbol: "SPACED"}})
	mock.ExpectSet("stock:search-a+b", spaced, 30*time.Minute).SetVal("OK")
	mock.ExpectGet("stock:search-a_b").RedisNil()

	c := NewRedisCache[[]cachedMatch](rdb, 30*time.Minute, "stock")
	c.Set("search-a b", []cachedMatch{{Symbol: "SPACED"}})

	_, ok := c.Get("search-a_b")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_InvalidateEscapesPrefix(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "stock:search-bank+of*", 200).SetVal([]string{"stock:search-bank+of+america"}, 0)
	mock.ExpectDel("stock:search-bank+of+america").SetVal(1)

	c := NewRedisCache[[]cachedMatch](rdb, 30*time.Minute, "stock")
	require.NoError(t, c.Invalidate(context.Background(), "search-bank of"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
