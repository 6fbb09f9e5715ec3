package handler_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_tracker/internal/feature/portfolio/domain/entity"
	"stock_tracker/internal/feature/portfolio/transport/handler"
	"stock_tracker/internal/feature/portfolio/usecase"
)

type memStore struct {
	data    map[string][]byte
	saveErr error
}

func (m *memStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Save(ctx context.Context, key string, value []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = value
	return nil
}

func setup(t *testing.T, seed ...entity.Position) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memStore{data: map[string][]byte{}}
	ledger, err := usecase.NewPortfolioLedger(context.Background(), store)
	require.NoError(t, err)
	for _, p := range seed {
		require.NoError(t, ledger.Add(context.Background(), p))
	}

	h := handler.NewPortfolioHandler(ledger)
	r := gin.New()
	r.GET("/portfolio", h.List)
	r.POST("/portfolio", h.Add)
	r.PUT("/portfolio/:symbol", h.UpdateShares)
	r.DELETE("/portfolio/:symbol", h.Remove)
	r.GET("/portfolio/total", h.Total)
	return r, store
}

func do(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func pos(symbol, shares, avg string) entity.Position {
	return entity.Position{
		Symbol:       symbol,
		Shares:       decimal.RequireFromString(shares),
		AveragePrice: decimal.RequireFromString(avg),
		PurchaseDate: "2024-01-01",
	}
}

func TestPortfolioHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "merges into existing position",
			body:           `{"symbol":"aapl","shares":10,"averagePrice":200,"purchaseDate":"2024-03-01"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   `[{"symbol":"AAPL","shares":20,"averagePrice":150,"purchaseDate":"2024-01-01","cost":3000}]`,
		},
		{
			name:           "appends new symbol",
			body:           `{"symbol":"MSFT","shares":"2.5","averagePrice":"100","purchaseDate":"2024-03-01"}`,
			expectedStatus: http.StatusCreated,
			expectedBody: `[{"symbol":"AAPL","shares":10,"averagePrice":100,"purchaseDate":"2024-01-01","cost":1000},
				{"symbol":"MSFT","shares":2.5,"averagePrice":100,"purchaseDate":"2024-03-01","cost":250}]`,
		},
		{
			name:           "missing symbol",
			body:           `{"shares":1,"averagePrice":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "whitespace symbol",
			body:           `{"symbol":"  ","shares":1,"averagePrice":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"symbol is required"}`,
		},
		{
			name:           "bad date",
			body:           `{"symbol":"MSFT","shares":1,"averagePrice":1,"purchaseDate":"01/02/2024"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "non-positive shares",
			body:           `{"symbol":"MSFT","shares":0,"averagePrice":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"shares must be positive and averagePrice non-negative"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setup(t, pos("AAPL", "10", "100"))
			w := do(r, http.MethodPost, "/portfolio", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPortfolioHandler_AddDefaultsPurchaseDate(t *testing.T) {
	r, _ := setup(t)
	w := do(r, http.MethodPost, "/portfolio", `{"symbol":"IBM","shares":1,"averagePrice":170}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Regexp(t, `"purchaseDate":"\d{4}-\d{2}-\d{2}"`, w.Body.String())
}

func TestPortfolioHandler_UpdateShares(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		body         string
		expectedBody string
	}{
		{
			name:         "sets shares",
			url:          "/portfolio/aapl",
			body:         `{"shares":4}`,
			expectedBody: `[{"symbol":"AAPL","shares":4,"averagePrice":100,"purchaseDate":"2024-01-01","cost":400}]`,
		},
		{
			name:         "zero removes",
			url:          "/portfolio/AAPL",
			body:         `{"shares":0}`,
			expectedBody: `[]`,
		},
		{
			name:         "unknown symbol ignored",
			url:          "/portfolio/TSLA",
			body:         `{"shares":3}`,
			expectedBody: `[{"symbol":"AAPL","shares":10,"averagePrice":100,"purchaseDate":"2024-01-01","cost":1000}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setup(t, pos("AAPL", "10", "100"))
			w := do(r, http.MethodPut, tt.url, tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPortfolioHandler_RemoveAndTotal(t *testing.T) {
	r, _ := setup(t, pos("AAPL", "1", "50"), pos("MSFT", "3", "50"))

	w := do(r, http.MethodGet, "/portfolio/total", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalInvestment":200}`, w.Body.String())

	w = do(r, http.MethodDelete, "/portfolio/msft", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/portfolio", "")
	assert.JSONEq(t, `[{"symbol":"AAPL","shares":1,"averagePrice":50,"purchaseDate":"2024-01-01","cost":50}]`, w.Body.String())

	w = do(r, http.MethodGet, "/portfolio/total", "")
	assert.JSONEq(t, `{"totalInvestment":50}`, w.Body.String())
}

func TestPortfolioHandler_StorageFailure(t *testing.T) {
	r, store := setup(t)
	store.saveErr = errors.New("disk full")

	w := do(r, http.MethodPost, "/portfolio", `{"symbol":"IBM","shares":1,"averagePrice":1}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"save portfolio: disk full"}`, w.Body.String())
}
