// Package handler provides HTTP handlers for the market feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_tracker/internal/feature/market/domain"
	"stock_tracker/internal/feature/market/domain/entity"
	"stock_tracker/internal/feature/market/transport/http/dto"
)

// MarketUsecase defines the market reads used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MarketUsecase interface {
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
	GetHistory(ctx context.Context, symbol string, days int) ([]entity.HistoricalPoint, error)
	Search(ctx context.Context, query string) ([]entity.SearchMatch, error)
}

// MarketHandler serves quote, history and search requests.
type MarketHandler struct {
	uc MarketUsecase
}

// NewMarketHandler creates a MarketHandler.
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// GetQuote returns the latest quote for a symbol.
//
// GET /quotes/:symbol
func (h *MarketHandler) GetQuote(c *gin.Context) {
	q, err := h.uc.GetQuote(c.Request.Context(), strings.ToUpper(c.Param("symbol")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(q))
}

// GetHistory returns daily closes, oldest first.
//
// GET /history/:symbol?days=30
func (h *MarketHandler) GetHistory(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}

	points, err := h.uc.GetHistory(c.Request.Context(), strings.ToUpper(c.Param("symbol")), days)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.HistoricalPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.HistoricalPointResponse{Date: p.Date, Close: p.Close.InexactFloat64()})
	}
	c.JSON(http.StatusOK, out)
}

// Search returns symbol matches for a keyword.
//
// GET /search?q=tesco
func (h *MarketHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	matches, err := h.uc.Search(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.SearchMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.SearchMatchResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

func writeError(c *gin.Context, err error) {
	var te *domain.TransportError
	switch {
	case errors.Is(err, domain.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &te):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toQuoteResponse(q entity.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		Symbol:        q.Symbol,
		Price:         q.Price.InexactFloat64(),
		Change:        q.Change.InexactFloat64(),
		ChangePercent: q.ChangePercent.InexactFloat64(),
		High:          q.High.InexactFloat64(),
		Low:           q.Low.InexactFloat64(),
		Open:          q.Open.InexactFloat64(),
		PreviousClose: q.PreviousClose.InexactFloat64(),
		Volume:        q.Volume,
	}
}
