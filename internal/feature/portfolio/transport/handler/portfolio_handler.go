// Package handler provides HTTP handlers for the portfolio feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stock_tracker/internal/feature/portfolio/domain/entity"
	"stock_tracker/internal/feature/portfolio/transport/http/dto"
)

// PortfolioLedger defines the ledger operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PortfolioLedger interface {
	Add(ctx context.Context, item entity.Position) error
	UpdateShares(ctx context.Context, symbol string, shares decimal.Decimal) error
	Remove(ctx context.Context, symbol string) error
	Positions() []entity.Position
	TotalInvestment() decimal.Decimal
}

// PortfolioHandler serves the portfolio endpoints.
type PortfolioHandler struct {
	ledger PortfolioLedger
	now    func() time.Time
}

// NewPortfolioHandler creates a PortfolioHandler.
func NewPortfolioHandler(ledger PortfolioLedger) *PortfolioHandler {
	return &PortfolioHandler{ledger: ledger, now: time.Now}
}

// List returns all positions in insertion order.
//
// GET /portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, toPositionsRes(h.ledger.Positions()))
}

// Add records a buy and returns the resulting portfolio.
//
// POST /portfolio
func (h *PortfolioHandler) Add(c *gin.Context) {
	var req dto.AddPositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("add position validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	if !req.Shares.IsPositive() || req.AveragePrice.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shares must be positive and averagePrice non-negative"})
		return
	}
	if req.PurchaseDate == "" {
		req.PurchaseDate = h.now().Format(time.DateOnly)
	}

	item := entity.Position{
		Symbol:       symbol,
		Shares:       req.Shares,
		AveragePrice: req.AveragePrice,
		PurchaseDate: req.PurchaseDate,
	}
	if err := h.ledger.Add(c.Request.Context(), item); err != nil {
		slog.Error("failed to add position", "symbol", item.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toPositionsRes(h.ledger.Positions()))
}

// UpdateShares sets the share count of a held symbol.
//
// PUT /portfolio/:symbol
func (h *PortfolioHandler) UpdateShares(c *gin.Context) {
	var req dto.UpdateSharesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	symbol := strings.ToUpper(c.Param("symbol"))
	if err := h.ledger.UpdateShares(c.Request.Context(), symbol, req.Shares); err != nil {
		slog.Error("failed to update shares", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toPositionsRes(h.ledger.Positions()))
}

// Remove drops a position.
//
// DELETE /portfolio/:symbol
func (h *PortfolioHandler) Remove(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	if err := h.ledger.Remove(c.Request.Context(), symbol); err != nil {
		slog.Error("failed to remove position", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Total returns the summed cost basis.
//
// GET /portfolio/total
func (h *PortfolioHandler) Total(c *gin.Context) {
	c.JSON(http.StatusOK, dto.TotalRes{TotalInvestment: h.ledger.TotalInvestment().InexactFloat64()})
}

func toPositionsRes(positions []entity.Position) []dto.PositionRes {
	out := make([]dto.PositionRes, 0, len(positions))
	for _, p := range positions {
		out = append(out, dto.PositionRes{
			Symbol:       p.Symbol,
			Shares:       p.Shares.InexactFloat64(),
			AveragePrice: p.AveragePrice.InexactFloat64(),
			PurchaseDate: p.PurchaseDate,
			Cost:         p.Cost().InexactFloat64(),
		})
	}
	return out
}
