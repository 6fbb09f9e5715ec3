// Package handler provides HTTP handlers for the watchlist feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_tracker/internal/feature/watchlist/domain/entity"
	"stock_tracker/internal/feature/watchlist/transport/http/dto"
)

// WatchlistLedger defines the ledger operations used by the handler.
type WatchlistLedger interface {
	Add(ctx context.Context, item entity.WatchlistItem) (bool, error)
	Remove(ctx context.Context, symbol string) error
	Contains(symbol string) bool
	Items() []entity.WatchlistItem
}

// WatchlistHandler serves the watchlist endpoints.
type WatchlistHandler struct {
	ledger WatchlistLedger
}

// NewWatchlistHandler creates a WatchlistHandler.
func NewWatchlistHandler(ledger WatchlistLedger) *WatchlistHandler {
	return &WatchlistHandler{ledger: ledger}
}

// List handles GET /watchlist.
func (h *WatchlistHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, toItemsRes(h.ledger.Items()))
}

// Add handles POST /watchlist. A symbol already tracked is answered with 200 and left unchanged.
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("add watchlist item validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item := entity.WatchlistItem{Symbol: strings.ToUpper(strings.TrimSpace(req.Symbol)), Name: req.Name}
	if item.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	added, err := h.ledger.Add(c.Request.Context(), item)
	if err != nil {
		slog.Error("failed to add watchlist item", "symbol", item.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, toItemsRes(h.ledger.Items()))
}

// Remove handles DELETE /watchlist/:symbol.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	if err := h.ledger.Remove(c.Request.Context(), symbol); err != nil {
		slog.Error("failed to remove watchlist item", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Contains handles GET /watchlist/:symbol.
func (h *WatchlistHandler) Contains(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	c.JSON(http.StatusOK, dto.ContainsRes{Symbol: symbol, Watched: h.ledger.Contains(symbol)})
}

func toItemsRes(items []entity.WatchlistItem) []dto.ItemRes {
	out := make([]dto.ItemRes, 0, len(items))
	for _, i := range items {
		out = append(out, dto.ItemRes(i))
	}
	return out
}
