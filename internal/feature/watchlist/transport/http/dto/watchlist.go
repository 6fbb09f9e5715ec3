// Package dto defines the request and response payloads of the watchlist handlers.
package dto

import "time"

// AddItemReq is the body of POST /watchlist.
type AddItemReq struct {
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name"`
}

// ItemRes is one watchlist entry.
type ItemRes struct {
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"addedAt"`
}

// ContainsRes answers GET /watchlist/:symbol.
type ContainsRes struct {
	Symbol  string `json:"symbol"`
	Watched bool   `json:"watched"`
}
