// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// WatchlistItem is a symbol the user tracks without owning it.
type WatchlistItem struct {
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"addedAt"`
}
