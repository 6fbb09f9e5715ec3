// Package entity defines the domain models for the market feature.
package entity

import "github.com/shopspring/decimal"

// Quote is a point-in-time price snapshot for a symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"` // percent value, "1.25%" is stored as 1.25
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Open          decimal.Decimal `json:"open"`
	PreviousClose decimal.Decimal `json:"previousClose"`
	Volume        int64           `json:"volume"`
}

// HistoricalPoint is one trading day's closing price.
type HistoricalPoint struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Close decimal.Decimal `json:"close"`
}

// SearchMatch is one entry of a symbol search result.
type SearchMatch struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Region      string `json:"region"`
	MarketOpen  string `json:"marketOpen"`
	MarketClose string `json:"marketClose"`
	Timezone    string `json:"timezone"`
	Currency    string `json:"currency"`
	MatchScore  string `json:"matchScore"`
}
