// Package entity defines the domain models for the portfolio feature.
package entity

import "github.com/shopspring/decimal"

// Position is an owned holding of one symbol.
// AveragePrice is the per-share cost basis across every buy merged into the position.
type Position struct {
	Symbol       string          `json:"symbol"`
	Shares       decimal.Decimal `json:"shares"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	PurchaseDate string          `json:"purchaseDate"`
}

// Cost returns Shares * AveragePrice.
func (p Position) Cost() decimal.Decimal {
	return p.Shares.Mul(p.AveragePrice)
}
