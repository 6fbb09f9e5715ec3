// Package dto defines the request and response payloads of the portfolio handlers.
package dto

import "github.com/shopspring/decimal"

// AddPositionReq is the body of POST /portfolio.
// PurchaseDate defaults to the current day when omitted.
type AddPositionReq struct {
	Symbol       string          `json:"symbol" binding:"required"`
	Shares       decimal.Decimal `json:"shares"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	PurchaseDate string          `json:"purchaseDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateSharesReq is the body of PUT /portfolio/:symbol. Zero or negative shares remove the position.
type UpdateSharesReq struct {
	Shares decimal.Decimal `json:"shares"`
}

// PositionRes is one position in a portfolio response.
type PositionRes struct {
	Symbol       string  `json:"symbol"`
	Shares       float64 `json:"shares"`
	AveragePrice float64 `json:"averagePrice"`
	PurchaseDate string  `json:"purchaseDate"`
	Cost         float64 `json:"cost"`
}

// TotalRes is the response of GET /portfolio/total.
type TotalRes struct {
	TotalInvestment float64 `json:"totalInvestment"`
}
