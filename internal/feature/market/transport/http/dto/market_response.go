// Package dto defines the JSON payloads returned by the market handlers.
package dto

// QuoteResponse is the response DTO for a quote.
type QuoteResponse struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Volume        int64   `json:"volume"`
}

// HistoricalPointResponse is one day of a history response.
type HistoricalPointResponse struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// SearchMatchResponse is one symbol search match.
type SearchMatchResponse struct {
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
