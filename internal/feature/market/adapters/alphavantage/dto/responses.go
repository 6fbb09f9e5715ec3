// Package dto defines data transfer objects for Alpha Vantage API responses.
package dto

import (
	"encoding/json"
	"errors"
)

// ProviderMessages are the top-level fields Alpha Vantage uses instead of an HTTP error status.
type ProviderMessages struct {
	Note         string `json:"Note,omitempty"`        // rate limit exceeded
	Information  string `json:"Information,omitempty"` // rate limit or premium endpoint
	ErrorMessage string `json:"Error Message,omitempty"`
}

// Err returns the provider message as an error, or nil when none is set.
func (m ProviderMessages) Err() error {
	switch {
	case m.ErrorMessage != "":
		return errors.New(m.ErrorMessage)
	case m.Note != "":
		return errors.New(m.Note)
	case m.Information != "":
		return errors.New(m.Information)
	}
	return nil
}

// GlobalQuote is the "Global Quote" object of a GLOBAL_QUOTE response.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// GlobalQuoteResponse represents the JSON response of function=GLOBAL_QUOTE.
type GlobalQuoteResponse struct {
	ProviderMessages
	GlobalQuote *GlobalQuote `json:"Global Quote"`
}

// DailyValues is one day of a TIME_SERIES_DAILY series.
type DailyValues struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// TimeSeriesDailyResponse represents the JSON response of function=TIME_SERIES_DAILY.
// The series is kept raw so it can be walked in the order the provider sent it.
type TimeSeriesDailyResponse struct {
	ProviderMessages
	TimeSeries json.RawMessage `json:"Time Series (Daily)"`
}

// SymbolMatch is one element of "bestMatches" in a SYMBOL_SEARCH response.
type SymbolMatch struct {
	Symbol      string `json:"1. symbol"`
	Name        string `json:"2. name"`
	Type        string `json:"3. type"`
	Region      string `json:"4. region"`
	MarketOpen  string `json:"5. marketOpen"`
	MarketClose string `json:"6. marketClose"`
	Timezone    string `json:"7. timezone"`
	Currency    string `json:"8. currency"`
	MatchScore  string `json:"9. matchScore"`
}

// SymbolSearchResponse represents the JSON response of function=SYMBOL_SEARCH.
type SymbolSearchResponse struct {
	ProviderMessages
	BestMatches []SymbolMatch `json:"bestMatches"`
}
