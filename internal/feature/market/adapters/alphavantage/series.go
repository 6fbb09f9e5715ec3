package alphavantage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"stock_tracker/internal/feature/market/adapters/alphavantage/dto"
)

// dailyBar is a date key and its values, in provider order.
type dailyBar struct {
	Date   string
	Values dto.DailyValues
}

// decodeOrderedSeries walks a JSON object of date -> values without going through a map,
// so the provider's key order (most recent first) is preserved.
func decodeOrderedSeries(raw json.RawMessage) ([]dailyBar, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("time series: expected object, got %v", tok)
	}

	var bars []dailyBar
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		date, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("time series: expected date key, got %v", tok)
		}
		var v dto.DailyValues
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("time series %s: %w", date, err)
		}
		bars = append(bars, dailyBar{Date: date, Values: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return bars, nil
}
