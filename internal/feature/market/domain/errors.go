// Package domain defines domain-level errors for the market feature.
package domain

import (
	"errors"
	"fmt"
)

// ErrNoData indicates that the provider answered but the response carried no usable payload
// for the requested operation (unknown symbol, empty series).
var ErrNoData = errors.New("no data available")

// TransportError reports a failed provider call: network failure, non-2xx status,
// undecodable body or a provider-side error message such as a rate-limit note.
type TransportError struct {
	Op         string // provider function, e.g. "GLOBAL_QUOTE"
	StatusCode int    // HTTP status, 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("alphavantage %s: http %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("alphavantage %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
