// Package domain defines domain-level errors for the watchlist feature.
package domain

import "errors"

// ErrMalformedState indicates that the persisted watchlist could not be decoded.
var ErrMalformedState = errors.New("malformed persisted watchlist")
