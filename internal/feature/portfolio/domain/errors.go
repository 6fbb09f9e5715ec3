// Package domain defines domain-level errors for the portfolio feature.
package domain

import "errors"

// ErrMalformedState indicates that the persisted portfolio could not be decoded.
// It is returned at ledger construction and is not recoverable.
var ErrMalformedState = errors.New("malformed persisted portfolio")
