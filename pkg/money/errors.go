package money

import "errors"

// Common money package errors
var (
	// ErrInvalidRate is returned when a rate is zero, negative or not a finite number.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrCodeMismatch is returned when a Currency record disagrees with the key it is stored under.
	ErrCodeMismatch = errors.New("currency code does not match its key")
)
