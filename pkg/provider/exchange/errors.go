package exchange

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/amirasaad/fxconv/pkg/money"
)

// Common errors for exchange operations
var (
	// ErrRemoteRejected indicates the rate service refused the request with a structured error.
	ErrRemoteRejected = errors.New("rate service rejected the request")

	// ErrNoData indicates the rate service was unreachable or answered with something unusable.
	ErrNoData = errors.New("no exchange rate data available")

	// ErrUnresolvedTarget indicates a requested code has no rate even after fetching.
	ErrUnresolvedTarget = errors.New("cannot exchange")

	// ErrInvalidCredential indicates a missing or empty API key.
	ErrInvalidCredential = errors.New("invalid API key, please provide a valid API_KEY environment variable")

	// ErrUnknownCurrency indicates a code that is not in the currency directory.
	ErrUnknownCurrency = errors.New("unknown currency code")
)

// APIError is the error payload returned by the rate service.
type APIError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
	Info    string              `json:"info,omitempty"`
}

// Error renders the payload as a multi-line message, fields in lexical order.
func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ApiError: %s\n", e.Message)
	b.WriteString("Errors:\n")
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(&b, " - %s: %s\n", f, strings.Join(e.Errors[f], ", "))
	}
	return b.String()
}

// RejectedError wraps an APIError so that errors.Is(err, ErrRemoteRejected) holds.
type RejectedError struct {
	API *APIError
}

func (e *RejectedError) Error() string {
	if e.API == nil {
		return ErrRemoteRejected.Error()
	}
	return e.API.Error()
}

func (e *RejectedError) Unwrap() []error {
	if e.API == nil {
		return []error{ErrRemoteRejected}
	}
	return []error{ErrRemoteRejected, e.API}
}

// NoDataError wraps the transport or decoding failure behind ErrNoData.
type NoDataError struct {
	Err error
}

func (e *NoDataError) Error() string {
	if e.Err == nil {
		return ErrNoData.Error()
	}
	return ErrNoData.Error() + ": " + e.Err.Error()
}

func (e *NoDataError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNoData}
	}
	return []error{ErrNoData, e.Err}
}

// UnresolvedError lists the requested targets that have no rate for Source.
type UnresolvedError struct {
	Source money.Code
	Codes  []money.Code
}

func (e *UnresolvedError) Error() string {
	pairs := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		pairs[i] = fmt.Sprintf("'%s' - '%s'", e.Source, c)
	}
	return fmt.Sprintf("%s: %s", ErrUnresolvedTarget, strings.Join(pairs, ", "))
}

func (e *UnresolvedError) Unwrap() error {
	return ErrUnresolvedTarget
}
