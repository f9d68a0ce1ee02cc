package exchange

import "fmt"

// Kind tags the outcome of a single remote call.
type Kind int

const (
	// KindSuccess carries a decoded payload.
	KindSuccess Kind = iota
	// KindRejected carries the remote's structured refusal.
	KindRejected
	// KindFailure carries a transport or decoding failure.
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindRejected:
		return "rejected"
	case KindFailure:
		return "failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the tagged outcome of one call to an Exchange.
// Exactly one of Value, Rejection or Err is meaningful, as selected by Kind.
type Result[T any] struct {
	Kind      Kind
	Value     T
	Rejection *APIError
	Err       error
}

// Success wraps a decoded payload.
func Success[T any](v T) Result[T] {
	return Result[T]{Kind: KindSuccess, Value: v}
}

// Rejected wraps a structured remote error.
func Rejected[T any](apiErr *APIError) Result[T] {
	return Result[T]{Kind: KindRejected, Rejection: apiErr}
}

// Failure wraps a transport or parse error.
func Failure[T any](err error) Result[T] {
	return Result[T]{Kind: KindFailure, Err: err}
}

// AsError converts a non-successful result into the error callers should
// propagate: a rejection wraps ErrRemoteRejected and the *APIError, a failure
// wraps ErrNoData and the cause. It returns nil for a success.
func (r Result[T]) AsError() error {
	switch r.Kind {
	case KindSuccess:
		return nil
	case KindRejected:
		return &RejectedError{API: r.Rejection}
	default:
		return &NoDataError{Err: r.Err}
	}
}
