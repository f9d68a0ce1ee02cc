package exchange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/fxconv/pkg/money"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
)

var (
	// ErrNoTargets is returned when no target currency was requested.
	ErrNoTargets = errors.New("at least one target currency is required")
)

// InvalidCodeError reports codes missing from the currency directory.
type InvalidCodeError struct {
	Source money.Code
	// Codes holds the unknown target codes. It is empty when the source itself is unknown.
	Codes []money.Code
}

func (e *InvalidCodeError) Error() string {
	if len(e.Codes) == 0 {
		return fmt.Sprintf("'%s' is not a valid currency code", e.Source)
	}
	codes := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		codes[i] = c.String()
	}
	return fmt.Sprintf(
		"these target currencies are invalid or cannot be exchanged for '%s': '%s'",
		e.Source, strings.Join(codes, ", "),
	)
}

func (e *InvalidCodeError) Unwrap() error {
	return exchange.ErrUnknownCurrency
}
