// Package exchange defines the contract between the rate orchestration layer
// and a remote rate source.
package exchange

import (
	"context"

	"github.com/amirasaad/fxconv/pkg/money"
)

// Exchange is a remote source of exchange rates and currency metadata.
// Each call performs exactly one remote request and classifies its outcome.
type Exchange interface {
	// LatestRates fetches the latest rates of base against targets.
	LatestRates(ctx context.Context, base money.Code, targets []money.Code) Result[money.RateMap]

	// Currencies fetches the currency directory. An empty base asks for the global directory.
	Currencies(ctx context.Context, base money.Code) Result[money.Directory]

	// Name returns the provider's name for logging and identification.
	Name() string
}
