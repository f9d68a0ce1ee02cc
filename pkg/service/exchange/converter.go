package exchange

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/fxconv/pkg/money"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
	"github.com/shopspring/decimal"
)

// defaultDisplayDecimals is used for targets without directory metadata.
const defaultDisplayDecimals = 2

// Request describes one conversion invocation.
type Request struct {
	Source  money.Code
	Targets []money.Code
	Amount  float64
	// Force refetches the currency directory.
	Force bool
}

// Conversion is the result of converting an amount into one target.
type Conversion struct {
	Source money.Code
	Target money.Code
	Amount decimal.Decimal
	Result decimal.Decimal
	Rate   float64
	// Decimals is the target's display precision.
	Decimals int
}

// FormattedAmount renders Amount with two decimals.
func (c Conversion) FormattedAmount() string {
	return money.Display(c.Amount, defaultDisplayDecimals)
}

// FormattedResult renders Result with the target's precision.
func (c Conversion) FormattedResult() string {
	return money.Display(c.Result, c.Decimals)
}

// Listing holds every known rate for a source currency.
type Listing struct {
	Source    money.Code
	Rates     money.RateMap
	Directory money.Directory
	// Unresolved lists directory codes the remote had no rate for.
	Unresolved []money.Code
}

// Converter validates requests, looks up rates and multiplies.
type Converter struct {
	rates      *RateService
	directory  *DirectoryService
	credential string
	logger     *slog.Logger
}

// NewConverter creates a Converter. credential is the remote API key; an empty
// credential makes every call fail with exchange.ErrInvalidCredential.
func NewConverter(
	rates *RateService,
	directory *DirectoryService,
	credential string,
	opts ...Option,
) *Converter {
	o := newOptions("converter", opts)
	return &Converter{
		rates:      rates,
		directory:  directory,
		credential: strings.TrimSpace(credential),
		logger:     o.logger,
	}
}

// Convert converts req.Amount from req.Source into each target.
//
// Targets without a rate do not abort the call: the resolved conversions are
// returned together with an *exchange.UnresolvedError.
func (c *Converter) Convert(ctx context.Context, req Request) ([]Conversion, error) {
	if c.credential == "" {
		return nil, exchange.ErrInvalidCredential
	}
	targets := money.Dedupe(req.Targets)
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	dir, err := c.directory.Validate(ctx, req.Source, targets, req.Force)
	if err != nil {
		return nil, err
	}

	res, err := c.rates.Rates(ctx, req.Source, targets)
	if err != nil {
		return nil, err
	}

	amount := money.NormalizeAmount(req.Amount)
	conversions := make([]Conversion, 0, len(targets))
	for _, target := range targets {
		rate, ok := res.Rates.Rate(target)
		if !ok {
			continue
		}
		conversions = append(conversions, Conversion{
			Source:   req.Source,
			Target:   target,
			Amount:   amount,
			Result:   money.Convert(amount, rate),
			Rate:     rate,
			Decimals: displayDecimals(dir, target),
		})
	}

	c.logger.Debug("Converted amount",
		"source", req.Source,
		"amount", amount.String(),
		"targets", len(targets),
		"converted", len(conversions),
		"from_cache", res.FromCache,
	)
	return conversions, res.Err()
}

// List returns the rate of source against every currency in the directory.
func (c *Converter) List(ctx context.Context, source money.Code, force bool) (*Listing, error) {
	if c.credential == "" {
		return nil, exchange.ErrInvalidCredential
	}

	dir, err := c.directory.Validate(ctx, source, nil, force)
	if err != nil {
		return nil, err
	}

	res, err := c.rates.Rates(ctx, source, dir.Codes())
	if err != nil {
		return nil, err
	}

	return &Listing{
		Source:     source,
		Rates:      res.Rates,
		Directory:  dir,
		Unresolved: res.Unresolved,
	}, nil
}

func displayDecimals(dir money.Directory, code money.Code) int {
	if cur, ok := dir[code]; ok && cur.DecimalDigits >= 0 {
		return cur.DecimalDigits
	}
	return defaultDisplayDecimals
}
