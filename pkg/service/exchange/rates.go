// Package exchange orchestrates cached rate lookups, the currency directory
// and conversions on top of a cache.Store and a remote exchange.Exchange.
package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fxconv/pkg/cache"
	"github.com/amirasaad/fxconv/pkg/money"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
)

// RatesResult is the outcome of a rate lookup.
type RatesResult struct {
	Source money.Code
	// Rates is the full record stored for the current hour, which may hold
	// more codes than were requested.
	Rates money.RateMap
	// Unresolved lists requested targets that have no rate even after fetching.
	Unresolved []money.Code
	// FromCache is true when no remote call was made.
	FromCache bool
	// Fetched lists the targets that were requested from the remote.
	Fetched []money.Code
}

// Err returns an *exchange.UnresolvedError when some targets are unresolved.
func (r *RatesResult) Err() error {
	if len(r.Unresolved) == 0 {
		return nil
	}
	return &exchange.UnresolvedError{Source: r.Source, Codes: r.Unresolved}
}

// RateService serves rates from the hourly cache, fetching only the targets
// the cached record does not hold yet.
type RateService struct {
	store    cache.Store
	exchange exchange.Exchange
	logger   *slog.Logger
	now      func() time.Time
}

// NewRateService creates a RateService.
func NewRateService(store cache.Store, ex exchange.Exchange, opts ...Option) *RateService {
	o := newOptions("rates", opts)
	return &RateService{
		store:    store,
		exchange: ex,
		logger:   o.logger,
		now:      o.now,
	}
}

// Rates returns rates of source for targets.
//
// A corrupted cache record, a remote rejection and an unreachable remote are
// returned as errors. Targets the remote does not know are reported in
// RatesResult.Unresolved instead.
func (s *RateService) Rates(ctx context.Context, source money.Code, targets []money.Code) (*RatesResult, error) {
	targets = money.Dedupe(targets)
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	key := cache.NewKey(cache.NamespaceRates, source.String(), s.now())
	logger := s.logger.With("source", source, "key", key.String())

	var cached money.RateMap
	found, err := s.store.Read(ctx, key, &cached)
	if err != nil {
		return nil, err
	}

	result := &RatesResult{Source: source}
	switch {
	case !found:
		logger.Debug("Rates not cached, fetching all targets", "targets", targets)
		result.Fetched = targets
		result.Rates, err = s.fetchAndStore(ctx, key, source, targets, nil)
	default:
		missing := cached.Missing(targets)
		if len(missing) == 0 {
			logger.Debug("Serving rates from cache", "targets", targets)
			result.FromCache = true
			result.Rates = cached
			break
		}
		logger.Debug("Rates partially cached, fetching missing targets", "missing", missing)
		result.Fetched = missing
		result.Rates, err = s.fetchAndStore(ctx, key, source, missing, cached)
	}
	if err != nil {
		return nil, err
	}

	result.Unresolved = result.Rates.Missing(targets)
	if len(result.Unresolved) > 0 {
		logger.Warn("Some targets have no rate", "unresolved", result.Unresolved)
	}
	return result, nil
}

// fetchAndStore requests want from the remote, merges the answer into cached
// without overwriting existing entries and writes the merged record back.
// A failed write is logged and does not fail the lookup.
func (s *RateService) fetchAndStore(
	ctx context.Context,
	key cache.Key,
	source money.Code,
	want []money.Code,
	cached money.RateMap,
) (money.RateMap, error) {
	res := s.exchange.LatestRates(ctx, source, want)
	if res.Kind != exchange.KindSuccess {
		err := res.AsError()
		s.logger.Warn("Failed to fetch rates",
			"source", source,
			"provider", s.exchange.Name(),
			"kind", res.Kind,
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", source, err)
	}

	merged := cached.Merge(res.Value)
	if err := s.store.Write(ctx, key, merged); err != nil {
		s.logger.Warn("Failed to cache rates", "key", key.String(), "error", err)
	} else {
		s.logger.Debug("Rates cached", "key", key.String(), "count", len(merged))
	}
	return merged, nil
}
