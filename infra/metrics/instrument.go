package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/fxconv/pkg/cache"
	"github.com/amirasaad/fxconv/pkg/money"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
)

// InstrumentedStore counts reads and writes of the wrapped store.
type InstrumentedStore struct {
	next    cache.Store
	metrics *Metrics
}

// InstrumentStore wraps next.
func InstrumentStore(next cache.Store, m *Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: m}
}

func (s *InstrumentedStore) Read(ctx context.Context, key cache.Key, dst any) (bool, error) {
	found, err := s.next.Read(ctx, key, dst)
	outcome := "miss"
	switch {
	case errors.Is(err, cache.ErrCacheCorrupted):
		outcome = "corrupted"
	case err != nil:
		outcome = "error"
	case found:
		outcome = "hit"
	}
	s.metrics.CacheReadsTotal.WithLabelValues(string(key.Namespace), outcome).Inc()
	return found, err
}

func (s *InstrumentedStore) Write(ctx context.Context, key cache.Key, v any) error {
	err := s.next.Write(ctx, key, v)
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	s.metrics.CacheWritesTotal.WithLabelValues(string(key.Namespace), outcome).Inc()
	return err
}

func (s *InstrumentedStore) Clear(ctx context.Context, ns cache.Namespace) error {
	return s.next.Clear(ctx, ns)
}

// Unwrap returns the wrapped store.
func (s *InstrumentedStore) Unwrap() cache.Store {
	return s.next
}

// InstrumentedExchange counts and times calls to the wrapped provider.
type InstrumentedExchange struct {
	next    exchange.Exchange
	metrics *Metrics
}

// InstrumentExchange wraps next.
func InstrumentExchange(next exchange.Exchange, m *Metrics) *InstrumentedExchange {
	return &InstrumentedExchange{next: next, metrics: m}
}

func (e *InstrumentedExchange) LatestRates(
	ctx context.Context,
	base money.Code,
	targets []money.Code,
) exchange.Result[money.RateMap] {
	start := time.Now()
	res := e.next.LatestRates(ctx, base, targets)
	e.observe("latest", res.Kind, start)
	return res
}

func (e *InstrumentedExchange) Currencies(ctx context.Context, base money.Code) exchange.Result[money.Directory] {
	start := time.Now()
	res := e.next.Currencies(ctx, base)
	e.observe("currencies", res.Kind, start)
	return res
}

func (e *InstrumentedExchange) Name() string {
	return e.next.Name()
}

func (e *InstrumentedExchange) observe(endpoint string, kind exchange.Kind, start time.Time) {
	name := e.next.Name()
	e.metrics.RemoteRequestsTotal.WithLabelValues(name, endpoint, kind.String()).Inc()
	e.metrics.RemoteRequestDuration.WithLabelValues(name, endpoint).Observe(time.Since(start).Seconds())
}

var (
	_ cache.Store       = (*InstrumentedStore)(nil)
	_ exchange.Exchange = (*InstrumentedExchange)(nil)
)
