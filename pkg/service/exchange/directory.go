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

// DirectoryService serves the currency directory from the daily cache.
// The directory is always refetched as a whole.
type DirectoryService struct {
	store    cache.Store
	exchange exchange.Exchange
	logger   *slog.Logger
	now      func() time.Time
}

// NewDirectoryService creates a DirectoryService.
func NewDirectoryService(store cache.Store, ex exchange.Exchange, opts ...Option) *DirectoryService {
	o := newOptions("currencies", opts)
	return &DirectoryService{
		store:    store,
		exchange: ex,
		logger:   o.logger,
		now:      o.now,
	}
}

// Directory returns today's currency directory. With force the cached
// record is ignored and replaced by a fresh fetch.
func (s *DirectoryService) Directory(ctx context.Context, force bool) (money.Directory, error) {
	key := cache.NewKey(cache.NamespaceCurrencies, "", s.now())

	if !force {
		var cached money.Directory
		found, err := s.store.Read(ctx, key, &cached)
		if err != nil {
			return nil, err
		}
		if found {
			s.logger.Debug("Serving currency directory from cache", "key", key.String(), "count", len(cached))
			return cached, nil
		}
	}

	res := s.exchange.Currencies(ctx, "")
	if res.Kind != exchange.KindSuccess {
		err := res.AsError()
		s.logger.Warn("Failed to fetch currency directory",
			"provider", s.exchange.Name(),
			"kind", res.Kind,
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch currency information: %w", err)
	}

	if err := s.store.Write(ctx, key, res.Value); err != nil {
		s.logger.Warn("Failed to cache currency directory", "key", key.String(), "error", err)
	} else {
		s.logger.Debug("Currency directory cached", "key", key.String(), "count", len(res.Value), "force", force)
	}
	return res.Value, nil
}

// Validate checks source and targets against the directory. An unknown
// source is reported on its own; unknown targets are reported together.
func (s *DirectoryService) Validate(
	ctx context.Context,
	source money.Code,
	targets []money.Code,
	force bool,
) (money.Directory, error) {
	dir, err := s.Directory(ctx, force)
	if err != nil {
		return nil, err
	}
	if !dir.Has(source) {
		return nil, &InvalidCodeError{Source: source}
	}
	if unknown := dir.Unknown(targets); len(unknown) > 0 {
		return nil, &InvalidCodeError{Source: source, Codes: unknown}
	}
	return dir, nil
}
