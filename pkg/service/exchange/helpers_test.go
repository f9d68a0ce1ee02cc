package exchange_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/fxconv/internal/fixtures/mocks"
	"github.com/amirasaad/fxconv/pkg/cache"
	service "github.com/amirasaad/fxconv/pkg/service/exchange"
)

var fixedNow = time.Date(2026, 10, 18, 14, 3, 0, 0, time.UTC)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func testOptions(c *clock) []service.Option {
	return []service.Option{
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		service.WithClock(c.Now),
	}
}

type fixture struct {
	store *mocks.Store
	ex    *mocks.Exchange
	clock *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		store: mocks.NewStore(),
		ex:    mocks.NewExchange(t),
		clock: &clock{now: fixedNow},
	}
}

func (f *fixture) rateService() *service.RateService {
	return service.NewRateService(f.store, f.ex, testOptions(f.clock)...)
}

func (f *fixture) directoryService() *service.DirectoryService {
	return service.NewDirectoryService(f.store, f.ex, testOptions(f.clock)...)
}

// failingWrites makes every Write fail while reads go to the wrapped store.
type failingWrites struct {
	cache.Store
}

func (s failingWrites) Write(ctx context.Context, key cache.Key, v any) error {
	return &cache.PersistError{Key: key, Err: io.ErrShortWrite}
}
