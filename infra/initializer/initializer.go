package initializer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	infra_cache "github.com/amirasaad/fxconv/infra/cache"
	"github.com/amirasaad/fxconv/infra/metrics"
	"github.com/amirasaad/fxconv/infra/provider/freecurrencyapi"
	"github.com/amirasaad/fxconv/pkg/cache"
	"github.com/amirasaad/fxconv/pkg/config"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
	service "github.com/amirasaad/fxconv/pkg/service/exchange"
)

// Deps holds everything a command needs.
type Deps struct {
	Logger    *slog.Logger
	Store     cache.Store
	Exchange  exchange.Exchange
	Rates     *service.RateService
	Directory *service.DirectoryService
	Converter *service.Converter
	Metrics   *metrics.Metrics

	metricsTextfile string
	closers         []io.Closer
}

// Close writes the metrics textfile, when configured, and releases resources
// held by the dependencies.
func (d *Deps) Close() error {
	var errs []error
	if d.metricsTextfile != "" {
		if err := d.Metrics.WriteTextfile(d.metricsTextfile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InitializeDependencies initializes all the application dependencies.
// Logs are written to stderr.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	return initialize(cfg, os.Stderr)
}

func initialize(cfg *config.App, logOutput io.Writer) (*Deps, error) {
	deps := &Deps{Metrics: metrics.NewMetrics()}
	logger := setupLogger(cfg.Log, logOutput)
	deps.Logger = logger
	if cfg.Metrics != nil {
		deps.metricsTextfile = cfg.Metrics.Textfile
	}

	store, closer, err := newStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}
	deps.Store = metrics.InstrumentStore(store, deps.Metrics)
	if closer != nil {
		deps.closers = append(deps.closers, closer)
	}

	deps.Exchange = metrics.InstrumentExchange(freecurrencyapi.New(cfg.API, logger), deps.Metrics)

	opts := []service.Option{service.WithLogger(logger)}
	deps.Rates = service.NewRateService(deps.Store, deps.Exchange, opts...)
	deps.Directory = service.NewDirectoryService(deps.Store, deps.Exchange, opts...)
	deps.Converter = service.NewConverter(deps.Rates, deps.Directory, cfg.API.ApiKey, opts...)

	logger.Debug("Dependencies initialized",
		"cache_driver", cfg.Cache.Driver,
		"provider", deps.Exchange.Name(),
	)
	return deps, nil
}

// newStore returns the cache.Store selected by cfg.Cache.Driver.
func newStore(cfg *config.App, logger *slog.Logger) (cache.Store, io.Closer, error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		rc, err := infra_cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.KeyPrefix, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Using redis cache", "url", config.MaskValue(cfg.Redis.URL), "key_prefix", cfg.Redis.KeyPrefix)
		return rc, rc, nil
	case config.CacheDriverMemory:
		logger.Debug("Using in-memory cache")
		return infra_cache.NewMemoryCache(), nil, nil
	case config.CacheDriverFile, "":
		fs := infra_cache.NewFileStore(cfg.Cache.Dir, logger)
		logger.Debug("Using file cache", "dir", fs.Root())
		return fs, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache driver %q", cfg.Cache.Driver)
	}
}
