package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first environment file found among envFilePath (searching
// parent directories), falling back to ./.env, then processes the environment.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	for _, path := range envFilePath {
		foundPath, err := FindEnvTest(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Warn("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Debug("Environment loaded from file", "path", foundPath)
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Default().Debug("App config loaded",
		"env", cfg.Env,
		"api_url", cfg.API.ApiUrl,
		"api_key", maskValue(cfg.API.ApiKey),
		"http_timeout", cfg.API.HTTPTimeout,
		"cache_driver", cfg.Cache.Driver,
		"cache_dir", cfg.Cache.Dir,
		"redis_url", maskValue(cfg.Redis.URL),
		"metrics_textfile", cfg.Metrics.Textfile,
	)
	return &cfg, nil
}

func (cfg *App) validate() error {
	cfg.Cache.Driver = strings.ToLower(strings.TrimSpace(cfg.Cache.Driver))
	switch cfg.Cache.Driver {
	case CacheDriverFile, CacheDriverRedis, CacheDriverMemory:
	default:
		return fmt.Errorf("unsupported CACHE_DRIVER %q (want file, redis or memory)", cfg.Cache.Driver)
	}
	if cfg.Cache.Driver == CacheDriverRedis && strings.TrimSpace(cfg.Redis.KeyPrefix) == "" {
		return fmt.Errorf("REDIS_KEY_PREFIX must not be empty with the redis cache driver")
	}
	if cfg.API.HTTPTimeout < 0 {
		return fmt.Errorf("API_HTTP_TIMEOUT must not be negative, got %s", cfg.API.HTTPTimeout)
	}
	cfg.API.ApiKey = strings.TrimSpace(cfg.API.ApiKey)
	cfg.API.ApiUrl = strings.TrimRight(cfg.API.ApiUrl, "/")
	return nil
}

// MaskValue hides all but the edges of a secret for logging.
func MaskValue(key string) string {
	return maskValue(key)
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
