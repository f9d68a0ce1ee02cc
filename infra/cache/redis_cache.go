package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fxconv/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// ErrUnscopedClear is returned by Clear when the cache has no key prefix.
var ErrUnscopedClear = errors.New("refusing to clear redis cache without a key prefix")

// RedisCache implements cache.Store using Redis. Each record expires when its
// key's time bucket closes.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// NewRedisCache creates a RedisCache from a redis URL such as redis://localhost:6379/0.
func NewRedisCache(url, prefix string, logger *slog.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return NewRedisCacheWithOptions(opt, prefix, logger), nil
}

// NewRedisCacheWithOptions creates a RedisCache from redis.Options.
func NewRedisCacheWithOptions(opt *redis.Options, prefix string, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger.With(slog.String("component", "redis_cache")),
		now:    time.Now,
	}
}

func (r *RedisCache) key(key cache.Key) string {
	return r.prefix + key.String()
}

// Read decodes the record for key into dst.
func (r *RedisCache) Read(ctx context.Context, key cache.Key, dst any) (bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key.String())
		return false, nil
	}
	if err != nil {
		// An unreachable cache degrades to a miss.
		r.logger.Warn("Redis cache get error", "key", key.String(), "error", err)
		return false, nil
	}
	if err := decode(val, dst); err != nil {
		r.logger.Error("Redis cache record corrupted", "key", key.String(), "error", err)
		return false, &cache.CorruptedError{Key: key, Location: r.key(key), Err: err}
	}
	r.logger.Debug("Redis cache hit", "key", key.String())
	return true, nil
}

// Write stores v for key until the key's bucket closes. SET replaces the value atomically.
func (r *RedisCache) Write(ctx context.Context, key cache.Key, v any) error {
	data, err := encode(v)
	if err != nil {
		return &cache.PersistError{Key: key, Err: err}
	}
	ttl := key.Expiry().Sub(r.now())
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Warn("Redis cache set error", "key", key.String(), "error", err)
		return &cache.PersistError{Key: key, Err: err}
	}
	r.logger.Debug("Redis cache set", "key", key.String(), "ttl", ttl)
	return nil
}

// Clear deletes every key under the prefix for ns, or the whole prefix when ns is empty.
// Without a prefix it fails with ErrUnscopedClear.
func (r *RedisCache) Clear(ctx context.Context, ns cache.Namespace) error {
	if r.prefix == "" {
		return ErrUnscopedClear
	}
	pattern := r.prefix + "*"
	if ns != "" {
		pattern = r.prefix + string(ns) + "/*"
	}
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	deleted := 0
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan %s: %w", pattern, err)
	}
	r.logger.Info("Redis cache cleared", "pattern", pattern, "deleted", deleted)
	return nil
}

// Close releases the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

var _ cache.Store = (*RedisCache)(nil)
