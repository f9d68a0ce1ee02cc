package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/amirasaad/fxconv/pkg/cache"
)

// MemoryCache implements cache.Store using in-memory storage.
// Records are kept in their encoded form so reads behave like the durable stores.
type MemoryCache struct {
	records map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		records: make(map[string][]byte),
	}
}

// Read decodes the record for key into dst.
func (c *MemoryCache) Read(ctx context.Context, key cache.Key, dst any) (bool, error) {
	c.mu.RLock()
	data, ok := c.records[key.String()]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := decode(data, dst); err != nil {
		return false, &cache.CorruptedError{Key: key, Location: "memory", Err: err}
	}
	return true, nil
}

// Write stores v for key.
func (c *MemoryCache) Write(ctx context.Context, key cache.Key, v any) error {
	data, err := encode(v)
	if err != nil {
		return &cache.PersistError{Key: key, Err: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[key.String()] = data
	return nil
}

// Clear removes records in ns, or every record when ns is empty.
func (c *MemoryCache) Clear(ctx context.Context, ns cache.Namespace) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ns == "" {
		c.records = make(map[string][]byte)
		return nil
	}
	prefix := string(ns) + "/"
	for k := range c.records {
		if strings.HasPrefix(k, prefix) {
			delete(c.records, k)
		}
	}
	return nil
}

var _ cache.Store = (*MemoryCache)(nil)
