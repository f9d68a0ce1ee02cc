package mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/amirasaad/fxconv/pkg/cache"
)

// Store is an in-memory cache.Store that exposes the stored bytes so tests can
// inspect written records and plant corrupted ones.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[string][]byte)}
}

// Read decodes the record for key into dst. Empty or unparseable records are corrupted.
func (s *Store) Read(ctx context.Context, key cache.Key, dst any) (bool, error) {
	s.mu.RLock()
	data, ok := s.records[key.String()]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, &cache.CorruptedError{Key: key, Location: "mock", Err: errors.New("empty record")}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, &cache.CorruptedError{Key: key, Location: "mock", Err: err}
	}
	return true, nil
}

// Write stores the JSON encoding of v for key.
func (s *Store) Write(ctx context.Context, key cache.Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &cache.PersistError{Key: key, Err: err}
	}
	s.Put(key, data)
	return nil
}

// Clear removes records in ns, or every record when ns is empty.
func (s *Store) Clear(ctx context.Context, ns cache.Namespace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.records {
		if ns == "" || strings.HasPrefix(k, string(ns)+"/") {
			delete(s.records, k)
		}
	}
	return nil
}

// Raw returns the stored bytes for key.
func (s *Store) Raw(key cache.Key) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[key.String()]
	return data, ok
}

// Put stores data for key as is.
func (s *Store) Put(key cache.Key, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key.String()] = data
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

var _ cache.Store = (*Store)(nil)
