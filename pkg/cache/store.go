package cache

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCacheCorrupted marks a record that exists but cannot be decoded.
	// It is never treated as a miss.
	ErrCacheCorrupted = errors.New("cache corrupted")

	// ErrCachePersist marks a failed write. Callers log it and carry on.
	ErrCachePersist = errors.New("failed to persist cache record")
)

// Store persists time-scoped records addressed by Key.
type Store interface {
	// Read decodes the record for key into dst. A missing record returns
	// (false, nil); an unreadable one returns a *CorruptedError.
	Read(ctx context.Context, key Key, dst any) (bool, error)

	// Write replaces the record for key with v as a whole. Readers observe
	// either the previous or the new record, never a partial one.
	Write(ctx context.Context, key Key, v any) error

	// Clear removes every record in ns, or in all namespaces when ns is empty.
	Clear(ctx context.Context, ns Namespace) error
}

// CorruptedError reports a record that could not be decoded.
type CorruptedError struct {
	Key      Key
	Location string
	Err      error
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf(
		"failed to parse cached record %s at %s: %v; please clear the cache (fxconv cache clear)",
		e.Key, e.Location, e.Err,
	)
}

func (e *CorruptedError) Unwrap() []error {
	return []error{ErrCacheCorrupted, e.Err}
}

// PersistError reports a failed write.
type PersistError struct {
	Key Key
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrCachePersist, e.Key, e.Err)
}

func (e *PersistError) Unwrap() []error {
	return []error{ErrCachePersist, e.Err}
}
