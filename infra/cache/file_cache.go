package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amirasaad/fxconv/pkg/cache"
)

// FileStore implements cache.Store with one JSON document per key below a root directory.
type FileStore struct {
	root   string
	logger *slog.Logger
}

// NewFileStore creates a FileStore rooted at dir. The directory is created lazily on first write.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		root:   dir,
		logger: logger.With(slog.String("component", "file_cache")),
	}
}

// Root returns the directory records are stored under.
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) path(key cache.Key) string {
	return filepath.Join(s.root, filepath.FromSlash(key.Path()))
}

// Read decodes the record for key into dst. Only a missing file is a miss;
// any other read failure is returned.
func (s *FileStore) Read(ctx context.Context, key cache.Key, dst any) (bool, error) {
	p := s.path(key)
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("File cache miss", "key", key.String())
		return false, nil
	}
	if err != nil {
		s.logger.Error("File cache read error", "key", key.String(), "path", p, "error", err)
		return false, fmt.Errorf("failed to read cache record %s: %w", p, err)
	}
	if err := decode(data, dst); err != nil {
		s.logger.Error("File cache record corrupted", "key", key.String(), "path", p, "error", err)
		return false, &cache.CorruptedError{Key: key, Location: p, Err: err}
	}
	s.logger.Debug("File cache hit", "key", key.String(), "path", p)
	return true, nil
}

// Write serializes v and atomically replaces the record for key.
func (s *FileStore) Write(ctx context.Context, key cache.Key, v any) error {
	data, err := encode(v)
	if err != nil {
		return &cache.PersistError{Key: key, Err: err}
	}
	p := s.path(key)
	if err := writeFileAtomically(p, bytes.NewReader(data)); err != nil {
		s.logger.Warn("File cache write error", "key", key.String(), "path", p, "error", err)
		return &cache.PersistError{Key: key, Err: err}
	}
	s.logger.Debug("File cache set", "key", key.String(), "path", p, "bytes", len(data))
	return nil
}

// Clear removes the namespace directory, or the whole root when ns is empty.
func (s *FileStore) Clear(ctx context.Context, ns cache.Namespace) error {
	target := s.root
	if ns != "" {
		target = filepath.Join(s.root, string(ns))
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("failed to clear cache %s: %w", target, err)
	}
	s.logger.Info("File cache cleared", "path", target)
	return nil
}

func writeFileAtomically(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ cache.Store = (*FileStore)(nil)
