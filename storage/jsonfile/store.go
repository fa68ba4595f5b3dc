// Package jsonfile stores grants as one pretty-printed JSON array on disk.
//
// This is the original on-disk format of the service, so existing data
// directories can be served and edited by hand. Every operation rewrites or
// rereads the whole file under one lock.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/poiesic/granttag/core"
	"github.com/poiesic/granttag/storage"
)

const emptyCollection = "[]"

// Store implements storage.GrantStore on a single JSON file.
type Store struct {
	mu     sync.Mutex
	path   string
	closed bool
	logger *slog.Logger
}

var _ storage.GrantStore = (*Store)(nil)

// newStore is an internal constructor that returns the concrete type.
func newStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte(emptyCollection), 0644); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &Store{
		path:   path,
		logger: slog.Default().With("component", "jsonfile-store", "path", path),
	}, nil
}

// Open opens the store at path, creating the file (as an empty array) and
// its parent directories if missing.
//
// Returns storage.GrantStore interface to enforce abstraction.
func Open(path string) (storage.GrantStore, error) {
	return newStore(path)
}

// Close marks the store closed. The file is left in place.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ReadAll returns every stored grant. A missing or malformed file reads as
// an empty collection.
func (s *Store) ReadAll(ctx context.Context) ([]*core.Grant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	return s.read()
}

// WriteAll replaces the file contents with grants.
func (s *Store) WriteAll(ctx context.Context, grants []*core.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStorageClosed
	}
	return s.write(grants)
}

// AppendAll adds grants after the stored ones. If the file is unreadable the
// result holds only the new grants.
func (s *Store) AppendAll(ctx context.Context, grants []*core.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStorageClosed
	}
	existing, err := s.read()
	if err != nil {
		return err
	}
	return s.write(append(existing, grants...))
}

// ClearAll resets the file to an empty array.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStorageClosed
	}
	return s.replace([]byte(emptyCollection))
}

func (s *Store) read() ([]*core.Grant, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*core.Grant{}, nil
	}
	if err != nil {
		return nil, err
	}

	var grants []*core.Grant
	if err := json.Unmarshal(data, &grants); err != nil {
		s.logger.Warn("stored grants unreadable, treating collection as empty",
			"err", fmt.Errorf("%w: %w", storage.ErrCorruptData, err))
		return []*core.Grant{}, nil
	}

	out := make([]*core.Grant, 0, len(grants))
	for _, g := range grants {
		if g == nil {
			continue
		}
		g.Normalize()
		out = append(out, g)
	}
	return out, nil
}

func (s *Store) write(grants []*core.Grant) error {
	normalized := make([]*core.Grant, 0, len(grants))
	for _, g := range grants {
		if g != nil {
			normalized = append(normalized, g.Clone())
		}
	}

	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return s.replace(data)
}

// replace writes data to a temporary file next to the store and renames it
// over the store.
func (s *Store) replace(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
