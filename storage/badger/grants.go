package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/granttag/core"
	"github.com/poiesic/granttag/storage"
)

// GrantRepository implements storage.GrantStore for BadgerDB.
type GrantRepository struct {
	mu      sync.Mutex
	backend *Backend
	seq     *badger.Sequence
	closed  bool
	logger  *slog.Logger
}

var _ storage.GrantStore = (*GrantRepository)(nil)

// newGrantRepository is an internal constructor that returns the concrete type.
func newGrantRepository(backend *Backend) (*GrantRepository, error) {
	seq, err := backend.GetSequence(grantSeq)
	if err != nil {
		return nil, err
	}

	return &GrantRepository{
		backend: backend,
		seq:     seq,
		logger:  slog.Default().With("component", "badger-grants"),
	}, nil
}

// NewGrantRepository creates a grant store on backend. The backend stays
// owned by the caller.
//
// Returns storage.GrantStore interface to enforce abstraction.
func NewGrantRepository(backend *Backend) (storage.GrantStore, error) {
	return newGrantRepository(backend)
}

// Close releases the sequence. The backend is not closed.
func (r *GrantRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.seq.Release()
}

// ReadAll returns every grant in insertion order. A record that cannot be
// decoded makes the whole collection read as empty.
func (r *GrantRepository) ReadAll(ctx context.Context) ([]*core.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	grants, err := r.readAll()
	if errors.Is(err, storage.ErrCorruptData) {
		r.logger.Warn("stored grants unreadable, treating collection as empty", "err", err)
		return []*core.Grant{}, nil
	}
	if err != nil {
		return nil, err
	}
	return grants, nil
}

// WriteAll replaces the stored collection. The new records are written
// before the old ones are deleted, so a failed write leaves the previous
// collection in place.
func (r *GrantRepository) WriteAll(ctx context.Context, grants []*core.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOpen(); err != nil {
		return err
	}

	stale, err := r.keys()
	if err != nil {
		return err
	}

	written, err := r.append(grants)
	if err != nil {
		if rbErr := r.deleteKeys(written); rbErr != nil {
			r.logger.Warn("failed to remove partially written grants", "err", rbErr)
		}
		return fmt.Errorf("write grants: %w", err)
	}
	return r.deleteKeys(stale)
}

// AppendAll adds grants after the stored ones.
func (r *GrantRepository) AppendAll(ctx context.Context, grants []*core.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOpen(); err != nil {
		return err
	}
	_, err := r.append(grants)
	return err
}

// ClearAll removes every stored grant.
func (r *GrantRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.backend.DropPrefix(grantPrefix)
}

func (r *GrantRepository) checkOpen() error {
	if r.closed || r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// append writes grants under fresh sequence keys and returns the keys it
// attempted to write.
func (r *GrantRepository) append(grants []*core.Grant) ([][]byte, error) {
	if len(grants) == 0 {
		return nil, nil
	}
	var written [][]byte
	err := r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, grant := range grants {
			if grant == nil {
				continue
			}
			seq, err := r.seq.Next()
			if err != nil {
				return err
			}
			key := makeGrantKey(seq)
			written = append(written, key)
			if err := wb.Set(key, storage.MarshalGrant(grant)); err != nil {
				return err
			}
		}
		return nil
	})
	return written, err
}

func (r *GrantRepository) deleteKeys(keys [][]byte) error {
	if len(keys) == 0 {
		return nil
	}
	return r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, key := range keys {
			if err := wb.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// keys lists every stored grant key.
func (r *GrantRepository) keys() ([][]byte, error) {
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(grantPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	return keys, err
}

func (r *GrantRepository) readAll() ([]*core.Grant, error) {
	grants := []*core.Grant{}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(grantPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			seq, ok := grantKeySeq(item.Key())
			if !ok {
				return fmt.Errorf("%w: malformed key %q", storage.ErrCorruptData, item.Key())
			}

			var grant *core.Grant
			err := item.Value(func(val []byte) error {
				var err error
				grant, err = storage.UnmarshalGrant(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: grant %d: %w", storage.ErrCorruptData, seq, err)
			}
			grants = append(grants, grant)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return grants, nil
}
