package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/granttag/core"
	"github.com/poiesic/granttag/storage"
)

// Tagger assigns tags to grant text.
type Tagger interface {
	Tag(ctx context.Context, name, description string) []string
}

// Indexer receives committed grants.
type Indexer interface {
	AddGrants(grants ...*core.Grant) []core.ID
}

// Pipeline orchestrates tagging and committing grant batches.
type Pipeline struct {
	store    storage.GrantStore
	tagger   Tagger
	index    Indexer
	pool     *ants.Pool
	commitMu sync.Mutex
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent tagging.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
			p.pool = nil
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingestion")
		return nil
	}
}

// NewPipeline creates a pipeline that tags with tagger, persists to store
// and publishes to index.
func NewPipeline(store storage.GrantStore, tagger Tagger, index Indexer, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if tagger == nil {
		return nil, ErrTaggerRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:  store,
		tagger: tagger,
		index:  index,
		pool:   pool,
		logger: slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest validates, tags and commits a batch. The returned grants are in
// input order. If any input is invalid nothing is tagged or stored.
func (p *Pipeline) Ingest(ctx context.Context, inputs []core.GrantInput) ([]*core.Grant, error) {
	if err := core.ValidateGrantInputs(inputs); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return []*core.Grant{}, nil
	}

	start := time.Now()
	grants := p.TagAll(ctx, inputs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.commitMu.Lock()
	defer p.commitMu.Unlock()

	if err := p.store.AppendAll(ctx, grants); err != nil {
		return nil, fmt.Errorf("append grants: %w", err)
	}
	p.index.AddGrants(grants...)

	p.logger.Debug("batch ingested", "grants", len(grants), "elapsed", time.Since(start))
	return grants, nil
}

// TagAll tags inputs concurrently and returns grants in input order.
// Inputs are not validated.
func (p *Pipeline) TagAll(ctx context.Context, inputs []core.GrantInput) []*core.Grant {
	grants := make([]*core.Grant, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			in := &inputs[i]
			grants[i] = in.ToGrant(p.tagger.Tag(ctx, in.Name, in.Description))
		}
		if err := p.pool.Submit(task); err != nil {
			p.logger.Warn("pool unavailable, tagging inline", "err", err)
			task()
		}
	}
	wg.Wait()

	return grants
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
