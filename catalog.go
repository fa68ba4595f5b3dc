// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package granttag assigns controlled-vocabulary tags to grant opportunities
// and searches them by tag or by free-text query.
//
// A Catalog wires the pieces together: a grant store, the keyword tagger with
// its optional refiner, the in-memory tag index and the synonym resolver.
package granttag

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/poiesic/granttag/ai"
	"github.com/poiesic/granttag/ai/openai"
	"github.com/poiesic/granttag/core"
	"github.com/poiesic/granttag/ingestion"
	"github.com/poiesic/granttag/metrics"
	"github.com/poiesic/granttag/retag"
	"github.com/poiesic/granttag/search"
	"github.com/poiesic/granttag/storage"
	"github.com/poiesic/granttag/storage/badger"
	"github.com/poiesic/granttag/storage/jsonfile"
	"github.com/poiesic/granttag/synonym"
	"github.com/poiesic/granttag/tagging"
	"github.com/poiesic/granttag/vocabulary"
)

// StoreKind selects the grant storage backend.
type StoreKind string

const (
	StoreBadger StoreKind = "badger"
	StoreJSON   StoreKind = "json"
	StoreMemory StoreKind = "memory"
)

// Config describes how a Catalog is assembled.
type Config struct {
	// Store selects the backend. Default is StoreBadger.
	Store StoreKind
	// Path is the badger directory or the JSON file. Unused for StoreMemory.
	Path string
	// VocabularyFile replaces the built-in vocabulary when set.
	VocabularyFile string
	// AI configures refinement. Nil or disabled means keyword tagging only.
	AI *ai.Config
	// PoolSize bounds concurrent tagging. Zero selects the pipeline default.
	PoolSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreBadger,
		Path:  "granttag.db",
		AI:    ai.DefaultConfig(),
	}
}

// Option configures a Catalog.
type Option func(*catalogOptions) error

type catalogOptions struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	refiner ai.TagRefiner
	store   storage.GrantStore
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *catalogOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithMetrics records tagging, refinement and search activity in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *catalogOptions) error {
		o.metrics = m
		return nil
	}
}

// WithRefiner uses refiner instead of the one selected from Config.AI.
func WithRefiner(refiner ai.TagRefiner) Option {
	return func(o *catalogOptions) error {
		if refiner == nil {
			return ai.ErrRefinerRequired
		}
		o.refiner = refiner
		return nil
	}
}

// WithStore uses store instead of opening one from Config. The catalog takes
// ownership and closes it.
func WithStore(store storage.GrantStore) Option {
	return func(o *catalogOptions) error {
		if store == nil {
			return ingestion.ErrStoreRequired
		}
		o.store = store
		return nil
	}
}

// Catalog is the grant collection together with its tagger and index.
type Catalog struct {
	// mu orders batch commits (read side) against operations that replace
	// the whole index or store (write side).
	mu sync.RWMutex

	store    storage.GrantStore
	backend  *badger.Backend
	vocab    *vocabulary.Vocabulary
	resolver *synonym.Resolver
	tagger   *tagging.Tagger
	index    *search.Index
	pipeline *ingestion.Pipeline
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Open assembles a catalog from cfg. A nil cfg means DefaultConfig.
func Open(cfg *Config, opts ...Option) (*Catalog, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	o := &catalogOptions{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	logger := o.logger.With("component", "catalog")

	vocab := vocabulary.Default()
	if cfg.VocabularyFile != "" {
		loaded, err := vocabulary.LoadFile(cfg.VocabularyFile)
		if err != nil {
			return nil, err
		}
		vocab = loaded
	}

	refiner := o.refiner
	if refiner == nil {
		selected, err := selectRefiner(cfg.AI, vocab.Tags(), logger)
		if err != nil {
			return nil, err
		}
		refiner = selected
	}

	taggerOpts := []tagging.Option{tagging.WithLogger(o.logger)}
	if refiner != nil {
		taggerOpts = append(taggerOpts, tagging.WithRefiner(refiner))
		if cfg.AI != nil && cfg.AI.Timeout > 0 {
			taggerOpts = append(taggerOpts, tagging.WithRefineTimeout(cfg.AI.Timeout))
		}
	}
	indexOpts := []search.Option{search.WithLogger(o.logger)}
	if o.metrics != nil {
		taggerOpts = append(taggerOpts, tagging.WithMonitor(o.metrics))
		indexOpts = append(indexOpts, search.WithMonitor(o.metrics))
	}

	tagger, err := tagging.NewTagger(vocab, taggerOpts...)
	if err != nil {
		return nil, err
	}
	index, err := search.NewIndex(indexOpts...)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		store:    o.store,
		vocab:    vocab,
		resolver: synonym.Default(),
		tagger:   tagger,
		index:    index,
		metrics:  o.metrics,
		logger:   logger,
	}

	if c.store == nil {
		if err := c.openStore(cfg); err != nil {
			return nil, err
		}
	}

	pipelineOpts := []ingestion.Option{ingestion.WithLogger(o.logger)}
	if cfg.PoolSize > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(cfg.PoolSize))
	}
	c.pipeline, err = ingestion.NewPipeline(c.store, tagger, index, pipelineOpts...)
	if err != nil {
		c.closeStore()
		return nil, err
	}

	if o.metrics != nil {
		if err := o.metrics.ObserveIndexSize(index.Len); err != nil {
			logger.Warn("index size gauge not registered", "err", err)
		}
	}

	logger.Info("catalog opened",
		"store", cfg.Store, "tags", vocab.Len(), "synonyms", c.resolver.Len(),
		"refining", tagger.Refining())
	return c, nil
}

// selectRefiner picks the refiner described by cfg. It returns nil when
// refinement is disabled.
func selectRefiner(cfg *ai.Config, tags []string, logger *slog.Logger) (ai.TagRefiner, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if !cfg.Active() {
		logger.Warn("refinement enabled without an API key, keeping keyword tags")
		return ai.PassthroughRefiner{}, nil
	}

	refiner, err := openai.NewRefiner(cfg, tags)
	if err != nil {
		return nil, fmt.Errorf("create refiner: %w", err)
	}
	if cfg.CacheTTL <= 0 {
		return refiner, nil
	}
	cached, err := ai.NewCachingRefiner(refiner, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (c *Catalog) openStore(cfg *Config) error {
	switch kind := cmp.Or(cfg.Store, StoreBadger); kind {
	case StoreBadger, StoreMemory:
		inMemory := kind == StoreMemory
		if !inMemory && cfg.Path == "" {
			return ErrPathRequired
		}
		path := cfg.Path
		if inMemory {
			path = ""
		}
		backend, err := badger.OpenBackend(path, inMemory)
		if err != nil {
			return err
		}
		store, err := badger.NewGrantRepository(backend)
		if err != nil {
			backend.Close()
			return err
		}
		c.backend = backend
		c.store = store
	case StoreJSON:
		if cfg.Path == "" {
			return ErrPathRequired
		}
		store, err := jsonfile.Open(cfg.Path)
		if err != nil {
			return err
		}
		c.store = store
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, kind)
	}
	return nil
}

// Close releases the worker pool and closes storage.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pipeline.Release()
	return c.closeStore()
}

func (c *Catalog) closeStore() error {
	if err := c.store.Close(); err != nil {
		c.logger.Error("error closing grant store", "err", err)
		return err
	}
	if c.backend != nil {
		if err := c.backend.Close(); err != nil {
			c.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

// Vocabulary returns the tag vocabulary.
func (c *Catalog) Vocabulary() *vocabulary.Vocabulary {
	return c.vocab
}

// Tags returns the vocabulary tags in ascending order.
func (c *Catalog) Tags() []string {
	return c.vocab.Tags()
}

// Grants returns every stored grant in insertion order.
func (c *Catalog) Grants(ctx context.Context) ([]*core.Grant, error) {
	return c.store.ReadAll(ctx)
}

// TagBatch validates, tags and stores inputs, returning the tagged grants in
// input order. Nothing is stored if any input is invalid.
func (c *Catalog) TagBatch(ctx context.Context, inputs []core.GrantInput) ([]*core.Grant, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pipeline.Ingest(ctx, inputs)
}

// Tag returns the tags for a single grant without storing it.
func (c *Catalog) Tag(ctx context.Context, name, description string) []string {
	return c.tagger.Tag(ctx, name, description)
}

// Match returns the keyword tags for a single grant, skipping refinement.
func (c *Catalog) Match(name, description string) []string {
	return c.tagger.Match(name, description)
}

// Search returns the grants carrying every tag in tags. An empty list
// matches nothing.
func (c *Catalog) Search(ctx context.Context, tags []string) ([]*core.Grant, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return c.index.SearchByTags(tags, core.SearchModeAll), nil
}

// AdvancedSearch resolves query through the synonym table, adds the explicit
// tags, and searches the index under mode. An empty mode means "all".
func (c *Catalog) AdvancedSearch(ctx context.Context, query string, tags []string, mode string) (*core.SearchResult, error) {
	if mode == "" {
		mode = string(core.SearchModeAll)
	}
	searchMode, err := core.ParseSearchMode(mode)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]struct{})
	for _, tag := range c.resolver.ResolveQuery(query) {
		resolved[tag] = struct{}{}
	}
	for _, tag := range tags {
		if normalized := core.NormalizeTag(tag); normalized != "" {
			resolved[normalized] = struct{}{}
		}
	}

	result := &core.SearchResult{ResolvedTags: []string{}, Grants: []*core.Grant{}}
	if len(resolved) == 0 {
		return result, nil
	}

	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	for tag := range resolved {
		result.ResolvedTags = append(result.ResolvedTags, tag)
	}
	slices.Sort(result.ResolvedTags)
	result.Grants = c.index.SearchByTags(result.ResolvedTags, searchMode)
	return result, nil
}

// Reindex rebuilds the index from storage.
func (c *Catalog) Reindex(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reindex(ctx)
}

// Reset clears storage and the index.
func (c *Catalog) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.ClearAll(ctx); err != nil {
		return err
	}
	c.index.Clear()
	c.logger.Info("catalog reset")
	return nil
}

// Replace clears storage and commits inputs as a single batch.
func (c *Catalog) Replace(ctx context.Context, inputs []core.GrantInput) ([]*core.Grant, error) {
	if err := core.ValidateGrantInputs(inputs); err != nil {
		return nil, err
	}
	if err := c.Reset(ctx); err != nil {
		return nil, err
	}
	return c.TagBatch(ctx, inputs)
}

// Retag re-runs the tagger over every stored grant, rewrites storage and
// rebuilds the index. Progress is written to progress when it is not nil.
func (c *Catalog) Retag(ctx context.Context, config *retag.Config, progress io.Writer) (*retag.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, err := retag.NewRetagger(c.store, c.pipeline, c.index, config, progress)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Len returns the number of indexed grants.
func (c *Catalog) Len() int {
	return c.index.Len()
}

// ensureLoaded fills the index from storage while it is empty.
func (c *Catalog) ensureLoaded(ctx context.Context) error {
	if c.index.Len() > 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index.Len() > 0 {
		return nil
	}
	_, err := c.reindex(ctx)
	return err
}

// reindex must be called with mu held for writing.
func (c *Catalog) reindex(ctx context.Context) (int, error) {
	start := time.Now()
	grants, err := c.store.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load grants: %w", err)
	}
	c.index.Rebuild(grants)
	c.logger.Debug("index rebuilt", "grants", len(grants), "elapsed", time.Since(start))
	return len(grants), nil
}
