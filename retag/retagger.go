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


package retag

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/granttag/core"
	"github.com/poiesic/granttag/storage"
)

// DefaultBatchSize is the default number of grants tagged per batch.
const DefaultBatchSize = 100

// Config holds configuration for the retagging operation.
type Config struct {
	// BatchSize is the number of grants to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of grants)
	ReportInterval int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
	}
}

// Rebuilder replaces the contents of a search index.
type Rebuilder interface {
	Rebuild(grants []*core.Grant)
}

// Summary reports the outcome of a run.
type Summary struct {
	Total   int
	Changed int
	Elapsed time.Duration
}

// Retagger orchestrates retagging every grant in a store.
type Retagger struct {
	store     storage.GrantStore
	index     Rebuilder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewRetagger creates a new retagger. index may be nil, in which case only
// storage is updated.
// progress: where to write progress output (typically os.Stderr)
func NewRetagger(store storage.GrantStore, tagger BatchTagger, index Rebuilder, config *Config, progress io.Writer) (*Retagger, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if tagger == nil {
		return nil, ErrTaggerRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Retagger{
		store:     store,
		index:     index,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(tagger),
	}, nil
}

// Run executes the retagging operation.
// Every stored grant is retagged, the collection is written back in its
// original order, and the index is rebuilt from it. Nothing is written if
// the context is canceled before all batches finish.
func (r *Retagger) Run(ctx context.Context) (*Summary, error) {
	grants, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read grants: %w", err)
	}

	total := len(grants)
	if total == 0 {
		fmt.Fprintf(r.progress, "No grants found in store (0 grants)\n")
		return &Summary{}, nil
	}

	fmt.Fprintf(r.progress, "Starting retagging of %d grants (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgress(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	retagged := make([]*core.Grant, 0, total)

	for i := 0; i < total; i += r.config.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(i+r.config.BatchSize, total)
		batch, n := r.processor.Process(ctx, grants[i:end])
		retagged = append(retagged, batch...)
		tracker.Batch(len(batch), n)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.store.WriteAll(ctx, retagged); err != nil {
		return nil, fmt.Errorf("failed to write grants: %w", err)
	}
	if r.index != nil {
		r.index.Rebuild(retagged)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	changed := tracker.Changed()
	fmt.Fprintf(r.progress, "Retagging complete. Processed %d grants in %v (%.1f grants/sec), %d changed\n",
		total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds(), changed)

	return &Summary{Total: total, Changed: changed, Elapsed: elapsed}, nil
}
