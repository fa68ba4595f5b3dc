package search

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/poiesic/granttag/core"
)

// Index is an in-memory inverted index from tag to grants.
//
// Every operation, reads included, runs under one mutex so a multi-tag query
// sees a consistent snapshot of all the tags it touches.
type Index struct {
	mu     sync.Mutex
	nextID core.ID
	grants map[core.ID]*core.Grant
	byTag  map[string]map[core.ID]struct{}

	monitor SearchMonitor
	logger  *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger.With("component", "search-index")
		return nil
	}
}

// WithMonitor sets a monitor that observes every search.
func WithMonitor(monitor SearchMonitor) Option {
	return func(ix *Index) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		ix.monitor = monitor
		return nil
	}
}

// NewIndex creates an empty index.
func NewIndex(opts ...Option) (*Index, error) {
	ix := &Index{
		grants:  make(map[core.ID]*core.Grant),
		byTag:   make(map[string]map[core.ID]struct{}),
		monitor: &noopMonitor{},
		logger:  slog.Default().With("component", "search-index"),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// Clear removes every grant and resets the ID counter to 0.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.clear()
}

// AddGrants indexes grants in order and returns the ID assigned to each.
// IDs continue from the previous call; they are never reused until Clear
// or Rebuild. The index keeps its own copies of the grants.
func (ix *Index) AddGrants(grants ...*core.Grant) []core.ID {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.add(grants)
}

// Rebuild replaces the index contents with grants, assigning IDs from 0.
// Tags present only in the previous contents no longer match anything.
func (ix *Index) Rebuild(grants []*core.Grant) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.clear()
	ix.add(grants)
	ix.logger.Debug("index rebuilt", "grants", len(ix.grants), "tags", len(ix.byTag))
}

// SearchByTags returns the grants matching tags under mode, ordered by
// ascending ID. Tags are compared lowercased and trimmed; unknown tags match
// nothing. An empty tag list matches nothing in either mode. Any mode other
// than SearchModeAll is treated as SearchModeAny; callers validate modes
// with core.ParseSearchMode.
func (ix *Index) SearchByTags(tags []string, mode core.SearchMode) []*core.Grant {
	ix.monitor.Start(tags, mode)

	results := ix.search(tags, mode)

	ix.monitor.Finish(mode, len(results))
	return results
}

// Len returns the number of indexed grants.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.grants)
}

// Tags returns every tag with at least one grant, sorted.
func (ix *Index) Tags() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	tags := slices.Sorted(maps.Keys(ix.byTag))
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// IDsForTag returns the sorted IDs of grants carrying tag.
func (ix *Index) IDsForTag(tag string) []core.ID {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ids := slices.Sorted(maps.Keys(ix.byTag[core.NormalizeTag(tag)]))
	if ids == nil {
		ids = []core.ID{}
	}
	return ids
}

// Grant returns a copy of the grant with id.
func (ix *Index) Grant(id core.ID) (*core.Grant, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	g, ok := ix.grants[id]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

func (ix *Index) clear() {
	ix.nextID = 0
	clear(ix.grants)
	clear(ix.byTag)
}

func (ix *Index) add(grants []*core.Grant) []core.ID {
	ids := make([]core.ID, 0, len(grants))
	for _, g := range grants {
		if g == nil {
			continue
		}
		id := ix.nextID
		ix.nextID++

		ix.grants[id] = g.Clone()
		for _, tag := range g.Tags {
			normalized := core.NormalizeTag(tag)
			set, ok := ix.byTag[normalized]
			if !ok {
				set = make(map[core.ID]struct{})
				ix.byTag[normalized] = set
			}
			set[id] = struct{}{}
		}
		ids = append(ids, id)
	}
	return ids
}

func (ix *Index) search(tags []string, mode core.SearchMode) []*core.Grant {
	results := []*core.Grant{}
	if len(tags) == 0 {
		return results
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	sets := make([]map[core.ID]struct{}, 0, len(tags))
	for _, tag := range tags {
		sets = append(sets, ix.byTag[core.NormalizeTag(tag)])
	}

	var matched map[core.ID]struct{}
	if mode == core.SearchModeAll {
		matched = intersect(sets)
	} else {
		matched = union(sets)
	}

	for _, id := range slices.Sorted(maps.Keys(matched)) {
		results = append(results, ix.grants[id].Clone())
	}
	return results
}

// intersect returns the IDs present in every set, probing from the
// smallest set. A nil set is empty.
func intersect(sets []map[core.ID]struct{}) map[core.ID]struct{} {
	smallest := sets[0]
	for _, s := range sets[1:] {
		if len(s) < len(smallest) {
			smallest = s
		}
	}

	out := make(map[core.ID]struct{}, len(smallest))
outer:
	for id := range smallest {
		for _, s := range sets {
			if _, ok := s[id]; !ok {
				continue outer
			}
		}
		out[id] = struct{}{}
	}
	return out
}

func union(sets []map[core.ID]struct{}) map[core.ID]struct{} {
	out := make(map[core.ID]struct{})
	for _, s := range sets {
		for id := range s {
			out[id] = struct{}{}
		}
	}
	return out
}
