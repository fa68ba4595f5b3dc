// Package synonym expands free-text search queries into tag space.
package synonym

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Resolver maps surface forms to canonical tags. It is immutable and safe
// for concurrent use.
type Resolver struct {
	table map[string]string
}

// NewResolver builds a resolver over table. Keys are lowercased and trimmed;
// values are used as given.
func NewResolver(table map[string]string) *Resolver {
	r := &Resolver{table: make(map[string]string, len(table))}
	for term, tag := range table {
		r.table[strings.ToLower(strings.TrimSpace(term))] = tag
	}
	return r
}

var defaultResolver = sync.OnceValue(func() *Resolver {
	return NewResolver(defaultTable)
})

// Default returns the resolver over the built-in synonym table.
func Default() *Resolver {
	return defaultResolver()
}

// ResolveTerm lowercases and trims term and returns its canonical tag, or
// the normalized term itself when no synonym is registered.
func (r *Resolver) ResolveTerm(term string) string {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if tag, ok := r.table[normalized]; ok {
		return tag
	}
	return normalized
}

// ResolveQuery expands a free-text query into a sorted set of candidate tags.
//
// Every whitespace-separated token (hyphens count as separators) is resolved
// on its own. The whole query is also resolved as one phrase, and added when
// a multi-word entry such as "local food" fired.
func (r *Resolver) ResolveQuery(query string) []string {
	lowered := strings.ToLower(query)
	resolved := make(map[string]struct{})

	for _, token := range strings.Fields(strings.ReplaceAll(lowered, "-", " ")) {
		resolved[r.ResolveTerm(token)] = struct{}{}
	}

	phrase := strings.TrimSpace(lowered)
	if canonical := r.ResolveTerm(phrase); canonical != phrase {
		resolved[canonical] = struct{}{}
	}

	tags := slices.Sorted(maps.Keys(resolved))
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// Len returns the number of synonym entries.
func (r *Resolver) Len() int {
	return len(r.table)
}

// ResolveSynonym resolves term with the built-in table.
func ResolveSynonym(term string) string {
	return Default().ResolveTerm(term)
}

// ResolveQuery expands query with the built-in table.
func ResolveQuery(query string) []string {
	return Default().ResolveQuery(query)
}
