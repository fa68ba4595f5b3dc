package search

import "github.com/poiesic/granttag/core"

// SearchMonitor provides hooks to observe searches.
// Hooks are called outside the index lock and must be safe for concurrent use.
type SearchMonitor interface {
	Start(tags []string, mode core.SearchMode)
	Finish(mode core.SearchMode, hits int)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []string, _ core.SearchMode) {}
func (n *noopMonitor) Finish(_ core.SearchMode, _ int)     {}
