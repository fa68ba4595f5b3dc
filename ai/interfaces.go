package ai

import (
	"context"
	"slices"
)

// TagRefiner reviews the keyword tags assigned to a grant and returns a
// revised list. Implementations must be thread-safe for concurrent use.
type TagRefiner interface {
	// Refine returns revised tags for a grant given the tags found by
	// keyword matching. Callers treat any error as "keep the input tags" and
	// must filter the result against their vocabulary.
	Refine(ctx context.Context, name, description string, tags []string) ([]string, error)
}

// PassthroughRefiner returns the input tags unchanged. It stands in for
// refinement when none is configured.
type PassthroughRefiner struct{}

var _ TagRefiner = PassthroughRefiner{}

// Refine returns a copy of tags.
func (PassthroughRefiner) Refine(_ context.Context, _, _ string, tags []string) ([]string, error) {
	return slices.Clone(tags), nil
}
