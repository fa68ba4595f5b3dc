package mock

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/poiesic/granttag/ai"
)

// MockRefiner is a test double for ai.TagRefiner.
// It allows custom behavior injection via function fields.
type MockRefiner struct {
	// RefineFunc is called by Refine if set.
	// If nil, the input tags are returned unchanged.
	RefineFunc func(ctx context.Context, name, description string, tags []string) ([]string, error)

	mu        sync.Mutex
	callCount atomic.Int64
	lastTags  []string
}

var _ ai.TagRefiner = (*MockRefiner)(nil)

// NewMockRefiner creates a mock refiner with passthrough behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockRefiner() *MockRefiner {
	return &MockRefiner{}
}

// WithRefineFunc sets custom behavior and returns the mock for chaining.
func (m *MockRefiner) WithRefineFunc(fn func(ctx context.Context, name, description string, tags []string) ([]string, error)) *MockRefiner {
	m.RefineFunc = fn
	return m
}

// Refine records the call and delegates to RefineFunc if set.
func (m *MockRefiner) Refine(ctx context.Context, name, description string, tags []string) ([]string, error) {
	m.callCount.Add(1)
	m.mu.Lock()
	m.lastTags = slices.Clone(tags)
	m.mu.Unlock()

	if m.RefineFunc != nil {
		return m.RefineFunc(ctx, name, description, tags)
	}
	return slices.Clone(tags), nil
}

// CallCount returns the number of times Refine was called.
func (m *MockRefiner) CallCount() int {
	return int(m.callCount.Load())
}

// LastTags returns the input tags of the most recent call.
func (m *MockRefiner) LastTags() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.lastTags)
}

// Reset clears the call count and custom functions.
func (m *MockRefiner) Reset() {
	m.callCount.Store(0)
	m.mu.Lock()
	m.lastTags = nil
	m.mu.Unlock()
	m.RefineFunc = nil
}
