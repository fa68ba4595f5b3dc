package retag

import (
	"context"
	"testing"

	"github.com/poiesic/granttag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTagger implements BatchTagger by returning fixed tags per grant name.
type stubTagger struct {
	tags  map[string][]string
	calls int
}

func (s *stubTagger) TagAll(ctx context.Context, inputs []core.GrantInput) []*core.Grant {
	s.calls++
	grants := make([]*core.Grant, len(inputs))
	for i := range inputs {
		grants[i] = inputs[i].ToGrant(s.tags[inputs[i].Name])
	}
	return grants
}

func TestBatchProcessor_Process(t *testing.T) {
	tagger := &stubTagger{tags: map[string][]string{
		"a": {"water", "agriculture"},
		"b": {"education"},
	}}
	processor := NewBatchProcessor(tagger)

	grants := []*core.Grant{
		{
			Name:        "a",
			Description: "first",
			Tags:        []string{"agriculture", "water"},
			WebsiteURLs: []string{"https://a.example"},
		},
		{Name: "b", Description: "second", Tags: []string{"youth"}},
	}

	retagged, changed := processor.Process(context.Background(), grants)
	require.Len(t, retagged, 2)
	assert.Equal(t, 1, changed, "tag order alone is not a change")

	assert.Equal(t, "a", retagged[0].Name)
	assert.Equal(t, "first", retagged[0].Description)
	assert.Equal(t, []string{"https://a.example"}, retagged[0].WebsiteURLs)
	assert.Equal(t, []string{"education"}, retagged[1].Tags)

	// Inputs are not mutated.
	assert.Equal(t, []string{"youth"}, grants[1].Tags)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	tagger := &stubTagger{}
	processor := NewBatchProcessor(tagger)

	retagged, changed := processor.Process(context.Background(), nil)
	assert.Empty(t, retagged)
	assert.Zero(t, changed)
	assert.Zero(t, tagger.calls, "empty batch should not call the tagger")
}

func TestSameTags(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{"both empty", nil, []string{}, true},
		{"different order", []string{"b", "a"}, []string{"a", "b"}, true},
		{"different case", []string{"Water"}, []string{"water"}, true},
		{"different length", []string{"a"}, []string{"a", "b"}, false},
		{"different members", []string{"a", "c"}, []string{"a", "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameTags(tt.a, tt.b))
		})
	}
}
