package synonym

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSynonym(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"learning", "education"},
		{"  Learning ", "education"},
		{"irrigation", "water"},
		{"local food", "local-food"},
		{"unknown-xyz", "unknown-xyz"},
		{"  MiXeD ", "mixed"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSynonym(tt.term))
		})
	}
}

func TestResolveQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "single synonym",
			query: "irrigation",
			want:  []string{"water"},
		},
		{
			name:  "hyphenated phrase resolves whole and by token",
			query: "soil-health",
			want:  []string{"health", "soil"},
		},
		{
			name:  "multi-word phrase only reachable as a whole",
			query: "Local Food",
			want:  []string{"community", "food", "local-food"},
		},
		{
			name:  "unknown tokens pass through",
			query: "horse rescue",
			want:  []string{"equine", "rescue"},
		},
		{
			name:  "duplicates collapse",
			query: "farm farming crops",
			want:  []string{"agriculture"},
		},
		{
			name:  "empty query",
			query: "   ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveQuery(tt.query))
		})
	}
}

func TestResolveQuery_ContainsSoil(t *testing.T) {
	assert.Contains(t, ResolveQuery("soil-health"), "soil")
}

func TestNewResolver(t *testing.T) {
	r := NewResolver(map[string]string{" Rain Water ": "water"})

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "water", r.ResolveTerm("rain water"))
	assert.Equal(t, []string{"rain", "water"}, r.ResolveQuery("rain water"))
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Equal(t, len(defaultTable), Default().Len())
}
