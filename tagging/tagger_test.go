package tagging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/granttag/ai/mock"
	"github.com/poiesic/granttag/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallVocabulary(t *testing.T) *vocabulary.Vocabulary {
	t.Helper()
	v, err := vocabulary.New(
		[]string{"agriculture", "berry-farm", "cost-share", "water", "youth"},
		map[string][]string{
			"agriculture": {"farm", "crop"},
			"water":       {"water system"},
			"youth":       {"students"},
		},
	)
	require.NoError(t, err)
	return v
}

func newTestTagger(t *testing.T, opts ...Option) *Tagger {
	t.Helper()
	tagger, err := NewTagger(smallVocabulary(t), opts...)
	require.NoError(t, err)
	return tagger
}

type recordingMonitor struct {
	mu       sync.Mutex
	tagged   []int
	outcomes []string
}

func (m *recordingMonitor) Tagged(tags int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tagged = append(m.tagged, tags)
}

func (m *recordingMonitor) Refined(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func TestNewTagger(t *testing.T) {
	t.Run("requires vocabulary", func(t *testing.T) {
		_, err := NewTagger(nil)
		assert.ErrorIs(t, err, ErrVocabularyRequired)
	})

	t.Run("rejects nil refiner", func(t *testing.T) {
		_, err := NewTagger(smallVocabulary(t), WithRefiner(nil))
		assert.ErrorIs(t, err, ErrRefinerRequired)
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		_, err := NewTagger(smallVocabulary(t), WithRefineTimeout(0))
		assert.ErrorIs(t, err, ErrInvalidTimeout)
	})

	t.Run("refining only with refiner", func(t *testing.T) {
		assert.False(t, newTestTagger(t).Refining())
		assert.True(t, newTestTagger(t, WithRefiner(mock.NewMockRefiner())).Refining())
	})
}

func TestTagger_Match(t *testing.T) {
	tagger := newTestTagger(t)

	tests := []struct {
		name        string
		grantName   string
		description string
		want        []string
	}{
		{"keyword", "Crop support", "", []string{"agriculture"}},
		{"keyword needs whole word", "Farmstead", "restoration", []string{}},
		{"tag with hyphen as spaces", "Cost share match", "", []string{"cost-share"}},
		{"tag verbatim", "", "A cost-share program", []string{"cost-share"}},
		{"tag substring inside word", "Waterfowl", "", []string{"water"}},
		{"stemmed tag part", "Berries", "for sale", []string{"berry-farm"}},
		{"keyword case insensitive", "Helping STUDENTS", "", []string{"youth"}},
		{"multiple passes", "Farm & crop,", "water!", []string{"agriculture", "berry-farm", "water"}},
		{"empty", "", "", []string{}},
		{"punctuation only", "!!!", "???", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tagger.Match(tt.grantName, tt.description))
		})
	}
}

func TestTagger_Tag_DefaultVocabulary(t *testing.T) {
	tagger, err := NewTagger(vocabulary.Default())
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name        string
		grantName   string
		description string
		contains    []string
	}{
		{
			name:        "sustainable agriculture",
			grantName:   "Sustainable Agriculture Research Grant",
			description: "Funding for projects that promote organic farming practices and soil conservation.",
			contains:    []string{"agriculture", "research", "soil"},
		},
		{
			name:        "education",
			grantName:   "STEM Education Initiative",
			description: "Support for programs that encourage high school students to pursue careers in science, technology, engineering, and mathematics.",
			contains:    []string{"education", "school", "youth"},
		},
		{
			name:        "nutrient management",
			grantName:   "Nutrient Management Farmer Education Grants",
			description: "The Nutrient Management Farmer Education Grant Program supports nutrient management planning in Wisconsin by funding entities to educate farmers.",
			contains:    []string{"nutrient-management", "education", "farmer"},
		},
		{
			name:        "organic transition",
			grantName:   "Minnesota Transition to Organic Cost-Share Program",
			description: "This program supports Minnesota farmers transitioning to organic farming by reimbursing costs associated with working with an organic certifying agency during the transition period.",
			contains:    []string{"organic-transition", "farmer", "cost-share"},
		},
		{
			name:        "drought relief",
			grantName:   "Farmers Drought Relief Fund",
			description: "The Farmers Drought Relief Fund aims to assist Maine farmers in overcoming the adverse effects of drought by providing grants for developing agricultural water management plans and installing agricultural water sources.",
			contains:    []string{"drought", "farmer", "water"},
		},
		{
			name:        "equine welfare",
			grantName:   "Equine Welfare Assistance",
			description: "The Equine Welfare Assistance Grant aims to enhance the well-being of Colorado's domestic equines by funding projects and programs that support safety net initiatives, adoption programs, education, and awareness related to equine welfare.",
			contains:    []string{"equine", "education", "safety-net"},
		},
		{
			name:        "irrigation",
			grantName:   "Irrigation System Grant",
			description: "Installing water systems for farms",
			contains:    []string{"water", "agriculture"},
		},
		{
			name:        "stemming fallback",
			grantName:   "Community foods",
			description: "",
			contains:    []string{"food-access", "community-benefit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := tagger.Tag(ctx, tt.grantName, tt.description)
			for _, want := range tt.contains {
				assert.Contains(t, tags, want)
			}
			assertSortedVocabulary(t, tagger.Vocabulary(), tags)
		})
	}
}

func TestTagger_Tag_Properties(t *testing.T) {
	tagger, err := NewTagger(vocabulary.Default())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("empty input", func(t *testing.T) {
		tags := tagger.Tag(ctx, "", "")
		assert.NotNil(t, tags)
		assert.Empty(t, tags)
	})

	t.Run("case invariance", func(t *testing.T) {
		assert.Equal(t,
			tagger.Tag(ctx, "agriculture", "farming"),
			tagger.Tag(ctx, "AGRICULTURE", "FARMING"))
		assert.Contains(t, tagger.Tag(ctx, "AGRICULTURE GRANT", "FARMING AND EDUCATION"), "education")
	})

	t.Run("no hallucination", func(t *testing.T) {
		tags := tagger.Tag(ctx, "Random Grant Program",
			"This is a grant for something completely unrelated to agriculture or any predefined tags.")
		assertSortedVocabulary(t, tagger.Vocabulary(), tags)
	})
}

func TestTagger_Refinement(t *testing.T) {
	ctx := context.Background()

	t.Run("filters and sorts refined tags", func(t *testing.T) {
		refiner := mock.NewMockRefiner().WithRefineFunc(
			func(_ context.Context, _, _ string, _ []string) ([]string, error) {
				return []string{"Water", "made-up", " agriculture ", "water"}, nil
			})
		monitor := &recordingMonitor{}
		tagger := newTestTagger(t, WithRefiner(refiner), WithMonitor(monitor))

		tags := tagger.Tag(ctx, "Crop support", "")

		assert.Equal(t, []string{"agriculture", "water"}, tags)
		assert.Equal(t, []string{"agriculture"}, refiner.LastTags())
		assert.Equal(t, []string{OutcomeRefined}, monitor.outcomes)
		assert.Equal(t, []int{2}, monitor.tagged)
	})

	t.Run("error falls back to baseline", func(t *testing.T) {
		refiner := mock.NewMockRefiner().WithRefineFunc(
			func(_ context.Context, _, _ string, _ []string) ([]string, error) {
				return nil, errors.New("API Error")
			})
		monitor := &recordingMonitor{}
		tagger := newTestTagger(t, WithRefiner(refiner), WithMonitor(monitor))

		assert.Equal(t, []string{"agriculture"}, tagger.Tag(ctx, "Crop support", ""))
		assert.Equal(t, []string{OutcomeFallback}, monitor.outcomes)
	})

	t.Run("only unknown tags falls back to baseline", func(t *testing.T) {
		refiner := mock.NewMockRefiner().WithRefineFunc(
			func(_ context.Context, _, _ string, _ []string) ([]string, error) {
				return []string{"fake-tag", "another-invalid"}, nil
			})
		tagger := newTestTagger(t, WithRefiner(refiner))

		assert.Equal(t, []string{"agriculture"}, tagger.Tag(ctx, "Crop support", ""))
	})

	t.Run("panic falls back to baseline", func(t *testing.T) {
		refiner := mock.NewMockRefiner().WithRefineFunc(
			func(_ context.Context, _, _ string, _ []string) ([]string, error) {
				panic("refiner exploded")
			})
		tagger := newTestTagger(t, WithRefiner(refiner))

		assert.Equal(t, []string{"agriculture"}, tagger.Tag(ctx, "Crop support", ""))
	})

	t.Run("timeout falls back to baseline", func(t *testing.T) {
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })
		refiner := mock.NewMockRefiner().WithRefineFunc(
			func(_ context.Context, _, _ string, _ []string) ([]string, error) {
				<-release
				return []string{"water"}, nil
			})
		tagger := newTestTagger(t, WithRefiner(refiner), WithRefineTimeout(20*time.Millisecond))

		start := time.Now()
		tags := tagger.Tag(ctx, "Crop support", "")

		assert.Equal(t, []string{"agriculture"}, tags)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("empty text skips refinement", func(t *testing.T) {
		refiner := mock.NewMockRefiner().WithRefineFunc(
			func(_ context.Context, _, _ string, _ []string) ([]string, error) {
				return []string{"water"}, nil
			})
		tagger := newTestTagger(t, WithRefiner(refiner))

		assert.Empty(t, tagger.Tag(ctx, "", "  "))
		assert.Zero(t, refiner.CallCount())
	})

	t.Run("refiner may add tags from empty baseline", func(t *testing.T) {
		refiner := mock.NewMockRefiner().WithRefineFunc(
			func(_ context.Context, _, _ string, _ []string) ([]string, error) {
				return []string{"youth"}, nil
			})
		tagger := newTestTagger(t, WithRefiner(refiner))

		assert.Equal(t, []string{"youth"}, tagger.Tag(ctx, "Mentoring", "after school"))
		assert.Equal(t, 1, refiner.CallCount())
	})
}

func TestTagger_ConcurrentUse(t *testing.T) {
	tagger, err := NewTagger(vocabulary.Default(), WithRefiner(mock.NewMockRefiner()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tags := tagger.Tag(context.Background(), "Farm Education Grant", "Supporting agricultural education programs")
			assert.Contains(t, tags, "agriculture")
			assert.Contains(t, tags, "education")
		}()
	}
	wg.Wait()
}

func assertSortedVocabulary(t *testing.T, v *vocabulary.Vocabulary, tags []string) {
	t.Helper()
	for i, tag := range tags {
		assert.True(t, v.Contains(tag), "tag %q not in vocabulary", tag)
		if i > 0 {
			assert.Less(t, tags[i-1], tag, "tags must be strictly ascending")
		}
	}
}
