package tagging

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/granttag/ai"
	"github.com/poiesic/granttag/vocabulary"
)

// DefaultRefineTimeout bounds a refinement call when no timeout is configured.
const DefaultRefineTimeout = 30 * time.Second

// rule is the precomputed matching data for one vocabulary tag.
type rule struct {
	tag      string
	spaced   string
	keywords []string
	stems    []string
}

// Tagger assigns vocabulary tags to grant text. It is immutable after
// construction and safe for concurrent use.
type Tagger struct {
	vocab         *vocabulary.Vocabulary
	rules         []rule
	refiner       ai.TagRefiner
	refineTimeout time.Duration
	monitor       Monitor
	logger        *slog.Logger
}

// Option configures a Tagger.
type Option func(*Tagger) error

// WithRefiner enables refinement through refiner.
func WithRefiner(refiner ai.TagRefiner) Option {
	return func(t *Tagger) error {
		if refiner == nil {
			return ErrRefinerRequired
		}
		t.refiner = refiner
		return nil
	}
}

// WithRefineTimeout bounds each refinement call.
// Default is DefaultRefineTimeout.
func WithRefineTimeout(timeout time.Duration) Option {
	return func(t *Tagger) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}
		t.refineTimeout = timeout
		return nil
	}
}

// WithMonitor sets a monitor that observes tagging.
func WithMonitor(monitor Monitor) Option {
	return func(t *Tagger) error {
		if monitor == nil {
			monitor = noopMonitor{}
		}
		t.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tagger) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger.With("component", "tagger")
		return nil
	}
}

// NewTagger creates a tagger over vocab.
func NewTagger(vocab *vocabulary.Vocabulary, opts ...Option) (*Tagger, error) {
	if vocab == nil {
		return nil, ErrVocabularyRequired
	}

	t := &Tagger{
		vocab:         vocab,
		refineTimeout: DefaultRefineTimeout,
		monitor:       noopMonitor{},
		logger:        slog.Default().With("component", "tagger"),
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	for _, tag := range vocab.Tags() {
		spaced := strings.ReplaceAll(tag, "-", " ")
		r := rule{
			tag:      tag,
			spaced:   spaced,
			keywords: vocab.Keywords(tag),
		}
		for _, word := range strings.Fields(spaced) {
			r.stems = append(r.stems, Stem(word))
		}
		t.rules = append(t.rules, r)
	}

	return t, nil
}

// Vocabulary returns the vocabulary the tagger draws from.
func (t *Tagger) Vocabulary() *vocabulary.Vocabulary {
	return t.vocab
}

// Refining reports whether a refiner is configured.
func (t *Tagger) Refining() bool {
	return t.refiner != nil
}

// Tag returns the sorted, duplicate-free tags for a grant. It never fails:
// refinement problems fall back to the keyword result, and text without
// any words yields an empty slice.
func (t *Tagger) Tag(ctx context.Context, name, description string) []string {
	start := time.Now()

	normalized := Normalize(name + " " + description)
	tags := t.match(normalized)

	if t.refiner != nil && normalized != "" {
		tags = t.refine(ctx, name, description, tags)
	}

	t.monitor.Tagged(len(tags), time.Since(start))
	return tags
}

// Match returns the keyword tags for a grant without refinement.
func (t *Tagger) Match(name, description string) []string {
	return t.match(Normalize(name + " " + description))
}

func (t *Tagger) match(normalized string) []string {
	matched := make(map[string]struct{})
	if normalized == "" {
		return []string{}
	}

	for _, r := range t.rules {
		if strings.Contains(normalized, r.spaced) || strings.Contains(normalized, r.tag) {
			matched[r.tag] = struct{}{}
			continue
		}
		for _, keyword := range r.keywords {
			if containsWord(normalized, keyword) {
				matched[r.tag] = struct{}{}
				break
			}
		}
	}

	words := make(map[string]struct{})
	for _, word := range strings.Fields(normalized) {
		words[Stem(word)] = struct{}{}
	}

	for _, r := range t.rules {
		if _, ok := matched[r.tag]; ok {
			continue
		}
		for _, stem := range r.stems {
			if _, ok := words[stem]; ok {
				matched[r.tag] = struct{}{}
				break
			}
		}
	}

	tags := slices.Sorted(maps.Keys(matched))
	if tags == nil {
		tags = []string{}
	}
	return tags
}

type refineResult struct {
	tags []string
	err  error
}

// refine runs the refiner under a timeout and returns baseline unless the
// refiner produced at least one vocabulary tag.
func (t *Tagger) refine(ctx context.Context, name, description string, baseline []string) []string {
	ctx, cancel := context.WithTimeout(ctx, t.refineTimeout)
	defer cancel()

	done := make(chan refineResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- refineResult{err: fmt.Errorf("refiner panic: %v", r)}
			}
		}()
		tags, err := t.refiner.Refine(ctx, name, description, slices.Clone(baseline))
		done <- refineResult{tags: tags, err: err}
	}()

	var res refineResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		t.logger.Warn("refinement failed, keeping keyword tags", "grant", name, "err", res.err)
		t.monitor.Refined(OutcomeFallback)
		return baseline
	}

	refined := t.filter(res.tags)
	if len(refined) == 0 {
		t.logger.Warn("refinement returned no vocabulary tags, keeping keyword tags", "grant", name)
		t.monitor.Refined(OutcomeFallback)
		return baseline
	}

	t.monitor.Refined(OutcomeRefined)
	return refined
}

// filter normalizes candidates and keeps the sorted vocabulary members.
func (t *Tagger) filter(candidates []string) []string {
	kept := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		tag := strings.ToLower(strings.TrimSpace(c))
		if t.vocab.Contains(tag) {
			kept[tag] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(kept))
}
