// Package vocabulary holds the closed set of tags grants may carry and the
// keyword rules that trigger each tag.
//
// A Vocabulary is immutable once built and safe for concurrent use. The
// built-in tables are returned by Default; deployments can replace them with
// a YAML file via LoadFile.
package vocabulary

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Vocabulary is a closed, sorted set of tags plus tag→keyword rules.
type Vocabulary struct {
	tags     []string
	set      map[string]struct{}
	keywords map[string][]string
}

// New builds a vocabulary from a tag list and keyword rules.
// Tags and phrases are lowercased and trimmed; duplicate tags collapse.
// Every keyword rule must name a tag in the list.
func New(tags []string, keywords map[string][]string) (*Vocabulary, error) {
	v := &Vocabulary{
		set:      make(map[string]struct{}, len(tags)),
		keywords: make(map[string][]string, len(keywords)),
	}

	for _, tag := range tags {
		normalized := normalize(tag)
		if normalized == "" {
			return nil, ErrEmptyTag
		}
		if _, ok := v.set[normalized]; ok {
			continue
		}
		v.set[normalized] = struct{}{}
		v.tags = append(v.tags, normalized)
	}
	if len(v.tags) == 0 {
		return nil, ErrEmptyVocabulary
	}
	slices.Sort(v.tags)

	for tag, phrases := range keywords {
		normalized := normalize(tag)
		if _, ok := v.set[normalized]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
		}
		rule := make([]string, 0, len(phrases))
		for _, phrase := range phrases {
			p := normalize(phrase)
			if p == "" {
				return nil, fmt.Errorf("%w: keyword for tag %q", ErrEmptyTag, tag)
			}
			rule = append(rule, p)
		}
		v.keywords[normalized] = append(v.keywords[normalized], rule...)
	}

	return v, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(tags []string, keywords map[string][]string) *Vocabulary {
	v, err := New(tags, keywords)
	if err != nil {
		panic(err)
	}
	return v
}

var defaultVocabulary = sync.OnceValue(func() *Vocabulary {
	return MustNew(slices.Collect(maps.Keys(defaultKeywords)), defaultKeywords)
})

// Default returns the built-in grant vocabulary.
func Default() *Vocabulary {
	return defaultVocabulary()
}

// Tags returns the vocabulary in ascending order. The slice is a copy.
func (v *Vocabulary) Tags() []string {
	return slices.Clone(v.tags)
}

// Len returns the number of tags.
func (v *Vocabulary) Len() int {
	return len(v.tags)
}

// Contains reports whether tag is in the vocabulary, ignoring case and
// surrounding whitespace.
func (v *Vocabulary) Contains(tag string) bool {
	_, ok := v.set[normalize(tag)]
	return ok
}

// Keywords returns the trigger phrases for tag in rule order, or nil.
func (v *Vocabulary) Keywords(tag string) []string {
	return slices.Clone(v.keywords[normalize(tag)])
}

// Rules returns a copy of every keyword rule, keyed by tag.
func (v *Vocabulary) Rules() map[string][]string {
	rules := make(map[string][]string, len(v.keywords))
	for tag, phrases := range v.keywords {
		rules[tag] = slices.Clone(phrases)
	}
	return rules
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
