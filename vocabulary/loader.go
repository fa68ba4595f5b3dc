package vocabulary

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of a vocabulary override:
//
//	tags: [agriculture, water]
//	keywords:
//	  agriculture: [farm, crop]
//	  water: [irrigation]
//
// When tags is omitted the keyword keys form the vocabulary.
type file struct {
	Tags     []string            `yaml:"tags"`
	Keywords map[string][]string `yaml:"keywords,omitempty"`
}

// Load decodes a YAML vocabulary from r.
func Load(r io.Reader) (*Vocabulary, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyVocabulary
		}
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}

	tags := f.Tags
	if len(tags) == 0 {
		tags = slices.Sorted(maps.Keys(f.Keywords))
	}
	return New(tags, f.Keywords)
}

// LoadFile reads a YAML vocabulary from path.
func LoadFile(path string) (*Vocabulary, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	v, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Dump writes v in the layout Load reads, so the built-in tables can be
// exported as a starting point for an override file.
func Dump(w io.Writer, v *Vocabulary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file{Tags: v.Tags(), Keywords: v.Rules()}); err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	return enc.Close()
}
