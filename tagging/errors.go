package tagging

import "errors"

var (
	// ErrVocabularyRequired is returned when a tagger is built without a vocabulary.
	ErrVocabularyRequired = errors.New("vocabulary required")

	// ErrRefinerRequired is returned when WithRefiner is given a nil refiner.
	ErrRefinerRequired = errors.New("refiner required")

	// ErrInvalidTimeout is returned for a non-positive refinement timeout.
	ErrInvalidTimeout = errors.New("refinement timeout must be positive")
)
