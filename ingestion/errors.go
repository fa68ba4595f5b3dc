package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a grant store is not provided.
	ErrStoreRequired = errors.New("grant store required")

	// ErrTaggerRequired is returned when a tagger is not provided.
	ErrTaggerRequired = errors.New("tagger required")

	// ErrIndexRequired is returned when a search index is not provided.
	ErrIndexRequired = errors.New("search index required")
)
