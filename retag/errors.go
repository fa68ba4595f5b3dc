package retag

import "errors"

var (
	// ErrStoreRequired is returned when a grant store is not provided.
	ErrStoreRequired = errors.New("grant store required")

	// ErrTaggerRequired is returned when a batch tagger is not provided.
	ErrTaggerRequired = errors.New("batch tagger required")
)
