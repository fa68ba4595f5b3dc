package ai

import "errors"

var (
	// ErrRefinerRequired is returned when a decorator is given a nil refiner.
	ErrRefinerRequired = errors.New("refiner required")

	// ErrEmptyResponse is returned when the model answers with no usable tags.
	ErrEmptyResponse = errors.New("empty refinement response")
)
