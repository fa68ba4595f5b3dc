package openai

import "errors"

// ErrNoAvailableTags is returned when a refiner is built without a vocabulary.
var ErrNoAvailableTags = errors.New("available tags required")
