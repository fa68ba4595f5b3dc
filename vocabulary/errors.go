// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.



package vocabulary

import "errors"

var (
	// ErrEmptyVocabulary is returned when a vocabulary has no tags.
	ErrEmptyVocabulary = errors.New("vocabulary has no tags")

	// ErrEmptyTag is returned when a tag or keyword phrase is blank.
	ErrEmptyTag = errors.New("tag cannot be empty")

	// ErrUnknownTag is returned when a keyword rule names a tag outside the vocabulary.
	ErrUnknownTag = errors.New("keyword rule for unknown tag")
)
