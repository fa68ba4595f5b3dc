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



package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidGrant indicates a grant or grant input failed validation.
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrEmptyGrantName indicates the grant name is empty.
	ErrEmptyGrantName = errors.New("grant_name is required")

	// ErrEmptyGrantDescription indicates the grant description is empty.
	ErrEmptyGrantDescription = errors.New("grant_description is required")

	// ErrInvalidSearchMode indicates a search mode other than "all" or "any".
	ErrInvalidSearchMode = errors.New("mode must be 'all' or 'any'")
)
