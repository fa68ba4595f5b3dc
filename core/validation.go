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

import (
	"fmt"
	"strings"
)

// ValidateGrantInput validates a grant submitted for tagging.
//
// Validation rules:
//   - Name must not be empty or whitespace
//   - Description must not be empty or whitespace
//
// URL lists are optional and not inspected.
func ValidateGrantInput(in *GrantInput) error {
	if in == nil {
		return fmt.Errorf("%w: input is nil", ErrInvalidGrant)
	}

	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, ErrEmptyGrantName)
	}

	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, ErrEmptyGrantDescription)
	}

	return nil
}

// ValidateGrantInputs validates a whole batch and reports the first failing
// item by position. A batch is accepted or rejected as a unit.
func ValidateGrantInputs(inputs []GrantInput) error {
	for i := range inputs {
		if err := ValidateGrantInput(&inputs[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// ParseSearchMode parses "all" or "any", ignoring case. Surrounding
// whitespace is not accepted.
func ParseSearchMode(s string) (SearchMode, error) {
	switch mode := SearchMode(strings.ToLower(s)); mode {
	case SearchModeAll, SearchModeAny:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSearchMode, s)
	}
}
