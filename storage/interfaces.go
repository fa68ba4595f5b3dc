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


package storage

import (
	"context"

	"github.com/poiesic/granttag/core"
)

// GrantStore persists the grant collection.
//
// Implementations must be thread-safe: every operation acts on the whole
// collection under one lock, so a reader never observes a partial write.
// Unreadable or malformed stored data is treated as an empty collection
// rather than an error.
type GrantStore interface {
	// ReadAll returns every stored grant in insertion order.
	// Returns an empty slice, not an error, when the stored data is corrupt.
	ReadAll(ctx context.Context) ([]*core.Grant, error)

	// WriteAll replaces the stored collection with grants.
	WriteAll(ctx context.Context, grants []*core.Grant) error

	// AppendAll adds grants after the existing ones.
	AppendAll(ctx context.Context, grants []*core.Grant) error

	// ClearAll removes every stored grant.
	ClearAll(ctx context.Context) error

	// Close releases resources. Operations after Close return ErrStorageClosed.
	Close() error
}
