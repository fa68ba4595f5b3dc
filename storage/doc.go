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


// Package storage provides the persistence layer for tagged grants.
//
// The GrantStore interface decouples the catalog from the storage backend.
// Two backends are provided:
//
//   - storage/badger: BadgerDB, grants encoded with the mus binary codec
//   - storage/jsonfile: a single pretty-printed JSON array on disk
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.GrantStore interface:
//
//	store, err := badger.NewGrantRepository(backend)  // returns storage.GrantStore
//	store, err := jsonfile.Open("data/grants.json")   // returns storage.GrantStore
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Failure Model
//
// Stored data that cannot be decoded is logged and read as an empty
// collection so tagging and search stay available. Other I/O errors are
// returned to the caller.
//
// # Thread Safety
//
// All implementations serialize their operations on the whole collection
// and are safe for concurrent use.
package storage
