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


// Package search provides tag-based retrieval over tagged grants.
//
// The Index type is an inverted index from normalized tag to grant IDs,
// answering multi-tag queries as a set intersection (SearchModeAll) or a
// set union (SearchModeAny). Results are returned in ascending ID order,
// which is insertion order.
//
// An Index does not persist itself. The owner rebuilds it from storage when
// a process starts and extends it as grants are added.
package search
