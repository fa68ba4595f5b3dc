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


// Package tagging assigns vocabulary tags to grants.
//
// Tagging is a two-pass keyword match over the normalized name and
// description. The first pass accepts a tag when the tag text itself occurs
// anywhere in the text or when one of its keyword phrases occurs as a whole
// word. The second pass stems every word with a suffix heuristic and accepts
// remaining tags whose hyphen-separated parts match a stemmed word.
//
// The matched set is sorted and may then be reviewed by an ai.TagRefiner.
// Refinement is bounded by a timeout, recovered from panics, filtered to the
// vocabulary, and on any failure the keyword result is returned unchanged.
package tagging
