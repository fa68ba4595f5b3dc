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


// Package ai provides the optional tag refinement capability.
//
// Keyword matching assigns a baseline set of tags to every grant. When
// configured, a TagRefiner gets a second look: it may reorder, add or remove
// tags. The tagger owns the failure boundary, so refiners simply return
// errors and never need to fall back themselves.
//
// # Implementations
//
//   - PassthroughRefiner: identity, used when refinement is disabled
//   - CachingRefiner: go-cache decorator for any refiner
//   - ai/openai: chat completion against an OpenAI-compatible API
//   - ai/mock: test double with call counting
//
// # Constructor Return Type Pattern
//
// openai.NewRefiner returns the ai.TagRefiner interface. Test doubles
// (mock.NewMockRefiner) return concrete types so tests can inject behavior
// and assert on call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithEnabled(true), ai.WithAPIKey(key))
//	refiner, err := openai.NewRefiner(cfg, vocabulary.Default().Tags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tags, err := refiner.Refine(ctx, name, description, baseline)
package ai
