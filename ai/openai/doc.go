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


// Package openai provides tag refinement backed by an OpenAI-compatible
// chat completion API.
//
// The langchaingo client talks to OpenAI itself or to any compatible
// server (Ollama, LocalAI, vLLM). The model is asked for a comma-separated
// list drawn from the vocabulary; anything outside the vocabulary is dropped.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithEnabled(true),
//	    ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	)
//
//	refiner, err := openai.NewRefiner(config, vocabulary.Default().Tags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tags, err := refiner.Refine(ctx, "Farm Education Grant", "...", []string{"agriculture"})
package openai
