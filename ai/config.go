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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the optional tag refinement service.
type Config struct {
	// Enabled turns refinement on. Even when enabled, refinement only runs
	// if an API key is present; see Active.
	Enabled bool

	// Host is the base URL of an OpenAI-compatible chat completion API.
	// Example: "https://api.openai.com/v1", "http://localhost:11434/v1"
	Host string

	// APIKey is the bearer token sent to Host.
	APIKey string

	// Model is the chat model identifier.
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	Model string

	// Temperature is the sampling temperature for refinement requests.
	// Default: 0.3
	Temperature float64

	// MaxTokens caps the length of the model's answer.
	// Default: 200
	MaxTokens int

	// Timeout bounds a single refinement call. The tagger falls back to its
	// keyword tags when it expires.
	// Default: 30s
	Timeout time.Duration

	// CacheTTL is how long a refinement answer is reused for identical input.
	// Zero disables caching.
	// Default: 1h
	CacheTTL time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEnabled turns refinement on or off.
func WithEnabled(enabled bool) ConfigOption {
	return func(c *Config) {
		c.Enabled = enabled
	}
}

// WithHost sets the chat completion host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithTimeout sets the per-call refinement timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithCacheTTL sets how long refinement answers are cached.
func WithCacheTTL(ttl time.Duration) ConfigOption {
	return func(c *Config) {
		c.CacheTTL = ttl
	}
}

// DefaultConfig returns a Config with refinement disabled and the hosted
// OpenAI API as the target.
func DefaultConfig() *Config {
	return &Config{
		Host:        "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   200,
		Timeout:     30 * time.Second,
		CacheTTL:    time.Hour,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithEnabled(true),
//	    WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    WithModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Active reports whether refinement should be used: it must be enabled and
// have credentials. A missing key is equivalent to no refinement.
func (c *Config) Active() bool {
	return c != nil && c.Enabled && c.APIKey != ""
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxTokens <= 0 {
		return errors.New("ai config: MaxTokens must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("ai config: Timeout must be positive")
	}
	if c.CacheTTL < 0 {
		return errors.New("ai config: CacheTTL must not be negative")
	}
	return nil
}
