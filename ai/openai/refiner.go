package openai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/granttag/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Refiner implements ai.TagRefiner using an OpenAI-compatible chat API.
type Refiner struct {
	client      llms.Model
	available   []string
	allowed     map[string]struct{}
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

var _ ai.TagRefiner = (*Refiner)(nil)

// newRefiner is an internal constructor that returns the concrete type.
func newRefiner(config *ai.Config, availableTags []string) (*Refiner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(availableTags) == 0 {
		return nil, ErrNoAvailableTags
	}

	// Local OpenAI-compatible services accept any token.
	token := config.APIKey
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	available := slices.Clone(availableTags)
	slices.Sort(available)
	allowed := make(map[string]struct{}, len(available))
	for _, tag := range available {
		allowed[tag] = struct{}{}
	}

	return &Refiner{
		client:      client,
		available:   available,
		allowed:     allowed,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		logger:      slog.Default().With("component", "openai-refiner"),
	}, nil
}

// NewRefiner creates a refiner restricted to availableTags.
//
// Returns ai.TagRefiner interface to enforce abstraction.
func NewRefiner(config *ai.Config, availableTags []string) (ai.TagRefiner, error) {
	return newRefiner(config, availableTags)
}

// Refine asks the model to re-rank, extend and prune tags. The answer is
// filtered to the available tags in the order the model gave them.
func (r *Refiner) Refine(ctx context.Context, name, description string, tags []string) ([]string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildUserPrompt(name, description, tags, r.available))},
		},
	}

	response, err := r.client.GenerateContent(ctx, content,
		llms.WithTemperature(r.temperature),
		llms.WithMaxTokens(r.maxTokens),
	)
	if err != nil {
		r.logger.Error("failed to generate content", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, ai.ErrEmptyResponse
	}

	answer := response.Choices[0].Content
	refined := r.filter(parseTagList(answer))
	if len(refined) == 0 {
		r.logger.Debug("no usable tags in refinement response", "response", answer)
		return nil, fmt.Errorf("%w: %q", ai.ErrEmptyResponse, strings.TrimSpace(answer))
	}
	return refined, nil
}

// filter keeps tags from the available set, dropping duplicates.
func (r *Refiner) filter(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, tag := range candidates {
		if _, ok := r.allowed[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
