package openai

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a precise grant categorization assistant. " +
	"Only return comma-separated tags from the provided list."

const refinementPromptTemplate = `You are a grant categorization assistant. Given a grant and some initial tags from keyword matching, your job is to:
1. Re-rank the initial tags by relevance
2. Add any missing relevant tags from the available tags list
3. Remove any clearly incorrect tags

IMPORTANT: You may ONLY use tags from the "Available tags" list. Do not invent new tags.

Grant Name: %s
Grant Description: %s

Initial tags (from keyword matching): %s

Available tags: %s

Return ONLY a comma-separated list of tags, ordered by relevance. No explanations.
Example: agriculture, education, youth, sustainability`

// buildUserPrompt renders the refinement request for one grant.
func buildUserPrompt(name, description string, tags, available []string) string {
	return fmt.Sprintf(refinementPromptTemplate,
		scrubString(name),
		scrubString(description),
		strings.Join(tags, ", "),
		strings.Join(available, ", "))
}
