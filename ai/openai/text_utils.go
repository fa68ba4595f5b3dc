package openai

import (
	"strings"
	"unicode"
)

// scrubString drops control characters and trims whitespace so user text
// cannot break the prompt layout.
func scrubString(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// stripCodeFences removes a surrounding markdown code fence if the model
// added one.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], ",") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseTagList splits a comma-separated answer into lowercased, trimmed
// tags, preserving order. Empty items are skipped.
func parseTagList(answer string) []string {
	answer = stripCodeFences(answer)
	answer = strings.ReplaceAll(answer, "\n", ",")

	parts := strings.Split(answer, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.ToLower(strings.TrimSpace(part))
		tag = strings.Trim(tag, "`'\".")
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
