package tagging

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize lowercases text, replaces every rune that is not a letter, digit,
// whitespace or hyphen with a space, collapses whitespace runs and trims.
func Normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r), r == '-':
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}

// Stem reduces a word to a coarse stem: "ies" becomes "y", otherwise a
// trailing "es" is dropped, otherwise a trailing "s" is dropped when at least
// three characters remain.
func Stem(word string) string {
	switch {
	case strings.HasSuffix(word, "ies"):
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "es"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "s") && utf8.RuneCountInString(word) > 3:
		return strings.TrimSuffix(word, "s")
	default:
		return word
	}
}

// containsWord reports whether phrase occurs in text with a word boundary on
// both ends, where word runes are letters, digits and underscore.
func containsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)

	for offset := 0; offset <= len(text)-len(phrase); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(phrase)

		before, after := utf8.RuneError, utf8.RuneError
		if start > 0 {
			before, _ = utf8.DecodeLastRuneInString(text[:start])
		}
		if end < len(text) {
			after, _ = utf8.DecodeRuneInString(text[end:])
		}

		if boundary(before, start == 0, first) && boundary(after, end == len(text), last) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

// boundary reports whether a \b assertion holds between neighbour and edge,
// the rune of the phrase adjacent to it.
func boundary(neighbour rune, atEnd bool, edge rune) bool {
	if atEnd {
		return isWord(edge)
	}
	return isWord(neighbour) != isWord(edge)
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
