package retrieval

import (
	"strings"
	"unicode"
)

// Tokenizer converts text into a sequence of terms.
type Tokenizer func(text string) []string

// Tokenize lower-cases text, replaces every character that is not an ASCII
// letter, digit or whitespace with a space, and splits on whitespace runs.
// Accented and non-Latin letters are treated as separators.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, lower)
	return strings.Fields(cleaned)
}

// StemmingTokenizer returns a Tokenizer that applies stem to every term
// produced by Tokenize. Terms the stemmer reduces to nothing are dropped.
func StemmingTokenizer(stem func(string) string) Tokenizer {
	return func(text string) []string {
		terms := Tokenize(text)
		out := terms[:0]
		for _, t := range terms {
			if s := stem(t); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
}
