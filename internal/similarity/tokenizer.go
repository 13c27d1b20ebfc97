// Package similarity implements the lexical title-matching pipeline:
// tokenization, per-request TF-IDF vectorization, and top-k cosine ranking.
// Everything in this package is pure; all state lives for a single request.
package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize normalizes raw text into term tokens: lowercase, split on
// non-word boundaries, drop single-character tokens and stop-words.
// Returns nil for input that yields no usable terms.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	var tokens []string
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenizeAll tokenizes each input string, preserving order.
func TokenizeAll(texts []string) [][]string {
	out := make([][]string, len(texts))
	for i, t := range texts {
		out[i] = Tokenize(t)
	}
	return out
}
