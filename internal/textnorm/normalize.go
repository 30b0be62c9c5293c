// Package textnorm normalizes conversational text for lexical scoring:
// lowercase, word tokenization, stopword and short-token removal, and a
// deterministic suffix stemmer.
package textnorm

import (
	"strings"
	"unicode"
)

// Tokens normalizes text into a token sequence. Empty or whitespace-only
// input yields an empty slice, never an error.
func Tokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.Trim(tok, "'")
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, Stem(tok))
	}
	return out
}

// Join returns the normalized text as a single space-joined string,
// the form used when building a scoring corpus.
func Join(text string) string {
	return strings.Join(Tokens(text), " ")
}
