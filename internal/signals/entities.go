package signals

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minEntityLen: tokens must be longer than this to count as candidates.
const minEntityLen = 3

// capitalizedFunctionWords are common sentence-initial words that pass
// the capitalization check but are never entities.
var capitalizedFunctionWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "this", "that", "these", "those", "there", "then",
		"they", "them", "their", "what", "when", "where", "which",
		"while", "with", "from", "have", "will", "would", "could",
		"should", "about", "after", "before", "because", "just",
		"your", "yours", "also", "some", "such", "here", "does",
		"don't", "been", "being", "into", "over", "under", "only",
		"very", "than", "well", "yeah", "okay", "please", "thanks",
		"hello", "sorry", "maybe", "anyway", "today", "tomorrow",
	} {
		capitalizedFunctionWords[w] = struct{}{}
	}
}

// ExtractEntities scans raw (non-normalized) tokens for capitalized words
// longer than minEntityLen and returns them as a deduplicated set,
// preserving first-seen order. This is a cheap stand-in for named-entity
// recognition; expect a nontrivial false-positive rate, especially for
// sentence-initial words not covered by the blocklist.
func ExtractEntities(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, ".,!?;:\"'()[]{}<>")
		if utf8.RuneCountInString(tok) <= minEntityLen {
			continue
		}
		first, _ := utf8.DecodeRuneInString(tok)
		// The first rune must be uppercase with a distinct lowercase
		// form; that filters digits and symbols, which case-fold to
		// themselves.
		if !unicode.IsUpper(first) || unicode.ToLower(first) == first {
			continue
		}
		if _, common := capitalizedFunctionWords[strings.ToLower(tok)]; common {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
