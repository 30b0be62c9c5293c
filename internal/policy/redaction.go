// Package policy holds the privacy rules applied to conversation text
// before it is persisted to a user's profile.
package policy

import (
	"regexp"
	"strings"
)

// Order matters: card numbers must be masked before the phone pattern
// gets a chance to claim them.
var redactionRules = []struct {
	pattern *regexp.Regexp
	marker  string
}{
	{regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`), "[REDACTED_EMAIL]"},
	{regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`), "[REDACTED_CARD]"},
	{regexp.MustCompile(`\+?[0-9][0-9\-() ]{7,}[0-9]`), "[REDACTED_PHONE]"},
}

// RedactPII masks common high-risk PII patterns in text that is about to
// be stored. The redacted form is what retrieval and relevance scoring
// will see on later requests.
func RedactPII(input string) (redacted string, changed bool) {
	out := input
	for _, rule := range redactionRules {
		next := rule.pattern.ReplaceAllString(out, rule.marker)
		changed = changed || next != out
		out = next
	}
	return out, changed
}

// IsRedactionMarker reports whether token is one of the markers RedactPII
// substitutes, with or without the surrounding brackets. Signal
// extraction runs on redacted text and must not mistake a marker for
// user content.
func IsRedactionMarker(token string) bool {
	t := strings.Trim(token, "[]")
	for _, rule := range redactionRules {
		if t == strings.Trim(rule.marker, "[]") {
			return true
		}
	}
	return false
}
