package signals

import (
	"regexp"
	"strings"
)

// Preference categories.
const (
	PrefLikes     = "likes"
	PrefDislikes  = "dislikes"
	PrefFavorites = "favorites"
)

// minPreferenceLen drops captures too short to mean anything ("it", "a").
const minPreferenceLen = 2

type preferencePattern struct {
	category string
	re       *regexp.Regexp
}

// Patterns run against lowercased text, so they are written lowercase.
// Captures stop at clause punctuation to keep phrases short.
var preferencePatterns = []preferencePattern{
	{PrefLikes, regexp.MustCompile(`\bi (?:really |absolutely |just )?(?:love|like|enjoy) ([^.,!?;\n]+)`)},
	{PrefLikes, regexp.MustCompile(`\bi'?m (?:really )?(?:into|a big fan of|a fan of) ([^.,!?;\n]+)`)},
	{PrefDislikes, regexp.MustCompile(`\bi (?:really |absolutely )?(?:hate|dislike|despise) ([^.,!?;\n]+)`)},
	{PrefDislikes, regexp.MustCompile(`\bi can'?t stand ([^.,!?;\n]+)`)},
	{PrefFavorites, regexp.MustCompile(`\bmy favou?rite (?:[a-z]+ )?is ([^.,!?;\n]+)`)},
	{PrefFavorites, regexp.MustCompile(`\bi prefer ([^.,!?;\n]+)`)},
}

// ExtractPreferences runs the fixed phrase patterns over the lowercased
// concatenation of message and response. Captures are kept verbatim (no
// semantic normalization) and deduplicated per category in first-seen
// order. A text yielding no captures returns an empty map.
func ExtractPreferences(message, response string) map[string][]string {
	text := strings.ToLower(message + " " + response)
	prefs := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, p := range preferencePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			phrase := strings.TrimSpace(m[1])
			if len(phrase) <= minPreferenceLen {
				continue
			}
			if seen[p.category] == nil {
				seen[p.category] = make(map[string]struct{})
			}
			if _, dup := seen[p.category][phrase]; dup {
				continue
			}
			seen[p.category][phrase] = struct{}{}
			prefs[p.category] = append(prefs[p.category], phrase)
		}
	}
	return prefs
}
