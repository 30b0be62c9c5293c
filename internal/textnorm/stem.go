package textnorm

import "strings"

// suffix rules applied in order; the first matching rule wins.
// Each rule only fires when enough of the word remains for the stem
// to stay meaningful.
var suffixRules = []struct {
	suffix  string
	replace string
	minStem int
}{
	{"ization", "ize", 3},
	{"fulness", "ful", 3},
	{"iveness", "ive", 3},
	{"ational", "ate", 3},
	{"ously", "ous", 3},
	{"iness", "y", 3},
	{"ingly", "", 3},
	{"ments", "ment", 3},
	{"ness", "", 3},
	{"edly", "", 3},
	{"ting", "t", 3},
	{"ing", "", 3},
	{"ies", "y", 2},
	{"ied", "y", 2},
	{"ed", "", 3},
	{"es", "", 3},
	{"ly", "", 3},
	{"s", "", 3},
}

// Stem applies a light deterministic suffix stripper. It is not a full
// Porter stemmer; it only needs to fold common inflections so that
// "loved", "loves" and "loving" score against each other.
func Stem(token string) string {
	token = strings.TrimSuffix(token, "'s")
	for _, rule := range suffixRules {
		if !strings.HasSuffix(token, rule.suffix) {
			continue
		}
		stem := token[:len(token)-len(rule.suffix)]
		if len(stem) < rule.minStem {
			continue
		}
		token = stem + rule.replace
		break
	}
	// Fold the silent-e variants ("love" vs "loving" -> "lov") so both
	// sides of a comparison land on the same stem.
	if len(token) >= 4 && strings.HasSuffix(token, "e") {
		token = token[:len(token)-1]
	}
	return token
}
