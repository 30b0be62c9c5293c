package signals

import (
	"strings"
	"unicode"
)

const (
	// topicMatchThreshold is the normal evidence bar.
	topicMatchThreshold = 2
	// shortTextLen: texts shorter than this accept a single match,
	// since they offer less room for repeated evidence.
	shortTextLen = 100
)

type topicProfile struct {
	name     string
	keywords []string
}

// topicProfiles maps topic tags to whole-word keyword lists. Ordered so
// extraction output is deterministic.
var topicProfiles = []topicProfile{
	{"music", []string{"music", "song", "songs", "band", "album", "concert", "playlist", "guitar", "singer"}},
	{"movies", []string{"movie", "movies", "film", "films", "cinema", "series", "show", "episode", "actor"}},
	{"food", []string{"food", "pizza", "pasta", "cooking", "recipe", "dinner", "lunch", "breakfast", "restaurant", "hungry"}},
	{"sports", []string{"football", "soccer", "basketball", "tennis", "match", "team", "training", "running", "workout"}},
	{"games", []string{"game", "games", "gaming", "console", "player", "level", "quest"}},
	{"technology", []string{"computer", "phone", "laptop", "software", "code", "coding", "internet", "robot", "tech"}},
	{"work", []string{"work", "job", "boss", "office", "meeting", "deadline", "salary", "career"}},
	{"travel", []string{"travel", "trip", "flight", "vacation", "holiday", "hotel", "beach", "airport"}},
	{"relationships", []string{"love", "miss", "friend", "friends", "family", "girlfriend", "boyfriend", "partner", "relationship"}},
	{"pets", []string{"dog", "cat", "puppy", "kitten", "pet", "pets"}},
	{"weather", []string{"weather", "rain", "sunny", "snow", "storm", "cold", "warm"}},
}

// ExtractTopics flags each topic whose keywords appear as whole words at
// least twice, or exactly once when the text is shorter than
// shortTextLen. Returns topic tags in declared order; empty input yields
// nothing.
func ExtractTopics(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[strings.Trim(w, "'")]++
	}

	short := len(text) < shortTextLen
	var topics []string
	for _, tp := range topicProfiles {
		matches := 0
		for _, kw := range tp.keywords {
			matches += counts[kw]
		}
		if matches >= topicMatchThreshold || (matches == 1 && short) {
			topics = append(topics, tp.name)
		}
	}
	return topics
}
