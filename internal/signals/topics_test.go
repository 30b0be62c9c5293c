package signals

import (
	"strings"
	"testing"
)

func TestExtractTopicsTwoMatches(t *testing.T) {
	text := "we played football with the team after training, then the whole team went for dinner somewhere near the stadium downtown"
	if len(text) < shortTextLen {
		t.Fatalf("test text must be long to exercise the two-match bar")
	}
	topics := ExtractTopics(text)
	if !contains(topics, "sports") {
		t.Fatalf("topics = %v, want sports (>= 2 whole-word matches)", topics)
	}
}

func TestExtractTopicsShortTextSingleMatch(t *testing.T) {
	text := "any good pizza around?"
	topics := ExtractTopics(text)
	if !contains(topics, "food") {
		t.Fatalf("topics = %v, want food (1 match, short text)", topics)
	}
}

func TestExtractTopicsLongTextSingleMatchRejected(t *testing.T) {
	text := "there was exactly one mention of a concert in this otherwise very long and meandering description of an uneventful afternoon spent reorganizing shelves"
	if len(text) < shortTextLen {
		t.Fatalf("test text must exceed the short-text threshold")
	}
	if topics := ExtractTopics(text); contains(topics, "music") {
		t.Fatalf("topics = %v, single match in long text should not qualify", topics)
	}
}

func TestExtractTopicsWholeWordOnly(t *testing.T) {
	// "catalog" contains "cat" as a substring but not as a word.
	if topics := ExtractTopics(strings.Repeat("catalog browsing ", 10)); contains(topics, "pets") {
		t.Fatalf("substring match should not count: %v", topics)
	}
}

func TestExtractTopicsRelationshipsScenario(t *testing.T) {
	// Two whole-word matches (love, miss) and the text is short anyway.
	topics := ExtractTopics("I love pizza and miss my dog")
	if !contains(topics, "relationships") {
		t.Fatalf("topics = %v, want relationships", topics)
	}
}

func TestExtractTopicsEmpty(t *testing.T) {
	if topics := ExtractTopics("  "); len(topics) != 0 {
		t.Fatalf("ExtractTopics(blank) = %v, want empty", topics)
	}
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}
