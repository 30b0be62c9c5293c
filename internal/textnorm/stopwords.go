package textnorm

// stopwords is the fixed removal set. Tokens of length <= 2 are dropped
// before this lookup, so two-letter function words are not listed.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "any",
		"can", "had", "her", "was", "one", "our", "out", "day", "get",
		"has", "him", "his", "how", "man", "new", "now", "old", "see",
		"two", "way", "who", "boy", "did", "its", "let", "put", "say",
		"she", "too", "use", "that", "with", "have", "this", "will",
		"your", "from", "they", "know", "want", "been", "good", "much",
		"some", "time", "very", "when", "come", "here", "just", "like",
		"long", "make", "many", "more", "only", "over", "such", "take",
		"than", "them", "well", "were", "what", "about", "after",
		"again", "could", "every", "their", "there", "these", "thing",
		"think", "those", "would", "should", "where", "which", "while",
		"because", "does", "doing", "don't", "didn't", "it's", "i'm",
		"i've", "i'll", "you're", "we're", "gonna", "really",
	} {
		stopwords[w] = struct{}{}
	}
}
