// Package signals derives heuristic conversational signals (mood,
// preferences, entity candidates, topic tags) from raw message text.
// Everything here is keyword and pattern matching, not classification;
// callers should treat the output as soft hints.
package signals

import "strings"

// Mood is one label out of the fixed enumeration below.
type Mood string

const (
	MoodNeutral      Mood = "neutral"
	MoodHappy        Mood = "happy"
	MoodSad          Mood = "sad"
	MoodAffectionate Mood = "affectionate"
	MoodExcited      Mood = "excited"
	MoodAngry        Mood = "angry"
	MoodAnxious      Mood = "anxious"
	MoodTired        Mood = "tired"
)

const (
	keywordIncrement = 1.0
	emojiIncrement   = 2.0
	// neutralBaseline lets neutral win any input that matches nothing.
	neutralBaseline = 0.5
)

type moodProfile struct {
	mood     Mood
	baseline float64
	keywords []string
	emojis   []string
}

// moodProfiles is an explicit ordered sequence, not a map: ties resolve
// to the earlier-declared mood, and that order must be stable.
var moodProfiles = []moodProfile{
	{mood: MoodNeutral, baseline: neutralBaseline},
	{
		mood:     MoodHappy,
		keywords: []string{"happy", "glad", "great", "awesome", "wonderful", "amazing", "fantastic", "yay"},
		emojis:   []string{"😊", "😄", "😀", "🙂", "🎉"},
	},
	{
		mood:     MoodSad,
		keywords: []string{"sad", "unhappy", "depressed", "crying", "lonely", "heartbroken", "miserable"},
		emojis:   []string{"😢", "😭", "☹️", "💔"},
	},
	{
		mood:     MoodAffectionate,
		keywords: []string{"love", "miss", "adore", "cuddle", "hug", "sweetheart", "darling"},
		emojis:   []string{"❤️", "😍", "🥰", "😘"},
	},
	{
		mood:     MoodExcited,
		keywords: []string{"excited", "can't wait", "cant wait", "thrilled", "hyped", "incredible"},
		emojis:   []string{"🤩", "🔥", "🎊"},
	},
	{
		mood:     MoodAngry,
		keywords: []string{"angry", "furious", "annoyed", "hate", "fed up", "pissed", "irritated"},
		emojis:   []string{"😠", "😡", "🤬"},
	},
	{
		mood:     MoodAnxious,
		keywords: []string{"worried", "anxious", "nervous", "scared", "afraid", "stressed", "panic"},
		emojis:   []string{"😰", "😨", "😟"},
	},
	{
		mood:     MoodTired,
		keywords: []string{"tired", "sleepy", "exhausted", "worn out", "drained", "yawn"},
		emojis:   []string{"😴", "🥱"},
	},
}

// DetectMood scores every mood profile against the text and returns the
// first strict maximum in declared order. An empty message, or one that
// matches no keywords, comes back neutral.
func DetectMood(text string) Mood {
	lower := strings.ToLower(text)
	scores := make([]float64, len(moodProfiles))
	for i, p := range moodProfiles {
		score := p.baseline
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				score += keywordIncrement
			}
		}
		for _, e := range p.emojis {
			if n := strings.Count(text, e); n > 0 {
				score += float64(n) * emojiIncrement
			}
		}
		scores[i] = score
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return moodProfiles[best].mood
}
