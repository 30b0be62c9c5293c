package signals

import "testing"

func TestDetectMoodEmptyIsNeutral(t *testing.T) {
	if got := DetectMood(""); got != MoodNeutral {
		t.Fatalf("DetectMood(\"\") = %q, want neutral", got)
	}
}

func TestDetectMoodNoMatchesIsNeutral(t *testing.T) {
	if got := DetectMood("the weather report arrives at noon"); got != MoodNeutral {
		t.Fatalf("DetectMood() = %q, want neutral", got)
	}
}

func TestDetectMoodAffectionate(t *testing.T) {
	if got := DetectMood("I love pizza and miss my dog"); got != MoodAffectionate {
		t.Fatalf("DetectMood() = %q, want affectionate", got)
	}
}

func TestDetectMoodKeywords(t *testing.T) {
	cases := []struct {
		text string
		want Mood
	}{
		{"this is awesome, I'm so happy", MoodHappy},
		{"feeling lonely and heartbroken tonight", MoodSad},
		{"I hate mondays, so annoyed", MoodAngry},
		{"exhausted and sleepy after the shift", MoodTired},
		{"worried and stressed about the exam", MoodAnxious},
	}
	for _, tc := range cases {
		if got := DetectMood(tc.text); got != tc.want {
			t.Errorf("DetectMood(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestDetectMoodEmojiOutweighsKeyword(t *testing.T) {
	// One sad keyword vs one happy emoji: the emoji increment is larger.
	if got := DetectMood("sad 🎉"); got != MoodHappy {
		t.Fatalf("DetectMood() = %q, want happy", got)
	}
}

func TestDetectMoodTieGoesToEarlierDeclared(t *testing.T) {
	// happy and sad each match exactly one keyword; happy is declared
	// first, so the tie resolves there.
	if got := DetectMood("glad but lonely"); got != MoodHappy {
		t.Fatalf("DetectMood() = %q, want happy on tie", got)
	}
}

func TestDetectMoodDeterministic(t *testing.T) {
	text := "I love this amazing concert ❤️"
	first := DetectMood(text)
	for i := 0; i < 50; i++ {
		if got := DetectMood(text); got != first {
			t.Fatalf("DetectMood not deterministic: %q then %q", first, got)
		}
	}
}
