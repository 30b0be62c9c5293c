// Package prompt turns a retrieval result into the prompt pair handed to
// the generator. Pure string assembly; nothing here is persisted.
package prompt

import (
	"fmt"
	"strings"

	"github.com/antoniostano/amara/internal/profile"
)

// Build composes the system and user prompts for one exchange.
func Build(res profile.RetrievalResult, message string) (system, user string) {
	var sys strings.Builder
	sys.WriteString("You are ")
	sys.WriteString(res.BotPersonality)
	sys.WriteString(".\n")

	info := res.UserInfo
	if info.Username != "" {
		fmt.Fprintf(&sys, "You are talking to %s.\n", info.Username)
	}
	if info.Mood != "" {
		fmt.Fprintf(&sys, "Their recent mood reads as %s.\n", info.Mood)
	}
	for _, category := range []string{"likes", "dislikes", "favorites"} {
		if items := info.Preferences[category]; len(items) > 0 {
			fmt.Fprintf(&sys, "Known %s: %s.\n", category, strings.Join(items, "; "))
		}
	}
	if len(info.ContextTokens) > 0 {
		fmt.Fprintf(&sys, "Names and things they have mentioned: %s.\n", strings.Join(info.ContextTokens, ", "))
	}
	if len(res.GlobalTopics) > 0 {
		fmt.Fprintf(&sys, "Topics trending with other users lately: %s.\n", strings.Join(res.GlobalTopics, ", "))
	}

	var usr strings.Builder
	if len(res.RelevantHistory) > 0 {
		usr.WriteString("Earlier conversation worth remembering:\n")
		writeTranscript(&usr, res.RelevantHistory)
		usr.WriteString("\n")
	}
	if res.PreviousBotMessage != "" {
		fmt.Fprintf(&usr, "Your previous reply was: %s\n\n", res.PreviousBotMessage)
	}
	fmt.Fprintf(&usr, "New message: %s", message)

	return sys.String(), usr.String()
}

func writeTranscript(b *strings.Builder, turns []profile.ConversationTurn) {
	for _, turn := range turns {
		if turn.Message != "" {
			fmt.Fprintf(b, "user: %s\n", turn.Message)
		}
		if turn.Response != "" {
			fmt.Fprintf(b, "you: %s\n", turn.Response)
		}
	}
}
