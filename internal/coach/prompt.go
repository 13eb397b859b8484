package coach

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/coach/records"
)

const coachInstructions = `You are a friendly, knowledgeable fitness and nutrition coach inside a fitness tracking app.
Give practical, encouraging advice tailored to the user's profile, goals and recent activity.
Keep answers concise: a few short paragraphs or a short list at most.
When the user has just logged or scheduled something, acknowledge it briefly and build on it.
Never invent numbers the user did not give you and do not give medical diagnoses.`

// ComposeSystemPrompt puts the coach instructions, the current local date and the user context together.
func ComposeSystemPrompt(userContext string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(coachInstructions)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Today is %s (%s), local time %s.\n\n", records.LocalDay(now), now.Weekday(), now.Format("15:04"))
	sb.WriteString("USER CONTEXT:\n")
	sb.WriteString(userContext)
	return sb.String()
}

// withConfirmationNote appends a note about saved records to the user message,
// so the reply can acknowledge them.
func withConfirmationNote(message string, loggedItems []string) string {
	if len(loggedItems) == 0 {
		return message
	}
	var sb strings.Builder
	sb.WriteString(message)
	sb.WriteString("\n\n[Note: the following was saved to the user's records: ")
	sb.WriteString(strings.Join(loggedItems, "; "))
	sb.WriteString("]")
	return sb.String()
}
