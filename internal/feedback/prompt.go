package feedback

import (
	"fmt"
	"strings"

	"github.com/ayusman/podium/internal/session"
)

// MinTranscriptLen is the minimum transcript length worth sending to the
// collaborator; anything shorter gets the not-enough-data message without a
// network call.
const MinTranscriptLen = 20

// BuildPrompt renders the coaching prompt with the session metrics and the
// transcript embedded verbatim.
func BuildPrompt(snap session.Snapshot) string {
	transcript := strings.TrimSpace(snap.Transcript)
	wordCount := len(strings.Fields(transcript))

	return fmt.Sprintf(`You are an expert interview coach providing detailed, actionable feedback.

**Session Metrics:**
- Average Eye Contact: %d%%
- Words Spoken: %d
- Filler Words Used: %d
- Sentiment: %s

**Transcript:**
"%s"

Provide a structured coaching report with these EXACT sections:

### Performance Overview
(2-3 sentences summarizing overall performance)

### Key Strengths
- [List 2-3 specific strengths you observed]

### Areas for Improvement
- [List 2-3 specific areas needing work]

### Actionable Recommendations
- [Provide 3-4 practical, specific tips they can implement immediately]

### Overall Rating
[X/5 stars] - [Brief 1-2 sentence justification]

Keep it concise, encouraging, and actionable. Focus on specific examples from their speech.`,
		snap.AvgEyeContact, wordCount, snap.FillerCount, snap.SentimentText, transcript)
}

// StripMarkup removes markdown emphasis characters from generated text so
// the dashboard can render it as plain text.
func StripMarkup(s string) string {
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "#", "")
	return s
}
