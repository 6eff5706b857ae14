package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/ayusman/podium/internal/feedback"
	"github.com/ayusman/podium/internal/session"
)

// Failure messages shown to the presenter. Every failure mode still
// produces a 200 with a message; the dashboard renders it verbatim.
const (
	msgTooShort    = "Not enough speech data captured. Please speak for at least 10-15 seconds during your next session!"
	msgRateLimited = "API Rate Limit Reached. Please try again in a few moments."
	msgNoService   = "AI service unavailable. Please check your API configuration."
	msgTimeout     = "Request timed out. Please try again."
	msgGeneric     = "Unable to generate feedback. Please try again."
)

// FeedbackHandler generates the coaching report for the current session.
type FeedbackHandler struct {
	state     *session.State
	generator feedback.Generator
}

// NewFeedbackHandler creates a new FeedbackHandler. The generator may be nil
// when no API key is configured; requests then return a configuration hint.
func NewFeedbackHandler(state *session.State, g feedback.Generator) *FeedbackHandler {
	return &FeedbackHandler{state: state, generator: g}
}

type feedbackResponse struct {
	Message string `json:"message"`
}

// ServeHTTP handles GET /api/feedback.
func (h *FeedbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.state.Snapshot()

	// Too little speech to say anything useful. The transcript is kept so
	// the presenter can keep talking and retry.
	if len(strings.TrimSpace(snap.Transcript)) < feedback.MinTranscriptLen {
		writeJSON(w, http.StatusOK, feedbackResponse{Message: msgTooShort})
		return
	}

	msg := h.generate(r.Context(), snap)

	// Reset transcript but keep other metrics.
	h.state.ClearTranscript()

	writeJSON(w, http.StatusOK, feedbackResponse{Message: msg})
}

// generate calls the text-generation service and maps every failure mode to
// a user-facing message.
func (h *FeedbackHandler) generate(ctx context.Context, snap session.Snapshot) string {
	if h.generator == nil {
		return msgNoService
	}

	ctx, cancel := context.WithTimeout(ctx, feedback.DefaultTimeout)
	defer cancel()

	report, err := h.generator.Generate(ctx, feedback.BuildPrompt(snap))
	if err == nil {
		return feedback.StripMarkup(report)
	}

	if feedback.IsTimeout(err) {
		return msgTimeout
	}

	var apiErr *feedback.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsRateLimited() {
			return msgRateLimited
		}
		return fmt.Sprintf("AI Service Error (Code: %d). Your performance data has been saved locally.", apiErr.StatusCode)
	}

	log.Printf("Feedback error: %v", err)
	return msgGeneric
}
