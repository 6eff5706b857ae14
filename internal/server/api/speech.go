// Package api provides HTTP API handlers for the Podium presentation coach.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/podium/internal/app"
	"github.com/ayusman/podium/internal/speech"
)

// SpeechHandler ingests transcript chunks from the browser's recognizer.
type SpeechHandler struct {
	app *app.App
}

// NewSpeechHandler creates a new SpeechHandler backed by the given app.
func NewSpeechHandler(a *app.App) *SpeechHandler {
	return &SpeechHandler{app: a}
}

type speechRequest struct {
	Text string `json:"text"`
}

type speechResponse struct {
	Status    string `json:"status"`
	Sentiment string `json:"sentiment,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP handles POST /api/speech.
func (h *SpeechHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	analysis, err := h.app.Analyze(req.Text)
	if err != nil {
		if errors.Is(err, speech.ErrEmptyChunk) {
			writeJSON(w, http.StatusOK, speechResponse{Status: "empty"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to analyze speech")
		return
	}

	sentiment := h.app.State().RecordSpeech(req.Text, analysis)

	writeJSON(w, http.StatusOK, speechResponse{
		Status:    "success",
		Sentiment: sentiment,
	})
}
