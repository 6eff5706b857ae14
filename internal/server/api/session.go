package api

import (
	"net/http"
	"strings"

	"github.com/ayusman/podium/internal/session"
)

// SessionHandler handles session lifecycle requests.
type SessionHandler struct {
	state *session.State
}

// NewSessionHandler creates a new SessionHandler over the given session state.
func NewSessionHandler(state *session.State) *SessionHandler {
	return &SessionHandler{state: state}
}

type sessionStartResponse struct {
	Status string `json:"status"`
}

type sessionEndResponse struct {
	Status   string  `json:"status"`
	Duration float64 `json:"duration"`
}

// ServeHTTP routes POST /api/session/start and /api/session/end.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, "/start"):
		h.state.Start()
		writeJSON(w, http.StatusOK, sessionStartResponse{Status: "started"})
	case strings.HasSuffix(r.URL.Path, "/end"):
		duration := h.state.End()
		writeJSON(w, http.StatusOK, sessionEndResponse{
			Status:   "ended",
			Duration: duration,
		})
	default:
		http.NotFound(w, r)
	}
}
