package api

import (
	"net/http"

	"github.com/ayusman/podium/internal/session"
)

// DataHandler serves point-in-time session metrics for dashboard polling.
type DataHandler struct {
	state *session.State
}

// NewDataHandler creates a new DataHandler over the given session state.
func NewDataHandler(state *session.State) *DataHandler {
	return &DataHandler{state: state}
}

// ServeHTTP handles GET /api/data.
func (h *DataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.state.Snapshot())
}
