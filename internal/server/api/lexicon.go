package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/podium/internal/store"
)

// LexiconHandler handles HTTP requests for lexicon term resources.
type LexiconHandler struct {
	store  *store.Store
	reload func() error
}

// NewLexiconHandler creates a new LexiconHandler. reload is invoked after
// every mutation so the analyzer picks up the edited term lists.
func NewLexiconHandler(s *store.Store, reload func() error) *LexiconHandler {
	return &LexiconHandler{store: s, reload: reload}
}

type createTermRequest struct {
	Term     string `json:"term"`
	Category string `json:"category"`
}

type termResponse struct {
	ID        string `json:"id"`
	Term      string `json:"term"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

type listTermsResponse struct {
	Terms []termResponse `json:"terms"`
}

// toTermResponse converts a store.Term to a termResponse.
func toTermResponse(t *store.Term) termResponse {
	return termResponse{
		ID:        t.ID,
		Term:      t.Term,
		Category:  string(t.Category),
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *LexiconHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/lexicon or /api/lexicon/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/lexicon")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// list handles GET /api/lexicon and returns all terms ordered by category.
func (h *LexiconHandler) list(w http.ResponseWriter, r *http.Request) {
	terms, err := h.store.Lexicon().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list terms")
		return
	}

	response := listTermsResponse{
		Terms: make([]termResponse, 0, len(terms)),
	}

	for _, t := range terms {
		response.Terms = append(response.Terms, toTermResponse(t))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/lexicon and adds a new term.
func (h *LexiconHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Term) == "" {
		writeError(w, http.StatusBadRequest, "Term is required")
		return
	}

	category := store.TermCategory(req.Category)
	if !store.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	term, err := h.store.Lexicon().Add(req.Term, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add term")
		return
	}

	if err := h.reload(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload lexicon")
		return
	}

	writeJSON(w, http.StatusCreated, toTermResponse(term))
}

// delete handles DELETE /api/lexicon/{id} and removes a term.
func (h *LexiconHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Lexicon().Remove(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Term not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to remove term")
		return
	}

	if err := h.reload(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload lexicon")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
