package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/podium/internal/store"
)

func newTestLexiconHandler(t *testing.T) (*LexiconHandler, *int) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "podium-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	reloads := 0
	handler := NewLexiconHandler(s, func() error {
		reloads++
		return nil
	})
	return handler, &reloads
}

func TestLexiconHandler_ListSeededTerms(t *testing.T) {
	handler, _ := newTestLexiconHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/lexicon", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp listTermsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Terms) == 0 {
		t.Fatal("seeded store should list default terms")
	}
}

func TestLexiconHandler_AddTermTriggersReload(t *testing.T) {
	handler, reloads := newTestLexiconHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/lexicon",
		strings.NewReader(`{"term": "err", "category": "filler"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp termResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" || resp.Term != "err" || resp.Category != "filler" {
		t.Errorf("unexpected term response: %+v", resp)
	}
	if *reloads != 1 {
		t.Errorf("reloads = %d, want 1", *reloads)
	}
}

func TestLexiconHandler_AddRejectsInvalidInput(t *testing.T) {
	handler, reloads := newTestLexiconHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing term", `{"category": "filler"}`},
		{"bad category", `{"term": "meh", "category": "emoji"}`},
		{"bad json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/lexicon", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}

	if *reloads != 0 {
		t.Errorf("reloads = %d, want 0 after rejected requests", *reloads)
	}
}

func TestLexiconHandler_DeleteTerm(t *testing.T) {
	handler, reloads := newTestLexiconHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/lexicon",
		strings.NewReader(`{"term": "splendid", "category": "positive"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("setup add failed with status %d", w.Code)
	}

	var added termResponse
	if err := json.NewDecoder(w.Body).Decode(&added); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/lexicon/"+added.ID, nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if *reloads != 2 {
		t.Errorf("reloads = %d, want 2", *reloads)
	}

	// Deleting again reports not found.
	req = httptest.NewRequest(http.MethodDelete, "/api/lexicon/"+added.ID, nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
