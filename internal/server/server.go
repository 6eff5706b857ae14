// Package server provides the HTTP server for the Podium presentation coach.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/podium/internal/app"
	"github.com/ayusman/podium/internal/feedback"
	"github.com/ayusman/podium/internal/server/api"
	"github.com/ayusman/podium/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
	Generator feedback.Generator
}

// Server represents the HTTP server for the Podium application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.App != nil {
		state := s.config.App.State()

		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App.Loop()))
		s.mux.Handle("/api/live", NewLiveHandler(state))
		s.mux.Handle("/api/speech", api.NewSpeechHandler(s.config.App))
		s.mux.Handle("/api/data", api.NewDataHandler(state))
		s.mux.Handle("/api/feedback", api.NewFeedbackHandler(state, s.config.Generator))

		sessionHandler := api.NewSessionHandler(state)
		s.mux.Handle("/api/session/start", sessionHandler)
		s.mux.Handle("/api/session/end", sessionHandler)
	}

	// Register lexicon API handler if Store is configured
	if s.config.Store != nil {
		reload := func() error { return nil }
		if s.config.App != nil {
			reload = s.config.App.ReloadLexicon
		}
		lexiconHandler := api.NewLexiconHandler(s.config.Store, reload)
		s.mux.Handle("/api/lexicon", lexiconHandler)
		s.mux.Handle("/api/lexicon/", lexiconHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
