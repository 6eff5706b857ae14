// Package app wires the Podium coaching pipeline together.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/podium/internal/capture"
	"github.com/ayusman/podium/internal/detector"
	"github.com/ayusman/podium/internal/session"
	"github.com/ayusman/podium/internal/speech"
	"github.com/ayusman/podium/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	CameraID int
}

// App owns the shared pipeline components: the camera resource, the face
// detector, the session state and the analyzer lexicon. It is the single
// composition point; handlers and the tray receive what they need from here.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.FaceDetector
	state    *session.State
	loop     *Loop

	mu      sync.RWMutex
	lexicon speech.Lexicon
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config: config,
		camera: capture.NewWebcam(config.CameraID),
		state:  session.New(),
	}

	// Try MediaPipe first, fall back to the mock detector so the stream
	// still runs (unscored) without the Python sidecar.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe face landmark detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	a.loop = NewLoop(a.camera, a.detector, a.state)
	a.lexicon = speech.DefaultLexicon()

	if config.Store != nil {
		if err := a.ReloadLexicon(); err != nil {
			log.Printf("Failed to load lexicon from store, using defaults: %v", err)
		}
	}

	return a
}

// Loop returns the frame loop driving the video stream.
func (a *App) Loop() *Loop {
	return a.loop
}

// State returns the shared session state.
func (a *App) State() *session.State {
	return a.state
}

// Analyze runs the current lexicon over one transcript chunk.
func (a *App) Analyze(chunk string) (speech.Analysis, error) {
	a.mu.RLock()
	lex := a.lexicon
	a.mu.RUnlock()

	return lex.Analyze(chunk)
}

// ReloadLexicon rebuilds the analyzer lexicon from the store. Called at
// startup and after lexicon edits over the API.
func (a *App) ReloadLexicon() error {
	if a.config.Store == nil {
		return nil
	}

	lex, err := a.config.Store.Lexicon().Build()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.lexicon = lex
	a.mu.Unlock()

	return nil
}

// Close releases the camera and detector resources.
func (a *App) Close() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
}
