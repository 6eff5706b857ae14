package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ayusman/podium/internal/app"
	"github.com/ayusman/podium/internal/feedback"
	"github.com/ayusman/podium/internal/server"
	"github.com/ayusman/podium/internal/store"
	"github.com/ayusman/podium/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	dbPath := flag.String("db", "", "path to the SQLite database (default ~/.podium/podium.db)")
	staticDir := flag.String("static", "", "directory with dashboard files (default autodetected)")
	withTray := flag.Bool("tray", false, "run with a system tray menu")
	flag.Parse()

	fmt.Println("Podium - Presentation Coach")

	// Initialize the store
	path := *dbPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}

		dbDir := filepath.Join(homeDir, ".podium")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		path = filepath.Join(dbDir, "podium.db")
	}

	st, err := store.New(path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:    st,
		CameraID: *cameraID,
	})
	defer a.Close()

	generator := newGenerator()

	// Find web directory
	webDir := *staticDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
		Generator: generator,
	})

	fmt.Printf("Starting server on %s\n", *addr)

	if *withTray {
		go func() {
			if err := srv.ListenAndServe(*addr); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		}()
		runTray(a, *addr)
		return
	}

	if err := srv.ListenAndServe(*addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newGenerator builds the feedback client from GEMINI_API_KEY. Model
// discovery runs in the background so startup never blocks on the network.
func newGenerator() feedback.Generator {
	client, err := feedback.NewClient(os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		log.Printf("Feedback disabled: %v", err)
		return nil
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("Using feedback model %s", client.DiscoverModel(ctx))
	}()

	return client
}

// runTray blocks in the system tray loop until Quit is selected.
func runTray(a *app.App, addr string) {
	t := tray.New()

	t.OnSession(func(active bool) {
		if active {
			a.State().Start()
			return
		}
		a.State().End()
	})

	t.OnDashboard(func() {
		if err := openBrowser("http://localhost" + addr); err != nil {
			log.Printf("Failed to open dashboard: %v", err)
		}
	})

	done := make(chan struct{})
	t.OnQuit(func() { close(done) })

	// Feed the live score into the menu.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				snap := a.State().Snapshot()
				t.SetEyeContact(snap.EyeScore, snap.EyeStatus)
			}
		}
	}()

	t.Run()
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.podium/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".podium", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
