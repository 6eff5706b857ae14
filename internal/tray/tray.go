// Package tray provides a system tray interface for the Podium presentation coach.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onSession   func(active bool)
	onDashboard func()
	onQuit      func()
	active      bool
	mu          sync.RWMutex

	// Menu items stored for later updates
	menuSession *systray.MenuItem
	menuStatus  *systray.MenuItem
}

// New creates a new Tray instance with no session running.
func New() *Tray {
	return &Tray{}
}

// OnSession sets the callback invoked when a session is started or ended.
func (t *Tray) OnSession(fn func(active bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSession = fn
}

// OnDashboard sets the callback invoked when the dashboard menu item is clicked.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback invoked when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Podium")
	systray.SetTooltip("Podium Presentation Coach")

	t.menuSession = systray.AddMenuItem("Start Session", "Start a coaching session")
	systray.AddSeparator()

	t.menuStatus = systray.AddMenuItem("Eye Contact: --", "Live eye contact score")
	t.menuStatus.Disable()
	systray.AddSeparator()

	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open the dashboard in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Podium")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuSession.ClickedCh:
				t.handleSession()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleSession toggles the session and updates the menu item text.
func (t *Tray) handleSession() {
	t.mu.Lock()
	t.active = !t.active
	active := t.active

	if active {
		t.menuSession.SetTitle("End Session")
	} else {
		t.menuSession.SetTitle("Start Session")
	}

	callback := t.onSession
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(active)
	}
}

// handleDashboard handles the dashboard menu item click.
func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetEyeContact updates the live eye contact display in the menu.
func (t *Tray) SetEyeContact(score int, status string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		if status == "" {
			t.menuStatus.SetTitle("Eye Contact: --")
		} else {
			t.menuStatus.SetTitle(fmt.Sprintf("Eye Contact: %d%% (%s)", score, status))
		}
	}
}

// SessionActive returns whether a session is currently running.
func (t *Tray) SessionActive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}
