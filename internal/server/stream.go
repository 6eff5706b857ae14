// Package server provides the HTTP server for the Podium presentation coach.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/podium/internal/app"
)

// StreamHandler serves annotated MJPEG frames from the frame loop.
type StreamHandler struct {
	loop *app.Loop
}

// NewStreamHandler creates a new StreamHandler over the given frame loop.
func NewStreamHandler(loop *app.Loop) *StreamHandler {
	return &StreamHandler{loop: loop}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		// Already JPEG encoded; a failed read skips the frame, the loop
		// has handled handle recovery itself.
		data, err := h.loop.NextFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		// Write MJPEG frame
		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data))
		if _, err := w.Write(data); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(33 * time.Millisecond) // ~30 FPS
	}
}
