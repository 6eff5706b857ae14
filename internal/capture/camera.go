// Package capture provides webcam capture functionality using GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Default capture settings. The resolution and frame rate are requested from
// the driver; the device may negotiate them down. Buffer depth 1 keeps the
// stream close to real time instead of draining stale frames.
const (
	DefaultWidth      = 1920
	DefaultHeight     = 1080
	DefaultFPS        = 30
	DefaultBufferSize = 1
)

// ErrCameraNotOpen is returned when trying to read from a camera that has no
// live device handle.
var ErrCameraNotOpen = errors.New("camera is not open")

// ErrFrameRead is returned for a transient frame read failure. Callers should
// invalidate the handle and retry rather than treat this as fatal.
var ErrFrameRead = errors.New("failed to read frame from camera")

// Camera defines the interface for camera capture implementations.
type Camera interface {
	// Acquire opens the device handle if none exists or the existing one
	// reports itself closed. Safe to call repeatedly.
	Acquire() error

	// ReadFrame reads a single frame. The caller owns the returned Mat and
	// must close it. The blocking read happens outside the handle lock.
	ReadFrame() (*gocv.Mat, error)

	// Invalidate disposes the current handle so the next Acquire recreates
	// it. Called after a read failure.
	Invalidate()

	Close() error
	IsOpen() bool
}

// Webcam owns the single video-capture device handle for the process.
// Handle lifecycle operations are serialized by an internal mutex; ReadFrame
// captures the current handle under the lock and performs the blocking read
// outside it, so Acquire callers are never blocked for a frame duration.
// Only the frame loop invalidates the handle, after its own failed read, so
// disposal never races a read in flight.
type Webcam struct {
	deviceID int
	width    int
	height   int
	fps      int

	mu  sync.Mutex
	cap *gocv.VideoCapture
}

// NewWebcam creates a Webcam for the given device ID with default settings.
func NewWebcam(deviceID int) *Webcam {
	return &Webcam{
		deviceID: deviceID,
		width:    DefaultWidth,
		height:   DefaultHeight,
		fps:      DefaultFPS,
	}
}

// Acquire opens the device if needed and applies the fixed configuration.
// It retries the open once before reporting the device unavailable.
func (w *Webcam) Acquire() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap != nil && w.cap.IsOpened() {
		return nil
	}

	if w.cap != nil {
		w.cap.Close()
		w.cap = nil
	}

	cap, err := gocv.OpenVideoCapture(w.deviceID)
	if err != nil {
		// One retry; webcams are flaky right after being released.
		cap, err = gocv.OpenVideoCapture(w.deviceID)
		if err != nil {
			return err
		}
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(w.width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(w.height))
	cap.Set(gocv.VideoCaptureFPS, float64(w.fps))
	cap.Set(gocv.VideoCaptureBufferSize, DefaultBufferSize)

	w.cap = cap
	return nil
}

// ReadFrame reads a single frame from the current handle.
// The caller is responsible for closing the returned Mat.
func (w *Webcam) ReadFrame() (*gocv.Mat, error) {
	w.mu.Lock()
	cap := w.cap
	w.mu.Unlock()

	if cap == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := cap.Read(&mat); !ok {
		mat.Close()
		return nil, ErrFrameRead
	}

	if mat.Empty() {
		mat.Close()
		return nil, ErrFrameRead
	}

	return &mat, nil
}

// Invalidate disposes the current handle. The next Acquire recreates it.
func (w *Webcam) Invalidate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap != nil {
		w.cap.Close()
		w.cap = nil
	}
}

// Close releases the device handle.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap == nil {
		return nil
	}

	err := w.cap.Close()
	w.cap = nil
	return err
}

// IsOpen returns true if a live device handle exists.
func (w *Webcam) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.cap != nil && w.cap.IsOpened()
}
