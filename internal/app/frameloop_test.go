package app

import (
	"bytes"
	"errors"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/podium/internal/capture"
	"github.com/ayusman/podium/internal/detector"
	"github.com/ayusman/podium/internal/session"
)

var jpegMagic = []byte{0xFF, 0xD8}

func testFrame(t *testing.T) *gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func newTestLoop(t *testing.T, det detector.FaceDetector) (*Loop, *capture.MockCamera, *session.State) {
	t.Helper()

	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)
	state := session.New()
	return NewLoop(cam, det, state), cam, state
}

func TestLoop_EmitsJPEGFrames(t *testing.T) {
	loop, _, _ := newTestLoop(t, detector.NewMockDetector())

	for i := 0; i < 3; i++ {
		data, err := loop.NextFrame()
		if err != nil {
			t.Fatalf("NextFrame() %d failed: %v", i, err)
		}
		if !bytes.HasPrefix(data, jpegMagic) {
			t.Fatalf("frame %d is not JPEG encoded", i)
		}
	}
}

func TestLoop_DecimatesDetection(t *testing.T) {
	det := detector.NewMockDetector()
	loop, _, _ := newTestLoop(t, det)

	for i := 0; i < 6; i++ {
		if _, err := loop.NextFrame(); err != nil {
			t.Fatalf("NextFrame() %d failed: %v", i, err)
		}
	}

	// Every 2nd frame is processed.
	if got := det.Calls(); got != 3 {
		t.Errorf("detector calls = %d, want 3 for 6 frames", got)
	}
}

func TestLoop_ScoredFrameUpdatesSession(t *testing.T) {
	det := detector.NewMockDetector()
	det.SetFaces([]detector.FaceLandmarks{detector.CenteredFaceLandmarks()})
	loop, _, state := newTestLoop(t, det)

	// Two frames: the second is the processed one.
	for i := 0; i < 2; i++ {
		if _, err := loop.NextFrame(); err != nil {
			t.Fatalf("NextFrame() failed: %v", err)
		}
	}

	snap := state.Snapshot()
	if snap.EyeScore != 100 {
		t.Errorf("EyeScore = %d, want 100", snap.EyeScore)
	}
	if snap.EyeStatus != "Excellent" {
		t.Errorf("EyeStatus = %q, want Excellent", snap.EyeStatus)
	}
}

func TestLoop_NoFaceLeavesSessionUntouched(t *testing.T) {
	det := detector.NewMockDetector() // returns no faces
	loop, _, state := newTestLoop(t, det)

	for i := 0; i < 4; i++ {
		if _, err := loop.NextFrame(); err != nil {
			t.Fatalf("NextFrame() failed: %v", err)
		}
	}

	if snap := state.Snapshot(); snap.EyeStatus != "Waiting" || snap.EyeScore != 0 {
		t.Errorf("session mutated without a face: %+v", snap)
	}
}

func TestLoop_DetectionErrorStillEmitsFrame(t *testing.T) {
	det := detector.NewMockDetector()
	det.SetError(errors.New("landmark model exploded"))
	loop, _, state := newTestLoop(t, det)

	for i := 0; i < 4; i++ {
		data, err := loop.NextFrame()
		if err != nil {
			t.Fatalf("NextFrame() %d failed: %v", i, err)
		}
		if !bytes.HasPrefix(data, jpegMagic) {
			t.Fatalf("frame %d not emitted despite detection error", i)
		}
	}

	if snap := state.Snapshot(); snap.EyeScore != 0 {
		t.Errorf("detection errors must not mutate state: %+v", snap)
	}
}

func TestLoop_ReadFailureRecovers(t *testing.T) {
	det := detector.NewMockDetector()
	loop, cam, _ := newTestLoop(t, det)
	cam.FailRead(1)

	if _, err := loop.NextFrame(); err != nil {
		t.Fatalf("first NextFrame() failed: %v", err)
	}

	// The failed read surfaces as a skipped iteration, not a dead stream.
	if _, err := loop.NextFrame(); !errors.Is(err, capture.ErrFrameRead) {
		t.Fatalf("second NextFrame() = %v, want ErrFrameRead", err)
	}

	// The loop already recreated the handle; the very next frame is good.
	data, err := loop.NextFrame()
	if err != nil {
		t.Fatalf("NextFrame() after recovery failed: %v", err)
	}
	if !bytes.HasPrefix(data, jpegMagic) {
		t.Fatal("recovered frame is not JPEG encoded")
	}

	if got := cam.Reopens(); got != 2 {
		t.Errorf("camera reopen count = %d, want 2", got)
	}
}
