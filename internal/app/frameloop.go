package app

import (
	"image"
	"image/color"
	"log"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/podium/internal/capture"
	"github.com/ayusman/podium/internal/detector"
	"github.com/ayusman/podium/internal/gaze"
	"github.com/ayusman/podium/internal/session"
)

// Frame loop constants.
const (
	// ProcessEvery decimates landmark detection: only every Nth frame is
	// scored. Skipped frames are still mirrored and emitted so the visual
	// stream stays smooth while detection cost is halved.
	ProcessEvery = 2

	// JPEGQuality is the encoder setting for emitted frames.
	JPEGQuality = 85

	// markerRadius is the size of the nose indicator dot.
	markerRadius = 8

	// guideArm is the half-length of the centered crosshair guide.
	guideArm = 50
)

// Loop drives the vision pipeline: camera read, landmark detection on a
// decimated subset of frames, eye-contact scoring into the session state,
// overlay drawing, and JPEG encoding. Frames come out in capture order; one
// NextFrame call is in flight at a time.
//
// Every per-frame failure is contained: read failures trigger handle
// recreation and skip one frame, detection failures are logged and the frame
// goes out unmarked. Nothing here may terminate the stream.
type Loop struct {
	camera   capture.Camera
	detector detector.FaceDetector
	state    *session.State

	mu         sync.Mutex
	frameCount uint64
}

// NewLoop creates a frame loop over the given camera, detector and session
// state.
func NewLoop(cam capture.Camera, det detector.FaceDetector, state *session.State) *Loop {
	return &Loop{
		camera:   cam,
		detector: det,
		state:    state,
	}
}

// NextFrame produces the next encoded JPEG frame. A transient read failure
// disposes and recreates the camera handle, then reports an error for this
// iteration; the caller skips the frame and calls again. Only a camera that
// cannot be reopened at all surfaces as a persistent error.
func (l *Loop) NextFrame() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.camera.Acquire(); err != nil {
		return nil, err
	}

	frame, err := l.camera.ReadFrame()
	if err != nil {
		// Recoverable-retry policy: recreate the handle under the
		// resource's lock discipline and skip this iteration.
		l.camera.Invalidate()
		if aerr := l.camera.Acquire(); aerr != nil {
			return nil, aerr
		}
		return nil, err
	}
	defer frame.Close()

	// Mirror so the stream behaves like a rehearsal mirror.
	gocv.Flip(*frame, frame, 1)

	l.frameCount++
	if l.frameCount%ProcessEvery == 0 {
		l.process(frame)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, *frame, []int{gocv.IMWriteJpegQuality, JPEGQuality})
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())

	return data, nil
}

// process runs detection and scoring for one frame. Failures are logged and
// contained; the frame is emitted unmarked.
func (l *Loop) process(frame *gocv.Mat) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame processing panic recovered: %v", r)
		}
	}()

	faces, err := l.detector.Detect(frame)
	if err != nil {
		log.Printf("frame processing error: %v", err)
		return
	}

	if len(faces) == 0 || !faces[0].Valid() {
		return
	}

	sample := gaze.Score(faces[0])
	l.state.AppendEyeSample(sample)
	l.annotate(frame, faces[0], sample)
}

// annotate draws the nose indicator colored by tier plus the centered
// crosshair guide.
func (l *Loop) annotate(frame *gocv.Mat, face detector.FaceLandmarks, sample gaze.Sample) {
	w := frame.Cols()
	h := frame.Rows()

	nose := face.Points[detector.NoseTip]
	nosePt := image.Pt(int(nose.X*float64(w)), int(nose.Y*float64(h)))
	gocv.Circle(frame, nosePt, markerRadius, statusColor(sample.Status), -1)

	white := color.RGBA{R: 255, G: 255, B: 255}
	gocv.Line(frame, image.Pt(w/2-guideArm, h/2), image.Pt(w/2+guideArm, h/2), white, 1)
	gocv.Line(frame, image.Pt(w/2, h/2-guideArm), image.Pt(w/2, h/2+guideArm), white, 1)
}

func statusColor(status gaze.Status) color.RGBA {
	switch status {
	case gaze.StatusExcellent:
		return color.RGBA{G: 255}
	case gaze.StatusGood:
		return color.RGBA{R: 255, G: 200}
	default:
		return color.RGBA{R: 255}
	}
}
