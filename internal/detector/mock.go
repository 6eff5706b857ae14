package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the FaceDetector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	faces []FaceLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFaces sets the faces that will be returned by Detect.
func (m *MockDetector) SetFaces(faces []FaceLandmarks) {
	m.faces = faces
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls reports how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured faces or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]FaceLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.faces, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// CenteredFaceLandmarks returns a preset landmark set for a face looking
// straight at the camera: the nose tip sits exactly at the midpoint of the
// two eye corners.
func CenteredFaceLandmarks() FaceLandmarks {
	return FaceWithDeviation(0)
}

// FaceWithDeviation returns a landmark set whose nose tip is offset
// horizontally from the eye-corner midpoint by the given normalized amount.
func FaceWithDeviation(deviation float64) FaceLandmarks {
	lm := FaceLandmarks{
		Score:  0.95,
		Points: make([]Point3D, NumLandmarks),
	}

	// Eye corners at exactly representable coordinates so tests can state
	// exact expected scores.
	lm.Points[LeftEyeOuter] = Point3D{X: 0.25, Y: 0.45, Z: 0.0}
	lm.Points[RightEyeOuter] = Point3D{X: 0.75, Y: 0.45, Z: 0.0}
	lm.Points[NoseTip] = Point3D{X: 0.5 + deviation, Y: 0.55, Z: -0.02}

	return lm
}
