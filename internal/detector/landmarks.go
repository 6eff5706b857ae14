// Package detector provides face-landmark detection interfaces and types for
// the eye-contact scoring pipeline.
package detector

// Face mesh landmark indices following the MediaPipe FaceMesh convention.
// Only the points the scorer relies on are named; the full refined mesh
// carries 478 points.
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
const (
	NoseTip       = 1
	LeftEyeOuter  = 234
	RightEyeOuter = 454
	NumLandmarks  = 478
)

// Point3D represents a normalized landmark point. X and Y are in [0,1]
// image-relative coordinates; Z is depth relative to the face center.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FaceLandmarks represents one detected face's landmark set. Landmark sets
// are ephemeral: produced per frame, consumed immediately, never retained.
type FaceLandmarks struct {
	Points []Point3D `json:"points"`
	Score  float64   `json:"score"`
}

// Valid reports whether the set carries every point the scorer indexes into.
// Callers must check this before scoring; the scorer itself is total.
func (f *FaceLandmarks) Valid() bool {
	return f != nil && len(f.Points) > RightEyeOuter
}
