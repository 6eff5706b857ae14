// Package gaze scores eye contact from facial-landmark geometry.
package gaze

import (
	"math"

	"github.com/ayusman/podium/internal/detector"
)

// Status is the discrete eye-contact tier derived from a score.
type Status string

const (
	StatusExcellent Status = "Excellent"
	StatusGood      Status = "Good"
	StatusPoor      Status = "Poor"
)

// Sensitivity maps normalized nose deviation to score points. The value and
// the tier thresholds below are empirically tuned against the 0..1 landmark
// coordinate space; change them together if retuning.
const (
	Sensitivity        = 800
	ExcellentThreshold = 80
	GoodThreshold      = 60
)

// Sample is one eye-contact measurement for a single processed frame.
type Sample struct {
	Score  int
	Status Status
}

// Score computes an eye-contact sample from a face landmark set. It is a pure
// function of its input and has no error path; callers must confirm the set
// is Valid() first.
//
// The metric is horizontal nose deviation from the midpoint of the two outer
// eye corners: zero deviation means the face points straight at the camera.
func Score(face detector.FaceLandmarks) Sample {
	nose := face.Points[detector.NoseTip]
	left := face.Points[detector.LeftEyeOuter]
	right := face.Points[detector.RightEyeOuter]

	center := (left.X + right.X) / 2
	deviation := math.Abs(nose.X - center)

	raw := 100 - deviation*Sensitivity
	score := int(math.Max(0, math.Min(100, raw)))

	return Sample{Score: score, Status: classify(score)}
}

func classify(score int) Status {
	switch {
	case score > ExcellentThreshold:
		return StatusExcellent
	case score > GoodThreshold:
		return StatusGood
	default:
		return StatusPoor
	}
}
