package session

import (
	"strings"
	"testing"
	"time"

	"github.com/ayusman/podium/internal/gaze"
	"github.com/ayusman/podium/internal/speech"
)

func sample(score int) gaze.Sample {
	status := gaze.StatusPoor
	switch {
	case score > 80:
		status = gaze.StatusExcellent
	case score > 60:
		status = gaze.StatusGood
	}
	return gaze.Sample{Score: score, Status: status}
}

func TestState_HistoryBounded(t *testing.T) {
	s := New()

	// 31 appends: scores 0..30. The oldest (0) must be evicted and the 31st
	// (30) present.
	for i := 0; i <= 30; i++ {
		s.AppendEyeSample(sample(i))
	}

	if len(s.history) != HistorySize {
		t.Fatalf("history length = %d, want %d", len(s.history), HistorySize)
	}
	if s.history[0] != 1 {
		t.Errorf("oldest entry = %d, want 1 (0 evicted)", s.history[0])
	}
	if s.history[HistorySize-1] != 30 {
		t.Errorf("newest entry = %d, want 30", s.history[HistorySize-1])
	}
}

func TestState_AppendUpdatesLastSeen(t *testing.T) {
	s := New()

	if snap := s.Snapshot(); snap.EyeStatus != "Waiting" {
		t.Errorf("initial EyeStatus = %q, want Waiting", snap.EyeStatus)
	}

	s.AppendEyeSample(gaze.Sample{Score: 92, Status: gaze.StatusExcellent})

	snap := s.Snapshot()
	if snap.EyeScore != 92 {
		t.Errorf("EyeScore = %d, want 92", snap.EyeScore)
	}
	if snap.EyeStatus != string(gaze.StatusExcellent) {
		t.Errorf("EyeStatus = %q, want %q", snap.EyeStatus, gaze.StatusExcellent)
	}
}

func TestState_EndComputesRoundedAverage(t *testing.T) {
	s := New()
	s.Start()

	for _, v := range []int{80, 85, 86} { // mean 83.67 rounds to 84
		s.AppendEyeSample(sample(v))
	}
	s.End()

	if snap := s.Snapshot(); snap.AvgEyeContact != 84 {
		t.Errorf("AvgEyeContact = %d, want 84", snap.AvgEyeContact)
	}
}

func TestState_EndWithEmptyHistory(t *testing.T) {
	s := New()

	// Start resets the average; an empty-history End must retain it as-is
	// rather than divide by zero.
	s.Start()
	dur := s.End()

	if dur < 0 {
		t.Errorf("duration = %f, want >= 0", dur)
	}
	if snap := s.Snapshot(); snap.AvgEyeContact != 0 {
		t.Errorf("AvgEyeContact = %d, want 0 retained", snap.AvgEyeContact)
	}
}

func TestState_EndWithoutNewSamplesKeepsStaleAverage(t *testing.T) {
	s := New()
	s.Start()
	s.AppendEyeSample(sample(70))
	s.End()

	// A second End with the history intact recomputes the same value; the
	// average only ever changes at session end.
	if dur := s.End(); dur < 0 {
		t.Errorf("duration = %f, want >= 0", dur)
	}
	if snap := s.Snapshot(); snap.AvgEyeContact != 70 {
		t.Errorf("AvgEyeContact = %d, want 70", snap.AvgEyeContact)
	}
}

func TestState_EndWithoutStart(t *testing.T) {
	s := New()

	// Must not panic; duration stays zero.
	if dur := s.End(); dur != 0 {
		t.Errorf("End() without Start() = %f, want 0", dur)
	}
}

func TestState_Duration(t *testing.T) {
	s := New()

	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	s.Start()

	s.now = func() time.Time { return base.Add(90 * time.Second) }
	if dur := s.End(); dur != 90 {
		t.Errorf("duration = %f, want 90", dur)
	}
}

func TestState_RecordSpeech(t *testing.T) {
	lex := speech.DefaultLexicon()

	t.Run("positive chunk sets label and score", func(t *testing.T) {
		s := New()
		a, err := lex.Analyze("this is great and wonderful")
		if err != nil {
			t.Fatal(err)
		}

		label := s.RecordSpeech("this is great and wonderful", a)
		if label != SentimentPositive {
			t.Errorf("label = %q, want Positive", label)
		}

		snap := s.Snapshot()
		if snap.SentimentScore != 80 { // 50 + 2*15
			t.Errorf("SentimentScore = %d, want 80", snap.SentimentScore)
		}
	})

	t.Run("negative chunk clamps at zero", func(t *testing.T) {
		s := New()
		a := speech.Analysis{Negative: 5} // 50 - 75 clamps to 0

		s.RecordSpeech("x", a)
		snap := s.Snapshot()
		if snap.SentimentText != SentimentNegative || snap.SentimentScore != 0 {
			t.Errorf("sentiment = %q/%d, want Negative/0", snap.SentimentText, snap.SentimentScore)
		}
	})

	t.Run("neutral chunk retains previous estimate", func(t *testing.T) {
		s := New()
		s.RecordSpeech("great", speech.Analysis{Positive: 1})

		s.RecordSpeech("we talked about the project", speech.Analysis{})

		snap := s.Snapshot()
		if snap.SentimentText != SentimentPositive || snap.SentimentScore != 65 {
			t.Errorf("sentiment = %q/%d, want sticky Positive/65", snap.SentimentText, snap.SentimentScore)
		}
	})

	t.Run("neutral chunk retains even a zero score", func(t *testing.T) {
		s := New()
		s.RecordSpeech("x", speech.Analysis{Negative: 5}) // score 0, but set

		s.RecordSpeech("neutral words", speech.Analysis{})

		snap := s.Snapshot()
		if snap.SentimentText != SentimentNegative || snap.SentimentScore != 0 {
			t.Errorf("sentiment = %q/%d, want sticky Negative/0", snap.SentimentText, snap.SentimentScore)
		}
	})

	t.Run("first ever neutral chunk defaults to Neutral 50", func(t *testing.T) {
		s := New()
		s.RecordSpeech("we talked about the project", speech.Analysis{})

		snap := s.Snapshot()
		if snap.SentimentText != SentimentNeutral || snap.SentimentScore != 50 {
			t.Errorf("sentiment = %q/%d, want Neutral/50", snap.SentimentText, snap.SentimentScore)
		}
	})

	t.Run("transcript and fillers accumulate", func(t *testing.T) {
		s := New()
		s.RecordSpeech("um hello", speech.Analysis{FillerCount: 1})
		s.RecordSpeech("um again", speech.Analysis{FillerCount: 1})

		snap := s.Snapshot()
		if snap.Transcript != "um hello um again " {
			t.Errorf("Transcript = %q", snap.Transcript)
		}
		if snap.FillerCount != 2 {
			t.Errorf("FillerCount = %d, want 2", snap.FillerCount)
		}
	})
}

func TestState_StartResets(t *testing.T) {
	s := New()
	s.Start()
	s.RecordSpeech("um great stuff", speech.Analysis{FillerCount: 1, Positive: 1})
	s.AppendEyeSample(sample(90))
	s.End()

	s.Start()

	snap := s.Snapshot()
	if snap.Transcript != "" {
		t.Errorf("Transcript = %q, want empty after Start", snap.Transcript)
	}
	if snap.FillerCount != 0 {
		t.Errorf("FillerCount = %d, want 0 after Start", snap.FillerCount)
	}
	if snap.AvgEyeContact != 0 {
		t.Errorf("AvgEyeContact = %d, want 0 after Start", snap.AvgEyeContact)
	}
	if len(s.history) != 0 {
		t.Errorf("history length = %d, want 0 after Start", len(s.history))
	}

	// Sentiment carries across session boundaries.
	if snap.SentimentText != SentimentPositive || snap.SentimentScore != 65 {
		t.Errorf("sentiment = %q/%d, want carried-over Positive/65", snap.SentimentText, snap.SentimentScore)
	}
}

func TestState_ClearTranscript(t *testing.T) {
	s := New()
	s.RecordSpeech("um great", speech.Analysis{FillerCount: 1, Positive: 1})
	s.AppendEyeSample(sample(90))

	s.ClearTranscript()

	snap := s.Snapshot()
	if snap.Transcript != "" {
		t.Errorf("Transcript = %q, want empty", snap.Transcript)
	}
	if snap.FillerCount != 1 || snap.SentimentText != SentimentPositive || snap.EyeScore != 90 {
		t.Errorf("other metrics must survive ClearTranscript: %+v", snap)
	}
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := New()
	s.RecordSpeech("hello there", speech.Analysis{})

	snap := s.Snapshot()
	s.RecordSpeech("more words", speech.Analysis{})

	if strings.Contains(snap.Transcript, "more words") {
		t.Error("snapshot must not observe writes made after it was taken")
	}
}
