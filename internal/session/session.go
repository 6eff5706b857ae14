// Package session holds the shared aggregation state for one coaching session.
package session

import (
	"math"
	"sync"
	"time"

	"github.com/ayusman/podium/internal/gaze"
	"github.com/ayusman/podium/internal/speech"
)

// HistorySize bounds the rolling eye-contact score history. The session
// average is computed over at most this many recent samples.
const HistorySize = 30

// Sentiment score mapping constants.
const (
	sentimentBase = 50
	sentimentStep = 15
)

// Sentiment labels.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Snapshot is a consistent point-in-time copy of the session state, shaped
// for the polling dashboard.
type Snapshot struct {
	EyeScore        int     `json:"eye_score"`
	EyeStatus       string  `json:"eye_status"`
	Transcript      string  `json:"transcript"`
	FillerCount     int     `json:"filler_count"`
	SentimentScore  int     `json:"sentiment_score"`
	SentimentText   string  `json:"sentiment_text"`
	AvgEyeContact   int     `json:"avg_eye_contact"`
	SessionDuration float64 `json:"session_duration"`
}

// State is the process-wide session aggregate. The frame loop writes the
// vision side, speech handlers write the text side, and snapshot consumers
// read; a single mutex covers every compound read-modify-write so concurrent
// writers never produce lost updates or torn reads.
type State struct {
	mu sync.Mutex

	start    time.Time
	duration float64

	transcript  string
	fillerCount int

	sentimentScore int
	sentimentText  string
	sentimentSet   bool

	history   []int
	avg       int
	eyeScore  int
	eyeStatus string

	now func() time.Time
}

// New creates an empty session state. No session is active until Start.
func New() *State {
	return &State{
		sentimentText: SentimentNeutral,
		eyeStatus:     "Waiting",
		history:       make([]int, 0, HistorySize),
		now:           time.Now,
	}
}

// Start begins a new session: the text-side accumulators and the score
// history reset, the start timestamp is recorded. The sentiment estimate
// carries over from any previous session.
func (s *State) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.start = s.now()
	s.transcript = ""
	s.fillerCount = 0
	s.history = s.history[:0]
	s.avg = 0
}

// End finalizes the session: duration is computed when a start timestamp
// exists, and the average eye contact is recomputed from the history when it
// is non-empty (otherwise the previous average is retained). Safe to call
// without a matching Start.
func (s *State) End() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.start.IsZero() {
		s.duration = s.now().Sub(s.start).Seconds()
	}

	if len(s.history) > 0 {
		sum := 0
		for _, v := range s.history {
			sum += v
		}
		s.avg = int(math.Round(float64(sum) / float64(len(s.history))))
	}

	return s.duration
}

// AppendEyeSample folds one scored frame into the rolling history and the
// last-seen fields. When the history is full the oldest entry is evicted.
func (s *State) AppendEyeSample(sample gaze.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) >= HistorySize {
		copy(s.history, s.history[1:])
		s.history = s.history[:HistorySize-1]
	}
	s.history = append(s.history, sample.Score)

	s.eyeScore = sample.Score
	s.eyeStatus = string(sample.Status)
}

// RecordSpeech folds one analyzed transcript chunk into the session: the raw
// chunk is appended to the transcript with a trailing separator, the filler
// count grows, and the sticky sentiment estimate is updated. A chunk with a
// zero net balance leaves the estimate unchanged, unless no sentiment has
// ever been recorded, in which case the estimate defaults to Neutral/50.
// Returns the resulting sentiment label.
func (s *State) RecordSpeech(chunk string, a speech.Analysis) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript += chunk + " "
	s.fillerCount += a.FillerCount

	net := a.Net()
	switch {
	case net > 0:
		s.sentimentText = SentimentPositive
		s.sentimentScore = min(100, sentimentBase+net*sentimentStep)
		s.sentimentSet = true
	case net < 0:
		s.sentimentText = SentimentNegative
		s.sentimentScore = max(0, sentimentBase+net*sentimentStep)
		s.sentimentSet = true
	default:
		if !s.sentimentSet {
			s.sentimentText = SentimentNeutral
			s.sentimentScore = sentimentBase
			s.sentimentSet = true
		}
	}

	return s.sentimentText
}

// Snapshot returns a consistent point-in-time copy of the session state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		EyeScore:        s.eyeScore,
		EyeStatus:       s.eyeStatus,
		Transcript:      s.transcript,
		FillerCount:     s.fillerCount,
		SentimentScore:  s.sentimentScore,
		SentimentText:   s.sentimentText,
		AvgEyeContact:   s.avg,
		SessionDuration: s.duration,
	}
}

// ClearTranscript drops the accumulated transcript, leaving every other
// metric intact. Called after the feedback collaborator has consumed the
// text, independent of session boundaries.
func (s *State) ClearTranscript() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = ""
}
