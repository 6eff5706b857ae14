// Package speech analyzes transcript chunks for filler words and sentiment.
package speech

import (
	"errors"
	"strings"
)

// ErrEmptyChunk is returned when a chunk is blank after normalization.
// It is a reportable condition, not a failure; handlers map it to an
// "empty" status.
var ErrEmptyChunk = errors.New("empty speech chunk")

// Lexicon holds the term lists the analyzer matches against. Terms must be
// lowercase; multi-word terms are allowed ("you know").
type Lexicon struct {
	Fillers  []string
	Positive []string
	Negative []string
}

// DefaultLexicon returns the built-in term lists. The store seeds its
// lexicon table from these on first run.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Fillers: []string{
			"um", "uh", "like", "you know", "basically", "actually",
			"sort of", "kind of",
		},
		Positive: []string{
			"good", "great", "excellent", "happy", "confident", "excited",
			"wonderful", "fantastic", "amazing", "love", "perfect", "best",
			"awesome", "brilliant", "thrilled", "proud", "delighted",
		},
		Negative: []string{
			"bad", "difficult", "hard", "nervous", "worried", "concerned",
			"afraid", "terrible", "awful", "hate", "worst", "scared",
			"anxious", "stressed", "frustrated", "disappointed",
		},
	}
}

// Analysis holds the raw counts for one chunk. Sentiment resolution against
// the running session estimate happens in the session package, under its
// lock.
type Analysis struct {
	FillerCount int
	Positive    int
	Negative    int
}

// Net is the positive-minus-negative balance for the chunk.
func (a Analysis) Net() int {
	return a.Positive - a.Negative
}

// Analyze normalizes a transcript chunk and counts boundary-matched filler
// and sentiment terms. It is stateless per call; the same chunk always
// yields the same counts.
func (l Lexicon) Analyze(chunk string) (Analysis, error) {
	text := strings.ToLower(strings.TrimSpace(chunk))
	if text == "" {
		return Analysis{}, ErrEmptyChunk
	}

	// Sentinel spaces on both the text and the term restrict matches to
	// whole words, so "like" never matches inside "likely".
	padded := " " + text + " "

	var a Analysis
	for _, term := range l.Fillers {
		a.FillerCount += countBounded(padded, term)
	}
	for _, term := range l.Positive {
		a.Positive += countBounded(padded, term)
	}
	for _, term := range l.Negative {
		a.Negative += countBounded(padded, term)
	}

	return a, nil
}

func countBounded(padded, term string) int {
	return strings.Count(padded, " "+term+" ")
}
