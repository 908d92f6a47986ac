// Package hotword implements phoneme-based hotword correction: a user
// supplies a list of domain-specific terms (product names, jargon, person
// names) that ASR frequently mis-transcribes, and [Corrector.Correct]
// rewrites spans of misrecognised text back to the intended hotword whenever
// a nearby phoneme window scores above a matching threshold.
package hotword

// Correction is one applied substitution: the span that used to read as the
// ASR's mis-transcription now reads as Hotword.
type Correction struct {
	Hotword string
	Score   float64
}

// Candidate is a near-miss: a window scored above the (lower) similarity
// threshold but below the threshold required to actually replace it. These
// are surfaced for diagnostics/logging, not applied to the text.
type Candidate struct {
	Hotword string
	Score   float64
}

// Result is the outcome of [Corrector.Correct].
type Result struct {
	Text       string
	Applied    []Correction
	NearMisses []Candidate
}

// match is an internal scored window before conflict resolution.
type match struct {
	start, end int // rune offsets into the original text
	score      float64
	hotword    string
}
