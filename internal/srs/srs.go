// Package srs implements the SM-2 spaced repetition variant used to
// schedule card reviews. All transitions are pure: given the same state,
// quality and clock they produce the same result.
package srs

import "math"

// MinEase is the floor for the ease factor.
const MinEase = 1.3

// DayMs is one day in epoch milliseconds.
const DayMs int64 = 24 * 60 * 60 * 1000

// State holds the review schedule for a single card. Timestamps are
// epoch milliseconds to match the persisted profile layout.
type State struct {
	DueAt          int64   `json:"dueAt"`
	IntervalDays   int     `json:"intervalDays"`
	Ease           float64 `json:"ease"`
	Reps           int     `json:"reps"`
	Lapses         int     `json:"lapses"`
	LastReviewedAt int64   `json:"lastReviewedAt,omitempty"`
	LastQuality    int     `json:"lastQuality,omitempty"`
}

// Init returns the state for a card introduced at now: due immediately,
// default ease, no history.
func Init(now int64) State {
	return State{
		DueAt:        now,
		IntervalDays: 0,
		Ease:         2.5,
		Reps:         0,
		Lapses:       0,
	}
}

// Advance applies one review with the given quality (0-5) and returns the
// next state. Quality below 3 is a lapse: reps reset, the card comes back
// tomorrow and ease drops by 0.2 (floored at MinEase). Quality 3+ walks
// the 1/6/interval*ease ladder.
func Advance(s State, quality int, now int64) State {
	next := s
	if next.Ease == 0 {
		next.Ease = 2.5
	}

	if quality < 3 {
		next.Reps = 0
		next.IntervalDays = 1
		next.Ease = math.Max(MinEase, next.Ease-0.2)
		next.Lapses = s.Lapses + 1
		next.LastReviewedAt = now
		next.LastQuality = quality
		next.DueAt = now + int64(next.IntervalDays)*DayMs
		return next
	}

	next.Reps = s.Reps + 1
	switch next.Reps {
	case 1:
		next.IntervalDays = 1
	case 2:
		next.IntervalDays = 6
	default:
		next.IntervalDays = int(math.Round(float64(next.IntervalDays) * next.Ease))
	}

	q := float64(5 - quality)
	next.Ease = math.Max(MinEase, next.Ease+(0.1-q*(0.08+q*0.02)))
	next.LastReviewedAt = now
	next.LastQuality = quality
	next.DueAt = now + int64(next.IntervalDays)*DayMs
	return next
}

// IsDue reports whether the card is at or past its scheduled review time.
func (s State) IsDue(now int64) bool {
	return s.DueAt <= now
}
