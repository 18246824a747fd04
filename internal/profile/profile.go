// Package profile holds the per-learner state that survives between
// sessions: attempt stats, the ability estimate and the deck's SRS map.
// The JSON layout is load-bearing; field names and defaults must stay
// stable so older profiles keep loading.
package profile

import (
	"math"
	"time"

	"github.com/abhisek/lexiz/internal/srs"
)

// Version is the current profile schema version.
const Version = 1

// Estimate is a coarse CEFR-style proficiency band.
type Estimate string

const (
	EstimateUnknown Estimate = "unknown"
	EstimateA0      Estimate = "A0"
	EstimateA1      Estimate = "A1"
	EstimateA2      Estimate = "A2"
	EstimateB1      Estimate = "B1"
	EstimateB2      Estimate = "B2"
	EstimateC1      Estimate = "C1"
	EstimateC2      Estimate = "C2"
)

// Mode selects how answers are graded.
type Mode string

const (
	ModeStrictFree Mode = "strict-free"
	ModeSharedLLM  Mode = "shared-llm"
	ModeLocalLLM   Mode = "local-llm"
)

// SkillScore is the smoothed score and sample count for one skill.
type SkillScore struct {
	Score   float64 `json:"score"`
	Samples int     `json:"samples"`
}

// Ability aggregates per-skill scores into one proficiency estimate.
type Ability struct {
	Estimate   Estimate              `json:"estimate"`
	Score      float64               `json:"score"`
	Confidence float64               `json:"confidence"`
	Subskills  map[string]SkillScore `json:"subskills"`
	UpdatedAt  int64                 `json:"updatedAt"`
}

// Stats tracks attempt counters and activity.
type Stats struct {
	TotalAttempts   int     `json:"totalAttempts"`
	CorrectAttempts int     `json:"correctAttempts"`
	StreakDays      int     `json:"streakDays"`
	LastActiveAt    int64   `json:"lastActiveAt"`
	AvgLatencyMs7d  float64 `json:"avgLatencyMs7d,omitempty"`
}

// DeckState tracks which cards the learner has seen and their schedules.
type DeckState struct {
	KnownCardIDs     []string             `json:"knownCardIds"`
	Srs              map[string]srs.State `json:"srs"`
	SuspendedCardIDs []string             `json:"suspendedCardIds,omitempty"`
}

// Settings are consumed by external collaborators (grading mode, overlay
// idle behavior); the engine stores and persists them but does not act on
// them.
type Settings struct {
	Mode                       Mode `json:"mode"`
	DailyNewCardsTarget        int  `json:"dailyNewCardsTarget"`
	OverlayAutoHideOnIdle      bool `json:"overlayAutoHideOnIdle"`
	MaxOverlaySecondsAfterIdle int  `json:"maxOverlaySecondsAfterIdle"`
}

// Profile is the full persisted state for one (learner, language) pair.
type Profile struct {
	Version  int       `json:"version"`
	Lang     string    `json:"lang"`
	Enabled  bool      `json:"enabled"`
	Stats    Stats     `json:"stats"`
	Ability  Ability   `json:"ability"`
	Deck     DeckState `json:"deck"`
	Settings Settings  `json:"settings"`
}

// Default returns a fresh profile for the given language.
func Default(lang string) *Profile {
	return &Profile{
		Version: Version,
		Lang:    lang,
		Enabled: false,
		Stats:   Stats{},
		Ability: Ability{
			Estimate:  EstimateUnknown,
			Score:     0.2,
			Subskills: make(map[string]SkillScore),
			UpdatedAt: time.Now().UnixMilli(),
		},
		Deck: DeckState{
			KnownCardIDs:     []string{},
			Srs:              make(map[string]srs.State),
			SuspendedCardIDs: []string{},
		},
		Settings: Settings{
			Mode:                       ModeStrictFree,
			DailyNewCardsTarget:        8,
			OverlayAutoHideOnIdle:      true,
			MaxOverlaySecondsAfterIdle: 10,
		},
	}
}

// Sanitize repairs a decoded profile in place: nil maps become empty,
// out-of-range numerics are clamped and unknown enum values fall back to
// their defaults. Missing fields therefore never crash a read path.
func (p *Profile) Sanitize(lang string) {
	p.Version = Version
	p.Lang = lang

	p.Ability.Score = clamp01(p.Ability.Score)
	p.Ability.Confidence = clamp01(p.Ability.Confidence)
	if !validEstimate(p.Ability.Estimate) {
		p.Ability.Estimate = EstimateUnknown
	}
	if p.Ability.Subskills == nil {
		p.Ability.Subskills = make(map[string]SkillScore)
	}
	for skill, s := range p.Ability.Subskills {
		s.Score = clamp01(s.Score)
		if s.Samples < 0 {
			s.Samples = 0
		}
		p.Ability.Subskills[skill] = s
	}

	if p.Stats.TotalAttempts < 0 {
		p.Stats.TotalAttempts = 0
	}
	if p.Stats.CorrectAttempts < 0 {
		p.Stats.CorrectAttempts = 0
	}
	if p.Stats.StreakDays < 0 {
		p.Stats.StreakDays = 0
	}

	if p.Deck.KnownCardIDs == nil {
		p.Deck.KnownCardIDs = []string{}
	}
	if p.Deck.Srs == nil {
		p.Deck.Srs = make(map[string]srs.State)
	}
	for id, state := range p.Deck.Srs {
		if state.Ease < srs.MinEase {
			state.Ease = 2.5
		}
		if state.IntervalDays < 0 {
			state.IntervalDays = 0
		}
		p.Deck.Srs[id] = state
	}

	switch p.Settings.Mode {
	case ModeStrictFree, ModeSharedLLM, ModeLocalLLM:
	default:
		p.Settings.Mode = ModeStrictFree
	}
	p.Settings.DailyNewCardsTarget = clampInt(p.Settings.DailyNewCardsTarget, 8, 1, 50)
	p.Settings.MaxOverlaySecondsAfterIdle = clampInt(p.Settings.MaxOverlaySecondsAfterIdle, 10, 0, 60)
}

// IsKnown reports whether the card id has been introduced.
func (p *Profile) IsKnown(id string) bool {
	for _, known := range p.Deck.KnownCardIDs {
		if known == id {
			return true
		}
	}
	return false
}

// IsSuspended reports whether the card id is suspended from selection.
func (p *Profile) IsSuspended(id string) bool {
	for _, suspended := range p.Deck.SuspendedCardIDs {
		if suspended == id {
			return true
		}
	}
	return false
}

func validEstimate(e Estimate) bool {
	switch e {
	case EstimateUnknown, EstimateA0, EstimateA1, EstimateA2, EstimateB1, EstimateB2, EstimateC1, EstimateC2:
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}

func clampInt(v, fallback, lo, hi int) int {
	if v == 0 {
		return fallback
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
