// Package ability tracks per-skill proficiency. Each graded answer
// updates one skill's exponentially smoothed score; the aggregate feeds
// a coarse CEFR band. Update returns a fresh Ability value so the engine
// decides when to install it (no hidden aliasing of the profile).
package ability

import (
	"math"

	"github.com/abhisek/lexiz/internal/profile"
	"github.com/abhisek/lexiz/internal/question"
)

const (
	// Alpha is the EWMA smoothing factor.
	Alpha = 0.2
	// PriorScore seeds a skill before its first sample.
	PriorScore = 0.5
	// ConfidenceSamples is the sample count at which confidence caps.
	ConfidenceSamples = 60
)

// Update applies one graded outcome and returns the recomputed ability.
func Update(a profile.Ability, q question.Question, correct bool, latencyMs int64, now int64) profile.Ability {
	skill := q.Meta.Skill
	if skill == "" {
		skill = InferSkill(q)
	}

	next := a
	next.Subskills = make(map[string]profile.SkillScore, len(a.Subskills)+1)
	for k, v := range a.Subskills {
		next.Subskills[k] = v
	}

	current, ok := next.Subskills[skill]
	if !ok {
		current = profile.SkillScore{Score: PriorScore}
	}
	current.Score = clamp01(Alpha*outcomeScore(correct, latencyMs) + (1-Alpha)*current.Score)
	current.Samples++
	next.Subskills[skill] = current

	sum := 0.0
	totalSamples := 0
	for _, s := range next.Subskills {
		sum += s.Score
		totalSamples += s.Samples
	}
	avg := 0.3
	if len(next.Subskills) > 0 {
		avg = sum / float64(len(next.Subskills))
	}

	next.Score = clamp01(avg)
	next.Confidence = clamp01(float64(totalSamples) / ConfidenceSamples)
	next.Estimate = scoreToEstimate(next.Score)
	next.UpdatedAt = now
	return next
}

// InferSkill derives a skill label from the question variant when the
// generator did not tag one.
func InferSkill(q question.Question) string {
	switch q.Variant {
	case question.VariantMultipleChoice:
		return question.SkillComprehension
	case question.VariantCloze:
		return question.SkillGrammarFill
	case question.VariantTypeAnswer:
		return question.SkillProduction
	default:
		return question.SkillGeneral
	}
}

// outcomeScore maps correctness and latency to [0,1]: full credit for a
// fast correct answer, small penalties as latency grows, zero when wrong.
func outcomeScore(correct bool, latencyMs int64) float64 {
	if !correct {
		return 0
	}
	switch {
	case latencyMs <= 5000:
		return 1.0
	case latencyMs <= 8000:
		return 0.92
	default:
		return 0.85
	}
}

func scoreToEstimate(score float64) profile.Estimate {
	switch {
	case score < 0.15:
		return profile.EstimateA0
	case score < 0.35:
		return profile.EstimateA1
	case score < 0.55:
		return profile.EstimateA2
	case score < 0.75:
		return profile.EstimateB1
	case score < 0.85:
		return profile.EstimateB2
	case score < 0.93:
		return profile.EstimateC1
	default:
		return profile.EstimateC2
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
