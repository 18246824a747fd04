package ability

import (
	"math"
	"testing"

	"github.com/abhisek/lexiz/internal/profile"
	"github.com/abhisek/lexiz/internal/question"
)

func clozeQ() question.Question {
	return question.Question{
		Variant: question.VariantCloze,
		Meta:    question.Meta{Skill: question.SkillGrammarFill},
	}
}

func TestUpdate_CorrectDrivesScoreUp(t *testing.T) {
	a := profile.Default("nl").Ability
	prev := PriorScore
	for i := 0; i < 40; i++ {
		a = Update(a, clozeQ(), true, 1000, int64(i))
		score := a.Subskills[question.SkillGrammarFill].Score
		if score < prev {
			t.Fatalf("sample %d: score decreased %v -> %v", i, prev, score)
		}
		prev = score
	}
	if prev < 0.99 {
		t.Errorf("score after 40 fast correct answers = %v, want near 1.0", prev)
	}
}

func TestUpdate_FailuresDriveScoreDown(t *testing.T) {
	a := profile.Default("nl").Ability
	prev := 1.0
	for i := 0; i < 40; i++ {
		a = Update(a, clozeQ(), false, 1000, int64(i))
		score := a.Subskills[question.SkillGrammarFill].Score
		if score > prev {
			t.Fatalf("sample %d: score increased %v -> %v", i, prev, score)
		}
		prev = score
	}
	if prev > 0.01 {
		t.Errorf("score after 40 failures = %v, want near 0", prev)
	}
}

func TestUpdate_FirstSampleEWMA(t *testing.T) {
	a := profile.Default("nl").Ability
	a = Update(a, clozeQ(), true, 1000, 0)
	got := a.Subskills[question.SkillGrammarFill].Score
	want := Alpha*1.0 + (1-Alpha)*PriorScore
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestUpdate_LatencyPenalty(t *testing.T) {
	tests := []struct {
		latency int64
		outcome float64
	}{
		{1000, 1.0},
		{5000, 1.0},
		{6000, 0.92},
		{8000, 0.92},
		{9000, 0.85},
	}
	for _, tt := range tests {
		a := profile.Default("nl").Ability
		a = Update(a, clozeQ(), true, tt.latency, 0)
		got := a.Subskills[question.SkillGrammarFill].Score
		want := Alpha*tt.outcome + (1-Alpha)*PriorScore
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("latency %d: score = %v, want %v", tt.latency, got, want)
		}
	}
}

func TestUpdate_ConfidenceMonotonicAndCapped(t *testing.T) {
	a := profile.Default("nl").Ability
	prev := 0.0
	for i := 0; i < 70; i++ {
		a = Update(a, clozeQ(), true, 1000, int64(i))
		if a.Confidence < prev {
			t.Fatalf("confidence decreased at sample %d", i)
		}
		prev = a.Confidence
	}
	if a.Confidence != 1.0 {
		t.Errorf("confidence after 70 samples = %v, want 1.0", a.Confidence)
	}
}

func TestUpdate_EstimateBands(t *testing.T) {
	tests := []struct {
		score float64
		want  profile.Estimate
	}{
		{0.10, profile.EstimateA0},
		{0.20, profile.EstimateA1},
		{0.40, profile.EstimateA2},
		{0.60, profile.EstimateB1},
		{0.80, profile.EstimateB2},
		{0.90, profile.EstimateC1},
		{0.95, profile.EstimateC2},
	}
	for _, tt := range tests {
		if got := scoreToEstimate(tt.score); got != tt.want {
			t.Errorf("scoreToEstimate(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestUpdate_InferSkill(t *testing.T) {
	tests := []struct {
		variant question.Variant
		want    string
	}{
		{question.VariantMultipleChoice, question.SkillComprehension},
		{question.VariantCloze, question.SkillGrammarFill},
		{question.VariantTypeAnswer, question.SkillProduction},
		{question.VariantReorder, question.SkillGeneral},
		{question.VariantArticle, question.SkillGeneral},
	}
	for _, tt := range tests {
		q := question.Question{Variant: tt.variant}
		if got := InferSkill(q); got != tt.want {
			t.Errorf("InferSkill(%s) = %q, want %q", tt.variant, got, tt.want)
		}
	}
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	a := profile.Default("nl").Ability
	a.Subskills["x"] = profile.SkillScore{Score: 0.4, Samples: 2}

	_ = Update(a, clozeQ(), true, 1000, 0)

	if got := a.Subskills["x"]; got.Score != 0.4 || got.Samples != 2 {
		t.Errorf("input ability mutated: %+v", got)
	}
	if _, ok := a.Subskills[question.SkillGrammarFill]; ok {
		t.Error("input subskill map gained a key")
	}
}

func TestUpdate_NaNLatencyScoreClamps(t *testing.T) {
	a := profile.Default("nl").Ability
	a.Score = math.NaN()
	a.Subskills["weird"] = profile.SkillScore{Score: math.NaN(), Samples: 1}

	next := Update(a, clozeQ(), true, 1000, 0)
	if math.IsNaN(next.Score) {
		t.Error("aggregate score is NaN")
	}
	for skill, s := range next.Subskills {
		if math.IsNaN(s.Score) && skill == question.SkillGrammarFill {
			t.Errorf("skill %q score is NaN", skill)
		}
	}
}
