// Package grader scores raw learner answers against a question. Grading
// is deterministic; the only latency coupling is the quality bonus for
// fast exact answers.
package grader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/abhisek/lexiz/internal/question"
)

// FastAnswerMs is the latency threshold for the top quality score.
const FastAnswerMs = 5000

// Result is the outcome of grading one answer. Quality is the 0-5 SM-2
// input; Explanation is learner-facing.
type Result struct {
	Correct              bool
	Quality              int
	Explanation          string
	ExpectedAnswer       string
	NormalizedUserAnswer string
}

// Grade scores a raw answer for the given question.
func Grade(q question.Question, rawAnswer string, latencyMs int64) Result {
	answer := strings.TrimSpace(rawAnswer)

	switch q.Variant {
	case question.VariantArticle:
		return gradeArticle(q, answer, latencyMs)
	case question.VariantReorder:
		return gradeReorder(q, answer, latencyMs)
	case question.VariantMultipleChoice:
		return gradeMultipleChoice(q, answer, latencyMs)
	default:
		return gradeText(q, answer, latencyMs)
	}
}

func gradeArticle(q question.Question, answer string, latencyMs int64) Result {
	normalized := Normalize(answer)
	correct := normalized == q.Correct
	explanation := "Correct."
	if !correct {
		explanation = fmt.Sprintf("Correct answer: %s", q.Correct)
	}
	return Result{
		Correct:              correct,
		Quality:              exactQuality(correct, latencyMs),
		Explanation:          explanation,
		ExpectedAnswer:       q.Correct,
		NormalizedUserAnswer: normalized,
	}
}

func gradeReorder(q question.Question, answer string, latencyMs int64) Result {
	normalizedUser := Normalize(answer)
	expected := Normalize(q.CorrectSentence)

	if normalizedUser == expected {
		return Result{
			Correct:              true,
			Quality:              exactQuality(true, latencyMs),
			Explanation:          "Correct.",
			ExpectedAnswer:       q.CorrectSentence,
			NormalizedUserAnswer: normalizedUser,
		}
	}

	// Reorder answers are whole sentences; allow up to two edits before
	// calling it wrong.
	if distance(normalizedUser, expected) <= 2 && len(normalizedUser) >= 3 {
		return Result{
			Correct:              true,
			Quality:              4,
			Explanation:          fmt.Sprintf("Minor typo accepted. Correct: %s", q.CorrectSentence),
			ExpectedAnswer:       q.CorrectSentence,
			NormalizedUserAnswer: normalizedUser,
		}
	}

	return Result{
		Correct:              false,
		Quality:              1,
		Explanation:          fmt.Sprintf("Incorrect. Correct: %s", q.CorrectSentence),
		ExpectedAnswer:       q.CorrectSentence,
		NormalizedUserAnswer: normalizedUser,
	}
}

func gradeMultipleChoice(q question.Question, answer string, latencyMs int64) Result {
	expected := ""
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
		expected = q.Options[q.CorrectIndex]
	}

	selected, ok := parseChoiceIndex(answer, len(q.Options))
	if !ok {
		// Unparseable input is a graded miss, not an error: the learner
		// still spent the turn.
		return Result{
			Correct:              false,
			Quality:              1,
			Explanation:          "Enter A-D or 1-4, then press Enter.",
			ExpectedAnswer:       expected,
			NormalizedUserAnswer: Normalize(answer),
		}
	}

	correct := selected == q.CorrectIndex
	explanation := "Correct."
	if !correct {
		explanation = fmt.Sprintf("Correct answer: %s", expected)
	}
	return Result{
		Correct:              correct,
		Quality:              exactQuality(correct, latencyMs),
		Explanation:          explanation,
		ExpectedAnswer:       expected,
		NormalizedUserAnswer: Normalize(answer),
	}
}

func gradeText(q question.Question, answer string, latencyMs int64) Result {
	normalizedUser := Normalize(answer)

	bestDistance := -1
	matched := ""
	for _, acceptable := range q.Answers {
		normalized := Normalize(acceptable)
		if normalizedUser == normalized {
			matched = acceptable
			bestDistance = 0
			break
		}
		d := distance(normalizedUser, normalized)
		if bestDistance < 0 || d < bestDistance {
			bestDistance = d
			matched = acceptable
		}
	}
	if matched == "" {
		matched = q.PrimaryAnswer()
	}

	longEnough := len(normalizedUser) >= 3

	switch {
	case bestDistance == 0:
		return Result{
			Correct:              true,
			Quality:              exactQuality(true, latencyMs),
			Explanation:          "Correct.",
			ExpectedAnswer:       matched,
			NormalizedUserAnswer: normalizedUser,
		}
	case bestDistance == 1 && longEnough:
		return Result{
			Correct:              true,
			Quality:              4,
			Explanation:          fmt.Sprintf("Minor typo accepted. Correct: %s", matched),
			ExpectedAnswer:       matched,
			NormalizedUserAnswer: normalizedUser,
		}
	case bestDistance == 2 && longEnough:
		return Result{
			Correct:              false,
			Quality:              2,
			Explanation:          fmt.Sprintf("Close. Correct: %s", matched),
			ExpectedAnswer:       matched,
			NormalizedUserAnswer: normalizedUser,
		}
	default:
		return Result{
			Correct:              false,
			Quality:              1,
			Explanation:          fmt.Sprintf("Incorrect. Correct: %s", matched),
			ExpectedAnswer:       matched,
			NormalizedUserAnswer: normalizedUser,
		}
	}
}

// exactQuality maps an exact-match outcome to quality: 5 when fast, 4
// otherwise, 1 when wrong.
func exactQuality(correct bool, latencyMs int64) int {
	if !correct {
		return 1
	}
	if latencyMs <= FastAnswerMs {
		return 5
	}
	return 4
}

// parseChoiceIndex interprets a multiple-choice selection as either a
// single letter (a, b, c...) or a 1-based number.
func parseChoiceIndex(input string, optionCount int) (int, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, false
	}

	if len(trimmed) == 1 && trimmed[0] >= 'a' && trimmed[0] <= 'z' {
		index := int(trimmed[0] - 'a')
		if index < optionCount {
			return index, true
		}
		return 0, false
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	index := n - 1
	if index < 0 || index >= optionCount {
		return 0, false
	}
	return index, true
}

func distance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}
