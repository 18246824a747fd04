package judge

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/abhisek/lexiz/internal/grader"
	"github.com/abhisek/lexiz/internal/question"
)

const gradeSystemPrompt = `You grade answers in a language drill. ` +
	`Judge meaning, not spelling: accept synonyms, paraphrases and minor ` +
	`typos as correct. Quality is 0-5: 5 effortless, 4 correct, 3 correct ` +
	`with difficulty, 2 close miss, 1 wrong, 0 blank. Keep the ` +
	`explanation to one short learner-facing sentence.`

// gradeSchema is the structured output contract for grading calls.
var gradeSchema = &Schema{
	Name: "grade",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type": "boolean",
			},
			"quality": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 5,
			},
			"explanation": map[string]any{
				"type": "string",
			},
			"expectedAnswer": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"correct", "quality", "explanation"},
		"additionalProperties": false,
	},
}

type gradeResponse struct {
	Correct        bool   `json:"correct"`
	Quality        int    `json:"quality"`
	Explanation    string `json:"explanation"`
	ExpectedAnswer string `json:"expectedAnswer"`
}

// Judge wraps a Provider for single-answer grading. It is strictly
// best-effort: TryGrade returns nil whenever the provider cannot
// deliver a usable verdict in time.
type Judge struct {
	provider Provider
	timeout  time.Duration
}

// New creates a Judge over the given provider.
func New(provider Provider, timeout time.Duration) *Judge {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Judge{provider: provider, timeout: timeout}
}

// NewFromConfig builds the provider stack and wraps it in a Judge.
func NewFromConfig(ctx context.Context, cfg Config) (*Judge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(provider, cfg.Timeout), nil
}

// NewFromEnv builds a Judge from LEXIZ_* env config, falling back to
// probing standard API key variables. Returns (nil, false) when no
// provider is configured; the caller runs without a judge.
func NewFromEnv(ctx context.Context) (*Judge, bool) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, false
		}
		cfg = discovered
	}
	j, err := NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, false
	}
	return j, true
}

// ModelID returns the underlying provider's model identifier.
func (j *Judge) ModelID() string {
	return j.provider.ModelID()
}

// TryGrade asks the model to grade one answer. Any failure, timeout or
// malformed response returns nil, which the caller treats as "no
// opinion".
func (j *Judge) TryGrade(ctx context.Context, q question.Question, userAnswer string) *grader.Result {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	resp, err := j.provider.Ask(ctx, Request{
		System:    gradeSystemPrompt,
		Prompt:    buildGradePrompt(q, userAnswer),
		Schema:    gradeSchema,
		MaxTokens: 300,
	})
	if err != nil {
		return nil
	}

	var parsed gradeResponse
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil
	}

	quality := parsed.Quality
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	expected := parsed.ExpectedAnswer
	if expected == "" {
		expected = expectedAnswer(q)
	}

	return &grader.Result{
		Correct:              parsed.Correct,
		Quality:              quality,
		Explanation:          parsed.Explanation,
		ExpectedAnswer:       expected,
		NormalizedUserAnswer: grader.Normalize(userAnswer),
	}
}

// buildGradePrompt serializes the question and answer for the model.
func buildGradePrompt(q question.Question, userAnswer string) string {
	payload := map[string]any{
		"variant":        string(q.Variant),
		"prompt":         q.DisplayPrompt(),
		"expectedAnswer": expectedAnswer(q),
		"userAnswer":     userAnswer,
	}
	if len(q.Answers) > 1 {
		payload["acceptableAnswers"] = q.Answers
	}
	if q.Meta.SourceTranslation != "" {
		payload["translation"] = q.Meta.SourceTranslation
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Grade this answer:\n")
	b.Write(data)
	return b.String()
}

func expectedAnswer(q question.Question) string {
	switch q.Variant {
	case question.VariantArticle:
		return q.Correct
	case question.VariantReorder:
		return q.CorrectSentence
	case question.VariantMultipleChoice:
		if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
			return q.Options[q.CorrectIndex]
		}
		return ""
	default:
		return q.PrimaryAnswer()
	}
}
