package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/card"
	"github.com/abhisek/lexiz/internal/engine"
	"github.com/abhisek/lexiz/internal/question"
	"github.com/abhisek/lexiz/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	deck := []card.Card{
		{ID: "w1", Lang: "nl", Type: card.TypeVocab, Source: card.SourceBuiltin, Prompt: "fiets", Answer: card.AnswerSet{"bicycle"}},
		{ID: "w2", Lang: "nl", Type: card.TypeVocab, Source: card.SourceBuiltin, Prompt: "huis", Answer: card.AnswerSet{"house"}},
	}
	return engine.New(engine.Config{
		Store:        store.NewProfileStore(t.TempDir()),
		Lang:         "nl",
		Deck:         deck,
		SaveDebounce: time.Hour,
		Rand:         rand.New(rand.NewSource(3)),
	})
}

func activeModel(t *testing.T, q question.Question) Model {
	t.Helper()
	m := New(testEngine(t))
	next, _ := m.Update(questionMsg{q: q})
	return next.(Model)
}

func typeAnswerQuestion() question.Question {
	return question.Question{
		Variant: question.VariantTypeAnswer,
		CardID:  "w1",
		Prompt:  `Translate to English: "fiets"`,
		Answers: []string{"bicycle"},
		Meta:    question.Meta{Skill: question.SkillComprehension, SourcePrompt: "fiets"},
	}
}

func TestModel_QuestionMsgResetsTurn(t *testing.T) {
	m := activeModel(t, typeAnswerQuestion())
	if m.phase != phaseQuestion {
		t.Errorf("phase = %v, want question", m.phase)
	}
	if m.hintUsed || m.hint != "" {
		t.Error("hint state not reset")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty", m.input.Value())
	}
}

func TestModel_SubmitShowsFeedback(t *testing.T) {
	m := activeModel(t, typeAnswerQuestion())
	m.input.SetValue("bicycle")

	next, _ := m.Update(specialKey(tea.KeyEnter))
	mm := next.(Model)
	if mm.phase != phaseFeedback {
		t.Fatal("expected feedback after submit")
	}
	if !mm.res.Correct {
		t.Errorf("result = %+v, want correct", mm.res)
	}
	if mm.answered != 1 || mm.correct != 1 {
		t.Errorf("session counters = %d/%d", mm.correct, mm.answered)
	}
}

func TestModel_EmptySubmitIgnored(t *testing.T) {
	m := activeModel(t, typeAnswerQuestion())

	next, _ := m.Update(specialKey(tea.KeyEnter))
	mm := next.(Model)
	if mm.phase != phaseQuestion {
		t.Error("empty answer was submitted")
	}
}

func TestModel_TabRevealsHintOnce(t *testing.T) {
	m := activeModel(t, typeAnswerQuestion())

	next, _ := m.Update(specialKey(tea.KeyTab))
	mm := next.(Model)
	if !mm.hintUsed || mm.hint == "" {
		t.Fatalf("hint not revealed: %+v", mm.hint)
	}

	mm.input.SetValue("bicycle")
	next, _ = mm.Update(specialKey(tea.KeyEnter))
	mm = next.(Model)
	if mm.res.Quality != 3 {
		t.Errorf("quality = %d, want hint-capped 3", mm.res.Quality)
	}
	if !strings.Contains(mm.res.Explanation, "(Hint used)") {
		t.Errorf("explanation = %q", mm.res.Explanation)
	}
}

func TestModel_MultipleChoiceKeySubmits(t *testing.T) {
	q := question.Question{
		Variant:      question.VariantMultipleChoice,
		CardID:       "w1",
		Prompt:       `Translate: "fiets"`,
		Options:      []string{"house", "bicycle", "bread"},
		CorrectIndex: 1,
		Meta:         question.Meta{Skill: question.SkillComprehension},
	}
	m := activeModel(t, q)

	next, _ := m.Update(keyPress('b'))
	mm := next.(Model)
	if mm.phase != phaseFeedback {
		t.Fatal("expected feedback after choice key")
	}
	if !mm.res.Correct {
		t.Errorf("result = %+v, want correct for option b", mm.res)
	}
}

func TestModel_FeedbackKeyAdvances(t *testing.T) {
	m := activeModel(t, typeAnswerQuestion())
	m.input.SetValue("bicycle")

	next, _ := m.Update(specialKey(tea.KeyEnter))
	mm := next.(Model)

	_, cmd := mm.Update(keyPress(' '))
	if cmd == nil {
		t.Error("expected next-question command after feedback dismiss")
	}
}

func TestChoiceIndex(t *testing.T) {
	tests := []struct {
		key   byte
		count int
		want  int
	}{
		{'a', 4, 0},
		{'d', 4, 3},
		{'e', 4, -1},
		{'1', 4, 0},
		{'4', 4, 3},
		{'5', 4, -1},
		{'b', 1, -1},
	}
	for _, tt := range tests {
		if got := choiceIndex(tt.key, tt.count); got != tt.want {
			t.Errorf("choiceIndex(%q, %d) = %d, want %d", tt.key, tt.count, got, tt.want)
		}
	}
}
