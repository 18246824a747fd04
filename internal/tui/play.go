// Package tui is the terminal play screen: one Bubble Tea model that
// loops question → answer → feedback against the engine.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/engine"
	"github.com/abhisek/lexiz/internal/grader"
	"github.com/abhisek/lexiz/internal/question"
)

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
)

// Model is the play screen.
type Model struct {
	engine *engine.Engine
	input  textinput.Model

	q          question.Question
	res        grader.Result
	hint       string
	hintUsed   bool
	questionAt time.Time
	phase      phase
	err        error

	answered int
	correct  int

	mcSelected int

	width  int
	height int
}

// New creates the play model around a ready engine.
func New(e *engine.Engine) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.Focus()

	return Model{
		engine: e,
		input:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.nextQuestion(), m.input.Focus())
}

type questionMsg struct {
	q   question.Question
	err error
}

func (m Model) nextQuestion() tea.Cmd {
	e := m.engine
	return func() tea.Msg {
		q, err := e.NextQuestion()
		return questionMsg{q: q, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case questionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.q = msg.q
		m.hint = ""
		m.hintUsed = false
		m.mcSelected = 0
		m.questionAt = time.Now()
		m.phase = phaseQuestion
		m.input.SetValue("")
		return m, m.input.Focus()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseQuestion && !m.isMultipleChoice() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.phase == phaseFeedback {
		if key == "esc" {
			return m, tea.Quit
		}
		// Any other key continues.
		return m, m.nextQuestion()
	}

	switch key {
	case "esc":
		return m, tea.Quit
	case "tab":
		if !m.hintUsed {
			m.hint = m.engine.Hint(m.q)
			m.hintUsed = true
		}
		return m, nil
	case "enter":
		return m.submit(m.currentAnswer())
	}

	if m.isMultipleChoice() {
		switch key {
		case "up", "k":
			if m.mcSelected > 0 {
				m.mcSelected--
			}
			return m, nil
		case "down", "j":
			if m.mcSelected < len(m.q.Options)-1 {
				m.mcSelected++
			}
			return m, nil
		}
		// Direct selection: a-d or 1-4 submits immediately.
		if len(key) == 1 {
			if idx := choiceIndex(key[0], len(m.q.Options)); idx >= 0 {
				m.mcSelected = idx
				return m.submit(key)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) currentAnswer() string {
	if m.isMultipleChoice() {
		// Submit as a letter so grading matches what the learner sees.
		return string(rune('a' + m.mcSelected))
	}
	return m.input.Value()
}

func (m Model) submit(raw string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}
	latency := time.Since(m.questionAt).Milliseconds()
	m.res = m.engine.SubmitAnswer(context.Background(), m.q, raw, latency, m.hintUsed)
	m.answered++
	if m.res.Correct {
		m.correct++
	}
	m.phase = phaseFeedback
	return m, nil
}

func (m Model) isMultipleChoice() bool {
	return m.q.Variant == question.VariantMultipleChoice
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var b strings.Builder

	st := m.engine.Status()
	b.WriteString(styleTitle.Render("lexiz") + "  " + styleStatus.Render(fmt.Sprintf(
		"%s · %s · streak %dd · due %d · new %d",
		st.Lang, st.Ability.Estimate, st.StreakDays, st.DueCount, st.NewCount,
	)))
	b.WriteString("\n\n")

	if m.phase == phaseFeedback {
		b.WriteString(m.renderFeedback())
	} else {
		b.WriteString(m.renderQuestion())
	}

	b.WriteString("\n\n")
	b.WriteString(styleFooter.Render(m.footerHints()))

	v.SetContent(lipgloss.NewStyle().Padding(1, 2).Render(b.String()))
	return v
}

func (m Model) renderQuestion() string {
	var b strings.Builder
	b.WriteString(stylePrompt.Render(m.q.DisplayPrompt()))
	b.WriteString("\n\n")

	if m.isMultipleChoice() {
		for i, opt := range m.q.Options {
			label := fmt.Sprintf("%c) %s", 'A'+i, opt)
			if i == m.mcSelected {
				b.WriteString(styleSelected.Render("> " + label))
			} else {
				b.WriteString(styleOption.Render("  " + label))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.hint != "" {
		b.WriteString("\n" + styleHint.Render("Hint: "+m.hint))
	}
	return styleCard.Render(b.String())
}

func (m Model) renderFeedback() string {
	var b strings.Builder
	if m.res.Correct {
		b.WriteString(styleCorrect.Render("✓ Correct"))
	} else {
		b.WriteString(styleIncorrect.Render("✗ Incorrect"))
	}
	b.WriteString("\n\n")
	b.WriteString(styleExplain.Render(m.res.Explanation))
	b.WriteString("\n\n")
	b.WriteString(styleStatus.Render(fmt.Sprintf("Session: %d/%d correct", m.correct, m.answered)))
	return styleCard.Render(b.String())
}

func (m Model) footerHints() string {
	if m.phase == phaseFeedback {
		return "any key continue · esc quit"
	}
	if m.isMultipleChoice() {
		return "a-d/1-4 answer · ↑↓ select · enter submit · tab hint · esc quit"
	}
	return "enter submit · tab hint · esc quit"
}

// choiceIndex maps a letter or digit key to an option index, or -1.
func choiceIndex(key byte, optionCount int) int {
	switch {
	case key >= 'a' && key <= 'z':
		if idx := int(key - 'a'); idx < optionCount {
			return idx
		}
	case key >= '1' && key <= '9':
		if idx := int(key - '1'); idx < optionCount {
			return idx
		}
	}
	return -1
}

// Run starts the play loop and flushes the profile on exit.
func Run(e *engine.Engine) error {
	p := tea.NewProgram(New(e))
	_, err := p.Run()
	e.Flush()
	if err != nil {
		return fmt.Errorf("run play screen: %w", err)
	}
	return nil
}
