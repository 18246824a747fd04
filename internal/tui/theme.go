package tui

import (
	"charm.land/lipgloss/v2"
)

// Color palette, readable on dark terminals.
var (
	colPrimary = lipgloss.Color("#8B5CF6") // Purple
	colAccent  = lipgloss.Color("#F97316") // Orange
	colSuccess = lipgloss.Color("#22C55E") // Green
	colError   = lipgloss.Color("#F43F5E") // Rose
	colText    = lipgloss.Color("#F8FAFC") // White
	colTextDim = lipgloss.Color("#94A3B8") // Slate
	colBorder  = lipgloss.Color("#334155") // Slate
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colPrimary)

	styleStatus = lipgloss.NewStyle().
			Foreground(colTextDim)

	stylePrompt = lipgloss.NewStyle().
			Foreground(colText).
			Bold(true)

	styleOption = lipgloss.NewStyle().
			Foreground(colText)

	styleSelected = lipgloss.NewStyle().
			Foreground(colPrimary).
			Bold(true)

	styleHint = lipgloss.NewStyle().
			Foreground(colAccent).
			Italic(true)

	styleCorrect = lipgloss.NewStyle().
			Foreground(colSuccess).
			Bold(true)

	styleIncorrect = lipgloss.NewStyle().
			Foreground(colError).
			Bold(true)

	styleExplain = lipgloss.NewStyle().
			Foreground(colText)

	styleFooter = lipgloss.NewStyle().
			Foreground(colTextDim)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colBorder).
			Padding(1, 2)
)
