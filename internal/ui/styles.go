package ui

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	TruthIcon = "💬"
	DareIcon  = "🔥"
	CrownIcon = "👑"
	DiceIcon  = "🎲"
)

// Lipgloss Styles
var (
	DocStyle     = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	TaskBoxStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2)
	PromptStyle  = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	HintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	CodeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	TurnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)
