package ui

import "github.com/charmbracelet/lipgloss"

// Brand colors shared across the CLI surfaces
const (
	accentColor = lipgloss.Color("86")
	dangerColor = lipgloss.Color("196")
	okColor     = lipgloss.Color("42")
)

// Styles defines the shared lipgloss styles used by command output
var Styles = struct {
	Bold       lipgloss.Style
	SuccessBox lipgloss.Style
	ErrorBox   lipgloss.Style
	Accent     lipgloss.Style
}{
	Bold: lipgloss.NewStyle().Bold(true),

	Accent: lipgloss.NewStyle().Foreground(accentColor),

	SuccessBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(okColor).
		Padding(0, 1).
		Width(64),

	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dangerColor).
		Padding(0, 1).
		Width(64),
}
