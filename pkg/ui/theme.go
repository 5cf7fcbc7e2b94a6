package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive color tokens for light and dark terminals.
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#E8E0FF", Dark: "#44475A"}
)

// Theme bundles the styles used across the views. Built once at startup.
type Theme struct {
	Title      lipgloss.Style
	ContextBar lipgloss.Style
	CursorRow  lipgloss.Style
	SelectedRw lipgloss.Style
	Unavail    lipgloss.Style
	MatchChar  lipgloss.Style
	StatusOK   lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
	OpName     lipgloss.Style
	OpDesc     lipgloss.Style
	Output     lipgloss.Style
	Stderr     lipgloss.Style
}

// DefaultTheme returns the standard adaptive theme.
func DefaultTheme() Theme {
	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		ContextBar: lipgloss.NewStyle().Foreground(ColorInfo),
		CursorRow:  lipgloss.NewStyle().Background(ColorBgHighlight).Bold(true),
		SelectedRw: lipgloss.NewStyle().Foreground(ColorSuccess),
		Unavail:    lipgloss.NewStyle().Foreground(ColorMuted),
		MatchChar:  lipgloss.NewStyle().Bold(true).Foreground(ColorWarning),
		StatusOK:   lipgloss.NewStyle().Foreground(ColorSubtext),
		StatusErr:  lipgloss.NewStyle().Foreground(ColorDanger),
		Help:       lipgloss.NewStyle().Foreground(ColorMuted),
		OpName:     lipgloss.NewStyle().Bold(true).Foreground(ColorText),
		OpDesc:     lipgloss.NewStyle().Foreground(ColorSubtext),
		Output:     lipgloss.NewStyle().Foreground(ColorText),
		Stderr:     lipgloss.NewStyle().Foreground(ColorDanger),
	}
}
