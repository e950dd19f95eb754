package tui

import (
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/palette"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for one mode.
type Styles struct {
	Root       lipgloss.Style
	Frame      lipgloss.Style
	Timer      lipgloss.Style
	ActiveTab  lipgloss.Style
	Tab        lipgloss.Style
	State      lipgloss.Style
	Notice     lipgloss.Style
	ErrNotice  lipgloss.Style
	InputLabel lipgloss.Style
}

// StylesFor returns the styles themed for mode.
func StylesFor(mode model.Mode) Styles {
	theme := palette.For(mode)
	root := lipgloss.Color(theme.Root)
	frame := lipgloss.Color(theme.Frame)
	foreground := lipgloss.Color(palette.Foreground)

	return Styles{
		Root: lipgloss.NewStyle().
			Background(root).
			Foreground(foreground).
			Padding(1, 4),
		Frame: lipgloss.NewStyle().
			Background(frame).
			Foreground(foreground).
			Padding(1, 6).
			Align(lipgloss.Center),
		Timer: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			Background(frame).
			Padding(1, 0),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(root).
			Background(foreground).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(foreground).
			Background(frame).
			Padding(0, 1),
		State: lipgloss.NewStyle().
			Foreground(foreground).
			Background(frame).
			Italic(true),
		Notice: lipgloss.NewStyle().
			Foreground(foreground).
			Background(root),
		ErrNotice: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffd166")).
			Background(root),
		InputLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			Background(root),
	}
}
