package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-trimmer/tui/styles"
)

// Theme returns a huh theme that matches the TUI color palette. Only the
// pieces a confirm dialog shows are restyled.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true)

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Lavender)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.Red).
		Foreground(styles.LightLavender).
		Bold(true).
		Padding(0, 1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Purple).
		Foreground(styles.Lavender).
		Padding(0, 1)

	t.Focused.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = lipgloss.NewStyle().Foreground(styles.Lavender)

	return t
}
