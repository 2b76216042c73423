package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-trimmer/tui/styles"
)

// HelpGroup is a titled set of key bindings shown in the help overlay.
type HelpGroup struct {
	Title    string
	Bindings []key.Binding
}

// HelpOverlay renders the help overlay showing all keybindings.
// The overlay is styled with the palette colors and grouped by function.
func HelpOverlay(groups []HelpGroup, width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Padding(0, 1)

	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	var lines []string
	lines = append(lines, titleStyle.Render("Keybindings"))
	lines = append(lines, "")

	for _, group := range groups {
		lines = append(lines, groupHeaderStyle.Render(group.Title))
		for _, binding := range group.Bindings {
			if !binding.Enabled() {
				continue
			}
			line := "  " + keyStyle.Render(binding.Help().Key) + descStyle.Render(binding.Help().Desc)
			lines = append(lines, line)
		}
	}

	lines = append(lines, "")
	lines = append(lines, styles.Hint.Render("Press any key to close"))

	content := strings.Join(lines, "\n")

	contentWidth := lipgloss.Width(content)
	contentHeight := lipgloss.Height(content)

	paddedWidth := contentWidth + 4
	paddedHeight := contentHeight + 2

	marginLeft := (width - paddedWidth) / 2
	if marginLeft < 0 {
		marginLeft = 0
	}
	marginTop := (height - paddedHeight) / 2
	if marginTop < 0 {
		marginTop = 0
	}

	panelStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2)

	positionedStyle := lipgloss.NewStyle().
		MarginLeft(marginLeft).
		MarginTop(marginTop)

	return positionedStyle.Render(panelStyle.Render(content))
}
