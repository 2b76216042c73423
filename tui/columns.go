package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/tui/components"
	"github.com/user/clip-trimmer/tui/layout"
	"github.com/user/clip-trimmer/tui/styles"
)

// renderSideColumn renders the control boxes.
func (m *Model) renderSideColumn(width, height int) string {
	var boxes []string
	for _, group := range m.keys.controlGroups() {
		boxes = append(boxes, components.RenderControlBox(group, width))
	}
	return layout.Column{Width: width, Height: height}.Stack(boxes...)
}

// renderMainColumn renders the selected range details and the output path.
func (m *Model) renderMainColumn(width, height int) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.Lavender)
	valueStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)
	duration := m.statusBar.DurationMillis

	row := func(label, value string) string {
		return " " + labelStyle.Render(fmt.Sprintf("%-8s", label)) + valueStyle.Render(value)
	}

	handle := func(e clip.Endpoint, p clip.Position) string {
		marker := "  "
		if m.active == e {
			marker = styles.Highlight.Render("◀ ")
		}
		return fmt.Sprintf("%s  %s %s", components.PositionClock(p, duration), styles.SecondaryText.Render(fmt.Sprintf("(%d)", p)), marker)
	}

	length := m.rng.Window(float64(duration)).Length()
	if length < 0 {
		length = 0
	}

	selection := []string{
		row("Start", handle(clip.EndpointStart, m.rng.Start)),
		row("End", handle(clip.EndpointEnd, m.rng.End)),
		row("Length", components.Clock(int64(length), duration)),
	}
	if err := m.rng.Validate(); err != nil {
		selection = append(selection, " "+styles.Warning.Render("Start must be before end"))
	}

	innerW := width - 4
	output := clip.OutputPath(m.sourcePath, m.outputDir)
	if lipgloss.Width(output) > innerW && innerW > 3 {
		output = "..." + ansi.TruncateLeft(output, lipgloss.Width(output)-innerW+3, "")
	}
	outputLines := []string{
		" " + labelStyle.Render("Saves to"),
		" " + valueStyle.Render(output),
	}

	return layout.Column{Width: width, Height: height}.Stack(
		components.RenderInfoBox("Selection", selection, width),
		components.RenderInfoBox("Output", outputLines, width),
	)
}
