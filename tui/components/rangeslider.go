package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/tui/styles"
)

// RangeSliderState is what the clip slider draws.
type RangeSliderState struct {
	Range          clip.Range
	Playback       clip.Position
	Active         clip.Endpoint
	DurationMillis int64
}

// SliderColumn maps p onto a bar of barWidth cells.
func SliderColumn(p clip.Position, barWidth int) int {
	if barWidth <= 1 {
		return 0
	}
	col := int(math.Round(float64(barWidth-1) * p.Clamp().Fraction()))
	if col > barWidth-1 {
		col = barWidth - 1
	}
	return col
}

// RangeSlider renders the playback bar with the two clip handles in a
// bordered container. The selected range is drawn in cyan, the playhead in
// pink, and the active handle is highlighted.
// Total output height is 7 lines: top border, padding, bar, handle row,
// labels, padding and bottom border.
func RangeSlider(state RangeSliderState, width int) string {
	if width < 20 {
		return ""
	}

	// Inner width = width - 4 (2 border chars + 2 padding spaces)
	innerWidth := width - 4
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	timeDisplay := fmt.Sprintf(" %s / %s",
		PositionClock(state.Playback, state.DurationMillis),
		durationClock(state.DurationMillis))

	barWidth := innerWidth - lipgloss.Width(timeDisplay) - 1
	if barWidth < 10 {
		barWidth = 10
	}

	startCol := SliderColumn(state.Range.Start, barWidth)
	endCol := SliderColumn(state.Range.End, barWidth)
	headCol := SliderColumn(state.Playback, barWidth)

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		inside := i >= startCol && i <= endCol
		switch {
		case i == headCol:
			bar.WriteString(styles.Playhead.Render("●"))
		case inside:
			bar.WriteString(styles.Selection.Render("━"))
		default:
			bar.WriteString(styles.Unselected.Render("─"))
		}
	}
	barLine := " " + bar.String() + timeStyle.Render(timeDisplay)

	// Handle row: [ under the start, ] under the end, ▲ under the playhead
	handles := make([]string, barWidth)
	for i := range handles {
		handles[i] = " "
	}
	handles[headCol] = styles.Playhead.Render("▲")
	handles[startCol] = handleGlyph("[", state.Active == clip.EndpointStart)
	if endCol == startCol && endCol < barWidth-1 {
		endCol++
	}
	handles[endCol] = handleGlyph("]", state.Active == clip.EndpointEnd)
	handleLine := " " + strings.Join(handles, "")

	window := state.Range.Window(float64(state.DurationMillis))
	labels := fmt.Sprintf(" In %s  Out %s  Length %s",
		PositionClock(state.Range.Start, state.DurationMillis),
		PositionClock(state.Range.End, state.DurationMillis),
		Clock(int64(math.Max(window.Length(), 0)), state.DurationMillis))
	labelLine := labelStyle.Render(labels)

	// Build bordered box with tab-style "Clip" header
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	boxInner := width - 2

	headerText := headerStyle.Render(" Clip ")
	fillWidth := boxInner - 1 - lipgloss.Width(headerText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	topLine := borderStyle.Render("╭─") + headerText + borderStyle.Render(strings.Repeat("─", fillWidth)+"╮")

	wrapLine := func(content string) string {
		pad := boxInner - lipgloss.Width(content)
		if pad < 0 {
			pad = 0
		}
		return borderStyle.Render("│") + content + strings.Repeat(" ", pad) + borderStyle.Render("│")
	}
	emptyLine := wrapLine("")
	bottomLine := borderStyle.Render("╰" + strings.Repeat("─", boxInner) + "╯")

	return strings.Join([]string{
		topLine,
		emptyLine,
		wrapLine(barLine),
		wrapLine(handleLine),
		wrapLine(labelLine),
		emptyLine,
		bottomLine,
	}, "\n")
}

func handleGlyph(glyph string, active bool) string {
	if active {
		return styles.Highlight.Render(glyph)
	}
	return styles.Selection.Bold(true).Render(glyph)
}
