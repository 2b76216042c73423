package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/tui/styles"
)

// RenderMiniPlayer renders a compact card for terminals too narrow for the
// full layout: play state, the clock and the clip range.
// When fixedWidth > 0, the card uses that exact width instead of auto-sizing.
func RenderMiniPlayer(state StatusBarState, rng clip.Range, fixedWidth int) string {
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	playIcon := "⏸"
	if state.Playing {
		playIcon = "▶"
	}

	contentLines := []string{
		textStyle.Render(fmt.Sprintf(" %s  Step: %s", playIcon, FormatStep(state.Step))),
		textStyle.Render(fmt.Sprintf(" %s / %s", Clock(state.TimeMillis, state.DurationMillis), durationClock(state.DurationMillis))),
		textStyle.Render(fmt.Sprintf(" Clip %s - %s",
			PositionClock(rng.Start, state.DurationMillis),
			PositionClock(rng.End, state.DurationMillis))),
	}

	if !state.Connected {
		warnStyle := lipgloss.NewStyle().Foreground(styles.Red)
		contentLines = append(contentLines, warnStyle.Render(" ! Not connected"))
	}

	cardWidth := fixedWidth
	if cardWidth <= 0 {
		maxW := 0
		for _, line := range contentLines {
			if w := lipgloss.Width(line); w > maxW {
				maxW = w
			}
		}
		cardWidth = maxW + 4 // 2 for borders + 2 for padding
	}

	return RenderInfoBox("Playback", contentLines, cardWidth)
}
