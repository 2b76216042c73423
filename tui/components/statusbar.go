// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/pkg/timeutil"
	"github.com/user/clip-trimmer/tui/styles"
)

// StatusBarState holds the current playback state for the status bar.
type StatusBarState struct {
	// Playing is true while the player is running
	Playing bool
	// Connected is false when the player stopped answering
	Connected bool
	// TimeMillis is the current playback time
	TimeMillis int64
	// DurationMillis is zero until the player has parsed the media
	DurationMillis int64
	// Step is how far one key press moves the playhead or a handle
	Step clip.Position
	// FileName is the base name of the source video
	FileName string
}

// StatusBar renders the status bar component.
// It shows the play/pause icon, the current and total clock, the source file
// name and the step size.
func StatusBar(state StatusBarState, width int) string {
	playIcon := "⏸"
	if state.Playing {
		playIcon = "▶"
	}

	leftContent := fmt.Sprintf(" %s %s / %s", playIcon, Clock(state.TimeMillis, state.DurationMillis), durationClock(state.DurationMillis))
	if state.FileName != "" {
		leftContent += "  " + state.FileName
	}

	rightContent := fmt.Sprintf("Step: %s ", FormatStep(state.Step))
	if !state.Connected {
		rightContent = "player offline  " + rightContent
	}

	padding := width - lipgloss.Width(leftContent) - lipgloss.Width(rightContent)
	if padding < 0 {
		padding = 0
	}
	content := leftContent + strings.Repeat(" ", padding) + rightContent

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width)

	return statusBarStyle.Render(content)
}

// FormatStep formats a step on the 0-1000 scale as a percentage of the media.
func FormatStep(step clip.Position) string {
	if step%10 == 0 {
		return fmt.Sprintf("%d%%", step/10)
	}
	return fmt.Sprintf("%.1f%%", float64(step)/10)
}

// Clock renders a time label. Until the duration is known every label reads
// as the null clock.
func Clock(millis, durationMillis int64) string {
	if durationMillis <= 0 {
		return timeutil.NullClock
	}
	return timeutil.FormatClock(millis)
}

func durationClock(durationMillis int64) string {
	return Clock(durationMillis, durationMillis)
}

// PositionClock converts p into a clock label for media of the given length.
func PositionClock(p clip.Position, durationMillis int64) string {
	return Clock(PositionMillis(p, durationMillis), durationMillis)
}

// PositionMillis converts p into milliseconds into the media.
func PositionMillis(p clip.Position, durationMillis int64) int64 {
	return int64(clip.ToAbsolute(p, float64(durationMillis)))
}
