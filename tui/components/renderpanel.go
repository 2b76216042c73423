package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/pkg/timeutil"
	"github.com/user/clip-trimmer/tui/styles"
)

// RenderPhase is where the render panel is in a job's life.
type RenderPhase int

const (
	// RenderRunning shows the spinner, progress bar and elapsed time.
	RenderRunning RenderPhase = iota
	// RenderFailed shows the failure kind and message in red.
	RenderFailed
)

// RenderPanelState holds the state for the render panel. The Spinner and
// Bar fields are pre-rendered bubbles views.
type RenderPanelState struct {
	Phase   RenderPhase
	Source  string
	Output  string
	Window  clip.TrimWindow
	Spinner string
	Bar     string
	Elapsed int64
	Err     error
}

// RenderPanel renders a bordered info box for the in-flight or failed
// render job.
func RenderPanel(state RenderPanelState, width int) string {
	if width < 10 {
		return ""
	}

	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}
	fit := func(s string) string {
		if lipgloss.Width(s) > innerW {
			return ansi.Truncate(s, innerW-3, "...")
		}
		return s
	}

	var lines []string
	title := "Rendering"

	switch state.Phase {
	case RenderFailed:
		title = "Render failed"
		kind := clip.ErrorKindOf(state.Err)
		lines = append(lines, " "+styles.Warning.Render(fmt.Sprintf("%s error", kind)))
		if state.Err != nil {
			wrapped := styles.Warning.UnsetBold().Width(innerW).Render(state.Err.Error())
			for _, l := range strings.Split(wrapped, "\n") {
				lines = append(lines, " "+l)
			}
		}
		lines = append(lines, "", " "+styles.Hint.Render("Press any key to return to editing"))
	default:
		lines = append(lines, " "+state.Spinner+" "+textStyle.Render("Now rendering "+fit(filepath.Base(state.Source))))
		lines = append(lines, " "+state.Bar)
		lines = append(lines, " "+textStyle.Render("Time elapsed: "+timeutil.FormatClock(state.Elapsed)))
		lines = append(lines, " "+dimStyle.Render(fmt.Sprintf("Window: %s - %s",
			timeutil.FormatClock(int64(state.Window.Start*1000)),
			timeutil.FormatClock(int64(state.Window.End*1000)))))
		lines = append(lines, "", " "+styles.Hint.Render("Esc to cancel"))
	}

	if state.Output != "" {
		lines = append(lines, " "+dimStyle.Render(fit("→ "+state.Output)))
	}

	return RenderInfoBox(title, lines, width)
}
