package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-trimmer/clip"
)

func TestSliderColumn(t *testing.T) {
	tests := []struct {
		p     clip.Position
		width int
		want  int
	}{
		{0, 101, 0},
		{500, 101, 50},
		{1000, 101, 100},
		{1200, 101, 100},
		{-5, 101, 0},
		{500, 1, 0},
	}
	for _, tt := range tests {
		if got := SliderColumn(tt.p, tt.width); got != tt.want {
			t.Errorf("SliderColumn(%d, %d) = %d, want %d", tt.p, tt.width, got, tt.want)
		}
	}
}

func TestFormatStep(t *testing.T) {
	tests := []struct {
		step clip.Position
		want string
	}{
		{1, "0.1%"},
		{5, "0.5%"},
		{10, "1%"},
		{100, "10%"},
	}
	for _, tt := range tests {
		if got := FormatStep(tt.step); got != tt.want {
			t.Errorf("FormatStep(%d) = %q, want %q", tt.step, got, tt.want)
		}
	}
}

func TestPositionClock(t *testing.T) {
	if got := PositionClock(500, 0); got != "00:00:00" {
		t.Errorf("unknown duration = %q, want the null clock", got)
	}
	if got := PositionClock(500, 7_200_000); got != "01:00:00" {
		t.Errorf("PositionClock(500, 2h) = %q, want 01:00:00", got)
	}
	if got := PositionClock(1000, 100_000); got != "00:01:40" {
		t.Errorf("PositionClock(1000, 100s) = %q, want 00:01:40", got)
	}
}

func TestRangeSlider_Shape(t *testing.T) {
	out := RangeSlider(RangeSliderState{
		Range:          clip.Range{Start: 100, End: 500},
		Playback:       300,
		Active:         clip.EndpointEnd,
		DurationMillis: 100_000,
	}, 80)

	lines := strings.Split(out, "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 80 {
			t.Errorf("line %d width = %d, want 80", i, w)
		}
	}
	if !strings.Contains(out, "In 00:00:10") || !strings.Contains(out, "Out 00:00:50") || !strings.Contains(out, "Length 00:00:40") {
		t.Errorf("labels missing:\n%s", out)
	}
	if RangeSlider(RangeSliderState{}, 10) != "" {
		t.Error("too narrow slider should render nothing")
	}
}

func TestRenderPanel_Failure(t *testing.T) {
	out := RenderPanel(RenderPanelState{
		Phase: RenderFailed,
		Err:   &clip.ProbeError{Path: "match.mp4", Err: errors.New("moov atom not found")},
	}, 60)
	for _, want := range []string{"Render failed", "probe error", "any key"} {
		if !strings.Contains(out, want) {
			t.Errorf("failure panel missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPanel_Running(t *testing.T) {
	out := RenderPanel(RenderPanelState{
		Phase:   RenderRunning,
		Source:  "/videos/match.mp4",
		Output:  "/videos/match_clip.mp4",
		Window:  clip.TrimWindow{Start: 10, End: 50},
		Elapsed: 3_000,
	}, 60)
	for _, want := range []string{"Now rendering match.mp4", "Time elapsed: 00:00:03", "00:00:10 - 00:00:50"} {
		if !strings.Contains(out, want) {
			t.Errorf("running panel missing %q:\n%s", want, out)
		}
	}
}

func TestNewControlGroup_SkipsDisabled(t *testing.T) {
	on := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Save"))
	off := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "Hidden"), key.WithDisabled())

	group := NewControlGroup("Export", []key.Binding{on, off}, []key.Binding{off})
	if len(group.SubGroups) != 1 || len(group.SubGroups[0]) != 1 {
		t.Fatalf("SubGroups = %+v, want one control", group.SubGroups)
	}
	if c := group.SubGroups[0][0]; c.Name != "Save" || c.Shortcut != "s" {
		t.Errorf("control = %+v", c)
	}

	box := RenderControlBox(group, 30)
	if !strings.Contains(box, "Save") || !strings.Contains(box, "[ s ]") {
		t.Errorf("control box missing binding:\n%s", box)
	}
}

func TestStatusBar_Offline(t *testing.T) {
	out := StatusBar(StatusBarState{Step: 10, FileName: "match.mp4"}, 80)
	if !strings.Contains(out, "player offline") || !strings.Contains(out, "match.mp4") {
		t.Errorf("status bar = %q", out)
	}
}
