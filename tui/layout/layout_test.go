package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestComputeColumnWidths(t *testing.T) {
	tests := []struct {
		width    int
		wantSide int
		wantMain int
	}{
		{61, 30, 30},
		{100, 33, 66},
		{200, 40, 159},
	}
	for _, tt := range tests {
		side, main := ComputeColumnWidths(tt.width)
		if side != tt.wantSide || main != tt.wantMain {
			t.Errorf("ComputeColumnWidths(%d) = %d, %d; want %d, %d", tt.width, side, main, tt.wantSide, tt.wantMain)
		}
		if side+main+1 != tt.width {
			t.Errorf("ComputeColumnWidths(%d) leaves %d cells unused", tt.width, tt.width-side-main-1)
		}
	}
}

func TestFitLine(t *testing.T) {
	if got := fitLine("abc", 5); got != "abc  " {
		t.Errorf("fitLine pad = %q", got)
	}
	if got := fitLine("abcdef", 3); lipgloss.Width(got) != 3 {
		t.Errorf("fitLine truncate width = %d", lipgloss.Width(got))
	}
	if got := fitLine("abc", 0); got != "" {
		t.Errorf("fitLine zero = %q", got)
	}
}

func TestJoinColumns(t *testing.T) {
	out := JoinColumns([]string{"a\nb", "c"}, []int{3, 2}, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d rows, want 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("row %d width = %d, want 6", i, w)
		}
	}
}

func box(rows int) string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = "#"
	}
	return strings.Join(lines, "\n")
}

func TestColumnStack_AllFit(t *testing.T) {
	out := Column{Width: 10, Height: 8}.Stack(box(3), box(2))
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 10 {
			t.Errorf("line %d width = %d, want 10", i, w)
		}
	}
	if strings.Contains(out, "more") {
		t.Errorf("no indicator expected when every box fits:\n%s", out)
	}
}

func TestColumnStack_DropsWholeBoxes(t *testing.T) {
	out := Column{Width: 12, Height: 6}.Stack(box(3), box(3), box(2))
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	if !strings.Contains(lines[5], "↓ 2 more") {
		t.Errorf("last line = %q, want the count of hidden boxes", lines[5])
	}
	if strings.TrimSpace(lines[3]) != "" || strings.TrimSpace(lines[4]) != "" {
		t.Errorf("the second box must not be split:\n%s", out)
	}
}

func TestColumnStack_ClipsTallFirstBox(t *testing.T) {
	out := Column{Width: 8, Height: 3}.Stack(box(5))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if strings.TrimSpace(lines[0]) != "#" || !strings.Contains(lines[2], "more") {
		t.Errorf("tall box not clipped:\n%s", out)
	}
}
