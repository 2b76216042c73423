package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clip-trimmer/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth = 60 // below this width only the mini player is shown
	SideMinWidth     = 30 // minimum width of the controls column
	SideMaxWidth     = 40 // the controls column stops growing here
)

// ComputeColumnWidths splits the terminal into the controls column and the
// clip details column, leaving one cell for the border between them.
// The controls column takes a third of the width, bounded by SideMinWidth
// and SideMaxWidth.
func ComputeColumnWidths(termWidth int) (side, main int) {
	usableWidth := termWidth - 1
	if usableWidth < 2 {
		return 0, 0
	}

	side = usableWidth / 3
	if side < SideMinWidth {
		side = SideMinWidth
	}
	if side > SideMaxWidth {
		side = SideMaxWidth
	}
	if side > usableWidth/2 {
		side = usableWidth / 2
	}
	main = usableWidth - side
	return side, main
}

// JoinColumns joins the controls column and the clip details column side by
// side with a purple border between them. Each column is cut or padded to
// height rows and to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	borderStr := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("│")

	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = fitHeight(strings.Split(col, "\n"), height)
	}

	var rows []string
	for row := 0; row < height; row++ {
		var parts []string
		for i, lines := range colLines {
			parts = append(parts, fitLine(lines[row], widths[i]))
		}
		rows = append(rows, strings.Join(parts, borderStr))
	}

	return strings.Join(rows, "\n")
}

// Column is one cell of the two-column layout. It stacks bordered boxes top
// to bottom and never splits a box: boxes that do not fit are left out and
// counted on the last row.
type Column struct {
	Width  int
	Height int
}

// Stack renders boxes into exactly Width x Height. If only part of the
// boxes fit, the last row reads "↓ N more". A first box taller than the
// column is clipped.
func (c Column) Stack(boxes ...string) string {
	if c.Width <= 0 || c.Height <= 0 {
		return ""
	}

	split := make([][]string, len(boxes))
	total := 0
	for i, box := range boxes {
		split[i] = strings.Split(box, "\n")
		total += len(split[i])
	}

	var lines []string
	if total <= c.Height {
		for _, box := range split {
			lines = append(lines, box...)
		}
		return c.fit(lines)
	}

	// One row goes to the indicator.
	room := c.Height - 1
	shown := 0
	for shown < len(split) && len(lines)+len(split[shown]) <= room {
		lines = append(lines, split[shown]...)
		shown++
	}
	if shown == 0 && len(split) > 0 {
		lines = append(lines, split[0][:room]...)
		shown = 1
	}

	indicator := "↓ more"
	if hidden := len(split) - shown; hidden > 0 {
		indicator = fmt.Sprintf("↓ %d more", hidden)
	}
	lines = fitHeight(lines, room)
	lines = append(lines, lipgloss.NewStyle().Foreground(styles.Purple).Render(indicator))
	return c.fit(lines)
}

func (c Column) fit(lines []string) string {
	lines = fitHeight(lines, c.Height)
	for i, line := range lines {
		lines[i] = fitLine(line, c.Width)
	}
	return strings.Join(lines, "\n")
}

// fitLine cuts or pads s to exactly width cells, ANSI and wide-rune aware.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		s = ansi.Truncate(s, width, "")
		w = lipgloss.Width(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// fitHeight cuts or pads lines to exactly height entries.
func fitHeight(lines []string, height int) []string {
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
