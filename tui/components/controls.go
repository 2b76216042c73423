// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clip-trimmer/tui/styles"
)

// Control represents a single control with its display info.
type Control struct {
	Name     string
	Shortcut string
}

// ControlGroup represents a group of related controls with sub-group support.
// SubGroups allows the renderer to place horizontal dividers between sub-groups.
type ControlGroup struct {
	Name      string
	SubGroups [][]Control
}

// NewControlGroup builds a ControlGroup from key bindings. Each slice of
// bindings becomes one sub-group; disabled bindings are skipped.
func NewControlGroup(name string, subGroups ...[]key.Binding) ControlGroup {
	group := ControlGroup{Name: name}
	for _, bindings := range subGroups {
		var controls []Control
		for _, b := range bindings {
			if !b.Enabled() {
				continue
			}
			controls = append(controls, Control{Name: b.Help().Desc, Shortcut: b.Help().Key})
		}
		if len(controls) > 0 {
			group.SubGroups = append(group.SubGroups, controls)
		}
	}
	return group
}

// RenderInfoBox renders a generic bordered box with a tab-style header and content lines.
// Content lines are rendered as-is (caller handles styling).
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}

	innerWidth := width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}

	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderColor := styles.Purple

	// Tab header: ╭─ Title ─────╮
	headerText := headerStyle.Render(" " + title + " ")
	headerTextWidth := lipgloss.Width(headerText)

	topBorderStyle := lipgloss.NewStyle().Foreground(borderColor)
	topLeft := topBorderStyle.Render("╭─")
	topRight := topBorderStyle.Render("╮")
	topLeftWidth := 2
	topRightWidth := 1
	fillWidth := innerWidth - topLeftWidth - headerTextWidth - topRightWidth + 2
	if fillWidth < 0 {
		fillWidth = 0
	}
	topFill := strings.Repeat("─", fillWidth)
	topLine := topLeft + headerText + topBorderStyle.Render(topFill) + topRight

	sideStyle := lipgloss.NewStyle().Foreground(borderColor)
	var renderedLines []string
	renderedLines = append(renderedLines, topLine)

	for _, line := range contentLines {
		lineWidth := lipgloss.Width(line)
		pad := innerWidth - lineWidth
		if pad < 0 {
			pad = 0
		}
		renderedLines = append(renderedLines, sideStyle.Render("│")+line+strings.Repeat(" ", pad)+sideStyle.Render("│"))
	}

	// Bottom border: ╰──────────────╯
	bottomLine := topBorderStyle.Render("╰" + strings.Repeat("─", innerWidth) + "╯")
	renderedLines = append(renderedLines, bottomLine)

	return strings.Join(renderedLines, "\n")
}

// RenderControlBox renders a control group inside a bordered box with tab header
// and horizontal dividers between sub-groups.
//
// Layout:
//
//	 ┌──────────┐
//	┌┤ Playback ├┐
//	│└──────────┘└────────────┐
//	│ Play    [ Space ]       │
//	├─────────────────────────┤
//	│ Step -  [ , / < ]       │
//	└─────────────────────────┘
func RenderControlBox(group ControlGroup, width int) string {
	if width < 6 {
		return ""
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	shortcutStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)

	// Box-drawing characters
	const (
		hBar = "─"
		vBar = "│"
		tl   = "┌"
		tr   = "┐"
		bl   = "└"
		br   = "┘"
		teeL = "├"
		teeR = "┤"
	)

	// Inner width is total width minus 2 border chars
	innerW := width - 2

	// Build tab header (3 lines)
	// Line 1:  ┌──<name>──┐
	// Line 2: ┌┤ <name> ├┐
	// Line 3: │└──<name>──┘└───...───┐
	tabLabel := " " + group.Name + " "
	tabInnerW := lipgloss.Width(tabLabel)
	line1 := " " + borderStyle.Render(tl+strings.Repeat(hBar, tabInnerW)+tr)

	// Line 2: ┌┤ Name ├┐
	line2 := borderStyle.Render(tl+teeR) + headerStyle.Render(tabLabel) + borderStyle.Render(teeL+tr)

	// Line 3: │└──────────┘└────────────┐
	// Left border │, then tab bottom └─...─┘, then extension └─...─┐
	tabBottomW := tabInnerW            // width of ─ inside └...┘
	remainW := innerW - tabBottomW - 3 // -3 for └, ┘, └ between tab bottom and right extension
	if remainW < 0 {
		remainW = 0
	}
	line3 := borderStyle.Render(vBar + bl + strings.Repeat(hBar, tabBottomW) + br + bl + strings.Repeat(hBar, remainW) + tr)

	var lines []string
	lines = append(lines, line1, line2, line3)

	// Find max control name width for alignment
	maxNameW := 0
	for _, sg := range group.SubGroups {
		for _, c := range sg {
			if len(c.Name) > maxNameW {
				maxNameW = len(c.Name)
			}
		}
	}

	// Render control rows
	for si, subGroup := range group.SubGroups {
		for _, c := range subGroup {
			// Format: │ Name    [ Shortcut ] │
			// Left-align name, right-align shortcut bracket
			namePart := nameStyle.Render(fmt.Sprintf("%-*s", maxNameW, c.Name))
			shortcutPart := shortcutStyle.Render("[ " + c.Shortcut + " ]")

			// Calculate padding between name and shortcut
			contentStr := namePart + "  " + shortcutPart
			contentVisW := lipgloss.Width(contentStr)
			padRight := innerW - 2 - contentVisW // -2 for leading and trailing space
			if padRight < 0 {
				padRight = 0
			}

			row := borderStyle.Render(vBar) + " " + contentStr + strings.Repeat(" ", padRight) + " " + borderStyle.Render(vBar)
			// Truncate to width if needed
			if lipgloss.Width(row) > width {
				row = ansi.Truncate(row, width, "")
			}
			lines = append(lines, row)
		}

		// Horizontal divider between sub-groups (not after the last)
		if si < len(group.SubGroups)-1 {
			divider := borderStyle.Render(teeL + strings.Repeat(hBar, innerW) + teeR)
			lines = append(lines, divider)
		}
	}

	// Bottom border
	bottom := borderStyle.Render(bl + strings.Repeat(hBar, innerW) + br)
	lines = append(lines, bottom)

	return strings.Join(lines, "\n")
}
