package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// previewMaxRunes bounds the dragged item's text in the overlay so the overlay keeps a
// fixed size while the pointer moves.
const previewMaxRunes = 50

// truncateRunes cuts s to n runes, marking the cut with an ellipsis.
func truncateRunes(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// renderOverlay draws the floating preview of the dragged item. The first line is the
// heading; each line is cut to previewMaxRunes and to the list width.
func renderOverlay(lines []string, width int) string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		line = truncateRunes(line, previewMaxRunes)
		if i > 0 && line == "" {
			continue
		}
		if inner := width - 4; inner > 0 && xansi.StringWidth(line) > inner {
			line = xansi.Truncate(line, inner, "…")
		}
		if i == 0 {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		} else {
			line = styleMuted().Render(line)
		}
		out = append(out, line)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorOverlayEdge).
		Padding(0, 1)
	return box.Render(strings.Join(out, "\n"))
}

// fitLine pads or cuts a rendered line to exactly width cells.
func fitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(line)
	switch {
	case w < width:
		return line + strings.Repeat(" ", width-w)
	case w > width:
		return xansi.Truncate(line, width, "…")
	}
	return line
}
