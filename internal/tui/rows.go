package tui

import (
	"listboard/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	grabHandle = "⠿ "
	dropMarker = "▸ "
)

func rowStyle(st rowState) lipgloss.Style {
	switch {
	case st.overlay:
		return styleMuted().Italic(true)
	case st.selected:
		return styleSelected()
	case st.dropTarget:
		return lipgloss.NewStyle().Foreground(colorDropLine).Bold(true)
	}
	return lipgloss.NewStyle()
}

func rowPrefix(st rowState) string {
	if st.dropTarget {
		return dropMarker
	}
	return grabHandle
}

func renderNoteRow(n model.Note, st rowState) string {
	line := rowPrefix(st) + n.Title
	return rowStyle(st).Render(fitLine(line, st.width))
}

func importanceBadge(imp model.Importance) string {
	if imp == "" {
		imp = model.ImportanceMinor
	}
	c := colorMinor
	switch imp {
	case model.ImportanceMajor:
		c = colorMajor
	case model.ImportanceModerate:
		c = colorModerate
	}
	return lipgloss.NewStyle().Foreground(c).Width(9).Render(imp.Label())
}

func renderTodoRow(t model.Todo, st rowState) string {
	box := "[ ] "
	if t.IsComplete {
		box = "[x] "
	}
	prefix := rowPrefix(st) + box
	badge := importanceBadge(t.Importance)
	descW := st.width - lipgloss.Width(prefix) - lipgloss.Width(badge) - 1
	desc := t.Description
	if descW > 0 {
		desc = fitLine(desc, descW)
	}
	style := rowStyle(st)
	if t.IsComplete && !st.selected && !st.overlay {
		style = style.Strikethrough(true)
	}
	return fitLine(style.Render(prefix+desc)+" "+badge, st.width)
}

func notePreviewText(n model.Note) []string { return []string{n.Title, n.Content} }
func todoPreviewText(t model.Todo) []string { return []string{t.Description} }
