package tui

import (
	"fmt"
	"strings"

	"listboard/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNoteForm
	modalTodoForm
	modalConfirmDelete
)

// formResult is what a submitted form produced.
type formResult struct {
	note model.Note
	todo model.Todo
}

// modal is the create/edit form or delete confirmation drawn over the list.
type modal struct {
	kind  modalKind
	title string

	// id is 0 when creating.
	id    int64
	focus int

	input      textinput.Model
	body       textarea.Model
	importance model.Importance
	base       formResult

	err string
}

func newTextInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 500
	in.SetValue(value)
	in.Focus()
	return in
}

func newNoteForm(n model.Note, width int) *modal {
	title := "New note"
	if n.ID != 0 {
		title = "Edit note"
	}
	ta := textarea.New()
	ta.Placeholder = "Content (markdown)"
	ta.ShowLineNumbers = false
	ta.SetWidth(modalWidth(width) - 4)
	ta.SetHeight(6)
	ta.SetValue(n.Content)
	ta.Blur()
	return &modal{
		kind:  modalNoteForm,
		title: title,
		id:    n.ID,
		input: newTextInput("Title", n.Title),
		body:  ta,
		base:  formResult{note: n},
	}
}

func newTodoForm(t model.Todo) *modal {
	title := "New todo"
	if t.ID != 0 {
		title = "Edit todo"
	}
	imp := t.Importance
	if imp == "" {
		imp = model.ImportanceMinor
	}
	return &modal{
		kind:       modalTodoForm,
		title:      title,
		id:         t.ID,
		input:      newTextInput("Description", t.Description),
		importance: imp,
		base:       formResult{todo: t},
	}
}

func newConfirmDelete(noun string, id int64, label string) *modal {
	return &modal{
		kind:  modalConfirmDelete,
		title: fmt.Sprintf("Delete %s %q?", noun, truncateRunes(label, previewMaxRunes)),
		id:    id,
	}
}

func (m *modal) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.input.Focus()
		m.body.Blur()
		return
	}
	m.input.Blur()
	if m.kind == modalNoteForm {
		m.body.Focus()
	}
}

// result validates the form. ok is false when a required field is empty.
func (m *modal) result() (formResult, bool) {
	r := m.base
	switch m.kind {
	case modalNoteForm:
		r.note.Title = strings.TrimSpace(m.input.Value())
		r.note.Content = m.body.Value()
		if err := r.note.Validate(); err != nil {
			m.err = err.Error()
			return r, false
		}
	case modalTodoForm:
		r.todo.Description = strings.TrimSpace(m.input.Value())
		r.todo.Importance = m.importance
		if err := r.todo.Validate(); err != nil {
			m.err = err.Error()
			return r, false
		}
	}
	return r, true
}

type modalAction int

const (
	modalContinue modalAction = iota
	modalSubmit
	modalDismiss
)

func (m *modal) update(msg tea.KeyMsg) (modalAction, tea.Cmd) {
	if m.kind == modalConfirmDelete {
		switch msg.String() {
		case "y", "Y", "enter":
			return modalSubmit, nil
		case "n", "N", "esc", "q":
			return modalDismiss, nil
		}
		return modalContinue, nil
	}

	switch msg.String() {
	case "esc":
		return modalDismiss, nil
	case "ctrl+s":
		return modalSubmit, nil
	case "tab", "shift+tab":
		m.setFocus(1 - m.focus)
		return modalContinue, nil
	case "enter":
		if m.focus == 0 || m.kind == modalTodoForm {
			return modalSubmit, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case m.focus == 0:
		m.input, cmd = m.input.Update(msg)
	case m.kind == modalNoteForm:
		m.body, cmd = m.body.Update(msg)
	case m.kind == modalTodoForm:
		switch msg.String() {
		case " ", "space", "right", "l":
			m.importance = m.importance.Next()
		case "left", "h":
			m.importance = m.importance.Next().Next()
		}
	}
	return modalContinue, cmd
}

func modalWidth(width int) int {
	w := width - 8
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m *modal) view(width int) string {
	w := modalWidth(width)
	var lines []string
	switch m.kind {
	case modalConfirmDelete:
		lines = append(lines, m.title, "", styleMuted().Render("y: delete   n/esc: keep"))
	case modalNoteForm:
		m.input.Width = w - 6
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(m.title), "", m.input.View(), "", m.body.View())
		lines = append(lines, "", styleMuted().Render("tab: switch field   enter (title)/ctrl+s: save   esc: cancel"))
	case modalTodoForm:
		m.input.Width = w - 6
		imp := "Importance: " + importanceBadge(m.importance)
		if m.focus == 1 {
			imp = styleSelected().Render("Importance:") + " " + importanceBadge(m.importance) + styleMuted().Render("  ←/→ change")
		}
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(m.title), "", m.input.View(), "", imp)
		lines = append(lines, "", styleMuted().Render("tab: switch field   enter: save   esc: cancel"))
	}
	if m.err != "" {
		lines = append(lines, "", styleError().Render(m.err))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(w).
		Render(strings.Join(lines, "\n"))
}
