package tui

import (
	"context"
	"strings"
	"testing"

	"listboard/internal/model"
	"listboard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) (*appModel, *store.Store) {
	t.Helper()
	s, err := store.Open(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	m := newAppModel(s, nil, nil)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	return m, s
}

func load(t *testing.T, m *appModel) {
	t.Helper()
	run(t, m, m.Init())
	if m.loading || m.loadErr != nil {
		t.Fatalf("load failed: loading=%v err=%v", m.loading, m.loadErr)
	}
}

// run executes cmd and feeds the resulting message back, following chained commands.
func run(t *testing.T, m *appModel, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys and runs whatever command the last one returned.
func press(t *testing.T, m *appModel, keys ...string) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	run(t, m, cmd)
}

func mouse(t *testing.T, m *appModel, action tea.MouseAction, button tea.MouseButton, x, y int) {
	t.Helper()
	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	run(t, m, cmd)
}

func seedNotes(t *testing.T, s *store.Store, titles ...string) []model.Note {
	t.Helper()
	var out []model.Note
	for _, title := range titles {
		n, err := s.Notes().Create(context.Background(), model.Note{Title: title})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		out = append(out, n)
	}
	return out
}

func seedTodos(t *testing.T, s *store.Store, todos ...model.Todo) []model.Todo {
	t.Helper()
	var out []model.Todo
	for _, td := range todos {
		created, err := s.Todos().Create(context.Background(), td)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		out = append(out, created)
	}
	return out
}

func storedNoteTitles(t *testing.T, s *store.Store) string {
	t.Helper()
	notes, err := s.Notes().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = n.Title
	}
	return strings.Join(parts, ",")
}

func storedTodoDescriptions(t *testing.T, s *store.Store) string {
	t.Helper()
	todos, err := s.Todos().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	parts := make([]string, len(todos))
	for i, td := range todos {
		parts[i] = td.Description
	}
	return strings.Join(parts, ",")
}

func TestApp_KeyboardReorderPersists(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedNotes(t, s, "a", "b", "c")
	load(t, m)

	press(t, m, " ")
	if !m.notes.dragging() {
		t.Fatalf("expected a keyboard drag after space")
	}
	if !strings.Contains(m.View(), "╭") {
		t.Fatalf("expected the overlay box while dragging:\n%s", m.View())
	}
	press(t, m, "down", "down", " ")

	if m.notes.dragging() {
		t.Fatalf("expected drag to end on drop")
	}
	if got := storedNoteTitles(t, s); got != "b,c,a" {
		t.Fatalf("stored order: %s", got)
	}
	if id, _ := m.notes.selectedID(); id != m.notes.items[2].ID || m.notes.items[2].Title != "a" {
		t.Fatalf("cursor should follow the moved note")
	}
}

func TestApp_EscapeCancelsKeyboardDrag(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedNotes(t, s, "a", "b", "c")
	load(t, m)

	press(t, m, " ", "down", "esc")
	if m.notes.dragging() {
		t.Fatalf("expected idle after esc")
	}
	if got := storedNoteTitles(t, s); got != "a,b,c" {
		t.Fatalf("cancelled drag changed order: %s", got)
	}
}

func TestApp_MouseDragReorders(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedNotes(t, s, "a", "b", "c")
	load(t, m)

	top := m.notes.top
	mouse(t, m, tea.MouseActionPress, tea.MouseButtonLeft, 3, top+2)
	mouse(t, m, tea.MouseActionMotion, tea.MouseButtonLeft, 3, top+1)
	mouse(t, m, tea.MouseActionMotion, tea.MouseButtonLeft, 3, top)
	if !m.notes.session.IsOverlay(m.notes.items[2].ID) {
		t.Fatalf("expected c to be dragged")
	}
	mouse(t, m, tea.MouseActionRelease, tea.MouseButtonNone, 3, top)

	if got := storedNoteTitles(t, s); got != "c,a,b" {
		t.Fatalf("stored order: %s", got)
	}
}

func TestApp_MouseClickSelectsWithoutReorder(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	notes := seedNotes(t, s, "a", "b", "c")
	load(t, m)

	top := m.notes.top
	mouse(t, m, tea.MouseActionPress, tea.MouseButtonLeft, 3, top+1)
	mouse(t, m, tea.MouseActionRelease, tea.MouseButtonNone, 3, top+1)

	if id, _ := m.notes.selectedID(); id != notes[1].ID {
		t.Fatalf("click should select b; got %d", id)
	}
	if got := storedNoteTitles(t, s); got != "a,b,c" {
		t.Fatalf("click changed order: %s", got)
	}
}

func TestApp_DropOutsideListLeavesOrder(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedNotes(t, s, "a", "b")
	load(t, m)

	top := m.notes.top
	mouse(t, m, tea.MouseActionPress, tea.MouseButtonLeft, 3, top)
	mouse(t, m, tea.MouseActionMotion, tea.MouseButtonLeft, 3, top+1)
	mouse(t, m, tea.MouseActionRelease, tea.MouseButtonNone, 3, 0)

	if got := storedNoteTitles(t, s); got != "a,b" {
		t.Fatalf("drop outside changed order: %s", got)
	}
	evs, err := s.ReadEvents(context.Background(), "note", 0)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	for _, ev := range evs {
		if ev.Type == "note.reorder" {
			t.Fatalf("unexpected reorder event")
		}
	}
}

func TestApp_FilteredTodoReorderUsesStoredPositions(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedTodos(t, s,
		model.Todo{Description: "a", Importance: model.ImportanceMajor},
		model.Todo{Description: "b", Importance: model.ImportanceMinor},
		model.Todo{Description: "c", Importance: model.ImportanceMajor},
	)
	load(t, m)

	press(t, m, "tab", "f")
	if len(m.todos.visible) != 2 {
		t.Fatalf("expected 2 major todos visible; got %d", len(m.todos.visible))
	}
	press(t, m, " ", "down", " ")

	if got := storedTodoDescriptions(t, s); got != "b,c,a" {
		t.Fatalf("stored order: %s", got)
	}
}

func TestApp_CompletionSortRefusesReorder(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedTodos(t, s, model.Todo{Description: "a"}, model.Todo{Description: "b"})
	load(t, m)

	press(t, m, "tab", "s", " ")
	if m.todos.dragging() {
		t.Fatalf("pickup must be refused while sorted")
	}
	if !strings.Contains(m.todos.notice, "sorted by completion") {
		t.Fatalf("expected a notice; got %q", m.todos.notice)
	}
	if got := storedTodoDescriptions(t, s); got != "a,b" {
		t.Fatalf("order changed: %s", got)
	}
}

func TestApp_ItemDeletedMidDragIsDiscarded(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	notes := seedNotes(t, s, "a", "b", "c")
	load(t, m)

	press(t, m, " ", "down", "down")
	if err := s.Notes().Delete(context.Background(), notes[2].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	press(t, m, " ")

	if got := storedNoteTitles(t, s); got != "a,b" {
		t.Fatalf("order after discarded drop: %s", got)
	}
	if !strings.Contains(m.notes.notice, "not_found") {
		t.Fatalf("expected a discard notice; got %q", m.notes.notice)
	}
}

func TestApp_CreateAndToggleTodo(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	load(t, m)

	press(t, m, "tab")
	if !strings.Contains(m.View(), "No todos yet") {
		t.Fatalf("expected empty state:\n%s", m.View())
	}
	press(t, m, "n")
	if m.modal == nil || m.modal.kind != modalTodoForm {
		t.Fatalf("expected todo form")
	}
	for _, r := range "water plants" {
		m.Update(keyMsg(string(r)))
	}
	press(t, m, "enter")
	if m.modal != nil {
		t.Fatalf("form should close on save; err=%q", m.modal.err)
	}
	if len(m.todos.items) != 1 || m.todos.items[0].Description != "water plants" {
		t.Fatalf("unexpected todos: %#v", m.todos.items)
	}

	press(t, m, "x")
	got, err := s.Todos().Get(context.Background(), m.todos.items[0].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.IsComplete {
		t.Fatalf("toggle was not persisted")
	}
}

func TestApp_EmptyTitleKeepsFormOpen(t *testing.T) {
	t.Parallel()

	m, _ := newTestApp(t)
	load(t, m)

	press(t, m, "n", "enter")
	if m.modal == nil || m.modal.err == "" {
		t.Fatalf("expected validation error to keep the form open")
	}
	press(t, m, "esc")
	if m.modal != nil {
		t.Fatalf("esc should dismiss the form")
	}
}

func TestApp_DeleteWithConfirm(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedNotes(t, s, "a", "b")
	load(t, m)

	press(t, m, "d", "n")
	if got := storedNoteTitles(t, s); got != "a,b" {
		t.Fatalf("declined delete removed a note: %s", got)
	}
	press(t, m, "d", "y")
	if got := storedNoteTitles(t, s); got != "b" {
		t.Fatalf("after delete: %s", got)
	}
	if len(m.notes.items) != 1 || m.notes.items[0].Order != 0 {
		t.Fatalf("view not reloaded: %#v", m.notes.items)
	}
}

func TestApp_LoadingState(t *testing.T) {
	t.Parallel()

	m, _ := newTestApp(t)
	if !strings.Contains(m.View(), "Loading") {
		t.Fatalf("expected loading state before the first snapshot")
	}
}

func noteTitles(notes []model.Note) string {
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = n.Title
	}
	return strings.Join(parts, ",")
}

func TestApp_MouseIgnoredDuringKeyboardDrag(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedNotes(t, s, "a", "b", "c")
	load(t, m)

	press(t, m, " ")
	top := m.notes.top
	mouse(t, m, tea.MouseActionPress, tea.MouseButtonLeft, 3, top+1)
	mouse(t, m, tea.MouseActionMotion, tea.MouseButtonLeft, 3, top+2)
	mouse(t, m, tea.MouseActionRelease, tea.MouseButtonNone, 3, top+2)

	if got := storedNoteTitles(t, s); got != "a,b,c" {
		t.Fatalf("pointer finished the keyboard gesture: %s", got)
	}
	if !m.notes.keys.Dragging() || !m.notes.session.IsOverlay(m.notes.items[0].ID) {
		t.Fatalf("keyboard drag of a should still be active")
	}

	press(t, m, "esc")
	if m.notes.dragging() || m.notes.keys.Dragging() {
		t.Fatalf("esc should leave both the session and the keyboard idle")
	}
	press(t, m, " ", "down", " ")
	if got := storedNoteTitles(t, s); got != "b,a,c" {
		t.Fatalf("keyboard reorder after the ignored pointer: %s", got)
	}
}

func TestApp_KeyboardPickupRefusedDuringMouseDrag(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedNotes(t, s, "a", "b", "c")
	load(t, m)

	top := m.notes.top
	mouse(t, m, tea.MouseActionPress, tea.MouseButtonLeft, 3, top)
	mouse(t, m, tea.MouseActionMotion, tea.MouseButtonLeft, 3, top+1)
	press(t, m, " ")
	if m.notes.keys.Dragging() {
		t.Fatalf("keyboard pickup must be refused while the pointer drags")
	}
	mouse(t, m, tea.MouseActionMotion, tea.MouseButtonLeft, 3, top+2)
	mouse(t, m, tea.MouseActionRelease, tea.MouseButtonNone, 3, top+2)

	if got := storedNoteTitles(t, s); got != "b,c,a" {
		t.Fatalf("stored order: %s", got)
	}
	if m.notes.dragging() || m.notes.pointer.Dragging() || m.notes.keys.Dragging() {
		t.Fatalf("expected every source idle after the drop")
	}
}

func TestApp_FocusLossCancelsMouseDrag(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	seedNotes(t, s, "a", "b")
	load(t, m)

	top := m.notes.top
	mouse(t, m, tea.MouseActionPress, tea.MouseButtonLeft, 3, top)
	mouse(t, m, tea.MouseActionMotion, tea.MouseButtonLeft, 3, top+1)
	if !m.notes.dragging() {
		t.Fatalf("expected an active pointer drag")
	}

	m.Update(tea.BlurMsg{})
	if m.notes.dragging() || m.notes.pointer.Dragging() {
		t.Fatalf("focus loss should cancel the drag")
	}
	mouse(t, m, tea.MouseActionRelease, tea.MouseButtonNone, 3, top+1)
	if got := storedNoteTitles(t, s); got != "a,b" {
		t.Fatalf("cancelled drag changed order: %s", got)
	}

	press(t, m, " ")
	if !m.notes.keys.Dragging() {
		t.Fatalf("a new gesture should start after the cancel")
	}
}

func TestApp_FailedSaveKeepsOptimisticOrder(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	notes := seedNotes(t, s, "a", "b", "c")
	load(t, m)

	press(t, m, " ", "down", "down")
	_, commit := m.Update(keyMsg(" "))
	if commit == nil {
		t.Fatalf("expected a pending commit after the drop")
	}
	if got := noteTitles(m.notes.items); got != "b,c,a" {
		t.Fatalf("optimistic order: %s", got)
	}

	// Another writer removes b before the commit runs; the bulk update no longer
	// matches the stored list.
	if err := s.Notes().Delete(context.Background(), notes[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	run(t, m, commit)

	if !m.notes.failed || !strings.Contains(m.notes.notice, "Order not saved") {
		t.Fatalf("expected a failed-save notice; got %q failed=%v", m.notes.notice, m.notes.failed)
	}
	if !strings.Contains(m.notes.notice, "ctrl+r") {
		t.Fatalf("notice should point at reload: %q", m.notes.notice)
	}
	if got := noteTitles(m.notes.items); got != "b,c,a" {
		t.Fatalf("optimistic order rolled back: %s", got)
	}
	if got := storedNoteTitles(t, s); got != "a,c" {
		t.Fatalf("stored order: %s", got)
	}
}
