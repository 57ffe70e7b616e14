package tui

import (
	"context"
	"fmt"
	"strings"

	"listboard/internal/drag"
	"listboard/internal/logging"
	"listboard/internal/model"
	"listboard/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewNotes view = iota
	viewTodos
)

func (v view) String() string {
	if v == viewTodos {
		return "todos"
	}
	return "notes"
}

func parseView(s string) view {
	if strings.EqualFold(strings.TrimSpace(s), "todos") {
		return viewTodos
	}
	return viewNotes
}

const (
	headerRows  = 2
	footerRows  = 2
	previewRows = 6
)

type loadedMsg struct {
	snap store.Snapshot
	err  error
}

type savedMsg struct {
	what string
	err  error
	// selectID, when set, is selected after the reload.
	selectID int64
	list     view
}

type appModel struct {
	store *store.Store
	log   logging.Logger

	notes *listView[model.Note]
	todos *listView[model.Todo]

	view    view
	loading bool
	loadErr error

	todoFilter model.ImportanceFilter
	todoSort   model.CompletionSort
	query      string
	search     textinput.Model
	searching  bool

	modal *modal

	keys     keyMap
	help     help.Model
	fullHelp bool

	width  int
	height int

	restore *store.TUIState
}

func newAppModel(s *store.Store, cfg *store.GlobalConfig, log logging.Logger) *appModel {
	if log == nil {
		log = logging.Discard()
	}
	activation := cfg.DragActivationDistance(drag.DefaultActivationDistance)

	m := &appModel{
		store:      s,
		log:        log,
		loading:    true,
		todoFilter: model.FilterAll,
		todoSort:   model.SortNone,
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      80,
		height:     24,
	}
	m.search = textinput.New()
	m.search.Placeholder = "search notes"
	m.search.Prompt = "/ "

	m.notes = newListView[model.Note]("notes", "note", s.Notes(), log, activation)
	m.notes.render = renderNoteRow
	m.notes.preview = notePreviewText
	m.notes.filter = func(xs []model.Note) []model.Note { return model.VisibleNotes(xs, m.query) }

	m.todos = newListView[model.Todo]("todos", "todo", s.Todos(), log, activation)
	m.todos.render = renderTodoRow
	m.todos.preview = todoPreviewText
	m.todos.filter = func(xs []model.Todo) []model.Todo { return model.VisibleTodos(xs, m.todoFilter, m.todoSort) }
	m.todos.canReorder = func() string {
		if m.todoSort.Active() {
			return "Reordering is off while sorted by completion (s to change)"
		}
		return ""
	}

	if cfg != nil && cfg.TUI != nil {
		m.view = parseView(cfg.TUI.DefaultView)
	}
	if st, err := store.LoadTUIState(s.Dir); err == nil {
		m.restore = st
		if st.View != "" {
			m.view = parseView(st.View)
		}
		if f, err := model.ParseImportanceFilter(st.TodoFilter); err == nil {
			m.todoFilter = f
		}
		if srt, err := model.ParseCompletionSort(st.TodoSort); err == nil {
			m.todoSort = srt
		}
	}
	m.layout()
	return m
}

func (m *appModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *appModel) loadCmd() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		snap, err := s.Snapshot(context.Background())
		return loadedMsg{snap: snap, err: err}
	}
}

func (m *appModel) layout() {
	rows := m.height - headerRows - footerRows - previewRows
	if rows < 1 {
		rows = 1
	}
	for _, lv := range []interface {
		resize(top, width, height int)
	}{m.notes, m.todos} {
		lv.resize(headerRows, m.width, rows)
	}
	m.help.Width = m.width
}

func (lv *listView[T]) resize(top, width, height int) {
	lv.top, lv.width, lv.height = top, width, height
	lv.clampCursor()
}

// current returns the active list without caring about its item type.
func (m *appModel) current() interface {
	dragging() bool
	cancel()
} {
	if m.view == viewTodos {
		return m.todos
	}
	return m.notes
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case loadedMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			m.log.Error("load failed", "err", msg.err)
			return m, nil
		}
		m.notes.setItems(msg.snap.Notes)
		m.todos.setItems(msg.snap.Todos)
		if st := m.restore; st != nil {
			m.notes.selectID(st.SelectedNoteID)
			m.todos.selectID(st.SelectedTodoID)
			m.restore = nil
		}
		return m, nil

	case reloadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setNotice(msg.list, "Reload failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.notes.setItems(msg.snap.Notes)
		m.todos.setItems(msg.snap.Todos)
		if msg.id != 0 {
			if msg.list == viewTodos {
				m.todos.selectID(msg.id)
			} else {
				m.notes.selectID(msg.id)
			}
		}
		return m, nil

	case persistedMsg:
		if msg.list == m.todos.name {
			m.todos.persisted(msg)
		} else {
			m.notes.persisted(msg)
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setNotice(msg.list, "Could not "+msg.what+": "+msg.err.Error(), true)
			return m, nil
		}
		return m, m.reloadSelecting(msg.list, msg.selectID)

	case tea.BlurMsg:
		// The release may never arrive once the terminal loses focus.
		m.current().cancel()
		return m, nil

	case tea.MouseMsg:
		if m.modal != nil || m.loading {
			return m, nil
		}
		if m.view == viewTodos {
			return m, m.todos.handleMouse(msg)
		}
		return m, m.notes.handleMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *appModel) reloadSelecting(list view, id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		snap, err := s.Snapshot(context.Background())
		return reloadedMsg{loadedMsg: loadedMsg{snap: snap, err: err}, list: list, id: id}
	}
}

type reloadedMsg struct {
	loadedMsg
	list view
	id   int64
}

func (m *appModel) setNotice(list view, s string, failed bool) {
	if list == viewTodos {
		m.todos.setNotice(s, failed)
		return
	}
	m.notes.setNotice(s, failed)
}

func (m *appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}
	if m.loading {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.current().dragging() {
		return m, m.updateDragKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.fullHelp = !m.fullHelp
	case key.Matches(msg, m.keys.SwitchView):
		if m.view == viewNotes {
			m.view = viewTodos
		} else {
			m.view = viewNotes
		}
	case key.Matches(msg, m.keys.Up):
		m.withList(func(lv listOps) { lv.move(-1) })
	case key.Matches(msg, m.keys.Down):
		m.withList(func(lv listOps) { lv.move(1) })
	case key.Matches(msg, m.keys.Grab):
		m.withList(func(lv listOps) { lv.pickup() })
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.New):
		m.openCreate()
	case key.Matches(msg, m.keys.Edit):
		m.openEdit()
	case key.Matches(msg, m.keys.Delete):
		m.openDelete()
	case m.view == viewTodos && key.Matches(msg, m.keys.Toggle):
		return m, m.toggleTodo()
	case m.view == viewTodos && key.Matches(msg, m.keys.Filter):
		m.todoFilter = m.todoFilter.Next()
		m.todos.refresh()
	case m.view == viewTodos && key.Matches(msg, m.keys.Sort):
		m.todoSort = m.todoSort.Next()
		m.todos.refresh()
	case m.view == viewNotes && key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		m.search.Focus()
	}
	return m, nil
}

// listOps is the type-independent part of a list view used by key handling.
type listOps interface {
	move(delta int)
	pickup()
	step(delta int)
	drop() tea.Cmd
	cancel()
}

func (m *appModel) withList(f func(listOps)) {
	if m.view == viewTodos {
		f(m.todos)
		return
	}
	f(m.notes)
}

func (m *appModel) updateDragKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.withList(func(lv listOps) { lv.cancel() })
	case key.Matches(msg, m.keys.Up):
		m.withList(func(lv listOps) { lv.step(-1) })
	case key.Matches(msg, m.keys.Down):
		m.withList(func(lv listOps) { lv.step(1) })
	case key.Matches(msg, m.keys.Drop):
		m.withList(func(lv listOps) { cmd = lv.drop() })
	}
	return cmd
}

func (m *appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.query = ""
		m.notes.refresh()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.notes.refresh()
	return m, cmd
}

func (m *appModel) openCreate() {
	if m.view == viewTodos {
		m.modal = newTodoForm(model.Todo{Importance: model.ImportanceMinor})
		return
	}
	m.modal = newNoteForm(model.Note{}, m.width)
}

func (m *appModel) openEdit() {
	if m.view == viewTodos {
		if t, ok := m.todos.selected(); ok {
			m.modal = newTodoForm(t)
		}
		return
	}
	if n, ok := m.notes.selected(); ok {
		m.modal = newNoteForm(n, m.width)
	}
}

func (m *appModel) openDelete() {
	if m.view == viewTodos {
		if t, ok := m.todos.selected(); ok {
			m.modal = newConfirmDelete("todo", t.ID, t.Description)
		}
		return
	}
	if n, ok := m.notes.selected(); ok {
		m.modal = newConfirmDelete("note", n.ID, n.Title)
	}
}

func (m *appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	act, cmd := m.modal.update(msg)
	switch act {
	case modalDismiss:
		m.modal = nil
		return m, nil
	case modalSubmit:
		md := m.modal
		if md.kind == modalConfirmDelete {
			m.modal = nil
			return m, m.deleteCmd(md.id)
		}
		res, ok := md.result()
		if !ok {
			return m, nil
		}
		m.modal = nil
		if md.kind == modalTodoForm {
			return m, m.saveTodoCmd(res.todo)
		}
		return m, m.saveNoteCmd(res.note)
	}
	return m, cmd
}

func (m *appModel) saveNoteCmd(n model.Note) tea.Cmd {
	t := m.store.Notes()
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if n.ID == 0 {
			n, err = t.Create(ctx, n)
		} else {
			n, err = t.Update(ctx, n)
		}
		return savedMsg{what: "save note", err: err, selectID: n.ID, list: viewNotes}
	}
}

func (m *appModel) saveTodoCmd(td model.Todo) tea.Cmd {
	t := m.store.Todos()
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if td.ID == 0 {
			td, err = t.Create(ctx, td)
		} else {
			td, err = t.Update(ctx, td)
		}
		return savedMsg{what: "save todo", err: err, selectID: td.ID, list: viewTodos}
	}
}

func (m *appModel) deleteCmd(id int64) tea.Cmd {
	list := m.view
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if list == viewTodos {
			err = s.Todos().Delete(ctx, id)
		} else {
			err = s.Notes().Delete(ctx, id)
		}
		return savedMsg{what: "delete", err: err, list: list}
	}
}

func (m *appModel) toggleTodo() tea.Cmd {
	t, ok := m.todos.selected()
	if !ok {
		return nil
	}
	t.IsComplete = !t.IsComplete
	return m.saveTodoCmd(t)
}

// quit saves UI state (best-effort) and exits.
func (m *appModel) quit() tea.Cmd {
	st := &store.TUIState{
		Version:    1,
		View:       m.view.String(),
		TodoFilter: string(m.todoFilter),
		TodoSort:   string(m.todoSort),
	}
	if id, ok := m.notes.selectedID(); ok {
		st.SelectedNoteID = id
	}
	if id, ok := m.todos.selectedID(); ok {
		st.SelectedTodoID = id
	}
	if err := store.SaveTUIState(m.store.Dir, st); err != nil {
		m.log.Warn("save tui state", "err", err)
	}
	return tea.Quit
}

func (m *appModel) View() string {
	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modal.view(m.width))
	}
	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteByte('\n')
	b.WriteString(fitLine(m.viewToolbar(), m.width))
	b.WriteByte('\n')

	body := m.viewBody()
	b.WriteString(lipgloss.NewStyle().Height(m.listRows()).MaxHeight(m.listRows()).Render(body))
	b.WriteByte('\n')
	b.WriteString(lipgloss.NewStyle().Height(previewRows).MaxHeight(previewRows).Render(m.viewPreview()))
	b.WriteByte('\n')
	b.WriteString(fitLine(m.viewNotice(), m.width))
	b.WriteByte('\n')
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m *appModel) listRows() int {
	if m.view == viewTodos {
		return m.todos.rows()
	}
	return m.notes.rows()
}

func (m *appModel) viewTabs() string {
	notes := fmt.Sprintf("Notes (%d)", len(m.notes.items))
	todos := fmt.Sprintf("Todos (%d)", len(m.todos.items))
	if m.view == viewTodos {
		return styleTab().Render(notes) + styleTabActive().Render(todos)
	}
	return styleTabActive().Render(notes) + styleTab().Render(todos)
}

func (m *appModel) viewToolbar() string {
	if m.view == viewTodos {
		s := "Importance: " + m.todoFilter.Label()
		s += "   Sort: " + completionSortLabel(m.todoSort)
		return styleMuted().Render(s)
	}
	if m.searching {
		return m.search.View()
	}
	if m.query != "" {
		return styleMuted().Render("/ " + m.query + "   (esc in search clears)")
	}
	return ""
}

func completionSortLabel(s model.CompletionSort) string {
	switch s {
	case model.SortCompletedFirst:
		return "completed first"
	case model.SortIncompleteFirst:
		return "incomplete first"
	default:
		return "manual"
	}
}

func (m *appModel) viewBody() string {
	switch {
	case m.loading:
		return styleMuted().Render("Loading…")
	case m.loadErr != nil:
		return styleError().Render("Could not load lists: "+m.loadErr.Error()) + "\n" + styleMuted().Render("ctrl+r to retry")
	case m.view == viewTodos:
		empty := "No todos yet. Press n to add one."
		if len(m.todos.items) > 0 {
			empty = "No todos match the importance filter."
		}
		return m.todos.view(empty)
	default:
		empty := "No notes yet. Press n to add one."
		if len(m.notes.items) > 0 {
			empty = "No notes match the search."
		}
		return m.notes.view(empty)
	}
}

// viewPreview shows the drag overlay while dragging, otherwise the selected note's
// rendered content.
func (m *appModel) viewPreview() string {
	if m.view == viewTodos {
		return m.todos.overlay()
	}
	if ov := m.notes.overlay(); ov != "" {
		return ov
	}
	n, ok := m.notes.selected()
	if !ok || strings.TrimSpace(n.Content) == "" {
		return ""
	}
	return renderMarkdown(n.Content, m.width-2)
}

func (m *appModel) viewNotice() string {
	notice, failed := m.notes.notice, m.notes.failed
	if m.view == viewTodos {
		notice, failed = m.todos.notice, m.todos.failed
	}
	if notice == "" {
		return ""
	}
	if failed {
		return styleError().Render(notice)
	}
	return styleMuted().Render(notice)
}

func (m *appModel) viewHelp() string {
	var km help.KeyMap = notesKeys{m.keys}
	switch {
	case m.current().dragging():
		km = dragKeys{m.keys}
	case m.view == viewTodos:
		km = todosKeys{m.keys}
	}
	if m.fullHelp {
		return m.help.FullHelpView(km.FullHelp())
	}
	return m.help.ShortHelpView(km.ShortHelp())
}
