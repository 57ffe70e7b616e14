package tui

import (
	"context"
	"fmt"
	"strings"

	"listboard/internal/drag"
	"listboard/internal/logging"
	"listboard/internal/reorder"

	tea "github.com/charmbracelet/bubbletea"
)

// item is what a list view can show and reorder.
type item[T any] interface {
	reorder.Orderable[T, int64]
}

// itemTable is the item store behind one list view.
type itemTable[T any] interface {
	reorder.Store[T]
	Create(ctx context.Context, it T) (T, error)
	Update(ctx context.Context, it T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// rowState is everything a row renderer may know about drag state.
type rowState struct {
	selected bool
	// overlay marks the row being dragged; the renderer draws it as a placeholder.
	overlay bool
	// dropTarget marks the row the dragged item would land on.
	dropTarget bool
	width      int
}

// persistedMsg reports the result of committing a planned reorder.
type persistedMsg struct {
	list string
	err  error
}

// listView is one reorderable list (notes or todos). It owns its drag session, the
// pointer and keyboard gesture sources feeding it, and the coordinator the session
// completes into. items is the full list in stored order; visible is what is drawn.
type listView[T item[T]] struct {
	name  string
	noun  string
	table itemTable[T]
	log   logging.Logger

	coord   *reorder.Coordinator[T, int64]
	session *drag.Session[int64]
	pointer *drag.PointerSource[int64]
	keys    *drag.KeyboardSource[int64]

	items   []T
	visible []T

	// view hooks
	filter  func([]T) []T
	render  func(T, rowState) string
	// preview returns the overlay lines for a dragged item.
	preview func(T) []string
	// canReorder returns a reason when reordering is unavailable.
	canReorder func() string

	cursor int
	offset int
	top    int
	width  int
	height int

	// pending is the commit scheduled by the last completed gesture.
	pending tea.Cmd
	notice  string
	failed  bool
}

func newListView[T item[T]](name, noun string, table itemTable[T], log logging.Logger, activation int) *listView[T] {
	lv := &listView[T]{
		name:       name,
		noun:       noun,
		table:      table,
		log:        log,
		filter:     func(xs []T) []T { return xs },
		canReorder: func() string { return "" },
	}
	lv.coord = reorder.NewCoordinator[T, int64](name, table, log)
	lv.coord.Defer = lv.apply
	lv.coord.OnOutcome = lv.outcome
	lv.session = drag.NewSession[int64](drag.CompleterFunc[int64](lv.complete))
	lv.pointer = drag.NewPointerSource[int64](lv.session, lv.hit, activation)
	lv.keys = drag.NewKeyboardSource[int64](lv.session, lv.visibleIDs)
	return lv
}

func (lv *listView[T]) setItems(items []T) {
	lv.items = reorder.SortByOrder[T, int64](items)
	lv.refresh()
}

// refresh recomputes the visible rows, keeping the cursor on the same item if possible.
func (lv *listView[T]) refresh() {
	selected, hasSel := lv.selectedID()
	lv.visible = lv.filter(lv.items)
	if hasSel {
		if i := reorder.IndexOf(lv.visible, selected); i >= 0 {
			lv.cursor = i
		}
	}
	lv.clampCursor()
}

func (lv *listView[T]) selectedID() (int64, bool) {
	if lv.cursor < 0 || lv.cursor >= len(lv.visible) {
		return 0, false
	}
	return lv.visible[lv.cursor].ItemID(), true
}

func (lv *listView[T]) selected() (T, bool) {
	if lv.cursor < 0 || lv.cursor >= len(lv.visible) {
		var zero T
		return zero, false
	}
	return lv.visible[lv.cursor], true
}

func (lv *listView[T]) selectID(id int64) {
	if i := reorder.IndexOf(lv.visible, id); i >= 0 {
		lv.cursor = i
		lv.clampCursor()
	}
}

func (lv *listView[T]) visibleIDs() []int64 {
	out := make([]int64, len(lv.visible))
	for i, it := range lv.visible {
		out[i] = it.ItemID()
	}
	return out
}

func (lv *listView[T]) find(id int64) (T, bool) {
	if i := reorder.IndexOf(lv.items, id); i >= 0 {
		return lv.items[i], true
	}
	var zero T
	return zero, false
}

func (lv *listView[T]) rows() int {
	if lv.height < 1 {
		return 1
	}
	return lv.height
}

func (lv *listView[T]) clampCursor() {
	if lv.cursor >= len(lv.visible) {
		lv.cursor = len(lv.visible) - 1
	}
	if lv.cursor < 0 {
		lv.cursor = 0
	}
	n := lv.rows()
	if lv.cursor < lv.offset {
		lv.offset = lv.cursor
	}
	if lv.cursor >= lv.offset+n {
		lv.offset = lv.cursor - n + 1
	}
	if last := len(lv.visible) - n; lv.offset > last {
		lv.offset = last
	}
	if lv.offset < 0 {
		lv.offset = 0
	}
}

func (lv *listView[T]) move(delta int) {
	lv.cursor += delta
	lv.clampCursor()
}

func (lv *listView[T]) scroll(delta int) {
	lv.offset += delta
	if last := len(lv.visible) - lv.rows(); lv.offset > last {
		lv.offset = last
	}
	if lv.offset < 0 {
		lv.offset = 0
	}
}

// hit maps a screen cell to the visible item drawn there.
func (lv *listView[T]) hit(x, y int) (int64, bool) {
	if x < 0 || x >= lv.width || y < lv.top || y >= lv.top+lv.rows() {
		return 0, false
	}
	i := lv.offset + y - lv.top
	if i < 0 || i >= len(lv.visible) {
		return 0, false
	}
	return lv.visible[i].ItemID(), true
}

func (lv *listView[T]) dragging() bool {
	return lv.session.Phase() != drag.Idle
}

// handleMouse feeds a mouse event to the pointer source. A click selects the row. The
// pointer is ignored while a keyboard drag owns the list.
func (lv *listView[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if lv.keys.Dragging() {
		return nil
	}
	var in drag.PointerInput
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		lv.scroll(-1)
		return nil
	case msg.Button == tea.MouseButtonWheelDown:
		lv.scroll(1)
		return nil
	case msg.Action == tea.MouseActionPress:
		in = drag.PointerInput{Action: drag.PointerPress, X: msg.X, Y: msg.Y, Primary: msg.Button == tea.MouseButtonLeft}
	case msg.Action == tea.MouseActionMotion:
		in = drag.PointerInput{Action: drag.PointerMotion, X: msg.X, Y: msg.Y, Primary: true}
	case msg.Action == tea.MouseActionRelease:
		in = drag.PointerInput{Action: drag.PointerRelease, X: msg.X, Y: msg.Y, Primary: true}
	default:
		return nil
	}
	if id, clicked := lv.pointer.Handle(in); clicked {
		lv.selectID(id)
	}
	return lv.takePending()
}

// pickup starts a keyboard drag on the selected row.
func (lv *listView[T]) pickup() {
	if lv.dragging() || lv.pointer.Dragging() {
		return
	}
	if reason := lv.canReorder(); reason != "" {
		lv.setNotice(reason, false)
		return
	}
	id, ok := lv.selectedID()
	if !ok {
		return
	}
	lv.keys.Pickup(id)
}

// step moves the keyboard drop target and keeps the cursor on it.
func (lv *listView[T]) step(delta int) {
	lv.keys.Step(delta)
	if over, ok := lv.keys.Over(); ok {
		lv.selectID(over)
	}
}

func (lv *listView[T]) drop() tea.Cmd {
	lv.keys.Drop()
	return lv.takePending()
}

// cancel abandons whichever gesture is in progress.
func (lv *listView[T]) cancel() {
	for _, src := range []drag.Source{lv.keys, lv.pointer} {
		src.Reset()
	}
	lv.session.Cancel()
}

func (lv *listView[T]) takePending() tea.Cmd {
	cmd := lv.pending
	lv.pending = nil
	return cmd
}

// complete is the session's completer. The coordinator plans against the store's latest
// snapshot and hands the plan to apply.
func (lv *listView[T]) complete(moved, target int64) {
	if reason := lv.canReorder(); reason != "" {
		lv.setNotice(reason, false)
		return
	}
	lv.coord.GestureComplete(moved, target)
}

// apply shows a planned order immediately and schedules its commit.
func (lv *listView[T]) apply(plan reorder.Plan[T, int64]) {
	lv.items = plan.Items
	lv.refresh()
	lv.selectID(plan.Moved)

	ctx := logging.WithArgs(context.Background(), "source", "tui")
	coord := lv.coord
	name := lv.name
	lv.pending = func() tea.Msg {
		return persistedMsg{list: name, err: coord.Commit(ctx, plan)}
	}
}

func (lv *listView[T]) outcome(out reorder.Outcome[T]) {
	switch out.Kind {
	case reorder.OutcomeNotFound, reorder.OutcomeFailed:
		lv.setNotice(fmt.Sprintf("Reorder discarded: %s changed (%s)", lv.name, reorder.Kind(out.Err)), true)
	}
}

func (lv *listView[T]) persisted(msg persistedMsg) {
	if msg.err != nil {
		lv.setNotice("Order not saved: "+msg.err.Error()+" (ctrl+r to reload)", true)
		return
	}
	if lv.failed {
		lv.notice, lv.failed = "", false
	}
}

func (lv *listView[T]) setNotice(s string, failed bool) {
	lv.notice = s
	lv.failed = failed
}

func (lv *listView[T]) view(empty string) string {
	if len(lv.visible) == 0 {
		return styleMuted().Render(empty)
	}
	over, hasOver := lv.session.Over()
	active, _ := lv.session.Active()
	end := lv.offset + lv.rows()
	if end > len(lv.visible) {
		end = len(lv.visible)
	}
	lines := make([]string, 0, end-lv.offset)
	for i := lv.offset; i < end; i++ {
		it := lv.visible[i]
		id := it.ItemID()
		st := rowState{
			selected:   i == lv.cursor && !lv.dragging(),
			overlay:    lv.session.IsOverlay(id),
			dropTarget: hasOver && over == id && id != active,
			width:      lv.width,
		}
		lines = append(lines, lv.render(it, st))
	}
	return strings.Join(lines, "\n")
}

// overlay is the floating preview of the dragged item, empty when idle.
func (lv *listView[T]) overlay() string {
	active, ok := lv.session.Active()
	if !ok {
		return ""
	}
	it, found := lv.find(active)
	if !found {
		return ""
	}
	return renderOverlay(lv.preview(it), lv.width)
}
