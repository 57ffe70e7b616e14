package store

import (
	"context"
	"errors"
	"testing"

	"listboard/internal/model"
	"listboard/internal/reorder"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedNotes(t *testing.T, s *Store, titles ...string) []model.Note {
	t.Helper()
	ctx := context.Background()
	out := make([]model.Note, 0, len(titles))
	for _, title := range titles {
		n, err := s.Notes().Create(ctx, model.Note{Title: title})
		if err != nil {
			t.Fatalf("Create(%q): %v", title, err)
		}
		out = append(out, n)
	}
	return out
}

func noteTitles(notes []model.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTable_CreateAppendsWithDenseOrder(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	created := seedNotes(t, s, "a", "b", "c")
	for i, n := range created {
		if n.Order != i {
			t.Fatalf("note %q: order %d want %d", n.Title, n.Order, i)
		}
		if n.ID == 0 || n.CreatedAt.IsZero() {
			t.Fatalf("note %q missing id or timestamps: %#v", n.Title, n)
		}
	}

	got, err := s.Notes().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameStrings(noteTitles(got), []string{"a", "b", "c"}) {
		t.Fatalf("List order: %v", noteTitles(got))
	}
	if err := reorder.CheckDense(got); err != nil {
		t.Fatalf("not dense: %v", err)
	}
}

func TestTable_CreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	if _, err := s.Notes().Create(context.Background(), model.Note{Title: "  "}); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if _, err := s.Todos().Create(context.Background(), model.Todo{Description: "x", Importance: "URGENT"}); err == nil {
		t.Fatalf("expected error for unknown importance")
	}
}

func TestTable_BulkReorderPersistsComputedOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	notes := seedNotes(t, s, "one", "two", "three")

	snap, err := s.Notes().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	next, err := reorder.Compute(snap, notes[0].ID, notes[2].ID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := s.Notes().BulkReorder(ctx, next); err != nil {
		t.Fatalf("BulkReorder: %v", err)
	}

	got, err := s.Notes().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameStrings(noteTitles(got), []string{"two", "three", "one"}) {
		t.Fatalf("order after reorder: %v", noteTitles(got))
	}
	if err := reorder.CheckDense(got); err != nil {
		t.Fatalf("not dense: %v", err)
	}
}

func TestTable_BulkReorderRejectsStaleSets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	notes := seedNotes(t, s, "a", "b", "c")

	tests := []struct {
		name  string
		items []model.Note
	}{
		{name: "missing item", items: []model.Note{notes[1].WithOrder(0), notes[0].WithOrder(1)}},
		{name: "unknown id", items: []model.Note{notes[0], notes[1], notes[2].WithID(999)}},
		{name: "duplicate id", items: []model.Note{notes[0], notes[0].WithOrder(1), notes[2]}},
		{name: "gap in orders", items: []model.Note{notes[0], notes[1], notes[2].WithOrder(5)}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := s.Notes().BulkReorder(ctx, tt.items)
			if !errors.Is(err, ErrStaleOrder) {
				t.Fatalf("expected ErrStaleOrder; got %v", err)
			}
		})
	}

	got, err := s.Notes().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameStrings(noteTitles(got), []string{"a", "b", "c"}) {
		t.Fatalf("rejected reorders must not write; got %v", noteTitles(got))
	}
}

func TestTable_DeleteCompactsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	notes := seedNotes(t, s, "a", "b", "c", "d")

	if err := s.Notes().Delete(ctx, notes[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := s.Notes().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameStrings(noteTitles(got), []string{"a", "c", "d"}) {
		t.Fatalf("after delete: %v", noteTitles(got))
	}
	if err := reorder.CheckDense(got); err != nil {
		t.Fatalf("not dense after delete: %v", err)
	}

	if err := s.Notes().Delete(ctx, notes[1].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound; got %v", err)
	}
	// Ids are never reused.
	n, err := s.Notes().Create(ctx, model.Note{Title: "e"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.ID <= notes[3].ID || n.Order != 3 {
		t.Fatalf("unexpected new note: %#v", n)
	}
}

func TestTable_UpdateKeepsStoredOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	created, err := s.Todos().Create(ctx, model.Todo{Description: "buy milk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Importance != "" {
		t.Fatalf("importance should be stored as given; got %q", created.Importance)
	}
	if _, err := s.Todos().Create(ctx, model.Todo{Description: "walk dog", Importance: model.ImportanceMajor}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	edit := created
	edit.IsComplete = true
	edit.Order = 42
	got, err := s.Todos().Update(ctx, edit)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Order != 0 || !got.IsComplete {
		t.Fatalf("unexpected update result: %#v", got)
	}

	again, err := s.Todos().Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !again.IsComplete || again.Order != 0 || !again.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected stored todo: %#v", again)
	}

	if _, err := s.Todos().Update(ctx, model.Todo{ID: 999, Description: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound; got %v", err)
	}
}

func TestStore_EventsAndSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	notes := seedNotes(t, s, "a", "b")
	if _, err := s.Todos().Create(ctx, model.Todo{Description: "t", Importance: model.ImportanceMinor}); err != nil {
		t.Fatalf("Create todo: %v", err)
	}
	next, err := reorder.Compute(notes, notes[1].ID, notes[0].ID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := s.Notes().BulkReorder(ctx, next); err != nil {
		t.Fatalf("BulkReorder: %v", err)
	}

	evs, err := s.ReadEvents(ctx, "", 0)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	var types []string
	for _, ev := range evs {
		types = append(types, ev.Type)
	}
	want := []string{"note.create", "note.create", "todo.create", "note.reorder"}
	if !sameStrings(types, want) {
		t.Fatalf("event types: got %v want %v", types, want)
	}

	tail, err := s.ReadEvents(ctx, "note", 1)
	if err != nil {
		t.Fatalf("ReadEvents(note, 1): %v", err)
	}
	if len(tail) != 1 || tail[0].Type != "note.reorder" {
		t.Fatalf("tail: %#v", tail)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !sameStrings(noteTitles(snap.Notes), []string{"b", "a"}) || len(snap.Todos) != 1 {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestStore_ReadEventsKeepsUndecodablePayload(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO events(ts_unixms, type, entity_kind, entity_id, payload_json) VALUES(0, 'note.import', 'note', 1, 'not json')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	evs, err := s.ReadEvents(ctx, "note", 0)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(evs) != 1 || evs[0].Payload != "not json" {
		t.Fatalf("expected raw payload; got %#v", evs)
	}
}
