package cli

import (
	"strconv"
	"time"

	"listboard/internal/model"
)

type noteRows []model.Note

func (r noteRows) TableHeader() []string { return []string{"ID", "ORDER", "TITLE", "UPDATED"} }
func (r noteRows) TableRows() [][]string {
	out := make([][]string, 0, len(r))
	for _, n := range r {
		out = append(out, []string{itoa(n.ID), strconv.Itoa(n.Order), n.Title, stamp(n.UpdatedAt)})
	}
	return out
}

type todoRows []model.Todo

func (r todoRows) TableHeader() []string {
	return []string{"ID", "ORDER", "DONE", "IMPORTANCE", "DESCRIPTION"}
}
func (r todoRows) TableRows() [][]string {
	out := make([][]string, 0, len(r))
	for _, t := range r {
		done := " "
		if t.IsComplete {
			done = "x"
		}
		imp := t.Importance
		if imp == "" {
			imp = model.ImportanceMinor
		}
		out = append(out, []string{itoa(t.ID), strconv.Itoa(t.Order), done, imp.Label(), t.Description})
	}
	return out
}

type eventRows []model.Event

func (r eventRows) TableHeader() []string { return []string{"ID", "TS", "TYPE", "ENTITY"} }
func (r eventRows) TableRows() [][]string {
	out := make([][]string, 0, len(r))
	for _, ev := range r {
		entity := ev.EntityKind
		if ev.EntityID != 0 {
			entity += " " + itoa(ev.EntityID)
		}
		out = append(out, []string{itoa(ev.ID), stamp(ev.TS), ev.Type, entity})
	}
	return out
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
