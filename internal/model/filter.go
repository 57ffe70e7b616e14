package model

import (
	"fmt"
	"sort"
	"strings"
)

// ImportanceFilter narrows the todo list to one importance level. The zero value shows all.
type ImportanceFilter string

const FilterAll ImportanceFilter = "ALL"

func ParseImportanceFilter(s string) (ImportanceFilter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	imp, err := ParseImportance(s)
	if err != nil {
		return "", fmt.Errorf("unknown filter: %s (want all|major|moderate|minor)", s)
	}
	return ImportanceFilter(imp), nil
}

// Next cycles ALL -> MAJOR -> MODERATE -> MINOR -> ALL.
func (f ImportanceFilter) Next() ImportanceFilter {
	switch f {
	case "", FilterAll:
		return ImportanceFilter(ImportanceMajor)
	case ImportanceFilter(ImportanceMajor):
		return ImportanceFilter(ImportanceModerate)
	case ImportanceFilter(ImportanceModerate):
		return ImportanceFilter(ImportanceMinor)
	default:
		return FilterAll
	}
}

func (f ImportanceFilter) Label() string {
	if f == "" || f == FilterAll {
		return "All"
	}
	return Importance(f).Label()
}

func (f ImportanceFilter) Match(t Todo) bool {
	if f == "" || f == FilterAll {
		return true
	}
	imp := t.Importance
	if imp == "" {
		imp = ImportanceMinor
	}
	return Importance(f) == imp
}

type CompletionSort string

const (
	SortNone            CompletionSort = "none"
	SortCompletedFirst  CompletionSort = "completed-first"
	SortIncompleteFirst CompletionSort = "incomplete-first"
)

func ParseCompletionSort(s string) (CompletionSort, error) {
	switch CompletionSort(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNone:
		return SortNone, nil
	case SortCompletedFirst:
		return SortCompletedFirst, nil
	case SortIncompleteFirst:
		return SortIncompleteFirst, nil
	default:
		return "", fmt.Errorf("unknown sort: %s (want none|completed-first|incomplete-first)", s)
	}
}

// Next cycles none -> completed-first -> incomplete-first -> none.
func (s CompletionSort) Next() CompletionSort {
	switch s {
	case "", SortNone:
		return SortCompletedFirst
	case SortCompletedFirst:
		return SortIncompleteFirst
	default:
		return SortNone
	}
}

// Active reports whether the sort changes display order away from stored order.
func (s CompletionSort) Active() bool {
	return s == SortCompletedFirst || s == SortIncompleteFirst
}

// VisibleTodos applies the importance filter and completion sort to an order-sorted list.
// The sort is stable, so todos with the same completion state keep their stored order.
func VisibleTodos(todos []Todo, f ImportanceFilter, s CompletionSort) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	if !s.Active() {
		return out
	}
	completedFirst := s == SortCompletedFirst
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsComplete == out[j].IsComplete {
			return false
		}
		if completedFirst {
			return out[i].IsComplete
		}
		return !out[i].IsComplete
	})
	return out
}

// VisibleNotes returns notes whose title or content contains query (case-insensitive).
func VisibleNotes(notes []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Note(nil), notes...)
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}
