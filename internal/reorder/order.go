// Package reorder holds the ordered-list engine shared by every reorderable list:
// the pure permutation over dense integer orders and the coordinator that turns a
// completed drag gesture into exactly one bulk persistence call.
package reorder

import (
	"cmp"
	"fmt"
	"slices"
)

// Orderable is implemented by list items. ID must be stable and unique within a list;
// WithOrder returns a copy of the item carrying the given order.
type Orderable[T any, ID comparable] interface {
	ItemID() ID
	ItemOrder() int
	WithOrder(order int) T
}

type ordered interface {
	ItemOrder() int
}

// SortByOrder returns a copy of list sorted by order, ties broken by id.
func SortByOrder[T Orderable[T, ID], ID cmp.Ordered](list []T) []T {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b T) int {
		if c := cmp.Compare(a.ItemOrder(), b.ItemOrder()); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemID(), b.ItemID())
	})
	return out
}

// IndexOf returns the position of id in list, or -1.
func IndexOf[T Orderable[T, ID], ID comparable](list []T, id ID) int {
	for i := range list {
		if list[i].ItemID() == id {
			return i
		}
	}
	return -1
}

// Move returns a copy of list with the element at from removed and reinserted at to.
// Elements strictly between the two positions shift by one slot toward from.
func Move[T any](list []T, from, to int) []T {
	out := slices.Clone(list)
	if from < 0 || from >= len(out) || from == to {
		return out
	}
	if to < 0 {
		to = 0
	}
	if to > len(out)-1 {
		to = len(out) - 1
	}
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, moved)
}

// Renumber assigns order = index to every item, in sequence order.
func Renumber[T interface{ WithOrder(int) T }](list []T) []T {
	out := make([]T, len(list))
	for i, it := range list {
		out[i] = it.WithOrder(i)
	}
	return out
}

// Compute moves movedID onto targetID's position and renumbers the result densely.
//
// list is a snapshot; it is sorted by order before positions are taken and is never
// mutated. movedID == targetID returns the sorted snapshot with its orders untouched.
// Either id missing yields ErrNotFound.
func Compute[T Orderable[T, ID], ID cmp.Ordered](list []T, movedID, targetID ID) ([]T, error) {
	sorted := SortByOrder[T, ID](list)
	oldIndex := IndexOf(sorted, movedID)
	if oldIndex < 0 {
		return nil, fmt.Errorf("%w: moved item %v", ErrNotFound, movedID)
	}
	newIndex := IndexOf(sorted, targetID)
	if newIndex < 0 {
		return nil, fmt.Errorf("%w: target item %v", ErrNotFound, targetID)
	}
	if oldIndex == newIndex {
		return sorted, nil
	}
	return Renumber(Move(sorted, oldIndex, newIndex)), nil
}

// CheckDense verifies that the orders of list, taken in sequence, are exactly 0..n-1.
func CheckDense[T ordered](list []T) error {
	for i, it := range list {
		if it.ItemOrder() != i {
			return fmt.Errorf("order gap at position %d: found order %d", i, it.ItemOrder())
		}
	}
	return nil
}
