package reorder

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the moved or target item is not in the current snapshot.
	ErrNotFound = errors.New("item not found in list")

	// ErrNoOpMove means the gesture ended on its own origin or without a target.
	ErrNoOpMove = errors.New("no-op move")

	// ErrPersistence wraps failures of the item store's bulk reorder.
	ErrPersistence = errors.New("persisting order failed")
)

// Kind classifies a reorder error for logs and user-facing notices.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoOpMove):
		return "noop"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}
