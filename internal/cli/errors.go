package cli

import (
	"errors"
	"fmt"
	"strconv"

	"listboard/internal/reorder"
	"listboard/internal/store"
)

type notFoundError struct {
	kind string
	id   int64
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.kind, e.id)
}

func errNotFound(kind string, id int64) error {
	return notFoundError{kind: kind, id: id}
}

// storeErr maps store lookups onto the CLI's not-found error.
func storeErr(kind string, id int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound(kind, id)
	}
	return err
}

// reorderErr explains a reorder that was not applied.
type reorderErr struct {
	kind string
	err  error
}

func (e reorderErr) Error() string {
	return fmt.Sprintf("reorder %s: %s: %v", e.kind, reorder.Kind(e.err), e.err)
}

func (e reorderErr) Unwrap() error { return e.err }

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", kind, s)
	}
	return id, nil
}
