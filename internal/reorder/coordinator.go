package reorder

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"listboard/internal/logging"
)

// Store is the part of an item store the coordinator needs: the current snapshot and a
// bulk replacement of every item's order.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	BulkReorder(ctx context.Context, items []T) error
}

// Plan is a computed reorder that has not been persisted yet.
type Plan[T any, ID comparable] struct {
	Moved  ID
	Target ID
	// Items is the whole list in its new order with refreshed order fields.
	Items []T
}

type OutcomeKind int

const (
	OutcomeReordered OutcomeKind = iota
	// OutcomePlanned: the new order was handed to Defer and is not persisted yet.
	OutcomePlanned
	OutcomeNoOp
	OutcomeNotFound
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReordered:
		return "reordered"
	case OutcomePlanned:
		return "planned"
	case OutcomeNoOp:
		return "noop"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

type Outcome[T any] struct {
	Kind  OutcomeKind
	Items []T
	Err   error
}

// Coordinator turns completed gestures into order updates on a store. It keeps no order
// between gestures: every plan starts from a fresh snapshot.
type Coordinator[T Orderable[T, ID], ID cmp.Ordered] struct {
	store Store[T]
	log   logging.Logger
	name  string

	// Defer, when set, receives each successful plan from GestureComplete instead of
	// the plan being committed inline. The receiver owns the Commit call.
	Defer func(Plan[T, ID])
	// OnOutcome, when set, receives the outcome of every GestureComplete call.
	OnOutcome func(Outcome[T])
}

func NewCoordinator[T Orderable[T, ID], ID cmp.Ordered](name string, store Store[T], log logging.Logger) *Coordinator[T, ID] {
	if log == nil {
		log = logging.Discard()
	}
	return &Coordinator[T, ID]{store: store, log: log, name: name}
}

// Plan reads the latest snapshot and computes the permutation for moving moved onto
// target. It returns ErrNoOpMove when the ids are equal and ErrNotFound when either
// id is missing from the snapshot.
func (c *Coordinator[T, ID]) Plan(ctx context.Context, moved, target ID) (Plan[T, ID], error) {
	if moved == target {
		return Plan[T, ID]{}, ErrNoOpMove
	}
	snap, err := c.store.List(ctx)
	if err != nil {
		return Plan[T, ID]{}, fmt.Errorf("read %s snapshot: %w", c.name, err)
	}
	items, err := Compute(snap, moved, target)
	if err != nil {
		return Plan[T, ID]{}, err
	}
	return Plan[T, ID]{Moved: moved, Target: target, Items: items}, nil
}

// Commit hands the planned order to the store in a single bulk call.
func (c *Coordinator[T, ID]) Commit(ctx context.Context, p Plan[T, ID]) error {
	if err := c.store.BulkReorder(ctx, p.Items); err != nil {
		c.log.WarnCtx(ctx, "reorder not persisted", "list", c.name, "moved", p.Moved, "target", p.Target, "err", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	c.log.InfoCtx(ctx, "reorder persisted", "list", c.name, "moved", p.Moved, "target", p.Target, "n", len(p.Items))
	return nil
}

// OnGestureComplete plans and commits synchronously. Planning errors are recovered here
// and reported in the outcome; they never reach the caller as a failure.
func (c *Coordinator[T, ID]) OnGestureComplete(ctx context.Context, moved, target ID) Outcome[T] {
	p, out, ok := c.prepare(ctx, moved, target)
	if !ok {
		return out
	}
	if err := c.Commit(ctx, p); err != nil {
		return Outcome[T]{Kind: OutcomeFailed, Items: p.Items, Err: err}
	}
	return Outcome[T]{Kind: OutcomeReordered, Items: p.Items}
}

// GestureComplete lets a Coordinator serve directly as a drag session's completer.
// With Defer set, a successful plan is handed over uncommitted.
func (c *Coordinator[T, ID]) GestureComplete(moved, target ID) {
	ctx := context.Background()
	var out Outcome[T]
	if c.Defer == nil {
		out = c.OnGestureComplete(ctx, moved, target)
	} else if p, o, ok := c.prepare(ctx, moved, target); ok {
		c.Defer(p)
		out = Outcome[T]{Kind: OutcomePlanned, Items: p.Items}
	} else {
		out = o
	}
	if c.OnOutcome != nil {
		c.OnOutcome(out)
	}
}

// prepare plans a move and turns planning errors into an outcome.
func (c *Coordinator[T, ID]) prepare(ctx context.Context, moved, target ID) (Plan[T, ID], Outcome[T], bool) {
	p, err := c.Plan(ctx, moved, target)
	switch {
	case err == nil:
		return p, Outcome[T]{}, true
	case errors.Is(err, ErrNoOpMove):
		return p, Outcome[T]{Kind: OutcomeNoOp}, false
	case errors.Is(err, ErrNotFound):
		c.log.WarnCtx(ctx, "reorder discarded", "list", c.name, "moved", moved, "target", target, "kind", Kind(err))
		return p, Outcome[T]{Kind: OutcomeNotFound, Err: err}, false
	default:
		c.log.ErrorCtx(ctx, "reorder planning failed", "list", c.name, "err", err)
		return p, Outcome[T]{Kind: OutcomeFailed, Err: err}, false
	}
}
