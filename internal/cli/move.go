package cli

import (
	"context"

	"listboard/internal/logging"
	"listboard/internal/reorder"

	"github.com/spf13/cobra"
)

// moveOnto runs one gesture (moved dropped onto target) through the same coordinator the
// TUI uses and returns the resulting list.
func moveOnto[T reorder.Orderable[T, int64]](ctx context.Context, app *App, kind string, s reorder.Store[T], moved, target int64) ([]T, error) {
	ctx = logging.WithArgs(ctx, "source", "cli")
	c := reorder.NewCoordinator[T, int64](kind+"s", s, app.log)
	out := c.OnGestureComplete(ctx, moved, target)
	switch out.Kind {
	case reorder.OutcomeReordered:
		return out.Items, nil
	case reorder.OutcomeNoOp:
		return s.List(ctx)
	default:
		return nil, reorderErr{kind: kind, err: out.Err}
	}
}

func addMoveFlags(cmd *cobra.Command, onto *string) {
	cmd.Flags().StringVar(onto, "onto", "", "Id of the item whose position the moved item takes (required)")
	_ = cmd.MarkFlagRequired("onto")
}
