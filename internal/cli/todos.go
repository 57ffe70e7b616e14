package cli

import (
	"strings"

	"listboard/internal/model"

	"github.com/spf13/cobra"
)

func newTodosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo"},
		Short:   "List and edit todos",
	}
	cmd.AddCommand(newTodosListCmd(app))
	cmd.AddCommand(newTodosShowCmd(app))
	cmd.AddCommand(newTodosAddCmd(app))
	cmd.AddCommand(newTodosEditCmd(app))
	cmd.AddCommand(newTodosCheckCmd(app))
	cmd.AddCommand(newTodosRmCmd(app))
	cmd.AddCommand(newTodosMoveCmd(app))
	return cmd
}

func newTodosListCmd(app *App) *cobra.Command {
	var filter, sortBy string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseImportanceFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			srt, err := model.ParseCompletionSort(sortBy)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			todos, err := s.Todos().List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, model.VisibleTodos(todos, f, srt))
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "Importance filter (all|major|moderate|minor)")
	cmd.Flags().StringVar(&sortBy, "sort", "none", "Completion sort (none|completed-first|incomplete-first)")
	return cmd
}

func newTodosShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <todo-id>",
		Short: "Show one todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("todo", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			t, err := s.Todos().Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, storeErr("todo", id, err))
			}
			return writeOut(cmd, app, t)
		},
	}
}

func newTodosAddCmd(app *App) *cobra.Command {
	var description, importance string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a todo to the end of the list",
		RunE: func(cmd *cobra.Command, args []string) error {
			imp, err := model.ParseImportance(importance)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			t, err := s.Todos().Create(cmd.Context(), model.Todo{Description: strings.TrimSpace(description), Importance: imp})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, t)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Todo description (required)")
	cmd.Flags().StringVar(&importance, "importance", "minor", "Importance (major|moderate|minor)")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newTodosEditCmd(app *App) *cobra.Command {
	var description, importance string
	cmd := &cobra.Command{
		Use:   "edit <todo-id>",
		Short: "Change a todo's description or importance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("todo", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			t, err := s.Todos().Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, storeErr("todo", id, err))
			}
			if cmd.Flags().Changed("description") {
				t.Description = strings.TrimSpace(description)
			}
			if cmd.Flags().Changed("importance") {
				imp, err := model.ParseImportance(importance)
				if err != nil {
					return writeErr(cmd, err)
				}
				t.Importance = imp
			}
			t, err = s.Todos().Update(cmd.Context(), t)
			if err != nil {
				return writeErr(cmd, storeErr("todo", id, err))
			}
			return writeOut(cmd, app, t)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&importance, "importance", "", "New importance (major|moderate|minor)")
	return cmd
}

func newTodosCheckCmd(app *App) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "check <todo-id>",
		Short: "Mark a todo complete (or incomplete with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("todo", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			t, err := s.Todos().Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, storeErr("todo", id, err))
			}
			t.IsComplete = !undo
			t, err = s.Todos().Update(cmd.Context(), t)
			if err != nil {
				return writeErr(cmd, storeErr("todo", id, err))
			}
			return writeOut(cmd, app, t)
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark incomplete instead")
	return cmd
}

func newTodosRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <todo-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("todo", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			if err := s.Todos().Delete(cmd.Context(), id); err != nil {
				return writeErr(cmd, storeErr("todo", id, err))
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

func newTodosMoveCmd(app *App) *cobra.Command {
	var onto string
	cmd := &cobra.Command{
		Use:   "move <todo-id> --onto <todo-id>",
		Short: "Move a todo to another todo's position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moved, err := parseID("todo", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			target, err := parseID("todo", onto)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			todos, err := moveOnto[model.Todo](cmd.Context(), app, "todo", s.Todos(), moved, target)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, todos)
		},
	}
	addMoveFlags(cmd, &onto)
	return cmd
}
