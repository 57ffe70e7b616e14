package cli

import (
	"strings"

	"listboard/internal/model"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "List and edit notes",
	}
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesShowCmd(app))
	cmd.AddCommand(newNotesAddCmd(app))
	cmd.AddCommand(newNotesEditCmd(app))
	cmd.AddCommand(newNotesRmCmd(app))
	cmd.AddCommand(newNotesMoveCmd(app))
	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			notes, err := s.Notes().List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, model.VisibleNotes(notes, query))
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Only notes whose title or content contains this text")
	return cmd
}

func newNotesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			n, err := s.Notes().Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, storeErr("note", id, err))
			}
			return writeOut(cmd, app, n)
		},
	}
}

func newNotesAddCmd(app *App) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a note to the end of the list",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			n, err := s.Notes().Create(cmd.Context(), model.Note{Title: strings.TrimSpace(title), Content: content})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, n)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Note title (required)")
	cmd.Flags().StringVar(&content, "content", "", "Note content (markdown)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesEditCmd(app *App) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "edit <note-id>",
		Short: "Change a note's title or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			n, err := s.Notes().Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, storeErr("note", id, err))
			}
			if cmd.Flags().Changed("title") {
				n.Title = strings.TrimSpace(title)
			}
			if cmd.Flags().Changed("content") {
				n.Content = content
			}
			n, err = s.Notes().Update(cmd.Context(), n)
			if err != nil {
				return writeErr(cmd, storeErr("note", id, err))
			}
			return writeOut(cmd, app, n)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	return cmd
}

func newNotesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <note-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			if err := s.Notes().Delete(cmd.Context(), id); err != nil {
				return writeErr(cmd, storeErr("note", id, err))
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

func newNotesMoveCmd(app *App) *cobra.Command {
	var onto string
	cmd := &cobra.Command{
		Use:   "move <note-id> --onto <note-id>",
		Short: "Move a note to another note's position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moved, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			target, err := parseID("note", onto)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			notes, err := moveOnto[model.Note](cmd.Context(), app, "note", s.Notes(), moved, target)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, notes)
		},
	}
	addMoveFlags(cmd, &onto)
	return cmd
}
