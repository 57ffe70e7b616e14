package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print both lists as one document",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			snap, err := s.Snapshot(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"exportedAt": time.Now().UTC(),
				"notes":      snap.Notes,
				"todos":      snap.Todos,
			})
		},
	}
}
