package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var kind string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the tail of the change log (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			evs, err := s.ReadEvents(cmd.Context(), kind, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, evs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max events to return (0 = all)")
	cmd.Flags().StringVar(&kind, "kind", "", "Only events for this entity kind (note|todo)")
	return cmd
}
