package cli

import (
	"listboard/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var opt publish.WriteOptions
	var toDir string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write both lists as Markdown (derived files, not canonical)",
		Args:  cobra.NoArgs,
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
			res, err := publish.Write(snap, toDir, opt)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("published", "dir", toDir, "files", len(res.Written))
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().BoolVar(&opt.HTML, "html", false, "Also write index.html")
	cmd.Flags().BoolVar(&opt.Completed, "completed", false, "Include completed todos")
	cmd.Flags().BoolVar(&opt.Overwrite, "overwrite", false, "Replace existing files")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
