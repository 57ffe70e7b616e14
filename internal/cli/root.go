package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"listboard/internal/format"
	"listboard/internal/logging"
	"listboard/internal/model"
	"listboard/internal/store"
	"listboard/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir      string
	Format   string
	Pretty   bool
	LogLevel string

	cfg *store.GlobalConfig
	log logging.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "listboard",
		Short:        "Notes and todos with drag-and-drop ordering (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  listboard

  # Scriptable commands
  listboard notes add --title "Groceries"
  listboard todos list --filter major --format table

  # Reorder: move todo 4 to where todo 1 is
  listboard todos move 4 --onto 1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, fmt.Errorf("load config: %w", err))
		}
		app.cfg = cfg
		lvl := app.LogLevel
		if lvl == "" {
			lvl = cfg.LogLevel
		}
		level, err := logging.ParseLevel(lvl)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = logging.New(cmd.ErrOrStderr(), level)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Data dir holding listboard.sqlite (default: $LISTBOARD_DIR, config dataDir, ~/.listboard/data)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LISTBOARD_FORMAT", "json"), "Output format (json|edn|table)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("LISTBOARD_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newTodosCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := openStore(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	log, closer, err := tuiLogger(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if closer != nil {
		defer closer.Close()
	}
	return tui.Run(tui.Options{Store: s, Config: app.cfg, Log: log})
}

// tuiLogger sends logs to a file since bubbletea owns the terminal.
func tuiLogger(app *App) (logging.Logger, io.Closer, error) {
	path := envOr("LISTBOARD_LOG", app.cfg.LogFile)
	if strings.TrimSpace(path) == "" {
		return logging.Discard(), nil, nil
	}
	lvl := app.LogLevel
	if lvl == "" {
		lvl = app.cfg.LogLevel
	}
	level, err := logging.ParseLevel(lvl)
	if err != nil {
		return nil, nil, err
	}
	l, c, err := logging.OpenFile(path, level)
	if err != nil {
		return nil, nil, err
	}
	return l, c, nil
}

func openStore(ctx context.Context, app *App) (*store.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dir, err := store.ResolveDataDir(app.Dir, app.cfg)
	if err != nil {
		return nil, err
	}
	app.Dir = dir
	return store.Open(ctx, dir, app.log)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	if strings.EqualFold(strings.TrimSpace(app.Format), "table") {
		if t, ok := tabular(v); ok {
			return format.WriteTable(cmd.OutOrStdout(), t)
		}
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func tabular(v any) (format.Tabular, bool) {
	switch t := v.(type) {
	case format.Tabular:
		return t, true
	case []model.Note:
		return noteRows(t), true
	case model.Note:
		return noteRows{t}, true
	case []model.Todo:
		return todoRows(t), true
	case model.Todo:
		return todoRows{t}, true
	case []model.Event:
		return eventRows(t), true
	default:
		return nil, false
	}
}
