package tui

import (
	"listboard/internal/logging"
	"listboard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store  *store.Store
	Config *store.GlobalConfig
	Log    logging.Logger
}

// Run starts the interactive TUI on the alt screen with mouse motion reporting, which
// the pointer drag needs, and focus reporting so a drag is cancelled on focus loss.
func Run(opts Options) error {
	noColor := opts.Config != nil && opts.Config.TUI != nil && opts.Config.TUI.NoColor
	applyThemePreference()
	applyColorProfilePreference(noColor)

	m := newAppModel(opts.Store, opts.Config, opts.Log)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus()).Run()
	return err
}
