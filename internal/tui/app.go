// Package tui implements the containment demo: a row of panes, each wrapped
// in its own boundary, with keys to break a pane's update or view pass and
// watch the rest of the tree keep running.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bulkhead/internal/config"
	"github.com/Iron-Ham/bulkhead/internal/event"
	"github.com/Iron-Ham/bulkhead/internal/logging"
	"github.com/Iron-Ham/bulkhead/internal/report"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	logger  *logging.Logger
}

// New creates a new TUI application
func New(cfg *config.Config, logger *logging.Logger, bus *event.Bus, reporter report.Reporter) *App {
	return &App{
		model:  NewModel(cfg, logger, bus, reporter),
		logger: logger,
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Forward termination signals as a quit message so the alt screen is
	// restored before the process exits.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()

	signal.Stop(sigChan)

	return err
}
