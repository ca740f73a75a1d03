package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/bulkhead/internal/config"
	"github.com/Iron-Ham/bulkhead/internal/event"
	"github.com/Iron-Ham/bulkhead/internal/logging"
	"github.com/Iron-Ham/bulkhead/internal/report"
	"github.com/Iron-Ham/bulkhead/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive containment demo",
	Long: `Run the interactive containment demo: three panes, each wrapped in
its own boundary. Break the focused pane's update or view pass and watch the
other panes keep running, then retry the failed pane to bring it back.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Bool("auto-retry", false, "retry transient failures automatically")
	demoCmd.Flags().Bool("detail", false, "show failure detail in fallback views")
	_ = viper.BindPFlag("retry.auto", demoCmd.Flags().Lookup("auto-retry"))
	_ = viper.BindPFlag("fallback.show_detail", demoCmd.Flags().Lookup("detail"))
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logging to stderr would fight the alt screen, so the demo defaults to
	// a log file when none is configured.
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = filepath.Join(config.ConfigDir(), "bulkhead.log")
	}

	logger, err := logging.NewLogger(logFile, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	// Every capture, retry, and recovery lands in the structured log twice:
	// once from the boundary itself and once through the bus subscriber.
	// The demo keeps both wired to show the two observation paths.
	bus := event.NewBus()
	bus.SubscribeAll(func(e event.Event) {
		logger.With("source", "bus").Debug("lifecycle event", "type", e.EventType())
	})

	reporter := report.NewLogReporter(logger)

	app := tui.New(cfg, logger, bus, reporter)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
