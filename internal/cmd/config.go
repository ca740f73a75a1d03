package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/bulkhead/internal/config"
	"github.com/Iron-Ham/bulkhead/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify bulkhead configuration",
	Long: `View or modify bulkhead configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  bulkhead config set retry.auto true
  bulkhead config set retry.max_attempts 5
  bulkhead config set fallback.show_detail true

Valid keys:
  fallback.title       - Fallback view heading
  fallback.message     - Fallback view explanation text
  fallback.show_detail - Show panic message and provenance (true/false)
  retry.auto           - Retry transient failures automatically (true/false)
  retry.max_attempts   - Auto-retry budget per failure run
  retry.delay_ms       - Base delay before an auto-retry, in milliseconds
  retry.backoff        - Double the delay per attempt (true/false)
  logging.level        - Log level: DEBUG, INFO, WARN, ERROR
  logging.file         - Log file path
  tui.theme            - Color theme: default, mono
  tui.tick_ms          - Demo tick interval in milliseconds`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/bulkhead/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "fallback:")
	fmt.Fprintf(out, "  title: %s\n", cfg.Fallback.Title)
	fmt.Fprintf(out, "  message: %s\n", cfg.Fallback.Message)
	fmt.Fprintf(out, "  show_detail: %v\n", cfg.Fallback.ShowDetail)

	fmt.Fprintln(out, "retry:")
	fmt.Fprintf(out, "  auto: %v\n", cfg.Retry.Auto)
	fmt.Fprintf(out, "  max_attempts: %d\n", cfg.Retry.MaxAttempts)
	fmt.Fprintf(out, "  delay_ms: %d\n", cfg.Retry.DelayMs)
	fmt.Fprintf(out, "  backoff: %v\n", cfg.Retry.Backoff)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  file: %s\n", cfg.Logging.File)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  tick_ms: %d\n", cfg.TUI.TickMs)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	validKeys := map[string]string{
		"fallback.title":       "string",
		"fallback.message":     "string",
		"fallback.show_detail": "bool",
		"retry.auto":           "bool",
		"retry.max_attempts":   "int",
		"retry.delay_ms":       "int",
		"retry.backoff":        "bool",
		"logging.level":        "string",
		"logging.file":         "string",
		"tui.theme":            "string",
		"tui.tick_ms":          "int",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'bulkhead config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		if key == "logging.level" && logging.ParseLevel(value) != strings.ToUpper(value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(logging.ValidLevels(), ", "))
		}
		if key == "tui.theme" && value != "default" && value != "mono" {
			return fmt.Errorf("invalid value for %s: %s\nValid options: default, mono", key, value)
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)

	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'bulkhead config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configContent := `# Bulkhead Configuration

# Substitute view shown for a failed pane
fallback:
  title: "Something went wrong"
  message: "This panel hit an error. The rest of the app is unaffected."
  # Show the panic message, provenance, and stack tail in the fallback
  show_detail: false

# Optional auto-retry of transient failures. Manual retry always works.
retry:
  auto: false
  max_attempts: 3
  delay_ms: 1000
  backoff: true

logging:
  # DEBUG, INFO, WARN, ERROR
  level: INFO
  # Empty logs to stderr; the demo substitutes a file under the config dir
  file: ""

tui:
  # default, mono
  theme: default
  tick_ms: 1000
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
	return nil
}
