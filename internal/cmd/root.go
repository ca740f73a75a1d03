package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/bulkhead/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "bulkhead",
	Short: "Error containment boundaries for terminal UIs",
	Long: `Bulkhead wraps parts of a Bubbletea model tree in containment
boundaries: a panic during a pane's init, update, or view pass is captured,
the pane is swapped for a fallback view, and the rest of the tree keeps
running until the failed pane is retried.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/bulkhead/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BULKHEAD")
	// Replace dots with underscores for nested keys in env vars
	// e.g., BULKHEAD_RETRY_MAX_ATTEMPTS for retry.max_attempts
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
