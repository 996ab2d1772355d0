package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/composite/internal/config"
	"github.com/Iron-Ham/composite/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "composite",
	Short: "Run and explore composite commands",
	Long: `Composite groups child commands behind a single command with a
configurable can-execute rule (all, any, first), sequential cancellable
execution, and change notifications.

Use "composite run" for scripted runs and "composite tui" for an
interactive demo.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/composite/config.yaml)")
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
	viper.SetEnvPrefix("COMPOSITE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., COMPOSITE_COMPOSITE_MODE for composite.mode
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newLogger creates the logger described by cfg. A disabled logger
// discards everything.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
}
