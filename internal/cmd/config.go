package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/composite/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify composite configuration",
	Long: `View or modify composite configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration as YAML",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  composite config set composite.mode any
  composite config set tui.theme mono
  composite config set logging.level debug

Valid keys:
  composite.mode               - Can-execute mode (all, any, first)
  composite.name               - Name used in log entries
  composite.execute_timeout_ms - Run timeout in milliseconds (0 = none)
  tui.theme                    - Color theme (default, mono)
  tui.show_help                - Show key help (true/false)
  tui.async_delay_ms           - Demo async step duration in milliseconds
  logging.enabled              - Enable logging (true/false)
  logging.level                - Log level (debug, info, warn, error)
  logging.dir                  - Log directory (empty = stderr)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/composite/config.yaml with all available options.`,
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

// configKeyTypes lists the keys accepted by "config set" and their kinds.
var configKeyTypes = map[string]string{
	"composite.mode":               "string",
	"composite.name":               "string",
	"composite.execute_timeout_ms": "int",
	"tui.theme":                    "string",
	"tui.show_help":                "bool",
	"tui.async_delay_ms":           "int",
	"logging.enabled":              "bool",
	"logging.level":                "string",
	"logging.dir":                  "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// parseConfigValue converts value to the kind registered for key and
// checks it against the config validator.
func parseConfigValue(key, value string) (any, error) {
	keyType, ok := configKeyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'composite config set --help' to see valid keys", key)
	}

	var typedValue any
	switch keyType {
	case "string":
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		typedValue = intVal
	}

	// Validate the candidate against a copy of the current settings
	candidate := viper.New()
	if err := candidate.MergeConfigMap(viper.AllSettings()); err != nil {
		return nil, err
	}
	candidate.Set(key, typedValue)
	var cfg config.Config
	if err := candidate.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		idx := slices.IndexFunc(errs, func(e config.ValidationError) bool { return e.Field == key })
		if idx >= 0 {
			return nil, fmt.Errorf("invalid value for %s: %s", key, errs[idx].Message)
		}
	}
	return typedValue, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	typedValue, err := parseConfigValue(key, args[1])
	if err != nil {
		return err
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

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'composite config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to encode default configuration: %w", err)
	}
	content := "# Composite configuration\n# Environment variables override these values: COMPOSITE_<SECTION>_<KEY>\n\n" + string(data)

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", configFile)
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: COMPOSITE_* (e.g., COMPOSITE_COMPOSITE_MODE)")
	return nil
}
