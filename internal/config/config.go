package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/composite/internal/command"
	"github.com/spf13/viper"
)

// Config represents the complete configuration
type Config struct {
	Composite CompositeConfig `mapstructure:"composite" yaml:"composite"`
	TUI       TUIConfig       `mapstructure:"tui" yaml:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// CompositeConfig controls composites built by the CLI and TUI
type CompositeConfig struct {
	// Mode is the can-execute mode: "all", "any", or "first" (default: "all")
	Mode string `mapstructure:"mode" yaml:"mode"`
	// Name tags log entries for the composite (default: "composite")
	Name string `mapstructure:"name" yaml:"name"`
	// ExecuteTimeoutMs bounds a single execution run in milliseconds (0 = no limit)
	ExecuteTimeoutMs int `mapstructure:"execute_timeout_ms" yaml:"execute_timeout_ms"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme: "default" or "mono" (default: "default")
	Theme string `mapstructure:"theme" yaml:"theme"`
	// ShowHelp shows the key binding help footer (default: true)
	ShowHelp bool `mapstructure:"show_help" yaml:"show_help"`
	// AsyncDelayMs is how long the demo's asynchronous child works, in milliseconds (default: 800)
	AsyncDelayMs int `mapstructure:"async_delay_ms" yaml:"async_delay_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory for composite.log; empty writes to stderr
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Composite: CompositeConfig{
			Mode:             "all",
			Name:             "composite",
			ExecuteTimeoutMs: 0, // No limit by default
		},
		TUI: TUIConfig{
			Theme:        "default",
			ShowHelp:     true,
			AsyncDelayMs: 800,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// ParsedMode returns the configured mode, falling back to command.ModeAll
// for values Validate would reject.
func (c *CompositeConfig) ParsedMode() command.Mode {
	mode, err := command.ParseMode(c.Mode)
	if err != nil {
		return command.ModeAll
	}
	return mode
}

// ExecuteTimeout returns the execution timeout as a time.Duration (0 means disabled)
func (c *CompositeConfig) ExecuteTimeout() time.Duration {
	return time.Duration(c.ExecuteTimeoutMs) * time.Millisecond
}

// AsyncDelay returns the demo async delay as a time.Duration
func (c *TUIConfig) AsyncDelay() time.Duration {
	return time.Duration(c.AsyncDelayMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Composite defaults
	viper.SetDefault("composite.mode", defaults.Composite.Mode)
	viper.SetDefault("composite.name", defaults.Composite.Name)
	viper.SetDefault("composite.execute_timeout_ms", defaults.Composite.ExecuteTimeoutMs)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)
	viper.SetDefault("tui.async_delay_ms", defaults.TUI.AsyncDelayMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "composite")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".composite"
	}
	return filepath.Join(home, ".config", "composite")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
