package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/composite/internal/config"
	"github.com/Iron-Ham/composite/internal/logging"
	"github.com/Iron-Ham/composite/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive composite demo",
	Long: `Launch a terminal UI that drives a composite of three steps.

Keys:
  1-3    enable or disable a step
  m      cycle the can-execute mode
  enter  run the composite
  c      cancel the running composite
  d      dispose the composite
  ?      toggle help
  q      quit`,
	RunE: runTUI,
}

var tuiTheme string

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiTheme, "theme", "", "Color theme: default, mono (default from config)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if tuiTheme != "" {
		cfg.TUI.Theme = tuiTheme
		if errs := cfg.Validate(); len(errs) > 0 {
			return config.ValidationErrors(errs)
		}
	}

	// Logging to stderr would corrupt the alternate screen
	logger := logging.NopLogger()
	if cfg.Logging.Enabled && cfg.Logging.Dir != "" {
		if logger, err = newLogger(cfg); err != nil {
			return err
		}
	}
	defer func() { _ = logger.Close() }()

	app, err := tui.New(tui.OptionsFromConfig(cfg, logger))
	if err != nil {
		return err
	}
	return app.Run()
}
