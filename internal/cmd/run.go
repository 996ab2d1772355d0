package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/composite/internal/command"
	"github.com/Iron-Ham/composite/internal/config"
	"github.com/Iron-Ham/composite/internal/errors"
)

var runCmd = &cobra.Command{
	Use:   "run [names...]",
	Short: "Execute a composite of named steps",
	Long: `Build a composite with one step per name and execute it once.

Each step prints its name when it runs. Repeating a name reuses the same
step, so the composite holds it only once.

Examples:
  # Run three steps in order
  composite run fetch build deploy

  # Make a step fail and see the run stop there
  composite run fetch build deploy --fail build

  # Disable a step and let "any" mode skip it
  composite run fetch build deploy --disable build --mode any

  # Cancel the run once a step has finished
  composite run fetch build deploy --cancel-after fetch`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

var (
	runMode        string
	runFail        []string
	runDisable     []string
	runCancelAfter string
	runTimeout     time.Duration
	runStepDelay   time.Duration
	runForce       bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runMode, "mode", "m", "", "Can-execute mode: all, any, first (default from config)")
	runCmd.Flags().StringSliceVar(&runFail, "fail", nil, "Steps that return an error")
	runCmd.Flags().StringSliceVar(&runDisable, "disable", nil, "Steps whose guard reports false")
	runCmd.Flags().StringVar(&runCancelAfter, "cancel-after", "", "Cancel the run after this step finishes")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Cancel the run after this long (default from config)")
	runCmd.Flags().DurationVar(&runStepDelay, "step-delay", 0, "How long each step works")
	runCmd.Flags().BoolVar(&runForce, "force", false, "Execute even when the composite cannot execute")
}

// step is a named asynchronous command used by the run command.
type step struct {
	name    string
	fail    bool
	enabled bool
	delay   time.Duration
	out     io.Writer
	onDone  func(name string)
}

func (s *step) ExecuteAsync(ctx context.Context, _ any) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if s.fail {
		fmt.Fprintf(s.out, "  ✗ %s\n", s.name)
		return fmt.Errorf("step %s failed", s.name)
	}
	fmt.Fprintf(s.out, "  ✓ %s\n", s.name)
	if s.onDone != nil {
		s.onDone(s.name)
	}
	return nil
}

func (s *step) CanExecute(any) bool {
	return s.enabled
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	mode := cfg.Composite.ParsedMode()
	if runMode != "" {
		if mode, err = command.ParseMode(runMode); err != nil {
			return err
		}
	}
	timeout := cfg.Composite.ExecuteTimeout()
	if cmd.Flags().Changed("timeout") {
		timeout = runTimeout
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out := cmd.OutOrStdout()
	steps := make(map[string]*step)
	children := make([]command.Command, 0, len(args))
	for _, name := range args {
		s, ok := steps[name]
		if !ok {
			s = &step{
				name:    name,
				fail:    slices.Contains(runFail, name),
				enabled: !slices.Contains(runDisable, name),
				delay:   runStepDelay,
				out:     out,
			}
			if name == runCancelAfter {
				s.onDone = func(string) { cancel() }
			}
			steps[name] = s
		}
		children = append(children, s)
	}

	comp, err := command.New(children,
		command.WithName(cfg.Composite.Name),
		command.WithMode(mode),
		command.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer comp.Dispose()

	canExecute := comp.CanExecute(nil)
	fmt.Fprintf(out, "%s: %d steps, mode %s\n", comp.Name(), comp.Count(), comp.Mode())
	fmt.Fprintf(out, "can execute: %v\n", canExecute)
	if !canExecute && !runForce {
		return fmt.Errorf("%s cannot execute in %s mode (use --force to run anyway)", comp.Name(), comp.Mode())
	}

	start := time.Now()
	err = comp.ExecuteAsync(ctx, nil)
	elapsed := time.Since(start).Round(time.Millisecond)

	switch {
	case err == nil:
		fmt.Fprintf(out, "result: ok (%s)\n", elapsed)
		return nil
	case errors.IsCanceled(err):
		fmt.Fprintf(out, "result: canceled (%s)\n", elapsed)
		return nil
	default:
		fmt.Fprintf(out, "result: failed (%s)\n", elapsed)
		return err
	}
}
