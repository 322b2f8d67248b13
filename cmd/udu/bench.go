package main

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/udu-dev/udu/pkg/debug"
	"github.com/udu-dev/udu/pkg/exitcodes"
	"github.com/udu-dev/udu/pkg/rtt"
)

func newBenchCmd() *cobra.Command {
	var (
		cycles int
		name   string
		each   bool
		output bool
	)
	cmd := &cobra.Command{
		Use:   "bench [flags] -- <command> [args...]",
		Short: "Average the run time of a command",
		Long: fmt.Sprintf(`Run a command repeatedly and print its average run time.

Cycles above %d are capped. A warm-up of 10%% extra leading runs is
discarded.`, rtt.MaxCycles),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cycles < 1 {
				return &exitcodes.ExitCodeError{
					Code: exitcodes.ExitInputConfigurationError,
					Err:  fmt.Errorf("--cycles must be positive, got %d", cycles),
				}
			}
			if name == "" {
				name = args[0]
			}

			var (
				runs     int
				firstErr error
			)
			fn := func() {
				runs++
				if firstErr != nil {
					return
				}
				c := exec.CommandContext(cmd.Context(), args[0], args[1:]...) //nolint:gosec // running the user's command is the point
				c.Stdout, c.Stderr = io.Discard, io.Discard
				if output {
					c.Stdout, c.Stderr = cmd.OutOrStdout(), cmd.ErrOrStderr()
				}
				if err := c.Run(); err != nil {
					firstErr = err
				}
			}

			d := newDebugger(cmd)
			mean := d.Average(fn, cycles, name, each)
			debug.Printf("bench: %d runs of %v", runs, args)
			if firstErr != nil {
				code := exitcodes.ExitCommandFailed
				var execErr *exec.Error
				if errors.As(firstErr, &execErr) {
					code = exitcodes.ExitInputFileNotFound
				}
				return &exitcodes.ExitCodeError{Code: code, Err: fmt.Errorf("command %q failed: %w", args[0], firstErr)}
			}

			if runs == 0 {
				// Stopped by the "run" setting; the banner already said so.
				return nil
			}
			kept := min(cycles, rtt.MaxCycles)
			fmt.Fprintf(cmd.OutOrStdout(), "%s runs (%s discarded), mean %s ms\n",
				humanize.Comma(int64(runs)),
				humanize.Comma(int64(runs-kept)),
				humanize.CommafWithDigits(mean, settings.Performance.DecimalPlaces))
			return nil
		},
	}
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 10, "number of timed runs")
	cmd.Flags().StringVar(&name, "name", "", "label of the measurement (default is the command)")
	cmd.Flags().BoolVar(&each, "each", false, "print the time of every run")
	cmd.Flags().BoolVar(&output, "output", false, "pass the command's output through")
	return cmd
}
