package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/udu-dev/udu/pkg/decode"
	"github.com/udu-dev/udu/pkg/exitcodes"
	"github.com/udu-dev/udu/pkg/report"
	"github.com/udu-dev/udu/pkg/script"
	"github.com/udu-dev/udu/pkg/udu"
)

func newRunCmd() *cobra.Command {
	var (
		timeout time.Duration
		summary bool
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run an instrumentation scenario",
		Long: `Run a YAML or JSON scenario of debugger calls:

  name: startup
  steps:
    - op: start
      args: ["boot", 0]
    - op: sleep
      args: ["20ms"]
    - op: finish

Operations: log, show, popup, popupReset, observer, point, start, finish,
average, sleep, stop, resume. Wrongly typed arguments are reported and the
step is skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(AppFs, args[0])
			if err != nil {
				return err
			}

			b := newBinding(cmd)
			var failures int
			logged := b.Errors
			b.Errors = report.SinkFunc(func(code report.Code, err error) {
				failures++
				logged.Report(code, err)
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			d := udu.New(settings, b)
			outcomes, err := script.NewRunner(d).Run(ctx, sc)
			flushOverlay(d.Host())
			if err != nil {
				return &exitcodes.ExitCodeError{Code: exitcodes.ExitGeneralRuntimeError, Err: fmt.Errorf("scenario %q stopped: %w", sc.Name, err)}
			}
			if summary {
				printSummary(cmd, d, outcomes)
			}
			if strict && failures > 0 {
				return &exitcodes.ExitCodeError{
					Code: exitcodes.ExitScenarioError,
					Err:  fmt.Errorf("%d step(s) reported errors", failures),
				}
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "stop the scenario after this long (0 means no limit)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a table of timing results")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a step reports an error")
	return cmd
}

func loadScenario(fs afero.Fs, path string) (*script.Scenario, error) {
	sc, err := script.Load(fs, path)
	switch {
	case err == nil:
		return sc, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitInputFileNotFound, Err: err}
	case errors.Is(err, decode.ErrUnknownFormat):
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitInputConfigurationError, Err: err}
	case errors.Is(err, script.ErrInvalidScenario):
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitScenarioError, Err: err}
	default:
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitDecodeError, Err: err}
	}
}

func printSummary(cmd *cobra.Command, d *udu.Debugger, outcomes []script.Outcome) {
	r := d.Settings().Renderer()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tOP\tNAME\tMS")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.Step, o.Op, o.Name, r.CorrectDecimals(o.Millis))
	}
	_ = w.Flush()
}
