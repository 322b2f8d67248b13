package script

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/udu-dev/udu/pkg/debug"
	"github.com/udu-dev/udu/pkg/log"
	"github.com/udu-dev/udu/pkg/report"
	"github.com/udu-dev/udu/pkg/udu"
	"github.com/udu-dev/udu/pkg/value"
)

// Outcome is the result of one timing step.
type Outcome struct {
	Step   int // 1-based position in the scenario
	Op     string
	Name   string
	Millis float64
}

// Runner executes scenarios against a Debugger.
type Runner struct {
	d    *udu.Debugger
	errs report.Sink

	// Sleep pauses a sleep step. It defaults to a timer honoring ctx.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewRunner creates a Runner. Failures go to the Debugger's error sink.
func NewRunner(d *udu.Debugger) *Runner {
	return &Runner{d: d, errs: d.Host().Errors, Sleep: sleep}
}

// Run executes every step in order and returns the outcomes of the timing
// steps that ran. Argument errors are reported, never returned; Run only
// fails when ctx is done.
func (r *Runner) Run(ctx context.Context, sc *Scenario) ([]Outcome, error) {
	debug.FunctionEnter("script.Run")
	defer debug.FunctionExit("script.Run")

	var outcomes []Outcome
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		out, ok, err := r.exec(ctx, step)
		if err != nil {
			return outcomes, err
		}
		if ok {
			out.Step = i + 1
			outcomes = append(outcomes, out)
		}
	}
	log.Debug("scenario finished", "name", sc.Name, "steps", len(sc.Steps), "timings", len(outcomes))
	return outcomes, nil
}

// exec runs one step. ok reports whether it produced a timing outcome.
func (r *Runner) exec(ctx context.Context, step Step) (out Outcome, ok bool, err error) {
	out.Op = step.Op
	args := step.Args

	switch step.Op {
	case OpLog, OpShow, OpPopup:
		v := arg(args, 0, value.Undefined)
		comment := value.ToString(arg(args, 1, ""))
		switch step.Op {
		case OpLog:
			r.d.Log(v, comment)
		case OpShow:
			r.d.Show(v, comment)
		default:
			r.d.Popup(v, comment)
		}
	case OpPopupReset:
		r.d.PopupReset()
	case OpObserver:
		r.d.Observer(arg(args, 0, value.Undefined))
	case OpStop:
		r.d.Stop()
	case OpResume:
		r.d.Resume()
	case OpSleep:
		d, valid := duration(arg(args, 0, value.Undefined))
		if !valid {
			r.fail(step.Op, report.CodeScriptSleep, nil)
			return out, false, nil
		}
		return out, false, r.Sleep(ctx, d)
	case OpPoint:
		if !r.timing() {
			return out, false, nil
		}
		name := arg(args, 0, "")
		if !r.check(step.Op, name, value.KindString, report.CodeRTTPoint1) {
			return out, false, nil
		}
		out.Name = value.ToString(name)
		out.Millis = r.d.Point(out.Name)
		return out, true, nil
	case OpStart:
		if !r.timing() {
			return out, false, nil
		}
		name, level := arg(args, 0, ""), arg(args, 1, 0)
		if !r.check(step.Op, name, value.KindString, report.CodeRTTStart1) ||
			!r.check(step.Op, level, value.KindNumber, report.CodeRTTStart2) {
			return out, false, nil
		}
		if !integral(level) {
			r.fail(step.Op, report.CodeRTTStart3, fmt.Errorf("level %v is not an integer", level))
			return out, false, nil
		}
		r.d.Start(value.ToString(name), value.ToInt(level))
	case OpFinish:
		if !r.timing() {
			return out, false, nil
		}
		level := arg(args, 0, 0)
		if !r.check(step.Op, level, value.KindNumber, report.CodeRTTFinish1) {
			return out, false, nil
		}
		if !integral(level) {
			r.fail(step.Op, report.CodeRTTFinish2, fmt.Errorf("level %v is not an integer", level))
			return out, false, nil
		}
		lvl := value.ToInt(level)
		exists := lvl >= 0 && lvl < r.d.RTT().Levels()
		out.Millis = r.d.Finish(lvl)
		return out, exists, nil
	case OpAverage:
		return r.average(ctx, step)
	default:
		r.fail(step.Op, report.CodeScriptOp, fmt.Errorf("op %q", step.Op))
	}
	return out, false, nil
}

func (r *Runner) average(ctx context.Context, step Step) (out Outcome, ok bool, err error) {
	out.Op = step.Op
	if !r.timing() {
		return out, false, nil
	}
	args := step.Args
	body, cycles := arg(args, 0, value.Undefined), arg(args, 1, value.Undefined)
	name, each := arg(args, 2, ""), arg(args, 3, false)

	if !r.check(step.Op, body, value.KindArray, report.CodeRTTAverage1) {
		return out, false, nil
	}
	steps, perr := parseSteps(body)
	if perr != nil {
		r.fail(step.Op, report.CodeRTTAverage1, perr)
		return out, false, nil
	}
	if !r.check(step.Op, cycles, value.KindNumber, report.CodeRTTAverage2) ||
		!r.check(step.Op, name, value.KindString, report.CodeRTTAverage3) ||
		!r.check(step.Op, each, value.KindBoolean, report.CodeRTTAverage4) {
		return out, false, nil
	}

	// The body runs inside the engine's loop, which cannot return an error;
	// the first one is kept and the remaining iterations do nothing.
	var bodyErr error
	fn := func() {
		if bodyErr != nil {
			return
		}
		for _, s := range steps {
			if _, _, bodyErr = r.exec(ctx, s); bodyErr != nil {
				return
			}
		}
	}
	out.Name = value.ToString(name)
	n := value.ToInt(cycles)
	out.Millis = r.d.Average(fn, n, out.Name, value.ToBool(each))
	if bodyErr != nil {
		return out, false, bodyErr
	}
	return out, n >= 1, nil
}

// timing reports whether timing steps are processed at all. Arguments of
// skipped steps are not checked.
func (r *Runner) timing() bool {
	return r.d.Running() && r.d.RTT().ClockAvailable()
}

func (r *Runner) check(op string, v any, want value.Kind, code report.Code) bool {
	if got := value.Classify(v); got != want {
		r.fail(op, code, fmt.Errorf("got %s, want %s", got, want))
		return false
	}
	return true
}

func (r *Runner) fail(op string, code report.Code, detail error) {
	r.errs.Report(code, report.Validation(op, code, detail))
}

func arg(args []any, i int, def any) any {
	if i < len(args) {
		return args[i]
	}
	return def
}

func integral(v any) bool {
	f := value.ToFloat(v)
	return f == math.Trunc(f)
}

// duration accepts a Go duration string such as "10ms" or a number of
// milliseconds.
func duration(v any) (time.Duration, bool) {
	switch value.Classify(v) {
	case value.KindString:
		d, err := time.ParseDuration(value.ToString(v))
		if err != nil || d < 0 {
			return 0, false
		}
		return d, true
	case value.KindNumber:
		ms := value.ToFloat(v)
		if ms < 0 {
			return 0, false
		}
		return time.Duration(ms * float64(time.Millisecond)), true
	default:
		return 0, false
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
