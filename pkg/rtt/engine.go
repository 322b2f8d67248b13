// Package rtt implements run-time testing: elapsed-time measurement with a
// flat point protocol, a nested start/finish protocol and an averaging loop.
//
// Failures never escape an Engine. Bad arguments and a missing clock are
// reported to the error sink and the operation returns 0.
package rtt

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/udu-dev/udu/pkg/debug"
	"github.com/udu-dev/udu/pkg/report"
	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/sink"
	"github.com/udu-dev/udu/pkg/value"
)

const (
	// MaxCycles caps the cycle count of Average.
	MaxCycles = 1000
	// WarmupRatio is the share of extra leading cycles Average discards.
	WarmupRatio = 0.1
)

// Clock reads the current time. benbjohnson/clock's Clock and Mock satisfy it.
type Clock interface {
	Now() time.Time
}

// Options configure an Engine.
type Options struct {
	// Clock is the time source. A nil Clock disables timing for the
	// lifetime of the Engine.
	Clock    Clock
	Messages sink.Sink
	Errors   report.Sink
	// Renderer supplies the newline string and duration formatting.
	Renderer *value.Renderer
	AppName  string
	// Permitted reports whether execution is globally allowed. Nil means
	// always.
	Permitted func() bool
}

type pointState struct {
	armed bool
	at    time.Time
}

// Engine is one instance of the timing state machine.
type Engine struct {
	clock     Clock
	msgs      sink.Sink
	errs      report.Sink
	r         *value.Renderer
	header    value.Message
	permitted func() bool

	mu      sync.Mutex
	running bool
	levels  LevelStore
	point   pointState
}

// New creates an Engine. A missing clock is reported once, here.
func New(opts Options) *Engine {
	e := &Engine{
		clock:     opts.Clock,
		msgs:      opts.Messages,
		errs:      opts.Errors,
		r:         opts.Renderer,
		header:    value.Header(opts.AppName),
		permitted: opts.Permitted,
	}
	if e.msgs == nil {
		e.msgs = sink.Discard
	}
	if e.errs == nil {
		e.errs = report.Discard
	}
	if e.r == nil {
		e.r = value.NewRenderer(value.DefaultOptions())
	}
	if e.permitted == nil {
		e.permitted = func() bool { return true }
	}

	e.running = e.permitted()
	if e.clock == nil {
		e.errs.Report(report.CodeConstructorClock, report.Unavailable("high-resolution clock"))
	}
	return e
}

// Running reports whether execution is currently allowed.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// ClockAvailable reports whether the Engine has a clock.
func (e *Engine) ClockAvailable() bool {
	return e.clock != nil
}

// Stop disables the Engine and clears all timer state.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	e.levels.Reset()
	e.point = pointState{}
}

// Resume re-enables the Engine if execution is globally permitted. Timer
// state is left untouched.
func (e *Engine) Resume() {
	if !e.permitted() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = true
}

// Levels returns the number of start/finish levels.
func (e *Engine) Levels() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.levels.Len()
}

// Point marks a control point and returns the milliseconds since the
// previous one, or 0 for the first point.
func (e *Engine) Point(name string) float64 {
	if !e.enabled() {
		return 0
	}

	e.mu.Lock()
	now := e.clock.Now()
	prev := e.point
	e.point = pointState{armed: true, at: now}
	e.mu.Unlock()

	msg := e.message()
	if !prev.armed {
		label := name
		if label == "" {
			label = "Starting point."
		}
		e.msgs.Emit(msg.
			Add("Point RTT | 0 ms | ", scheme.RoleSlave).
			Add(label, scheme.RoleMaster))
		return 0
	}

	elapsed := elapsedMs(prev.at, now)
	msg = msg.
		Add("Point RTT | ", scheme.RoleSlave).
		Add("+"+e.r.CorrectDecimals(elapsed)+" ms", scheme.RoleMaster)
	e.msgs.Emit(withName(msg, name))
	return elapsed
}

// Start records the current time in level, which may be at most one past
// the last existing level.
func (e *Engine) Start(name string, level int) {
	if !e.enabled() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	slot, err := e.levels.Set(level)
	if err != nil {
		e.errs.Report(report.CodeRTTStart3, report.Validation("Start", report.CodeRTTStart3, err))
		return
	}
	slot.Name = name
	slot.Time = e.clock.Now()
}

// Finish returns the milliseconds since Start was called for level. A named
// level also emits a message. The level is kept.
func (e *Engine) Finish(level int) float64 {
	if !e.enabled() {
		return 0
	}

	e.mu.Lock()
	slot := e.levels.Get(level)
	if slot == nil {
		err := WrapLevelRange(level, e.levels.Len())
		e.mu.Unlock()
		e.errs.Report(report.CodeRTTFinish2, report.Validation("Finish", report.CodeRTTFinish2, err))
		return 0
	}
	elapsed := elapsedMs(slot.Time, e.clock.Now())
	name := slot.Name
	e.mu.Unlock()

	if name != "" {
		e.msgs.Emit(e.message().
			Add("Single RTT | ", scheme.RoleSlave).
			Add(e.r.CorrectDecimals(elapsed)+" ms", scheme.RoleMaster).
			Add(" | ", scheme.RoleSlave).
			Add(name, scheme.RoleMaster))
	}
	return elapsed
}

// Average calls fn repeatedly and returns its mean run time in
// milliseconds. cycles above MaxCycles are capped; a warm-up of
// round(cycles*WarmupRatio) extra leading calls is discarded. Each call is
// timed with an unnamed Start/Finish pair at level 0. With each set, the
// message lists every retained iteration.
//
// A panic in fn propagates to the caller.
func (e *Engine) Average(fn func(), cycles int, name string, each bool) float64 {
	if !e.enabled() {
		return 0
	}
	if fn == nil {
		e.errs.Report(report.CodeRTTAverage1, report.Validation("Average", report.CodeRTTAverage1, nil))
		return 0
	}
	if cycles < 1 {
		e.errs.Report(report.CodeRTTAverage2, report.Validation("Average", report.CodeRTTAverage2, nil))
		return 0
	}

	cycles = min(cycles, MaxCycles)
	warmup := Warmup(cycles)
	debug.Printf("rtt: average over %d cycles, %d warm-up", cycles, warmup)

	var (
		total      float64
		iterations []float64
	)
	for i := 1; i <= cycles+warmup; i++ {
		e.Start("", 0)
		fn()
		elapsed := e.Finish(0)
		if i <= warmup {
			continue
		}
		total += elapsed
		if each {
			iterations = append(iterations, elapsed)
		}
	}

	mean := total / float64(cycles)
	msg := e.message().
		Add("Average RTT | ", scheme.RoleSlave).
		Add(e.r.CorrectDecimals(mean)+" ms", scheme.RoleMaster)
	msg = withName(msg, name)
	for i, d := range iterations {
		msg = msg.Add(e.r.EOL()+"  iteration "+strconv.Itoa(i+1)+": "+e.r.CorrectDecimals(d)+" ms", scheme.RoleSlave)
	}
	e.msgs.Emit(msg)
	return mean
}

// Warmup returns the number of discarded leading calls for cycles.
func Warmup(cycles int) int {
	return int(math.Round(float64(cycles) * WarmupRatio))
}

func (e *Engine) enabled() bool {
	if e.clock == nil {
		return false
	}
	return e.Running()
}

func (e *Engine) message() value.Message {
	return append(value.Message(nil), e.header...)
}

func withName(msg value.Message, name string) value.Message {
	if name == "" {
		return msg
	}
	return msg.Add(" | ", scheme.RoleSlave).Add(name, scheme.RoleMaster)
}

func elapsedMs(t0, t1 time.Time) float64 {
	return float64(t1.Sub(t0)) / float64(time.Millisecond)
}
