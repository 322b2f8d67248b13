// Package udu is the public face of the debugging utility.
//
// A Debugger renders values for a host console or overlay and times code
// through the run-time testing engine. Debugging calls never fail: bad
// arguments and missing host capabilities go to the host's error sink.
//
//	d := udu.Instance(map[string]any{"decimalPlaces": 3})
//	d.Log(cfg, "loaded config")
//	d.Start("query", 0)
//	rows := query()
//	d.Finish(0)
package udu

import (
	"sync"

	"github.com/udu-dev/udu/pkg/config"
	"github.com/udu-dev/udu/pkg/host"
	"github.com/udu-dev/udu/pkg/log"
	"github.com/udu-dev/udu/pkg/report"
	"github.com/udu-dev/udu/pkg/rtt"
	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/sink"
	"github.com/udu-dev/udu/pkg/value"
)

// Debugger is one instance of the utility bound to a host.
type Debugger struct {
	settings config.Settings
	host     host.Binding
	header   value.Message
	rtt      *rtt.Engine

	// mu serializes renders; the renderer's ambient indent is shared.
	mu sync.Mutex
	r  *value.Renderer
}

// New creates a Debugger and prints the banner to the host console. When
// settings forbid execution a stopped notice follows the banner.
func New(settings config.Settings, b host.Binding) *Debugger {
	b = fill(b)
	r := settings.Renderer()
	d := &Debugger{
		settings: settings,
		host:     b,
		header:   value.Header(settings.App.AppName),
		r:        r,
	}
	d.host.Messages.Emit(value.Message{}.
		Add(settings.App.AppDescription, scheme.RoleHeading).
		Add(r.EOL()+"Version: "+settings.App.AppVersion, scheme.RoleSlave))
	if !settings.Runtime.Run {
		d.host.Messages.Emit(value.Message{}.Add(report.Message(report.CodeRunningStopped), scheme.RoleMaster))
	}

	d.rtt = rtt.New(rtt.Options{
		Clock:     b.Clock,
		Messages:  b.Messages,
		Errors:    b.Errors,
		Renderer:  r,
		AppName:   settings.App.AppName,
		Permitted: func() bool { return settings.Runtime.Run },
	})
	log.Debug("debugger created", "host", b.Name, "run", settings.Runtime.Run, "clock", d.rtt.ClockAvailable())
	return d
}

// Configure builds settings from the defaults and custom, a map of public
// setting names to values. Rejected keys and unknown scheme names are logged
// as warnings and leave the defaults in place.
func Configure(custom map[string]any) (config.Settings, scheme.Set) {
	settings := config.Default()
	for _, w := range settings.Apply(custom) {
		log.Warn(w)
	}
	set, err := settings.Schemes()
	if err != nil {
		log.Warn("color scheme not loaded, using defaults", "error", err)
	}
	return settings, set
}

// Settings returns the settings the Debugger was created with.
func (d *Debugger) Settings() config.Settings {
	return d.settings
}

// Host returns the host binding.
func (d *Debugger) Host() host.Binding {
	return d.host
}

// RTT returns the timing engine.
func (d *Debugger) RTT() *rtt.Engine {
	return d.rtt
}

// Running reports whether debugging calls are processed.
func (d *Debugger) Running() bool {
	return d.rtt.Running()
}

// Stop disables the Debugger and clears all timers.
func (d *Debugger) Stop() {
	d.rtt.Stop()
}

// Resume re-enables the Debugger unless the "run" setting forbids it.
func (d *Debugger) Resume() {
	d.rtt.Resume()
}

// Log prints v and an optional comment to the host console.
func (d *Debugger) Log(v any, comment string) {
	if !d.Running() {
		return
	}
	d.host.Messages.Emit(d.header.Concat(d.debugMessage(v, comment)))
}

// Popup adds v and an optional comment to the overlay message list.
func (d *Debugger) Popup(v any, comment string) {
	if !d.Running() {
		return
	}
	d.host.Overlay.Append(d.debugMessage(v, comment))
}

// PopupReset empties the overlay message list.
func (d *Debugger) PopupReset() {
	if !d.Running() {
		return
	}
	d.host.Overlay.Clear()
}

// Show prints v to the output named by the showOutputDefault setting:
// console, window (the overlay) or file. File output is accepted and
// ignored.
func (d *Debugger) Show(v any, comment string) {
	if !d.Running() {
		return
	}
	switch output := d.settings.App.ShowOutputDefault; output {
	case config.OutputConsole:
		d.Log(v, comment)
	case config.OutputWindow:
		d.Popup(v, comment)
	case config.OutputFile:
	default:
		d.host.Errors.Report(report.CodeShow1, WrapUnknownOutput(output))
	}
}

// Observer shows a string, number or boolean in the overlay's fixed
// observer field. Other kinds are ignored.
func (d *Debugger) Observer(v any) {
	if !d.Running() {
		return
	}
	switch value.Classify(v) {
	case value.KindString, value.KindNumber, value.KindBoolean:
	default:
		return
	}
	d.mu.Lock()
	text := d.r.Plain(v)
	d.mu.Unlock()
	d.host.Overlay.Observe(text)
}

// Point marks a control point. See rtt.Engine.Point.
func (d *Debugger) Point(name string) float64 {
	return d.rtt.Point(name)
}

// Start begins timing level. See rtt.Engine.Start.
func (d *Debugger) Start(name string, level int) {
	d.rtt.Start(name, level)
}

// Finish ends timing level. See rtt.Engine.Finish.
func (d *Debugger) Finish(level int) float64 {
	return d.rtt.Finish(level)
}

// Average times fn over cycles calls. See rtt.Engine.Average.
func (d *Debugger) Average(fn func(), cycles int, name string, each bool) float64 {
	return d.rtt.Average(fn, cycles, name, each)
}

func (d *Debugger) debugMessage(v any, comment string) value.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.FormatValue(v, comment)
}

func fill(b host.Binding) host.Binding {
	if b.Messages == nil {
		b.Messages = sink.Discard
	}
	if b.Errors == nil {
		b.Errors = report.Discard
	}
	if b.Overlay == nil {
		b.Overlay = sink.NewMemoryOverlay()
	}
	return b
}
