// Package host binds the debugger to the environment it runs in: a time
// source, an output sink for messages, an error sink and an overlay.
//
// The server host writes ANSI text to stdout and reads a monotonic clock.
// The browser host (js/wasm builds) uses performance.now() and console.info.
package host

import (
	"io"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/mattn/go-colorable"
	"golang.org/x/term"

	"github.com/udu-dev/udu/pkg/config"
	"github.com/udu-dev/udu/pkg/report"
	"github.com/udu-dev/udu/pkg/rtt"
	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/sink"
)

// Host names.
const (
	NameServer  = "server"
	NameBrowser = "browser"
)

// Binding is everything a Debugger needs from its host.
type Binding struct {
	Name     string
	Clock    rtt.Clock // nil when the host has no high-resolution clock
	Messages sink.Sink
	Errors   report.Sink
	Overlay  sink.Overlay
}

// NewServer binds a server host writing to w. color enables ANSI escape
// sequences; it is further gated by settings.App.AllowColorization.
func NewServer(w io.Writer, settings config.Settings, set scheme.Set, color bool) Binding {
	return Binding{
		Name:  NameServer,
		Clock: clock.New(),
		Messages: sink.NewANSI(w, sink.ANSIOptions{
			Theme: set.Server,
			Color: color && settings.App.AllowColorization,
			EOL:   settings.App.ConsoleEOL,
		}),
		Errors:  report.NewLogSink(),
		Overlay: sink.NewMemoryOverlay(),
	}
}

// Server binds a server host to stdout. Colors are used when stdout is a
// terminal and NO_COLOR is not set.
func Server(settings config.Settings, set scheme.Set) Binding {
	return NewServer(colorable.NewColorableStdout(), settings, set, ColorEnabled(os.Stdout.Fd()))
}

// ColorEnabled reports whether fd is a terminal that should receive colors.
func ColorEnabled(fd uintptr) bool {
	if _, off := os.LookupEnv("NO_COLOR"); off {
		return false
	}
	return term.IsTerminal(int(fd))
}

// NewBrowser binds a browser host. now returns milliseconds from a
// monotonic origin, like performance.now(); nil means no clock.
func NewBrowser(console sink.Console, now func() float64, settings config.Settings, set scheme.Set) Binding {
	b := Binding{
		Name:     NameBrowser,
		Messages: sink.NewStyled(console, set.Console, settings.App.AllowColorization),
		Errors:   report.NewLogSink(),
		Overlay:  sink.NewMemoryOverlay(),
	}
	if now != nil {
		b.Clock = MillisClock(now)
	}
	return b
}

// MillisClock adapts a millisecond counter to rtt.Clock.
type MillisClock func() float64

// Now converts the counter reading to a time on the Unix epoch.
func (c MillisClock) Now() time.Time {
	return time.Unix(0, 0).Add(time.Duration(c() * float64(time.Millisecond)))
}
