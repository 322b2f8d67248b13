// Package debug provides conditional tracing of udu internals to stderr.
//
// Tracing is off unless Init is called with force set or UDU_DEBUG parses
// as true. Messages look like:
//
//	[DEBUG] message
//	[DEBUG] → Entering function
//	[DEBUG] ← Exiting function
//	[DEBUG] Label: <rendered value>
package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/udu-dev/udu/pkg/log"
	"github.com/udu-dev/udu/pkg/value"
)

// EnvVar enables tracing when set to a true value.
const EnvVar = "UDU_DEBUG"

var (
	mu          sync.Mutex
	enabled     bool
	out         io.Writer = os.Stderr
	debugPrefix           = "[DEBUG] "
	renderer              = value.NewRenderer(value.DefaultOptions())
)

// Init enables tracing if force is set or UDU_DEBUG is true. An unparsable
// UDU_DEBUG value is ignored with a warning.
func Init(force bool) {
	on := force
	if raw, ok := os.LookupEnv(EnvVar); ok && raw != "" && !force {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Warn("invalid debug environment value, tracing stays off", "var", EnvVar, "value", raw)
		}
		on = parsed
	}

	mu.Lock()
	defer mu.Unlock()
	enabled = on
}

// Enabled reports whether tracing is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetOutput redirects tracing and returns a function restoring the previous
// writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out = prev
	}
}

// Printf prints a formatted trace line.
func Printf(format string, args ...interface{}) {
	write(fmt.Sprintf(format, args...))
}

// Println prints its operands as a trace line.
func Println(args ...interface{}) {
	write(fmt.Sprint(args...))
}

// FunctionEnter traces entry into funcName.
func FunctionEnter(funcName string) {
	write("→ Entering " + funcName)
}

// FunctionExit traces exit from funcName.
func FunctionExit(funcName string) {
	write("← Exiting " + funcName)
}

// DumpValue traces v rendered the way udu renders values.
func DumpValue(label string, v interface{}) {
	if !Enabled() {
		return
	}
	write(label + ": " + renderer.Render(v, 0, false))
}

// SetPrefix sets the trace prefix. A trailing space is added if missing.
func SetPrefix(prefix string) {
	if !strings.HasSuffix(prefix, " ") {
		prefix += " "
	}
	mu.Lock()
	defer mu.Unlock()
	debugPrefix = prefix
}

func write(line string) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	fmt.Fprintln(out, debugPrefix+line)
}
