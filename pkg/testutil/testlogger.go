package testutil

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/udu-dev/udu/pkg/log"
)

// mutex serializes helpers that swap the global logger output.
var mutex sync.Mutex

// SuppressLogging discards all log output until the returned function is
// called.
func SuppressLogging() func() {
	mutex.Lock()
	defer mutex.Unlock()

	restoreLog := log.SetOutput(io.Discard)
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		restoreLog()
	}
}

// CaptureLogging buffers log output. The returned function restores the
// previous writer and yields what was captured. Only pkg/log output is
// captured, not direct writes to os.Stdout or os.Stderr.
func CaptureLogging() func() string {
	mutex.Lock()

	var logBuf bytes.Buffer
	logRestore := log.SetOutput(&logBuf)

	return func() string {
		defer mutex.Unlock()
		logRestore()
		return logBuf.String()
	}
}

// UseTestLogger hides log output unless the test fails. It returns a no-op
// function; restoration happens in t.Cleanup.
func UseTestLogger(t *testing.T) func() {
	t.Helper()

	if !testing.Verbose() {
		restoreAndGetLogs := CaptureLogging()
		t.Cleanup(func() {
			capturedLogs := restoreAndGetLogs()
			if t.Failed() {
				t.Logf("Log output captured during test:\n%s", capturedLogs)
			}
		})
	}
	return func() {}
}
