package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udu-dev/udu/pkg/log"
)

func TestUseTestLogger(t *testing.T) {
	restore := UseTestLogger(t)
	assert.NotNil(t, restore)
	restore()
}

func TestSuppressLogging(t *testing.T) {
	outer := captureWithoutLock(t)

	restore := SuppressLogging()
	log.Error("suppressed message")
	restore()

	log.Error("visible message")
	captured := outer()
	assert.NotContains(t, captured, "suppressed message")
	assert.Contains(t, captured, "visible message")
}

func TestCaptureLogging(t *testing.T) {
	restoreAndGetOutput := CaptureLogging()
	log.Warn("captured warning")
	captured := restoreAndGetOutput()

	assert.Contains(t, captured, "captured warning")
}

// captureWithoutLock buffers log output without holding the helper mutex,
// so SuppressLogging can run inside it.
func captureWithoutLock(t *testing.T) func() string {
	t.Helper()
	var buf bytes.Buffer
	restore := log.SetOutput(&buf)
	return func() string {
		restore()
		return buf.String()
	}
}
