package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udu-dev/udu/pkg/log"
)

func TestCaptureLogOutput(t *testing.T) {
	output, err := CaptureLogOutput(log.LevelInfo, func() {
		log.Info("This is an info message")
		log.Debug("This is a debug message")
	})
	require.NoError(t, err)
	assert.Contains(t, output, "This is an info message")
	assert.NotContains(t, output, "This is a debug message")

	output, err = CaptureLogOutput(log.LevelDebug, func() {
		log.Info("This is an info message")
		log.Debug("This is a debug message")
	})
	require.NoError(t, err)
	assert.Contains(t, output, "This is an info message")
	assert.Contains(t, output, "This is a debug message")

	savedLevel := log.CurrentLevel()
	_, err = CaptureLogOutput(log.LevelDebug, func() {})
	require.NoError(t, err)
	assert.Equal(t, savedLevel, log.CurrentLevel())
}

func TestCaptureLogOutputPanic(t *testing.T) {
	output, err := CaptureLogOutput(log.LevelInfo, func() {
		log.Info("before panic")
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, output, "before panic")
}

func TestContainsLog(t *testing.T) {
	testOutput := "time=... level=ERROR msg=\"Some error message\" key=value\nline 3"

	assert.True(t, ContainsLog(testOutput, "level=ERROR"))
	assert.True(t, ContainsLog(testOutput, `msg="Some error message"`))
	assert.False(t, ContainsLog(testOutput, "level=WARNING"))
}

func TestCaptureJSONLogs(t *testing.T) {
	_, logs, err := CaptureJSONLogs(log.LevelInfo, func() {
		log.Warn("scheme missing", "section", "server", "count", 2)
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)

	AssertLogContainsJSON(t, logs, map[string]interface{}{
		"level":   "WARN",
		"msg":     "scheme missing",
		"section": "server",
		"count":   2,
	})
	AssertLogDoesNotContainJSON(t, logs, map[string]interface{}{"level": "ERROR"})
}

func TestContainsAll(t *testing.T) {
	actual := map[string]interface{}{"a": "x", "n": float64(3)}

	assert.True(t, containsAll(actual, map[string]interface{}{"a": "x"}))
	assert.True(t, containsAll(actual, map[string]interface{}{"n": 3}))
	assert.True(t, containsAll(actual, map[string]interface{}{"n": int64(3)}))
	assert.False(t, containsAll(actual, map[string]interface{}{"n": "3"}))
	assert.False(t, containsAll(actual, map[string]interface{}{"missing": true}))
}
