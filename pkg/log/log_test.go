package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		levelStr string
		want     Level
		wantErr  bool
	}{
		{name: "debug", levelStr: "DEBUG", want: LevelDebug},
		{name: "lowercase debug", levelStr: "debug", want: LevelDebug},
		{name: "info", levelStr: "INFO", want: LevelInfo},
		{name: "warn", levelStr: "WARN", want: LevelWarn},
		{name: "warning", levelStr: "WARNING", want: LevelWarn},
		{name: "error", levelStr: "error", want: LevelError},
		{name: "invalid", levelStr: "LOUD", want: LevelInfo, wantErr: true},
		{name: "empty", levelStr: "", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.levelStr)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidLogLevel))
				assert.Contains(t, err.Error(), tt.levelStr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestSetOutputAndLevel(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	original := CurrentLevel()
	defer SetLevel(original)

	SetLevel(LevelWarn)
	assert.False(t, IsDebugEnabled())
	Info("hidden")
	Warn("shown", "code", "rttStart3")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "rttStart3", record["code"])
	_, hasTime := record["time"]
	assert.False(t, hasTime, "timestamps are stripped by default")

	SetLevel(LevelDebug)
	assert.True(t, IsDebugEnabled())
}

func TestTextFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "text")
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Error("boom", "code", "rttFinish2")
	assert.Contains(t, buf.String(), "msg=boom")
	assert.Contains(t, buf.String(), "code=rttFinish2")
}
