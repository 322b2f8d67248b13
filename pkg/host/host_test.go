package host

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udu-dev/udu/pkg/config"
	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/sink"
	"github.com/udu-dev/udu/pkg/value"
)

func schemes(t *testing.T, s config.Settings) scheme.Set {
	t.Helper()
	set, err := s.Schemes()
	require.NoError(t, err)
	return set
}

func TestNewServer(t *testing.T) {
	s := config.Default()
	var buf bytes.Buffer
	b := NewServer(&buf, s, schemes(t, s), true)

	assert.Equal(t, NameServer, b.Name)
	require.NotNil(t, b.Clock)
	assert.WithinDuration(t, time.Now(), b.Clock.Now(), time.Minute)
	assert.NotNil(t, b.Errors)
	assert.NotNil(t, b.Overlay)

	b.Messages.Emit(value.Header("udu"))
	assert.Equal(t, "\x1b[37m[\x1b[0m\x1b[33mudu\x1b[0m\x1b[37m] \x1b[0m\n", buf.String())
}

func TestNewServerColorizationDisabled(t *testing.T) {
	s := config.Default()
	s.App.AllowColorization = false
	var buf bytes.Buffer
	b := NewServer(&buf, s, schemes(t, s), true)

	b.Messages.Emit(value.Header("udu"))
	assert.Equal(t, "[udu] \n", buf.String())
}

func TestNewBrowser(t *testing.T) {
	s := config.Default()
	var calls [][]any
	console := func(args ...any) { calls = append(calls, args) }
	ms := 0.0
	b := NewBrowser(sink.ConsoleFunc(console), func() float64 { return ms }, s, schemes(t, s))

	assert.Equal(t, NameBrowser, b.Name)
	require.NotNil(t, b.Clock)
	t0 := b.Clock.Now()
	ms = 12.5
	assert.Equal(t, 12500*time.Microsecond, b.Clock.Now().Sub(t0))

	b.Messages.Emit(value.Header("udu"))
	require.Len(t, calls, 1)
	assert.Equal(t, "%c[%cudu%c] ", calls[0][0])
}

func TestNewBrowserWithoutClock(t *testing.T) {
	s := config.Default()
	b := NewBrowser(sink.ConsoleFunc(func(...any) {}), nil, s, schemes(t, s))
	assert.Nil(t, b.Clock)
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout.Fd()))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	os.Unsetenv("NO_COLOR")
	assert.False(t, ColorEnabled(f.Fd()), "regular files are not terminals")
}
