package sink

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/value"
)

func TestPrepare(t *testing.T) {
	theme, ok := scheme.Lookup(scheme.SectionConsole, "dark")
	require.True(t, ok)
	msg := value.Header("udu").Add("x", scheme.RoleMaster).Add("y", scheme.Role("unknown"))

	got := Prepare(msg, theme, true)
	want := []any{
		"%c[%cudu%c] %cx%cy",
		"color: #9E9E9E",
		"color: #CDDC39",
		"color: #9E9E9E",
		"color: #E0E0E0",
		"color: none",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Prepare() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []any{"[udu] xy"}, Prepare(msg, theme, false))
	assert.Nil(t, Prepare(nil, theme, true))
}

func TestPrepareEscapesPercent(t *testing.T) {
	theme := scheme.Theme{scheme.RoleMaster: "red", scheme.RoleSlave: "blue"}
	msg := value.Message{}.Add(`"50%c %s"`, scheme.RoleMaster).Add("tail", scheme.RoleSlave)

	got := Prepare(msg, theme, true)
	want := []any{`%c"50%%c %%s"%ctail`, "color: red", "color: blue"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Prepare() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []any{`"50%c %s"tail`}, Prepare(msg, theme, false))
}

func TestStyledEmit(t *testing.T) {
	var calls [][]any
	console := ConsoleFunc(func(args ...any) { calls = append(calls, args) })
	s := NewStyled(console, scheme.Theme{scheme.RoleMaster: "red"}, true)

	s.Emit(value.Message{}.Add("hi", scheme.RoleMaster))
	s.Emit(nil)

	require.Len(t, calls, 1)
	assert.Equal(t, []any{"%chi", "color: red"}, calls[0])
}

func TestFuncAndDiscard(t *testing.T) {
	var got string
	var s Sink = Func(func(m value.Message) { got = m.String() })
	s.Emit(value.Message{}.Add("text", scheme.RoleMaster))
	assert.Equal(t, "text", got)

	assert.NotPanics(t, func() { Discard.Emit(nil) })
}
