package sink

import (
	"strings"

	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/value"
)

// Console is the part of a browser console the styled sink needs.
type Console interface {
	Info(args ...any)
}

// ConsoleFunc adapts a function to Console.
type ConsoleFunc func(args ...any)

// Info calls f(args...).
func (f ConsoleFunc) Info(args ...any) {
	f(args...)
}

// Styled emits messages as "%c" format strings followed by one CSS color
// declaration per segment.
type Styled struct {
	console Console
	theme   scheme.Theme
	color   bool
}

// NewStyled creates a styled sink. With color disabled the console receives
// the plain concatenated text.
func NewStyled(console Console, theme scheme.Theme, color bool) *Styled {
	return &Styled{console: console, theme: theme, color: color}
}

// Emit forwards the prepared arguments to the console.
func (s *Styled) Emit(msg value.Message) {
	args := Prepare(msg, s.theme, s.color)
	if len(args) == 0 {
		return
	}
	s.console.Info(args...)
}

// Prepare builds console arguments for msg. A role without a color in theme
// is styled "color: none". Percent signs in segment text are doubled so they
// print literally instead of consuming style arguments.
func Prepare(msg value.Message, theme scheme.Theme, color bool) []any {
	if !color {
		return []any{msg.String()}
	}
	if len(msg) == 0 {
		return nil
	}

	var format strings.Builder
	args := make([]any, 1, len(msg)+1)
	for _, seg := range msg {
		format.WriteString("%c")
		format.WriteString(strings.ReplaceAll(seg.Text, "%", "%%"))
		args = append(args, CSS(theme, seg.Role))
	}
	args[0] = format.String()
	return args
}

// CSS returns the declaration that colors role.
func CSS(theme scheme.Theme, role scheme.Role) string {
	token, ok := scheme.Style(theme, role)
	if !ok {
		return "color: none"
	}
	return "color: " + token
}
