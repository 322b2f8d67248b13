// Package sink delivers rendered messages to an output surface.
//
// Two bindings are provided: ANSI writes colored text to a terminal stream
// and Styled hands "%c" formatted arguments to a browser-like console.
// Overlay is the in-page message list used by popup output.
package sink

import (
	"github.com/udu-dev/udu/pkg/value"
)

// Sink receives finished messages. Emit is fire-and-forget: it must not
// fail back into the caller.
type Sink interface {
	Emit(msg value.Message)
}

// Func adapts a function to Sink.
type Func func(msg value.Message)

// Emit calls f(msg).
func (f Func) Emit(msg value.Message) {
	f(msg)
}

// Discard drops every message.
var Discard Sink = Func(func(value.Message) {})
