//go:build js && wasm

package host

import (
	"syscall/js"

	"github.com/udu-dev/udu/pkg/config"
	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/sink"
)

// Default binds the host the binary was built for.
func Default(settings config.Settings, set scheme.Set) Binding {
	return Browser(settings, set)
}

// Browser binds the page's console and performance clock.
func Browser(settings config.Settings, set scheme.Set) Binding {
	global := js.Global()
	console := sink.ConsoleFunc(func(args ...any) {
		c := global.Get("console")
		if isValueNil(c) {
			return
		}
		c.Call("info", args...)
	})

	var now func() float64
	perf := global.Get("performance")
	if !isValueNil(perf) && perf.Get("now").Type() == js.TypeFunction {
		now = func() float64 { return perf.Call("now").Float() }
	}
	return NewBrowser(console, now, settings, set)
}

func isValueNil(v js.Value) bool {
	return v.Type() == js.TypeNull || v.Type() == js.TypeUndefined
}
