//go:build !js || !wasm

package host

import (
	"github.com/udu-dev/udu/pkg/config"
	"github.com/udu-dev/udu/pkg/scheme"
)

// Default binds the host the binary was built for.
func Default(settings config.Settings, set scheme.Set) Binding {
	return Server(settings, set)
}
