package udu

import (
	"sync"

	"github.com/udu-dev/udu/pkg/host"
)

var (
	instanceMu sync.Mutex
	instance   *Debugger
)

// Instance returns the process-wide Debugger, creating it on first use from
// custom settings and the host the binary was built for. Later calls return
// the cached Debugger and ignore custom.
func Instance(custom map[string]any) *Debugger {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		settings, set := Configure(custom)
		instance = New(settings, host.Default(settings, set))
	}
	return instance
}

// ResetInstance forgets the cached Debugger so the next Instance call
// creates a new one.
func ResetInstance() {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance = nil
}
