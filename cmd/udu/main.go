// Command udu inspects values and times code from the command line using
// the udu debugging utility.
package main

import (
	"os"

	"github.com/udu-dev/udu/pkg/exitcodes"
	"github.com/udu-dev/udu/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitcodes.ExitGeneralRuntimeError
		if c, ok := exitcodes.IsExitCodeError(err); ok {
			code = c
		}
		log.Error("udu failed", "error", err, "exit_code", code)
		os.Exit(code)
	}
}
