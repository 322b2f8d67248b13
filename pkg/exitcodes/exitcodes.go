// Package exitcodes defines the process exit codes of the udu CLI. Codes are
// grouped in ranges:
//
//	0:     Success
//	1-9:   Input/Configuration errors (missing arguments, invalid config)
//	10-19: Processing errors (undecodable documents, failed scenarios)
//	20-29: Runtime errors (I/O, failing child commands)
package exitcodes

import (
	"errors"
	"fmt"
)

// Exit code constants organized by category.
const (
	// Success (0)
	ExitSuccess = 0

	// Input/Configuration Errors (1-9)
	ExitMissingRequiredFlag     = 1 // Required argument or flag not provided
	ExitInputConfigurationError = 2 // General configuration error
	ExitInputFileNotFound       = 3 // Input document or scenario not found
	ExitUnknownScheme           = 4 // Color scheme name not defined

	// Processing Errors (10-19)
	ExitDecodeError   = 10 // Input document could not be decoded
	ExitScenarioError = 11 // Scenario file is malformed

	// Runtime Errors (20-29)
	ExitGeneralRuntimeError = 20 // General runtime/system error
	ExitIOError             = 21 // IO operation error
	ExitCommandFailed       = 22 // Benchmarked command exited non-zero
)

// ExitCodeError wraps an error with the exit code the CLI should return.
type ExitCodeError struct {
	Code int   // Exit code to return
	Err  error // Underlying error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// IsExitCodeError checks if an error is an ExitCodeError and returns its code.
// Returns false and 0 if the error is not an ExitCodeError.
func IsExitCodeError(err error) (int, bool) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// CodeDescriptions maps exit codes to their human-readable descriptions.
var CodeDescriptions = map[int]string{
	ExitSuccess:                 "Success",
	ExitMissingRequiredFlag:     "Required argument or flag not provided",
	ExitInputConfigurationError: "General configuration error",
	ExitInputFileNotFound:       "Input document or scenario not found",
	ExitUnknownScheme:           "Color scheme name not defined",
	ExitDecodeError:             "Input document could not be decoded",
	ExitScenarioError:           "Scenario file is malformed",
	ExitGeneralRuntimeError:     "General runtime/system error",
	ExitIOError:                 "IO operation error",
	ExitCommandFailed:           "Benchmarked command failed",
}
