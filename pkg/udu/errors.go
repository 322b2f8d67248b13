package udu

import (
	"errors"
	"fmt"
)

// ErrUnknownOutput is reported by Show when showOutputDefault names no known
// output.
var ErrUnknownOutput = errors.New("unknown output")

// WrapUnknownOutput wraps ErrUnknownOutput with the configured output name.
func WrapUnknownOutput(output string) error {
	return fmt.Errorf("%w %q", ErrUnknownOutput, output)
}
