// Package decode turns JSON and YAML documents into the dynamic values the
// renderer understands. Objects become *value.Object so members keep their
// document order; arrays become []any.
package decode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Format is a document syntax.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions with no decoder.
var ErrUnknownFormat = fmt.Errorf("unknown document format")

// FormatOf picks the format from the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Bytes decodes data in the given format.
func Bytes(format Format, data []byte) (any, error) {
	switch format {
	case FormatJSON:
		return JSON(data)
	case FormatYAML:
		return YAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// File reads and decodes path from fs. The format follows the extension.
func File(fs afero.Fs, path string) (any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	v, err := Bytes(format, data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return v, nil
}
