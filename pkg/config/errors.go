package config

import (
	"fmt"
)

// ErrConfigFileNotExist indicates the settings file does not exist.
type ErrConfigFileNotExist struct {
	Path string
	Err  error
}

func (e *ErrConfigFileNotExist) Error() string {
	return fmt.Sprintf("settings file does not exist: %s (%v)", e.Path, e.Err)
}

func (e *ErrConfigFileNotExist) Unwrap() error {
	return e.Err
}

// WrapConfigFileNotExist creates a new ErrConfigFileNotExist error.
func WrapConfigFileNotExist(path string, err error) error {
	return &ErrConfigFileNotExist{Path: path, Err: err}
}

// ErrConfigExtension indicates the settings file is not YAML.
type ErrConfigExtension struct {
	Path string
}

func (e *ErrConfigExtension) Error() string {
	return fmt.Sprintf("settings file path must end with .yaml or .yml: %s", e.Path)
}

// WrapConfigExtension creates a new ErrConfigExtension error.
func WrapConfigExtension(path string) error {
	return &ErrConfigExtension{Path: path}
}
