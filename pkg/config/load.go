package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/udu-dev/udu/pkg/debug"
	"github.com/udu-dev/udu/pkg/value"
)

// EnvPrefix prefixes the environment variables that override settings,
// e.g. UDU_DECIMALPLACES=4.
const EnvPrefix = "UDU"

// DefaultFileName is the settings file looked up in the home directory.
const DefaultFileName = ".udu.yaml"

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// Load returns the default settings overridden by the YAML file at path and
// by UDU_* environment variables. An empty path skips the file. Every
// rejected override yields a warning; warnings are not errors.
func Load(fs afero.Fs, path string) (Settings, []string, error) {
	s := Default()

	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range PublicKeys() {
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return s, nil, errors.Wrapf(err, "failed to bind environment for %s", key)
		}
	}

	if path != "" {
		if err := checkFile(fs, path); err != nil {
			return s, nil, err
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return s, nil, errors.Wrapf(err, "failed to read settings file %s", path)
		}
		debug.Printf("config: loaded settings file %s", path)
	}

	custom := make(map[string]any)
	for _, key := range v.AllKeys() {
		if v.IsSet(key) {
			custom[key] = fromEnv(key, v.Get(key))
		}
	}
	debug.DumpValue("config: custom settings", custom)

	warnings := s.Apply(custom)
	return s, warnings, nil
}

func checkFile(fs afero.Fs, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return WrapConfigExtension(path)
	}
	if _, err := fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return WrapConfigFileNotExist(path, err)
		}
		return errors.Wrapf(err, "failed to stat settings file %s", path)
	}
	return nil
}

// fromEnv converts an environment string to the kind key expects. Values
// that did not come from the environment, or do not convert, are returned
// unchanged so Apply can reject them with a warning.
func fromEnv(key string, v any) any {
	def, ok := lookup(key)
	if !ok {
		return v
	}
	raw, ok := os.LookupEnv(EnvName(def.name))
	if !ok || value.ToString(v) != raw {
		return v
	}

	switch {
	case accepts(def.kinds, value.KindString):
		return raw
	case accepts(def.kinds, value.KindBoolean):
		if b, err := cast.ToBoolE(raw); err == nil {
			return b
		}
	case accepts(def.kinds, value.KindNumber):
		if n, err := cast.ToIntE(raw); err == nil {
			return n
		}
	}
	return v
}
