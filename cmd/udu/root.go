package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/udu-dev/udu/pkg/config"
	"github.com/udu-dev/udu/pkg/debug"
	"github.com/udu-dev/udu/pkg/exitcodes"
	"github.com/udu-dev/udu/pkg/host"
	"github.com/udu-dev/udu/pkg/log"
	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/udu"
)

// Global flag variables
var (
	cfgFile      string
	debugEnabled bool
	logLevel     string
	noColor      bool
)

// Settings resolved by the root command before any subcommand runs.
var (
	settings config.Settings
	schemes  scheme.Set
)

// AppFs is the filesystem commands read from. Tests swap it for a MemMapFs.
var AppFs = afero.NewOsFs()

// SetFs replaces AppFs and returns a function restoring the previous one.
func SetFs(newFs afero.Fs) func() {
	oldFs := AppFs
	AppFs = newFs
	return func() { AppFs = oldFs }
}

// newRootCmd builds the command tree. Flag variables are reset so every
// tree starts from the defaults.
func newRootCmd() *cobra.Command {
	cfgFile, debugEnabled, logLevel, noColor = "", false, "info", false

	cmd := &cobra.Command{
		Use:   "udu",
		Short: "Universal debugging utility: inspect values and time code",
		Long: `udu renders structured values as indented, colored text and measures
elapsed time with control points, nested start/finish levels and averaged
repeated runs.

Settings come from $HOME/.udu.yaml (or --config) and UDU_* environment
variables, e.g. UDU_DECIMALPLACES=4.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is $HOME/"+config.DefaultFileName+")")
	cmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "set log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newBenchCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newSchemesCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup configures logging and loads settings.
func setup(_ *cobra.Command, _ []string) error {
	level := log.LevelInfo
	if debugEnabled {
		level = log.LevelDebug
	} else if logLevel != "" {
		parsed, err := log.ParseLevel(logLevel)
		if err != nil {
			log.Warn("invalid log level, using default", "value", logLevel, "default", level.String())
		} else {
			level = parsed
		}
	}
	log.SetLevel(level)
	debug.Init(debugEnabled)
	debug.Printf("effective log level %s", level)

	path, err := settingsPath()
	if err != nil {
		return err
	}
	loaded, warnings, err := config.Load(AppFs, path)
	if err != nil {
		var notExist *config.ErrConfigFileNotExist
		if errors.As(err, &notExist) {
			return &exitcodes.ExitCodeError{Code: exitcodes.ExitInputFileNotFound, Err: err}
		}
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInputConfigurationError, Err: err}
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	if noColor {
		loaded.App.AllowColorization = false
	}

	set, err := loaded.Schemes()
	if err != nil {
		log.Warn("color scheme not loaded, using defaults", "error", err)
	}
	settings, schemes = loaded, set
	return nil
}

// settingsPath returns --config, or the home settings file when it exists.
func settingsPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		debug.Printf("no home directory: %v", err)
		return "", nil
	}
	path := filepath.Join(home, config.DefaultFileName)
	exists, err := afero.Exists(AppFs, path)
	if err != nil {
		return "", &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
	}
	if !exists {
		return "", nil
	}
	return path, nil
}

// newBinding binds the server host to the command's output. Colors are only
// used on a terminal stdout.
func newBinding(cmd *cobra.Command) host.Binding {
	out := cmd.OutOrStdout()
	if out == os.Stdout && !noColor {
		return host.Server(settings, schemes)
	}
	return host.NewServer(out, settings, schemes, false)
}

func newDebugger(cmd *cobra.Command) *udu.Debugger {
	return udu.New(settings, newBinding(cmd))
}
