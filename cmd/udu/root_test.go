package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udu-dev/udu/pkg/exitcodes"
	"github.com/udu-dev/udu/pkg/log"
	"github.com/udu-dev/udu/pkg/testutil"
	"github.com/udu-dev/udu/pkg/version"
)

const testHome = "/home/tester"

// executeCommand runs root with args and returns everything it printed.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// setupFS installs an in-memory AppFs with the given files and points HOME
// at testHome.
func setupFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	testutil.UseTestLogger(t)
	t.Setenv("HOME", testHome)

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testHome, 0o755))
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	t.Cleanup(SetFs(fs))
	return fs
}

func requireExitCode(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok, "not an exit code error: %v", err)
	assert.Equal(t, want, code, "error: %v", err)
}

func TestVersionCommand(t *testing.T) {
	setupFS(t, nil)

	out, err := executeCommand(newRootCmd(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "A simple universal debugging utility for Go code.")
	assert.Contains(t, out, version.String())
}

func TestRootInvalidLogLevelIsNotFatal(t *testing.T) {
	setupFS(t, nil)

	_, err := executeCommand(newRootCmd(), "--log-level", "loud", "version")
	assert.NoError(t, err)
}

func TestLogLevelFlag(t *testing.T) {
	t.Setenv("HOME", testHome)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/doc.json", []byte(`[1]`), 0o644))
	t.Cleanup(SetFs(fs))
	t.Cleanup(func() { log.SetLevel(log.LevelInfo) })

	tests := []struct {
		level string
		want  bool
	}{
		{level: "debug", want: true},
		{level: "warn", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			getLogs := testutil.CaptureLogging()
			_, err := executeCommand(newRootCmd(), "--log-level", tt.level, "inspect", "/data/doc.json")
			logs := getLogs()
			require.NoError(t, err)
			assert.Equal(t, tt.want, testutil.ContainsLog(logs, "debugger created"), "logs: %s", logs)
		})
	}
}

func TestSettingsFromHome(t *testing.T) {
	home := filepath.Join(testHome, ".udu.yaml")
	setupFS(t, map[string]string{
		"/data/doc.json": `{"k": 1}`,
		home:             "showOutputDefault: console\n",
	})

	out, err := executeCommand(newRootCmd(), "inspect", "--show", "/data/doc.json")
	require.NoError(t, err)
	assert.Contains(t, out, "[udu] Type: Object\nValue: {\n  k: 1\n}")
}

func TestSettingsFromEnv(t *testing.T) {
	setupFS(t, map[string]string{"/data/doc.json": `[1]`})
	t.Setenv("UDU_SHOWOUTPUTDEFAULT", "console")

	out, err := executeCommand(newRootCmd(), "inspect", "--show", "/data/doc.json")
	require.NoError(t, err)
	assert.Contains(t, out, "[udu] Type: Array")
}

func TestConfigFlagErrors(t *testing.T) {
	setupFS(t, map[string]string{"/etc/udu.toml": ""})

	_, err := executeCommand(newRootCmd(), "--config", "/etc/missing.yaml", "version")
	requireExitCode(t, err, exitcodes.ExitInputFileNotFound)

	_, err = executeCommand(newRootCmd(), "--config", "/etc/udu.toml", "version")
	requireExitCode(t, err, exitcodes.ExitInputConfigurationError)
}

func TestNoColorFlag(t *testing.T) {
	setupFS(t, nil)

	root := newRootCmd()
	_, err := executeCommand(root, "--no-color", "version")
	require.NoError(t, err)
	assert.False(t, settings.App.AllowColorization)

	_, err = executeCommand(newRootCmd(), "version")
	require.NoError(t, err)
	assert.True(t, settings.App.AllowColorization)
}

func TestMain(m *testing.M) {
	// bench tests run this binary as the benchmarked command.
	if os.Getenv("UDU_BENCH_CHILD") == "1" {
		os.Exit(0)
	}
	os.Exit(m.Run())
}
