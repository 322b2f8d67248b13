package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udu-dev/udu/pkg/exitcodes"
)

func TestBench(t *testing.T) {
	setupFS(t, nil)
	t.Setenv("UDU_BENCH_CHILD", "1")

	out, err := executeCommand(newRootCmd(), "bench", "-n", "5", "--name", "child", "--each", "--", os.Args[0])
	require.NoError(t, err)
	assert.Contains(t, out, "[udu] Average RTT | ")
	assert.Contains(t, out, " | child\n  iteration 1: ")
	assert.Contains(t, out, "  iteration 5: ")
	assert.NotContains(t, out, "iteration 6")
	assert.Contains(t, out, "6 runs (1 discarded), mean ")
}

func TestBenchErrors(t *testing.T) {
	setupFS(t, nil)

	_, err := executeCommand(newRootCmd(), "bench", "-n", "0", "--", "true")
	requireExitCode(t, err, exitcodes.ExitInputConfigurationError)

	_, err = executeCommand(newRootCmd(), "bench", "-n", "1", "--", "udu-no-such-command-4f1c")
	requireExitCode(t, err, exitcodes.ExitInputFileNotFound)

	_, err = executeCommand(newRootCmd(), "bench")
	assert.Error(t, err)
}
