package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udu-dev/udu/pkg/log"
)

// CaptureLogOutput redirects log output during testFunc and returns what was
// written. The previous writer and level are restored afterwards.
//
//	output, err := testutil.CaptureLogOutput(log.LevelDebug, func() {
//	    log.Info("This will be captured")
//	})
//	require.NoError(t, err)
//	assert.Contains(t, output, "This will be captured")
func CaptureLogOutput(logLevel log.Level, testFunc func()) (string, error) {
	originalLevel := log.CurrentLevel()

	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)
	defer restoreLog()

	// Set the level after the output so a rebuilt handler sees it.
	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	err := runRecovered(testFunc)
	return logBuf.String(), err
}

// runRecovered runs fn and turns a panic into an error.
func runRecovered(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during log capture: %v", r)
		}
	}()
	fn()
	return nil
}

// ContainsLog checks if the log output contains the specified message.
func ContainsLog(output, message string) bool {
	return strings.Contains(output, message)
}

// CaptureJSONLogs captures log output in JSON format and parses each line.
// LOG_FORMAT is forced to "json" for the duration of the capture.
func CaptureJSONLogs(logLevel log.Level, testFunc func()) (logOutput string, parsedLogs []map[string]interface{}, err error) {
	originalLogFormat, hadFormat := os.LookupEnv("LOG_FORMAT")
	if setErr := os.Setenv("LOG_FORMAT", "json"); setErr != nil {
		return "", nil, fmt.Errorf("failed to set LOG_FORMAT=json: %w", setErr)
	}
	defer func() {
		if hadFormat {
			_ = os.Setenv("LOG_FORMAT", originalLogFormat) //nolint:errcheck // best effort in test helper
		} else {
			_ = os.Unsetenv("LOG_FORMAT") //nolint:errcheck // best effort in test helper
		}
	}()

	originalLevel := log.CurrentLevel()
	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)
	defer restoreLog()

	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	if panicErr := runRecovered(testFunc); panicErr != nil {
		return logBuf.String(), nil, panicErr
	}

	logOutput = logBuf.String()
	if strings.TrimSpace(logOutput) == "" {
		return logOutput, nil, nil
	}

	for i, line := range strings.Split(strings.TrimSpace(logOutput), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]interface{}
		if unmarshalErr := json.Unmarshal([]byte(line), &entry); unmarshalErr != nil {
			return logOutput, parsedLogs, fmt.Errorf("failed to unmarshal log line %d as JSON: %w\nLine content: %s", i+1, unmarshalErr, line)
		}
		parsedLogs = append(parsedLogs, entry)
	}
	return logOutput, parsedLogs, nil
}

// AssertLogContainsJSON checks that some entry in logs contains every
// key-value pair of expectedLog.
func AssertLogContainsJSON(t *testing.T, logs []map[string]interface{}, expectedLog map[string]interface{}) {
	t.Helper()
	for _, entry := range logs {
		if containsAll(entry, expectedLog) {
			return
		}
	}

	var logBuffer bytes.Buffer
	encoder := json.NewEncoder(&logBuffer)
	encoder.SetIndent("", "  ")
	for _, entry := range logs {
		_ = encoder.Encode(entry) //nolint:errcheck // Ignore error for test helper
	}
	expectedLogJSON, _ := json.MarshalIndent(expectedLog, "", "  ") //nolint:errcheck // Ignore error for test helper

	assert.Fail(t, "Expected log entry not found",
		"Expected log containing:\n%s\n\nActual captured logs:\n%s",
		string(expectedLogJSON), logBuffer.String())
}

// AssertLogDoesNotContainJSON checks that no entry in logs contains every
// key-value pair of unexpectedLog.
func AssertLogDoesNotContainJSON(t *testing.T, logs []map[string]interface{}, unexpectedLog map[string]interface{}) {
	t.Helper()
	for _, entry := range logs {
		if containsAll(entry, unexpectedLog) {
			foundEntryJSON, _ := json.MarshalIndent(entry, "", "  ")            //nolint:errcheck // Ignore error for test helper
			unexpectedLogJSON, _ := json.MarshalIndent(unexpectedLog, "", "  ") //nolint:errcheck // Ignore error for test helper
			assert.Fail(t, "Unexpected log entry found",
				"Found log entry:\n%s\n\nUnexpected log containing:\n%s",
				string(foundEntryJSON), string(unexpectedLogJSON))
			return
		}
	}
}

// containsAll checks top-level key-value pairs. JSON numbers decode as
// float64, so int expectations are widened before comparing.
func containsAll(actual, expected map[string]interface{}) bool {
	for key, expectedValue := range expected {
		actualValue, ok := actual[key]
		if !ok {
			return false
		}
		if f, isFloat := actualValue.(float64); isFloat {
			switch ev := expectedValue.(type) {
			case float64:
				if f != ev {
					return false
				}
			case int:
				if f != float64(ev) {
					return false
				}
			case int64:
				if f != float64(ev) {
					return false
				}
			default:
				return false
			}
			continue
		}
		if actualValue != expectedValue {
			return false
		}
	}
	return true
}
