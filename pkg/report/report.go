// Package report is the error side channel of udu.
//
// Instrumentation must never crash the program it instruments. Validation and
// capability failures are therefore never returned to the caller of a debug
// call: they are handed to a Sink, tagged with a stable Code that identifies
// the call site and argument that failed.
package report

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	log "github.com/udu-dev/udu/pkg/log"
)

// Code identifies a failure site. Codes are stable and appear in reports.
type Code string

// Failure codes.
const (
	CodeConstructorClock Code = "constructorClock"
	CodeRunningStopped   Code = "runningStopped"
	CodeGetResult1       Code = "getResult1"
	CodeShowArray1       Code = "showArray1"
	CodeShowObject1      Code = "showObject1"
	CodeRenderDepth1     Code = "renderDepth1"
	CodeShow1            Code = "show1"
	CodeRTTPoint1        Code = "rttPoint1"
	CodeRTTStart1        Code = "rttStart1"
	CodeRTTStart2        Code = "rttStart2"
	CodeRTTStart3        Code = "rttStart3"
	CodeRTTFinish1       Code = "rttFinish1"
	CodeRTTFinish2       Code = "rttFinish2"
	CodeRTTAverage1      Code = "rttAverage1"
	CodeRTTAverage2      Code = "rttAverage2"
	CodeRTTAverage3      Code = "rttAverage3"
	CodeRTTAverage4      Code = "rttAverage4"
	CodeScriptOp         Code = "scriptOp"
	CodeScriptSleep      Code = "scriptSleep"
)

var messages = map[Code]string{
	CodeConstructorClock: "The host does not provide a high-resolution clock. Run-time testing is disabled.",
	CodeRunningStopped:   "The utility is stopped by the configuration.",
	CodeGetResult1:       "Unsupported value type.",
	CodeShowArray1:       "The value is not an array.",
	CodeShowObject1:      "The value is not an object.",
	CodeRenderDepth1:     "Maximum nesting depth reached.",
	CodeShow1:            "Unknown output for the show method. Check the \"showOutputDefault\" setting.",
	CodeRTTPoint1:        "The name of the control point must be a string.",
	CodeRTTStart1:        "The name of the RTT must be a string.",
	CodeRTTStart2:        "The level index must be a number.",
	CodeRTTStart3:        "The level index must be a non-negative integer not greater than the number of existing levels.",
	CodeRTTFinish1:       "The level index must be a number.",
	CodeRTTFinish2:       "There is no RTT level with this index. Call start for this level first.",
	CodeRTTAverage1:      "The code under test must be a function.",
	CodeRTTAverage2:      "The number of cycles must be a positive number.",
	CodeRTTAverage3:      "The name of the RTT must be a string.",
	CodeRTTAverage4:      "The flag for timing each iteration must be a boolean.",
	CodeScriptOp:         "Unknown scenario operation.",
	CodeScriptSleep:      "The sleep step requires a duration such as \"10ms\".",
}

// Message returns the human-readable text of code. Unknown codes are echoed
// back with a trailing period.
func Message(code Code) string {
	if code == "" {
		return "unknown error name."
	}
	if msg, ok := messages[code]; ok {
		return msg
	}
	return string(code) + "."
}

var (
	// ErrValidation is wrapped by every argument validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrUnavailable is wrapped when the host lacks a required capability.
	ErrUnavailable = errors.New("capability unavailable")
)

// ValidationError describes an argument that failed its contract.
type ValidationError struct {
	Code Code   // failure site
	Op   string // public operation, e.g. "Start"
	Err  error  // optional detail
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Op, Message(e.Code), e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, Message(e.Code))
}

// Unwrap exposes both ErrValidation and the detail error.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}

// Validation creates a ValidationError for op.
func Validation(op string, code Code, detail error) error {
	return &ValidationError{Code: code, Op: op, Err: detail}
}

// Unavailable wraps ErrUnavailable with the missing capability.
func Unavailable(capability string) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, capability)
}

// Sink receives failures. Implementations must not panic.
type Sink interface {
	Report(code Code, err error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(code Code, err error)

// Report calls f(code, err).
func (f SinkFunc) Report(code Code, err error) {
	f(code, err)
}

// LogSink reports failures through the package logger at error level.
type LogSink struct{}

// NewLogSink returns the default error sink.
func NewLogSink() LogSink {
	return LogSink{}
}

// Report logs the failure as "<Kind>: <message>".
func (LogSink) Report(code Code, err error) {
	kind := "Error"
	switch {
	case errors.Is(err, ErrValidation):
		kind = "TypeError"
	case errors.Is(err, ErrUnavailable):
		kind = "UnavailableError"
	}
	text := Message(code)
	if err != nil {
		text = err.Error()
	}
	log.Error(fmt.Sprintf("%s: %s", kind, LowerCaseFirst(text)), "code", string(code))
}

// Discard drops every report.
var Discard Sink = SinkFunc(func(Code, error) {})

// LowerCaseFirst returns s with its first rune lower-cased.
func LowerCaseFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
