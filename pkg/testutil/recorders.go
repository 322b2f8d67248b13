package testutil

import (
	"sync"

	"github.com/udu-dev/udu/pkg/report"
	"github.com/udu-dev/udu/pkg/value"
)

// MessageRecorder is a message sink that keeps every emitted message.
type MessageRecorder struct {
	mu   sync.Mutex
	msgs []value.Message
}

// Emit records msg.
func (r *MessageRecorder) Emit(msg value.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// Messages returns the recorded messages in emission order.
func (r *MessageRecorder) Messages() []value.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]value.Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Texts returns the plain text of every recorded message.
func (r *MessageRecorder) Texts() []string {
	msgs := r.Messages()
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.String()
	}
	return out
}

// Len returns the number of recorded messages.
func (r *MessageRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

// Reset forgets all recorded messages.
func (r *MessageRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}

// Report is one recorded error-sink call.
type Report struct {
	Code report.Code
	Err  error
}

// ErrorRecorder is an error sink that keeps every report.
type ErrorRecorder struct {
	mu      sync.Mutex
	reports []Report
}

// Report records the failure.
func (r *ErrorRecorder) Report(code report.Code, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Code: code, Err: err})
}

// Reports returns the recorded failures in order.
func (r *ErrorRecorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Codes returns the recorded codes in order.
func (r *ErrorRecorder) Codes() []report.Code {
	reports := r.Reports()
	out := make([]report.Code, len(reports))
	for i, rep := range reports {
		out[i] = rep.Code
	}
	return out
}

// Reset forgets all recorded failures.
func (r *ErrorRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = nil
}
