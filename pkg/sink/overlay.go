package sink

import (
	"sync"

	"github.com/udu-dev/udu/pkg/value"
)

// Overlay is an on-screen message list with a fixed observer field.
type Overlay interface {
	// Append adds a message to the list.
	Append(msg value.Message)
	// Clear empties the list.
	Clear()
	// Observe replaces the observer text.
	Observe(text string)
}

// MemoryOverlay keeps overlay state in memory. Newest messages come first.
type MemoryOverlay struct {
	mu       sync.Mutex
	messages []value.Message
	observed string
	visible  bool
}

// NewMemoryOverlay returns an empty overlay.
func NewMemoryOverlay() *MemoryOverlay {
	return &MemoryOverlay{}
}

// Append prepends msg to the list.
func (o *MemoryOverlay) Append(msg value.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append([]value.Message{msg}, o.messages...)
}

// Clear removes all messages. The observer field is kept.
func (o *MemoryOverlay) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = nil
}

// Observe sets the observer text and makes the field visible.
func (o *MemoryOverlay) Observe(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observed = text
	o.visible = true
}

// Messages returns a copy of the list, newest first.
func (o *MemoryOverlay) Messages() []value.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]value.Message, len(o.messages))
	copy(out, o.messages)
	return out
}

// Observed returns the observer text and whether it has been set.
func (o *MemoryOverlay) Observed() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.observed, o.visible
}
