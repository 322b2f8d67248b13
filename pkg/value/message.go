package value

import (
	"strings"

	"github.com/udu-dev/udu/pkg/scheme"
)

// Segment is a piece of display text tagged with the role that colors it.
type Segment struct {
	Text string
	Role scheme.Role
	// Rendered marks text produced by the renderer. Terminal sinks
	// highlight attention kinds and separators inside it.
	Rendered bool
}

// Message is rendered text in structured form. Sinks decide how roles are
// turned into colors; String drops them.
type Message []Segment

// Add appends a segment. Empty text is kept so that segment positions stay
// predictable for sinks that pair texts with styles.
func (m Message) Add(text string, role scheme.Role) Message {
	return append(m, Segment{Text: text, Role: role})
}

// Concat appends all segments of other.
func (m Message) Concat(other Message) Message {
	return append(m, other...)
}

// String returns the plain text of the message.
func (m Message) String() string {
	var b strings.Builder
	for _, s := range m {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Header is the "[name] " prefix every udu message starts with.
func Header(appName string) Message {
	return Message{
		{Text: "[", Role: scheme.RoleSlave},
		{Text: appName, Role: scheme.RoleHeading},
		{Text: "] ", Role: scheme.RoleSlave},
	}
}
