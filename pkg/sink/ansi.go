package sink

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/udu-dev/udu/pkg/log"
	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/value"
)

// attentionKinds are highlighted when they follow ": " in rendered text.
// -Infinity precedes Infinity so the longer token wins.
var attentionKinds = []string{
	value.KindUndefined.String(),
	value.KindNull.String(),
	value.KindNaN.String(),
	value.KindNegativeInfinity.String(),
	value.KindInfinity.String(),
}

// ANSIOptions configure an ANSI sink.
type ANSIOptions struct {
	Theme scheme.Theme
	Color bool   // emit SGR escape sequences
	EOL   string // separator highlighted inside rendered text
}

// ANSI writes one line per message to a terminal stream.
type ANSI struct {
	mu   sync.Mutex
	w    io.Writer
	opts ANSIOptions

	cmu    sync.Mutex
	colors map[scheme.Role]*color.Color
}

// NewANSI creates a sink writing to w.
func NewANSI(w io.Writer, opts ANSIOptions) *ANSI {
	if opts.EOL == "" {
		opts.EOL = "\n"
	}
	return &ANSI{w: w, opts: opts, colors: make(map[scheme.Role]*color.Color)}
}

// Emit writes msg followed by a newline.
func (a *ANSI) Emit(msg value.Message) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := fmt.Fprintln(a.w, a.Format(msg)); err != nil {
		log.Debug("ANSI sink write failed", "error", err)
	}
}

// Format returns the terminal text of msg. Empty segments are dropped.
func (a *ANSI) Format(msg value.Message) string {
	var b strings.Builder
	for _, seg := range msg {
		if seg.Text == "" {
			continue
		}
		if !a.opts.Color {
			b.WriteString(seg.Text)
			continue
		}
		if seg.Rendered {
			for _, part := range Highlight(seg.Text, a.opts.EOL) {
				b.WriteString(a.wrap(part.Text, part.Role))
			}
			continue
		}
		b.WriteString(a.wrap(seg.Text, seg.Role))
	}
	return b.String()
}

func (a *ANSI) wrap(text string, role scheme.Role) string {
	return a.colorFor(role).Sprint(text)
}

// colorFor caches one color per role. A role missing from the theme, or a
// token that is not a list of SGR codes, falls back to the reset code.
func (a *ANSI) colorFor(role scheme.Role) *color.Color {
	a.cmu.Lock()
	defer a.cmu.Unlock()
	if c, ok := a.colors[role]; ok {
		return c
	}

	attrs := []color.Attribute{color.Reset}
	token, ok := scheme.Style(a.opts.Theme, role)
	if !ok {
		log.Warn(fmt.Sprintf("unknown color name %q in the color scheme %q", role, scheme.SectionServer))
	} else if parsed, err := parseSGR(token); err != nil {
		log.Warn("invalid ANSI color token", "role", string(role), "token", token, "error", err)
	} else {
		attrs = parsed
	}

	c := color.New(attrs...)
	c.EnableColor()
	a.colors[role] = c
	return c
}

func parseSGR(token string) ([]color.Attribute, error) {
	fields := strings.Split(token, ";")
	attrs := make([]color.Attribute, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("parse SGR code %q: %w", f, err)
		}
		attrs = append(attrs, color.Attribute(n))
	}
	return attrs, nil
}

// Highlight splits rendered text into master segments, attention segments
// for kinds following ": ", and slave segments for the ","+eol separators.
func Highlight(text, eol string) value.Message {
	var (
		out   value.Message
		plain strings.Builder
		comma = "," + eol
	)
	flush := func() {
		if plain.Len() > 0 {
			out = out.Add(plain.String(), scheme.RoleMaster)
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		rest := text[i:]
		if strings.HasPrefix(rest, comma) {
			flush()
			out = out.Add(comma, scheme.RoleSlave)
			i += len(comma)
			continue
		}
		if strings.HasPrefix(rest, ": ") {
			if kind := attentionAt(rest[2:]); kind != "" {
				plain.WriteString(": ")
				flush()
				out = out.Add(kind, scheme.RoleAttention)
				i += 2 + len(kind)
				continue
			}
		}
		plain.WriteByte(text[i])
		i++
	}
	flush()
	return out
}

func attentionAt(s string) string {
	for _, kind := range attentionKinds {
		if strings.HasPrefix(s, kind) {
			return kind
		}
	}
	return ""
}
