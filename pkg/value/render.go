package value

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/udu-dev/udu/pkg/report"
	"github.com/udu-dev/udu/pkg/scheme"
)

// MaxDepth bounds container nesting. Deeper containers, including
// self-referencing ones, render as the renderDepth1 diagnostic.
const MaxDepth = 128

// Options configure a Renderer.
type Options struct {
	EOL           string // line separator
	Space         string // one indent unit
	DecimalPlaces int    // digits after the point in durations
}

// DefaultOptions mirror the built-in configuration.
func DefaultOptions() Options {
	return Options{EOL: "\n", Space: "  ", DecimalPlaces: 2}
}

// Renderer turns values into indented text.
//
// A Renderer is not safe for concurrent use: the ambient indent level is
// shared state.
type Renderer struct {
	eol      string
	space    string
	decimals int
	ambient  int
}

// NewRenderer creates a renderer. An empty EOL falls back to "\n" and a
// negative decimal count to 0.
func NewRenderer(opts Options) *Renderer {
	if opts.EOL == "" {
		opts.EOL = "\n"
	}
	if opts.DecimalPlaces < 0 {
		opts.DecimalPlaces = 0
	}
	return &Renderer{eol: opts.EOL, space: opts.Space, decimals: opts.DecimalPlaces}
}

// EOL returns the configured line separator.
func (r *Renderer) EOL() string {
	return r.eol
}

// SetAmbientIndent forces the indent of the next top-level render to n+1.
// Zero disables the override.
func (r *Renderer) SetAmbientIndent(n int) {
	r.ambient = n
}

// AmbientIndent returns the current ambient indent level.
func (r *Renderer) AmbientIndent() int {
	return r.ambient
}

// Render converts v to text. depth is the indent level of the closing
// bracket of a container; ownIndent also indents its opening bracket.
func (r *Renderer) Render(v any, depth int, ownIndent bool) string {
	return r.render(v, r.indentSize(depth), ownIndent)
}

// RenderArray renders v, which must be an Array. Any other kind yields a
// single diagnostic line.
func (r *Renderer) RenderArray(v any, depth int, ownIndent bool) string {
	if Classify(v) != KindArray {
		return r.line(report.Message(report.CodeShowArray1))
	}
	rv, _ := indirect(reflect.ValueOf(v))
	return r.array(rv, r.indentSize(depth), ownIndent)
}

// RenderObject renders v, which must be an Object. Any other kind yields a
// single diagnostic line.
func (r *Renderer) RenderObject(v any, depth int, ownIndent bool) string {
	if Classify(v) != KindObject {
		return r.line(report.Message(report.CodeShowObject1))
	}
	rv, _ := indirect(reflect.ValueOf(v))
	return r.object(rv, r.indentSize(depth), ownIndent)
}

// Plain renders v like Render but leaves strings unquoted.
func (r *Renderer) Plain(v any) string {
	if Classify(v) == KindString {
		return ToString(v)
	}
	return r.Render(v, 0, false)
}

// FormatValue builds the standard debug message for v:
//
//	Type: Object | comment
//	Value: {...}
//
// It starts a fresh top-level render, so the ambient indent is reset first.
func (r *Renderer) FormatValue(v any, comment string) Message {
	r.ambient = 0

	msg := Message{}.Add("Type: "+Classify(v).String(), scheme.RoleSlave)
	if comment != "" {
		msg = msg.Add(" | ", scheme.RoleSlave).Add(comment, scheme.RoleMaster)
	}
	msg = msg.Add(r.eol+"Value: ", scheme.RoleSlave)
	return append(msg, Segment{Text: r.Render(v, 0, false), Role: scheme.RoleMaster, Rendered: true})
}

// CorrectDecimals formats a duration in milliseconds with the configured
// number of decimal places.
func (r *Renderer) CorrectDecimals(ms float64) string {
	return strconv.FormatFloat(ms, 'f', r.decimals, 64)
}

func (r *Renderer) render(v any, depth int, ownIndent bool) string {
	if depth > MaxDepth {
		return report.Message(report.CodeRenderDepth1)
	}
	rv, _ := indirect(reflect.ValueOf(v))

	switch kind := Classify(v); kind {
	case KindString:
		return `"` + rv.String() + `"`
	case KindNumber:
		return formatNumber(rv)
	case KindBoolean:
		return strconv.FormatBool(rv.Bool())
	case KindArray:
		return r.array(rv, depth, ownIndent)
	case KindObject:
		return r.object(rv, depth, ownIndent)
	case KindFunction:
		return funcText(rv)
	case KindUndefined, KindNull, KindNaN, KindInfinity, KindNegativeInfinity:
		return kind.String()
	default:
		return report.Message(report.CodeGetResult1)
	}
}

func (r *Renderer) array(rv reflect.Value, depth int, ownIndent bool) string {
	next := depth + 1
	items := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item := r.render(rv.Index(i).Interface(), next, false)
		items = append(items, fmt.Sprintf("%s[%d] = %s", r.indent(next), i, item))
	}
	return r.block("[", "]", items, depth, ownIndent)
}

func (r *Renderer) object(rv reflect.Value, depth int, ownIndent bool) string {
	next := depth + 1
	members := membersOf(rv)
	items := make([]string, 0, len(members))
	for _, m := range members {
		item := r.render(m.Value, next, false)
		items = append(items, r.indent(next)+m.Key+": "+item)
	}
	return r.block("{", "}", items, depth, ownIndent)
}

func (r *Renderer) block(open, closing string, items []string, depth int, ownIndent bool) string {
	var b strings.Builder
	if ownIndent {
		b.WriteString(r.indent(depth))
	}
	b.WriteString(r.line(open))
	if len(items) > 0 {
		b.WriteString(r.line(strings.Join(items, ","+r.eol)))
	}
	b.WriteString(r.indent(depth))
	b.WriteString(closing)
	return b.String()
}

// line terminates s with the newline string. Empty input stays empty.
func (r *Renderer) line(s string) string {
	if s == "" {
		return ""
	}
	return s + r.eol
}

func (r *Renderer) indent(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(r.space, n)
}

// indentSize applies the ambient override to a requested depth.
func (r *Renderer) indentSize(depth int) int {
	if r.ambient > 0 {
		return r.ambient + 1
	}
	if depth > 0 {
		return depth
	}
	return 0
}

// membersOf lists the members of an Object-kind value: Object members in
// insertion order, map entries sorted by key text, exported struct fields in
// declaration order.
func membersOf(rv reflect.Value) []Member {
	if rv.Type() == objectType {
		o := rv.Interface().(Object)
		return o.Members()
	}

	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			members = append(members, Member{Key: fmt.Sprint(k.Interface()), Value: rv.MapIndex(k).Interface()})
		}
		sort.SliceStable(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		return members
	case reflect.Struct:
		return structMembers(rv, nil, nil)
	}
	return nil
}

// structMembers lists exported fields in declaration order. Exported fields
// of an unexported embedded struct are promoted in place unless an outer
// field has the same name; a nil embedded pointer contributes nothing.
func structMembers(rv reflect.Value, shadowed map[string]bool, path []reflect.Type) []Member {
	t := rv.Type()
	path = append(path, t)

	own := make(map[string]bool, len(shadowed)+t.NumField())
	for k := range shadowed {
		own[k] = true
	}
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			own[f.Name] = true
		}
	}

	members := make([]Member, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() {
			if !shadowed[f.Name] {
				members = append(members, Member{Key: f.Name, Value: rv.Field(i).Interface()})
			}
			continue
		}
		if !f.Anonymous {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Kind() != reflect.Struct || slices.Contains(path, fv.Type()) {
			continue
		}
		members = append(members, structMembers(fv, own, path)...)
	}
	return members
}

func formatNumber(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	default:
		return strconv.FormatInt(rv.Int(), 10)
	}
}

// formatFloat prints the shortest representation, switching to exponent
// notation only for very large or very small magnitudes. The exponent has no
// leading zeros: 1e-7, not 1e-07.
func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// funcText names a function. Go keeps no source text at run time, so the
// qualified symbol name is the closest stable description.
func funcText(rv reflect.Value) string {
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
		return "func " + fn.Name()
	}
	return "func"
}
