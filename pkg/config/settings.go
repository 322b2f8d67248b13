// Package config holds udu settings: built-in defaults, the whitelist of
// settings a user may override, and loading overrides from a YAML file and
// UDU_* environment variables.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/value"
	"github.com/udu-dev/udu/pkg/version"
)

// Output targets of Show.
const (
	OutputConsole = "console"
	OutputWindow  = "window"
	OutputFile    = "file"
)

// Popup configures the on-screen overlay.
type Popup struct {
	FontSize           string
	ShowClearTitle     bool
	HorizontalPosition string // "left" or "right"
	VerticalPosition   string // "top" or "bottom"
	MaxWidth           string // pixels, or any CSS length
	MaxHeight          int
	BottomIndent       int
}

// App configures output and identity.
type App struct {
	ShowOutputDefault  string
	ConsoleEOL         string
	ConsoleSpace       string
	AppName            string
	AppDescription     string
	AppVersion         string
	ConsoleColorScheme string
	PopupColorScheme   string
	ServerColorScheme  string
	AllowColorization  bool
}

// Performance configures duration formatting.
type Performance struct {
	DecimalPlaces int // zero hides the fraction
}

// Runtime holds switches read while running.
type Runtime struct {
	Run              bool // execution globally permitted
	GlobalIndentSize int  // ambient indent level of the renderer
}

// Settings is the complete configuration of one Debugger.
type Settings struct {
	Popup       Popup
	App         App
	Performance Performance
	Runtime     Runtime
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Popup: Popup{
			FontSize:           "1em",
			ShowClearTitle:     true,
			HorizontalPosition: "left",
			VerticalPosition:   "bottom",
			MaxWidth:           "500",
			MaxHeight:          600,
			BottomIndent:       22,
		},
		App: App{
			ShowOutputDefault:  OutputWindow,
			ConsoleEOL:         "\n",
			ConsoleSpace:       "  ",
			AppName:            "udu",
			AppDescription:     "A simple universal debugging utility for Go code.",
			AppVersion:         version.Version,
			ConsoleColorScheme: "dark",
			PopupColorScheme:   "bright",
			ServerColorScheme:  "dark",
			AllowColorization:  true,
		},
		Performance: Performance{DecimalPlaces: 2},
		Runtime:     Runtime{Run: true},
	}
}

// setting describes one user-modifiable key.
type setting struct {
	name  string
	kinds []value.Kind
	apply func(s *Settings, v any)
}

var public = []setting{
	{"fontSize", kinds(value.KindString), func(s *Settings, v any) { s.Popup.FontSize = value.ToString(v) }},
	{"showClearTitle", kinds(value.KindBoolean), func(s *Settings, v any) { s.Popup.ShowClearTitle = value.ToBool(v) }},
	{"horizontalPosition", kinds(value.KindString), func(s *Settings, v any) { s.Popup.HorizontalPosition = value.ToString(v) }},
	{"verticalPosition", kinds(value.KindString), func(s *Settings, v any) { s.Popup.VerticalPosition = value.ToString(v) }},
	{"maxWidth", kinds(value.KindNumber, value.KindString), func(s *Settings, v any) {
		if value.Classify(v) == value.KindNumber {
			s.Popup.MaxWidth = strconv.FormatFloat(value.ToFloat(v), 'f', -1, 64)
			return
		}
		s.Popup.MaxWidth = value.ToString(v)
	}},
	{"maxHeight", kinds(value.KindNumber), func(s *Settings, v any) { s.Popup.MaxHeight = value.ToInt(v) }},
	{"showOutputDefault", kinds(value.KindString), func(s *Settings, v any) { s.App.ShowOutputDefault = value.ToString(v) }},
	{"consoleEOL", kinds(value.KindString), func(s *Settings, v any) { s.App.ConsoleEOL = value.ToString(v) }},
	{"consoleColorScheme", kinds(value.KindString), func(s *Settings, v any) { s.App.ConsoleColorScheme = value.ToString(v) }},
	{"popupColorScheme", kinds(value.KindString), func(s *Settings, v any) { s.App.PopupColorScheme = value.ToString(v) }},
	{"serverColorScheme", kinds(value.KindString), func(s *Settings, v any) { s.App.ServerColorScheme = value.ToString(v) }},
	{"allowColorization", kinds(value.KindBoolean), func(s *Settings, v any) { s.App.AllowColorization = value.ToBool(v) }},
	{"decimalPlaces", kinds(value.KindNumber), func(s *Settings, v any) { s.Performance.DecimalPlaces = value.ToInt(v) }},
	{"run", kinds(value.KindBoolean), func(s *Settings, v any) { s.Runtime.Run = value.ToBool(v) }},
}

func kinds(k ...value.Kind) []value.Kind { return k }

// lookup finds a public setting by name, ignoring case.
func lookup(name string) (setting, bool) {
	for _, s := range public {
		if strings.EqualFold(s.name, name) {
			return s, true
		}
	}
	return setting{}, false
}

// PublicKeys returns the names of the settings Apply accepts.
func PublicKeys() []string {
	keys := make([]string, len(public))
	for i, s := range public {
		keys[i] = s.name
	}
	return keys
}

// Apply overrides settings from custom. Keys are matched without regard to
// case. Unknown keys and values of the wrong kind are skipped; each produces
// one warning. Keys are processed in sorted order so warnings are stable.
func (s *Settings) Apply(custom map[string]any) []string {
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []string
	for _, name := range names {
		def, ok := lookup(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"Custom configuration: the %q property is not allowed to modify, or it does not exist.", name))
			continue
		}
		v := custom[name]
		if !accepts(def.kinds, value.Classify(v)) {
			warnings = append(warnings, fmt.Sprintf(
				"Custom configuration: the value of the %q property must be a %s. The custom value is ignored.",
				def.name, kindList(def.kinds)))
			continue
		}
		def.apply(s, v)
	}
	return warnings
}

func accepts(allowed []value.Kind, k value.Kind) bool {
	for _, a := range allowed {
		if a == k {
			return true
		}
	}
	return false
}

func kindList(k []value.Kind) string {
	parts := make([]string, len(k))
	for i, kind := range k {
		parts[i] = kind.String()
	}
	return strings.Join(parts, "|")
}

// Renderer returns a value renderer configured from s.
func (s Settings) Renderer() *value.Renderer {
	r := value.NewRenderer(value.Options{
		EOL:           s.App.ConsoleEOL,
		Space:         s.App.ConsoleSpace,
		DecimalPlaces: s.Performance.DecimalPlaces,
	})
	r.SetAmbientIndent(s.Runtime.GlobalIndentSize)
	return r
}

// Schemes resolves the configured color schemes. When a name is unknown the
// built-in defaults are returned together with the error.
func (s Settings) Schemes() (scheme.Set, error) {
	set, err := scheme.Load(s.App.ConsoleColorScheme, s.App.PopupColorScheme, s.App.ServerColorScheme)
	if err == nil {
		return set, nil
	}
	d := Default().App
	fallback, ferr := scheme.Load(d.ConsoleColorScheme, d.PopupColorScheme, d.ServerColorScheme)
	if ferr != nil {
		return scheme.Set{}, ferr
	}
	return fallback, err
}
