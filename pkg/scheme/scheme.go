// Package scheme holds the color schemes used by the message sinks.
//
// A scheme is a set of colors for one output surface: the browser console
// (CSS colors), the overlay (CSS colors) and the server console (ANSI SGR
// codes). Each surface ships "dark", "bright" and "custom" schemes.
package scheme

import (
	"fmt"
	"sort"
)

// Role names the purpose of a text segment. Sinks map roles to colors.
type Role string

// Segment roles.
const (
	RoleHeading   Role = "heading"   // headers
	RoleMaster    Role = "master"    // useful information
	RoleSlave     Role = "slave"     // service words and symbols
	RoleAttention Role = "attention" // kinds that require special attention
	// Overlay-only roles.
	RoleBackground Role = "background"
	RoleBorder     Role = "border"
	RoleAppendBG   Role = "appendBG"
	RoleHoverBG    Role = "hoverBG"
)

// Section identifies an output surface.
type Section string

// Output surfaces.
const (
	SectionConsole Section = "console"
	SectionPopup   Section = "popup"
	SectionServer  Section = "server"
)

// Theme maps roles to color tokens.
type Theme map[Role]string

// ErrUnknownScheme is returned when a scheme name is not defined for a section.
var ErrUnknownScheme = fmt.Errorf("unknown color scheme")

var builtin = map[Section]map[string]Theme{
	SectionConsole: {
		"dark": {
			RoleHeading:   "#CDDC39",
			RoleMaster:    "#E0E0E0",
			RoleSlave:     "#9E9E9E",
			RoleAttention: "#5394EC",
		},
		"bright": {
			RoleHeading:   "#8BC34A",
			RoleMaster:    "#546E7A",
			RoleSlave:     "#BCAAA4",
			RoleAttention: "#0288D1",
		},
		"custom": {
			RoleHeading:   "#fff",
			RoleMaster:    "#fff",
			RoleSlave:     "#fff",
			RoleAttention: "#fff",
		},
	},
	SectionPopup: {
		"dark": {
			RoleBackground: "#37474F",
			RoleBorder:     "#78909C",
			RoleAppendBG:   "#4DD0E1",
			RoleHoverBG:    "#455A64",
			RoleMaster:     "#ECEFF1",
			RoleSlave:      "#9E9E9E",
			RoleAttention:  "#40C4FF",
		},
		"bright": {
			RoleBackground: "#FFFDE7",
			RoleBorder:     "#EFEBE9",
			RoleAppendBG:   "#AED581",
			RoleHoverBG:    "#FFECB3",
			RoleMaster:     "#263238",
			RoleSlave:      "#9E9E9E",
			RoleAttention:  "#2196F3",
		},
		"custom": {
			RoleBackground: "#fff",
			RoleBorder:     "#fff",
			RoleAppendBG:   "#fff",
			RoleHoverBG:    "#fff",
			RoleMaster:     "#fff",
			RoleSlave:      "#fff",
			RoleAttention:  "#fff",
		},
	},
	SectionServer: {
		"dark": {
			RoleHeading:   "33",
			RoleMaster:    "97",
			RoleSlave:     "37",
			RoleAttention: "94",
		},
		"bright": {
			RoleHeading:   "33",
			RoleMaster:    "90",
			RoleSlave:     "37",
			RoleAttention: "34",
		},
		"custom": {
			RoleHeading:   "7",
			RoleMaster:    "7",
			RoleSlave:     "7",
			RoleAttention: "7",
		},
	},
}

// Set is the active theme of every surface.
type Set struct {
	Console Theme
	Popup   Theme
	Server  Theme
}

// Lookup returns a copy of the named scheme of a section.
func Lookup(section Section, name string) (Theme, bool) {
	schemes, ok := builtin[section]
	if !ok {
		return nil, false
	}
	theme, ok := schemes[name]
	if !ok {
		return nil, false
	}
	out := make(Theme, len(theme))
	for role, token := range theme {
		out[role] = token
	}
	return out, true
}

// Load resolves the scheme names of all three surfaces. The first unknown
// name aborts loading.
func Load(console, popup, server string) (Set, error) {
	var set Set
	names := []struct {
		section Section
		name    string
		dst     *Theme
	}{
		{SectionConsole, console, &set.Console},
		{SectionPopup, popup, &set.Popup},
		{SectionServer, server, &set.Server},
	}
	for _, n := range names {
		theme, ok := Lookup(n.section, n.name)
		if !ok {
			return Set{}, WrapUnknownScheme(n.section, n.name)
		}
		*n.dst = theme
	}
	return set, nil
}

// WrapUnknownScheme wraps ErrUnknownScheme with the section and scheme name.
func WrapUnknownScheme(section Section, name string) error {
	return fmt.Errorf("%w %q in section %q", ErrUnknownScheme, name, section)
}

// Style returns the color token of a role in theme.
func Style(theme Theme, role Role) (string, bool) {
	token, ok := theme[role]
	return token, ok
}

// Sections returns the known surfaces in a stable order.
func Sections() []Section {
	return []Section{SectionConsole, SectionPopup, SectionServer}
}

// Names returns the scheme names of a section, sorted.
func Names(section Section) []string {
	names := make([]string, 0, len(builtin[section]))
	for name := range builtin[section] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Roles returns the roles defined by theme, sorted.
func (t Theme) Roles() []Role {
	roles := make([]Role, 0, len(t))
	for role := range t {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
