package scheme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	set, err := Load("dark", "bright", "dark")
	require.NoError(t, err)

	assert.Equal(t, "#CDDC39", set.Console[RoleHeading])
	assert.Equal(t, "#FFFDE7", set.Popup[RoleBackground])
	assert.Equal(t, "97", set.Server[RoleMaster])
}

func TestLoadUnknown(t *testing.T) {
	tests := []struct {
		name                   string
		console, popup, server string
		wantInMessage          string
	}{
		{name: "console", console: "neon", popup: "dark", server: "dark", wantInMessage: `"neon" in section "console"`},
		{name: "popup", console: "dark", popup: "", server: "dark", wantInMessage: `"" in section "popup"`},
		{name: "server", console: "dark", popup: "dark", server: "Dark", wantInMessage: `"Dark" in section "server"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.console, tt.popup, tt.server)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownScheme))
			assert.Contains(t, err.Error(), tt.wantInMessage)
		})
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	theme, ok := Lookup(SectionServer, "dark")
	require.True(t, ok)
	theme[RoleMaster] = "1"

	again, _ := Lookup(SectionServer, "dark")
	assert.Equal(t, "97", again[RoleMaster])
}

func TestStyle(t *testing.T) {
	theme, _ := Lookup(SectionConsole, "bright")

	token, ok := Style(theme, RoleAttention)
	assert.True(t, ok)
	assert.Equal(t, "#0288D1", token)

	_, ok = Style(theme, RoleBackground)
	assert.False(t, ok)
}

func TestNamesAndRoles(t *testing.T) {
	for _, section := range Sections() {
		assert.Equal(t, []string{"bright", "custom", "dark"}, Names(section))
	}
	theme, _ := Lookup(SectionServer, "custom")
	assert.Equal(t, []Role{RoleAttention, RoleHeading, RoleMaster, RoleSlave}, theme.Roles())
}
