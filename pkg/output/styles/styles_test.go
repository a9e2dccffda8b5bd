package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoaded(t *testing.T) {
	for _, name := range []string{"Success", "Error", "Muted", "Path"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "style %s should be registered", name)
	}

	assert.True(t, GetStyle("Error").GetBold())
	assert.True(t, GetStyle("Path").GetItalic())
}

func TestGetStyle_Unknown(t *testing.T) {
	assert.Equal(t, "plain", GetStyle("NoSuchStyle").Render("plain"))
}

func TestRender_KeepsText(t *testing.T) {
	assert.Contains(t, Render("Success", "saved"), "saved")
}

func TestLoadStyles(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, ParseStyles(defaultStyles)) })

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
colors:
  accent:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  Accent:
    underline: true
    foreground: accent
`), 0644))

	require.NoError(t, LoadStyles(path))
	assert.True(t, GetStyle("Accent").GetUnderline())
	_, ok := StyleRegistry["Success"]
	assert.False(t, ok, "loading replaces the registry")
}

func TestParseStyles_Invalid(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, ParseStyles(defaultStyles)) })
	assert.Error(t, ParseStyles([]byte("styles: [unterminated")))
}
