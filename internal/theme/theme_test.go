package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const purpleTheme = `
name = "Purple"
is_dark = false

[styles.Default]
fg = "#262626"
bg = "white"

[styles.DragActive]
fg = "purple"
bold = true

[styles.DndShadow]
bg = "#f0f0f0"
dim = true

[styles.Broken]
fg = "not-a-colour"
`

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadThemeFromFile(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "purple.toml", purpleTheme)

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Purple", th.Name)
	assert.False(t, th.IsDark)

	fg, bg, attrs := th.GetStyle("DragActive").Decompose()
	assert.Equal(t, tcell.ColorPurple, fg)
	assert.Equal(t, tcell.ColorWhite, bg, "styles inherit the Default background")
	assert.NotZero(t, attrs&tcell.AttrBold)

	_, bg, attrs = th.GetStyle("DndShadow").Decompose()
	assert.Equal(t, tcell.NewHexColor(0xf0f0f0), bg)
	assert.NotZero(t, attrs&tcell.AttrDim)

	_, ok := th.Styles["Broken"]
	assert.False(t, ok, "styles with bad colours are skipped")
}

func TestLoadThemeNameFromFilename(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "nameless.toml", "[styles.Default]\nfg = \"red\"\n")

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "nameless", th.Name)
}

func TestLoadThemeErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadThemeFromFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	path := writeTheme(t, dir, "bad.toml", "name = ")
	_, err = LoadThemeFromFile(path)
	assert.Error(t, err)
}

func TestGetStyleFallback(t *testing.T) {
	def := tcell.StyleDefault.Foreground(tcell.ColorRed)
	drag := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{
		"Default":  def,
		"DragLine": drag,
	}}

	assert.Equal(t, drag, th.GetStyle("DragLine"))
	assert.Equal(t, drag, th.GetStyle("DragLine.active"))
	assert.Equal(t, def, th.GetStyle("Unknown"))

	empty := &Theme{Name: "empty", Styles: map[string]tcell.Style{}}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle("Anything"))
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{in: "#ff0000", want: tcell.NewHexColor(0xff0000)},
		{in: " Purple ", want: tcell.ColorPurple},
		{in: "reset", want: tcell.ColorReset},
		{in: "default", want: tcell.ColorDefault},
		{in: "#fff", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColorString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "purple.toml", purpleTheme)
	writeTheme(t, dir, "notes.txt", "ignored")

	mgr := NewManager(dir)
	t.Cleanup(func() { SetCurrentTheme(&DevComfortDark) })

	assert.Equal(t, DevComfortDark.Name, mgr.Current().Name)
	assert.Equal(t, []string{"DevComfort Dark", "Microbit Light", "Purple"}, mgr.ListThemes())

	require.NoError(t, mgr.SetTheme("purple"))
	assert.Equal(t, "Purple", mgr.Current().Name)
	assert.Equal(t, "Purple", GetCurrentTheme().Name)

	assert.Error(t, mgr.SetTheme("nope"))
	assert.Equal(t, "Purple", mgr.Current().Name)

	_, ok := mgr.GetTheme("MICROBIT LIGHT")
	assert.True(t, ok)
}

func TestManagerMissingDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent"))
	assert.Len(t, mgr.ListThemes(), 2)
}

func TestBuiltinThemesCoverDragStyles(t *testing.T) {
	names := []string{
		"DragLine", "DragParent", "DragBody", "DragActive",
		"DndPreview", "DndDroppedRecent", "DndDroppedDone", "DndShadow", "DndHandleShadow",
		"LineNumber", "StatusBar",
	}
	for _, th := range []*Theme{&DevComfortDark, &MicrobitLight} {
		for _, name := range names {
			_, ok := th.Styles[name]
			assert.True(t, ok, "%s missing %s", th.Name, name)
		}
	}
}
