package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, undecoded, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Empty(t, undecoded)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadFileKeepsUnsetDefaults(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 8

[dnd]
drag_small_statements = false
marker_timeout_ms = 250
`)
	cfg, undecoded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Empty(t, undecoded)

	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.Equal(t, DefaultScrollOff, cfg.Editor.ScrollOff)
	assert.False(t, cfg.Dnd.DragSmallStatements)
	assert.True(t, cfg.Dnd.IndentHandles)
	assert.Equal(t, 250, cfg.Dnd.MarkerTimeoutMS)
}

func TestLoadReportsUnknownKeysAndBadSyntax(t *testing.T) {
	path := writeConfig(t, "[dnd]\nwobble = true\n")
	_, undecoded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"dnd.wobble"}, undecoded)

	_, _, err = Load(writeConfig(t, "[editor\n"), nil)
	assert.Error(t, err)
}

func TestValidateResetsInvalidValues(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = -2\nindent_unit = 0\n[dnd]\nmarker_timeout_ms = -1\n")
	cfg, _, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
	assert.Equal(t, DefaultIndentUnit, cfg.Editor.IndentUnit)
	assert.Equal(t, NewDefaultConfig().Dnd.MarkerTimeoutMS, cfg.Dnd.MarkerTimeoutMS)
}

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\n[dnd]\nindent_handles = false\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var flags Flags
	flags.Register(fs)
	require.NoError(t, fs.Parse([]string{"--dnd-debug", "--log-tags", "dnd, ,config", "--readonly"}))

	cfg, _, err := Load(path, &flags)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Editor.TabWidth, "unset flag must not override the file")
	assert.False(t, cfg.Dnd.IndentHandles)
	assert.True(t, cfg.Dnd.Debug)
	assert.True(t, cfg.Editor.ReadOnly)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"dnd", "config"}, cfg.Logger.EnabledTags)
}

func TestLoadPluginTables(t *testing.T) {
	path := writeConfig(t, `
[theme]
name = "Microbit Light"

[plugins.autosave]
enabled = true
interval = "30s"
`)
	cfg, undecoded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Empty(t, undecoded)
	assert.Equal(t, "Microbit Light", cfg.Theme.Name)

	v, ok := cfg.PluginValue("autosave", "interval")
	require.True(t, ok)
	assert.Equal(t, "30s", v)

	_, ok = cfg.PluginValue("autosave", "missing")
	assert.False(t, ok)
	_, ok = cfg.PluginValue("snippets", "dir")
	assert.False(t, ok)
}
