package logger

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, cfg Config) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	cfg.process()
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(newFilteringHandler(base, &cfg)), &buf
}

func TestFilteringHandlerTags(t *testing.T) {
	log, buf := newTestLogger(t, Config{DisabledTags: []string{"measure"}})

	log.Debug("kept", tagKey, "dnd")
	log.Debug("dropped", tagKey, "measure")
	log.Debug("untagged")

	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "untagged")
	assert.NotContains(t, out, "dropped")
}

func TestFilteringHandlerEnabledTagsDropUntagged(t *testing.T) {
	log, buf := newTestLogger(t, Config{EnabledTags: []string{"DND"}})

	log.Info("drag started", tagKey, "dnd")
	log.Info("plain message")

	out := buf.String()
	assert.Contains(t, out, "drag started")
	assert.NotContains(t, out, "plain message")
}

func TestFilteringHandlerFiles(t *testing.T) {
	log, buf := newTestLogger(t, Config{DisabledFiles: []string{"handler_test.go"}})
	log.Info("from test file")
	assert.Empty(t, buf.String())
}

func TestInitWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pyedit.log")
	cfg := NewConfig()
	cfg.LogLevel = "debug"
	cfg.LogFilePath = path
	require.NoError(t, Init(cfg))
	t.Cleanup(func() { _ = Close() })

	DebugTagf("dnd", "hello %d", 42)
	require.NoError(t, Close())

	assert.FileExists(t, path)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("err"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
