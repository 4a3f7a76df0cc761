package autosave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xycoord/python-editor-next/internal/plugin/plugintest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// waitTick runs queued saver work, waiting until there is some.
func waitTick(t *testing.T, api *plugintest.API) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		require.NoError(t, api.WaitQueued(ctx))
		if api.Drain() > 0 {
			return
		}
	}
}

func TestAutoSaveSkipsDrags(t *testing.T) {
	api := plugintest.New("a = 1\nb = 2\n")
	api.Path = "main.py"
	api.Config["autosave"] = map[string]interface{}{"enabled": true, "interval": "5ms"}

	p := New()
	require.NoError(t, p.Initialize(api))
	defer p.Shutdown()

	waitTick(t, api)
	assert.Zero(t, api.Saves, "unmodified buffers are not saved")

	require.NoError(t, api.Drag.DragStart(0, 5))
	waitTick(t, api)
	assert.Zero(t, api.Saves, "a buffer holding a drag is not saved")

	api.Drag.DragEnd()
	waitTick(t, api)
	assert.Positive(t, api.Saves)
}

func TestAutoSaveDisabledByDefault(t *testing.T) {
	api := plugintest.New("")
	p := New().(*AutoSave)
	require.NoError(t, p.Initialize(api))
	assert.Nil(t, p.stopChan)
	assert.NoError(t, p.Shutdown())
}

func TestAutoSaveBadConfig(t *testing.T) {
	api := plugintest.New("")
	api.Config["autosave"] = map[string]interface{}{"enabled": "yes", "interval": "-1s"}
	p := New().(*AutoSave)
	require.NoError(t, p.Initialize(api))
	assert.False(t, p.enabled)
	assert.Equal(t, defaultInterval, p.interval)
}
