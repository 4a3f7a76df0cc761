package app

import (
	"fmt"

	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/plugin"
	"github.com/xycoord/python-editor-next/plugins/autosave"
	"github.com/xycoord/python-editor-next/plugins/snippets"
	"github.com/xycoord/python-editor-next/plugins/wordcount"
)

// registerPlugins registers all known plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	// Adding a new plugin means adding its constructor here.
	pluginConstructors := []func() plugin.Plugin{
		wordcount.New,
		autosave.New,
		snippets.New,
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		pluginName := p.Name()

		logger.DebugTagf("plugin", "Registering plugin: %s", pluginName)
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", pluginName, err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr // Store the first error encountered
			}
		}
	}

	return finalErr
}
