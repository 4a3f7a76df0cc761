package autosave

import (
	"sync"
	"time"

	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically saves the buffer when it has unsaved changes. A
// buffer holding a drag preview is never saved; the next tick after the
// drop or cancel picks the change up.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex // Protects access to config fields below
	enabled  bool
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads [plugins.autosave] and starts the ticker if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}
	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsedInterval, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsedInterval <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsedInterval
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	isEnabled := p.enabled
	interval := p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)

	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.DebugTagf("plugin", "%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

// saverLoop hands each tick to the UI goroutine, which owns the buffer.
func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.api.RunOnUI(p.saveIfModified)
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified runs on the UI goroutine.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsBufferModified() {
		return
	}
	if p.api.IsDragging() {
		logger.DebugTagf("plugin", "%s: Drag in progress, skipping auto-save.", p.Name())
		return
	}
	filePath := p.api.GetBufferFilePath()
	if filePath == "" {
		logger.DebugTagf("plugin", "%s: Buffer is modified but has no name, skipping auto-save.", p.Name())
		return
	}

	if err := p.api.SaveBuffer(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
		return
	}
	logger.DebugTagf("plugin", "%s: Auto-saved '%s'", p.Name(), filePath)
}
