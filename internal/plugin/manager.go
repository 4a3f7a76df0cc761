// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sync"

	"github.com/xycoord/python-editor-next/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string // Registration order; plugins start in it and stop in reverse
	api     EditorAPI
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

func (m *Manager) snapshot() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		list = append(list, m.plugins[name])
	}
	return list
}

// InitializePlugins calls Initialize on every plugin. A plugin that fails
// to initialize is logged and skipped; the first such error is returned.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	m.mu.Lock()
	m.api = api
	m.mu.Unlock()

	var firstErr error
	plugins := m.snapshot()
	logger.DebugTagf("plugin", "Plugin Manager: Initializing %d plugins...", len(plugins))
	for _, p := range plugins {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", p.Name(), err)
			if firstErr == nil {
				firstErr = fmt.Errorf("initialize plugin '%s': %w", p.Name(), err)
			}
			continue
		}
		logger.DebugTagf("plugin", "Plugin Manager: Successfully initialized plugin '%s'", p.Name())
	}
	return firstErr
}

// ShutdownPlugins calls Shutdown on all registered plugins in reverse order.
func (m *Manager) ShutdownPlugins() {
	plugins := m.snapshot()
	logger.DebugTagf("plugin", "Plugin Manager: Shutting down %d plugins...", len(plugins))
	for i := len(plugins) - 1; i >= 0; i-- {
		if err := plugins[i].Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugins[i].Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name (e.g., for inter-plugin communication). Use cautiously.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Names returns the registered plugin names in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}
