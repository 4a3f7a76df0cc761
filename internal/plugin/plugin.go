// internal/plugin/plugin.go
package plugin

import (
	"github.com/gdamore/tcell/v2"
	"github.com/xycoord/python-editor-next/internal/dnd"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/structure"
	"github.com/xycoord/python-editor-next/internal/theme"
	"github.com/xycoord/python-editor-next/internal/types"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor core.
// Everything except RunOnUI must be called on the UI goroutine; commands and
// event handlers already run there.
type EditorAPI interface {
	// --- Buffer Access ---
	GetBufferBytes() []byte
	GetBufferLineCount() int
	GetBufferFilePath() string
	IsBufferModified() bool
	SaveBuffer() error

	// --- Structure ---
	// GetStructure walks the current syntax tree. ok is false when the
	// buffer's language has no statement structure.
	GetStructure() (c structure.Collection, ok bool)

	// --- Cursor ---
	GetCursor() types.Position

	// --- Drag and drop ---
	IsDragging() bool
	// BeginInsert starts dragging code that is not in the document yet. The
	// pointer places it; onDrop runs after a successful drop.
	BeginInsert(code string, kind dnd.InsertKind, id string, onDrop func()) error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription
	UnsubscribeEvent(sub event.Subscription)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// RunOnUI queues fn to run on the UI goroutine. Safe from any goroutine.
	RunOnUI(fn func())

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string

	// --- Configuration ---
	// GetPluginConfigValue reads [plugins.<pluginName>] <key> from the config file.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
