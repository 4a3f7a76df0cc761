// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/xycoord/python-editor-next/internal/commands"
	"github.com/xycoord/python-editor-next/internal/dnd"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/plugin"
	"github.com/xycoord/python-editor-next/internal/structure"
	"github.com/xycoord/python-editor-next/internal/theme"
	"github.com/xycoord/python-editor-next/internal/types"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

var _ commands.ThemeAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Buffer Access ---

func (api *appEditorAPI) GetBufferBytes() []byte {
	return api.app.editor.GetBuffer().Bytes()
}

func (api *appEditorAPI) GetBufferLineCount() int {
	return api.app.editor.GetBuffer().LineCount()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.app.editor.GetBuffer().FilePath()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.app.editor.GetBuffer().IsModified()
}

// SaveBuffer saves the buffer to its file.
func (api *appEditorAPI) SaveBuffer() error {
	err := api.app.editor.SaveBuffer()
	api.app.requestRedraw()
	return err
}

// --- Structure & Cursor ---

func (api *appEditorAPI) GetStructure() (structure.Collection, bool) {
	return api.app.editor.Structure()
}

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.editor.GetCursor()
}

// --- Drag and drop ---

func (api *appEditorAPI) IsDragging() bool {
	return api.app.drag.Dragging()
}

// BeginInsert starts an insert drag. The mouse handler moves and drops it.
func (api *appEditorAPI) BeginInsert(code string, kind dnd.InsertKind, id string, onDrop func()) error {
	if err := api.app.drag.BeginInsert(code, kind, id, onDrop); err != nil {
		return err
	}
	api.app.requestRedraw()
	return nil
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription {
	return api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) UnsubscribeEvent(sub event.Subscription) {
	api.app.eventManager.Unsubscribe(sub)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.Errorf("appEditorAPI cannot register command '%s', app or modeHandler is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

func (api *appEditorAPI) RunOnUI(fn func()) {
	api.app.runOnUI(fn)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

// SetTheme activates the theme called name and announces the change.
func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	current := api.app.themeManager.Current()
	api.app.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: current.Name})
	logger.DebugTagf("theme", "Theme changed to '%s', redraw requested", current.Name)
	return nil
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
