package app

import (
	"fmt"

	"github.com/xycoord/python-editor-next/internal/config"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/statusbar"
)

// subscribeEvents wires the status bar to editor and drag events.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSavedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoadedForStatus)
	a.eventManager.Subscribe(event.TypeDragStarted, a.handleDragStarted)
	a.eventManager.Subscribe(event.TypeDragEnded, a.handleDragEnded)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

// handleCursorMovedForStatus updates the status bar based on cursor position
func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false // Not consumed
}

// handleBufferSavedForStatus updates the status bar when buffer is saved
func (a *App) handleBufferSavedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		a.filePath = data.FilePath
	}
	a.updateStatusBarContent()
	return false
}

// handleBufferLoadedForStatus updates the file path shown after a load.
func (a *App) handleBufferLoadedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		a.filePath = data.FilePath
	}
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

// dragLabel describes a drag for the status bar.
func dragLabel(d event.DragData) string {
	if d.ID == "" {
		return d.Kind
	}
	return fmt.Sprintf("%s %s", d.Kind, d.ID)
}

func (a *App) handleDragStarted(e event.Event) bool {
	data, ok := e.Data.(event.DragData)
	if !ok {
		logger.Warnf("App: DragStarted with unexpected payload %T", e.Data)
		return false
	}
	a.statusBar.SetDragInfo(dragLabel(data))
	return false
}

func (a *App) handleDragEnded(e event.Event) bool {
	a.statusBar.SetDragInfo("")
	a.mouse.reset()
	if data, ok := e.Data.(event.DragData); ok && !data.Dropped {
		a.statusBar.SetTemporaryMessage("Drag cancelled")
	}
	return false
}

// handleThemeChanged restyles the status bar for the new theme.
func (a *App) handleThemeChanged(e event.Event) bool {
	current := a.themeManager.Current()
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(current, config.MessageTimeout))
	a.tuiManager.GetScreen().SetStyle(current.GetStyle("Default"))
	a.requestRedraw()
	return false
}
