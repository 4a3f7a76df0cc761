package app

import (
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/modehandler"
	"github.com/xycoord/python-editor-next/internal/tui"
)

// drawEditor brings the view up to date and redraws all components.
func (a *App) drawEditor() {
	width, height := a.tuiManager.Size()
	viewHeight := textHeight(a.cfg, height)
	a.view.SetSize(width, viewHeight)
	a.modeHandler.SetPageHeight(viewHeight)

	more := a.view.Frame()
	a.updateStatusBarContent()

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), ViewHeight: %d, ScrollTop: %d",
		width, height, viewHeight, a.view.ScrollTop())

	activeTheme := a.themeManager.Current()
	a.tuiManager.Clear()
	tui.DrawView(a.tuiManager, a.view, activeTheme)
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height)
	tui.DrawCursor(a.tuiManager, a.view)
	a.tuiManager.Show()

	// Measures requested during the frame run on the next one.
	if more {
		a.requestRedraw()
	}
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	buffer := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buffer.FilePath(), buffer.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())

	if a.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	}
}

// SetStatusMessage shows a temporary message in the status bar.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}
