package modehandler

import (
	"errors"

	"github.com/xycoord/python-editor-next/internal/core"
	"github.com/xycoord/python-editor-next/internal/input"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	actionProcessed := true

	// A drag holds a preview in the document; anything that edits, saves or
	// walks history must see the document at rest.
	switch action {
	case input.ActionQuit:
		if mh.cancelDrag() {
			mh.statusBar.SetTemporaryMessage("Drag cancelled")
			return true
		}
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionMovePageUp, input.ActionMovePageDown, input.ActionMoveHome, input.ActionMoveEnd,
		input.ActionCopyBlock, input.ActionEnterCommandMode, input.ActionUnknown:
	default:
		mh.cancelDrag()
	}

	switch action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetTemporaryMessage(":")
		logger.DebugTagf("command", "ModeHandler: Entering Command Mode")

	case input.ActionQuit:
		if mh.editor.GetBuffer().IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.Quit(true)
		return false
	case input.ActionForceQuit:
		mh.Quit(true)
		return false

	case input.ActionSave:
		mh.save("")

	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		mh.editor.PageMove(-1, mh.pageHeight)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1, mh.pageHeight)
	case input.ActionMoveHome:
		mh.editor.Home()
	case input.ActionMoveEnd:
		mh.editor.End()

	case input.ActionPaste:
		pasted, err := mh.editor.Paste()
		if err != nil {
			mh.reportEditError("Paste", err)
			actionProcessed = false
		} else if !pasted {
			mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
			actionProcessed = false
		}

	case input.ActionUndo:
		actionProcessed = mh.undo()
	case input.ActionRedo:
		actionProcessed = mh.redo()

	case input.ActionCopyBlock:
		actionProcessed = mh.copyBlock()

	case input.ActionInsertRune:
		actionProcessed = mh.edit("InsertRune", func() error { return mh.editor.InsertRune(actionEvent.Rune) })
	case input.ActionInsertTab:
		actionProcessed = mh.edit("InsertTab", mh.editor.InsertTab)
	case input.ActionInsertNewLine:
		actionProcessed = mh.edit("InsertNewLine", mh.editor.InsertNewLine)
	case input.ActionDeleteCharBackward:
		actionProcessed = mh.edit("DeleteBackward", mh.editor.DeleteBackward)
	case input.ActionDeleteCharForward:
		actionProcessed = mh.edit("DeleteForward", mh.editor.DeleteForward)

	default:
		actionProcessed = false
	}

	if action != input.ActionQuit && action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

func (mh *ModeHandler) edit(name string, fn func() error) bool {
	if err := fn(); err != nil {
		mh.reportEditError(name, err)
		return false
	}
	return true
}

func (mh *ModeHandler) reportEditError(name string, err error) {
	if errors.Is(err, core.ErrReadOnly) {
		mh.statusBar.SetTemporaryMessage("Read-only buffer")
		return
	}
	mh.statusBar.SetTemporaryMessage("%s failed: %v", name, err)
	logger.Debugf("ModeHandler: %s error: %v", name, err)
}

func (mh *ModeHandler) save(path string) bool {
	var err error
	if path == "" {
		err = mh.editor.SaveBuffer()
	} else {
		err = mh.editor.SaveBuffer(path)
	}
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		return false
	}
	mh.statusBar.SetTemporaryMessage("Buffer saved to %s", mh.editor.GetBuffer().FilePath())
	return true
}

func (mh *ModeHandler) undo() bool {
	undone, err := mh.editor.Undo()
	switch {
	case err != nil:
		mh.reportEditError("Undo", err)
		return false
	case !undone:
		mh.statusBar.SetTemporaryMessage("Nothing to undo")
		return false
	}
	return true
}

func (mh *ModeHandler) redo() bool {
	redone, err := mh.editor.Redo()
	switch {
	case err != nil:
		mh.reportEditError("Redo", err)
		return false
	case !redone:
		mh.statusBar.SetTemporaryMessage("Nothing to redo")
		return false
	}
	return true
}

func (mh *ModeHandler) copyBlock() bool {
	block, ok := mh.editor.BlockAt(mh.editor.CursorOffset())
	if !ok {
		mh.statusBar.SetTemporaryMessage("No block at cursor")
		return false
	}
	if mh.editor.CopyText(block) {
		mh.statusBar.SetTemporaryMessage("Block copied to clipboard")
	} else {
		mh.statusBar.SetTemporaryMessage("Block copied")
	}
	return true
}
