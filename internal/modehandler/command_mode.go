package modehandler

import (
	"strings"

	"github.com/xycoord/python-editor-next/internal/input"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune, input.ActionEnterCommandMode:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.currentMode = ModeNormal
			mh.statusBar.ResetTemporaryMessage()
			logger.DebugTagf("command", "ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case input.ActionInsertNewLine:
		mh.currentMode = ModeNormal
		mh.executeCommand()
		return true

	case input.ActionQuit:
		mh.currentMode = ModeNormal
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.ResetTemporaryMessage()
		logger.DebugTagf("command", "ModeHandler: Canceled Command Mode via Escape")
		return true

	default:
		return false
	}

	mh.statusBar.SetTemporaryMessage(":%s", string(mh.cmdBuffer))
	return true
}

// executeCommand parses and runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	cmdStr := string(mh.cmdBuffer)
	mh.cmdBuffer = mh.cmdBuffer[:0]

	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		mh.statusBar.ResetTemporaryMessage()
		return
	}
	mh.statusBar.ResetTemporaryMessage()
	mh.ExecuteCommand(parts[0], parts[1:])
}

// ExecuteCommand runs a registered command by name. Errors are shown in the
// status bar.
func (mh *ModeHandler) ExecuteCommand(name string, args []string) bool {
	cmdFunc, exists := mh.commands[name]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", name)
		return false
	}
	logger.DebugTagf("command", "ModeHandler: Executing command ':%s' with args %v", name, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, err)
		return false
	}
	return true
}
