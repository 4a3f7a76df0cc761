// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/xycoord/python-editor-next/internal/core"
	"github.com/xycoord/python-editor-next/internal/dnd"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/input"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/plugin"
	"github.com/xycoord/python-editor-next/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	drag           *dnd.Controller
	quitSignal     chan<- struct{}

	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
	quitting         bool
	pageHeight       int
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Drag           *dnd.Controller // Optional; Esc and edits cancel its drags
	QuitSignal     chan<- struct{} // Closed once to stop the app
}

// New creates a new ModeHandler with the built-in commands registered.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	mh := &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		drag:           cfg.Drag,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
		pageHeight:     1,
	}
	mh.registerBuiltins()
	return mh
}

// SetPageHeight sets how far PageUp/PageDown move.
func (mh *ModeHandler) SetPageHeight(rows int) {
	mh.pageHeight = max(1, rows)
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	if mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev}) {
		return true
	}

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.DebugTagf("command", "ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands lists the registered command names.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns the mode name shown in the status bar.
// Normal mode shows nothing.
func (mh *ModeHandler) GetCurrentModeString() string {
	if mh.currentMode == ModeNormal {
		return ""
	}
	return mh.currentMode.String()
}

// GetCommandBuffer returns the command being typed, or "" outside command mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// Quit closes the quit signal once. Unless force is set, unsaved changes
// only produce a warning.
func (mh *ModeHandler) Quit(force bool) bool {
	if !force && mh.editor.GetBuffer().IsModified() {
		mh.statusBar.SetTemporaryMessage("No write since last change (add ! to override)")
		return false
	}
	if !mh.quitting {
		mh.quitting = true
		close(mh.quitSignal)
	}
	return true
}

// cancelDrag abandons any drag in progress so the document is back at rest.
func (mh *ModeHandler) cancelDrag() bool {
	if mh.drag == nil || !mh.drag.Dragging() {
		return false
	}
	mh.drag.DragEnd()
	logger.DebugTagf("dnd", "ModeHandler: drag cancelled from keyboard")
	return true
}
