// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit                  // Esc: cancels a drag or command first
	ActionForceQuit             // Quit without checking modified status
	ActionSave

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line

	// --- Text Manipulation ---
	ActionInsertRune         // Requires Rune argument
	ActionInsertTab          // Tab inserts one indent unit
	ActionInsertNewLine      // Specific action for Enter
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key
	ActionPaste
	ActionUndo
	ActionRedo

	// --- Structure ---
	ActionCopyBlock // Copy the innermost statement at the cursor

	// --- Editor Mode ---
	ActionEnterCommandMode // Special action for ':'
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionSave:               "save",
	ActionMoveUp:             "up",
	ActionMoveDown:           "down",
	ActionMoveLeft:           "left",
	ActionMoveRight:          "right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "home",
	ActionMoveEnd:            "end",
	ActionInsertRune:         "insert",
	ActionInsertTab:          "tab",
	ActionInsertNewLine:      "newline",
	ActionDeleteCharForward:  "delete",
	ActionDeleteCharBackward: "backspace",
	ActionPaste:              "paste",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionCopyBlock:          "copy-block",
	ActionEnterCommandMode:   "command",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}
