package core

import "github.com/xycoord/python-editor-next/internal/core/changes"

// User event tags attached to transactions.
const (
	EventInputType      = "input.type"
	EventInputNewline   = "input.newline"
	EventInputPaste     = "input.paste"
	EventDeleteBackward = "delete.backward"
	EventDeleteForward  = "delete.forward"
	EventUndo           = "undo"
	EventRedo           = "redo"
	EventSelect         = "select"
)

// Transaction is one atomic update of the document and cursor.
type Transaction struct {
	// Changes must be built against the current document. The zero value
	// changes nothing.
	Changes changes.ChangeSet
	// Selection replaces the cursor. When nil the cursor is mapped through Changes.
	Selection *Selection
	// UserEvent tags the transaction for listeners and history grouping.
	UserEvent string
	// SkipHistory keeps the transaction out of the undo stack.
	SkipHistory bool
}
