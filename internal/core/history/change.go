// Package history provides undo/redo functionality via a change history stack.
package history

import (
	"time"

	"github.com/xycoord/python-editor-next/internal/core/changes"
)

// Entry is one undoable step. Changes maps the document before the step to
// the document after it; Inverse maps back.
type Entry struct {
	Changes      changes.ChangeSet
	Inverse      changes.ChangeSet
	CursorBefore int // Byte offset of the cursor before the step
	CursorAfter  int
	UserEvent    string
	At           time.Time
}
