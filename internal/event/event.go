// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"
	"github.com/xycoord/python-editor-next/internal/core/changes"
	"github.com/xycoord/python-editor-next/internal/types"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified // Fired when buffer content changes (insert/delete)
	TypeBufferLoaded   // Fired after a buffer is successfully loaded
	TypeBufferSaved    // Fired after a buffer is successfully saved
	TypeCursorMoved    // Fired when the cursor position changes
	TypeModeChanged    // Fired when editor mode changes

	// Input Events (potentially useful for plugins reacting to raw keys)
	TypeKeyPressed // Raw key press event forwarded

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins

	TypeThemeChanged // Fired when the theme is changed

	// Drag and drop
	TypeDragStarted // A block or snippet drag began
	TypeDragLeft    // The pointer left the editor during a drag
	TypeDragEnded   // The drag session was cleared, dropped or not
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// BufferModifiedData describes one dispatched transaction.
type BufferModifiedData struct {
	Edits     []types.EditInfo  // Per-replacement info for incremental parsing, in application order
	Changes   changes.ChangeSet // The whole transaction as a change set
	UserEvent string            // Tag such as "input.type" or "dnd.preview"
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// DragData identifies the session a drag event belongs to.
type DragData struct {
	Kind    string
	ID      string
	Dropped bool
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
