package dnd

import (
	"errors"
	"sync"

	"github.com/xycoord/python-editor-next/internal/core/changes"
)

// ErrDragInProgress is returned when a drag begins while another is live.
var ErrDragInProgress = errors.New("a drag is already in progress")

// InsertKind says where dragged code came from.
type InsertKind int

const (
	// KindStatementMove rearranges code already in the document.
	KindStatementMove InsertKind = iota
	// KindSnippetInsert inserts a (possibly multi-line) example.
	KindSnippetInsert
	// KindCallInsert inserts a function call.
	KindCallInsert
)

// String names the kind as it appears in drop user events.
func (k InsertKind) String() string {
	switch k {
	case KindStatementMove:
		return "statement"
	case KindSnippetInsert:
		return "snippet"
	case KindCallInsert:
		return "call"
	default:
		return "unknown"
	}
}

// Context is the state shared by every event of one drag.
type Context struct {
	Code string
	Kind InsertKind
	ID   string

	// OriginDelete removed the dragged text when the drag started;
	// OriginDeleteInverse puts it back. Both are zero for inserts.
	OriginDelete        changes.ChangeSet
	OriginDeleteInverse changes.ChangeSet

	// OnDropSuccess runs when the drag is dropped on the editor.
	OnDropSuccess func()
}

// HasOrigin reports whether the drag removed text from the document.
func (c Context) HasOrigin() bool {
	return !c.OriginDeleteInverse.IsZero()
}

// Session is the single slot holding the live drag, if any.
type Session struct {
	mu     sync.Mutex
	ctx    Context
	active bool
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Begin stores ctx as the live drag. It fails while another drag is live.
func (s *Session) Begin(ctx Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return ErrDragInProgress
	}
	s.ctx = ctx
	s.active = true
	return nil
}

// Current returns the live drag.
func (s *Session) Current() (Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx, s.active
}

// Active reports whether a drag is live.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// End clears the slot. Ending an empty session does nothing.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = Context{}
	s.active = false
}
