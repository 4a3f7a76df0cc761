// Package dnd moves code around the document by dragging it.
//
// A drag removes its source lines from the document, shows the code at the
// pointer as a preview while it moves, and on drop commits the whole gesture
// as a single undoable transaction. Only that final transaction reaches the
// history; every intermediate edit is dispatched without it, so a cancelled
// drag leaves the document exactly as it was.
package dnd

import (
	"fmt"
	"strings"

	"github.com/xycoord/python-editor-next/internal/core"
	"github.com/xycoord/python-editor-next/internal/core/changes"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// User events of the transactions a drag dispatches.
const (
	EventDeleteDragBlock = "delete-drag-block"
	EventPreview         = "dnd.preview"
	EventCleanup         = "dnd.cleanup"
	EventUndoOrigin      = "dnd.undo"
	EventRevert          = "dnd.revert"
	EventDrop            = "dnd.drop"
)

// Host is the editor a controller edits.
type Host interface {
	Doc() string
	Dispatch(tr core.Transaction) error
	Editable() bool
}

// State is the controller's position in a drag.
type State int

const (
	StateIdle State = iota
	StateDragging
	StatePreviewing
	StateDropped
	StateReverted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StatePreviewing:
		return "previewing"
	case StateDropped:
		return "dropped"
	case StateReverted:
		return "reverted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// lastPreview is the preview currently in the document.
type lastPreview struct {
	Line    int
	Pos     int
	Inverse changes.ChangeSet
}

// Controller runs drags against a host.
type Controller struct {
	host    Host
	session *Session
	policy  InsertionPolicy
	events  *event.Manager

	state      State
	ctx        Context // The drag being run, kept after the session ends for DragEnd
	preview    *lastPreview
	insert     changes.ChangeSet // Changes of the last computed preview
	selection  *core.Selection   // Where the last preview would leave the cursor
	dropped    bool
	suppressed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy replaces the default LinePolicy.
func WithPolicy(p InsertionPolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithEvents publishes drag start, leave and end on m.
func WithEvents(m *event.Manager) Option {
	return func(c *Controller) { c.events = m }
}

// WithSession shares a session between controllers.
func WithSession(s *Session) Option {
	return func(c *Controller) { c.session = s }
}

// NewController creates a controller editing host.
func NewController(host Host, opts ...Option) *Controller {
	c := &Controller{host: host, policy: LinePolicy{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = NewSession()
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Session returns the session holding the live drag.
func (c *Controller) Session() *Session { return c.session }

// Suppressed reports whether child enter/leave events are being ignored,
// which holds from the first enter until the pointer leaves the content.
func (c *Controller) Suppressed() bool { return c.suppressed }

// Dragging reports whether a drag is live.
func (c *Controller) Dragging() bool { return c.session.Active() }

func (c *Controller) publish(t event.Type, ctx Context) {
	if c.events != nil {
		c.events.Dispatch(t, event.DragData{Kind: ctx.Kind.String(), ID: ctx.ID, Dropped: c.dropped})
	}
}

func (c *Controller) dispatch(cs changes.ChangeSet, userEvent string) error {
	return c.host.Dispatch(core.Transaction{Changes: cs, UserEvent: userEvent, SkipHistory: true})
}

// DragStart begins moving the whole lines spanned by [start, end]. The lines
// are removed from the document at once, outside the history.
func (c *Controller) DragStart(start, end int) error {
	if !c.host.Editable() {
		return core.ErrReadOnly
	}
	doc := c.host.Doc()
	if start < 0 || end < start || end > len(doc) {
		return fmt.Errorf("drag [%d,%d] in document of length %d: %w", start, end, len(doc), changes.ErrOutOfRange)
	}

	from := strings.LastIndexByte(doc[:start], '\n') + 1
	to := len(doc)
	if i := strings.IndexByte(doc[end:], '\n'); i >= 0 {
		to = end + i + 1
	}

	del, err := changes.Of(len(doc), changes.Spec{From: from, To: to})
	if err != nil {
		return err
	}
	inverse, err := del.Invert(doc)
	if err != nil {
		return err
	}

	ctx := Context{
		Code:                doc[from:to],
		Kind:                KindStatementMove,
		OriginDelete:        del,
		OriginDeleteInverse: inverse,
	}
	if err := c.session.Begin(ctx); err != nil {
		return err
	}
	if err := c.dispatch(del, EventDeleteDragBlock); err != nil {
		c.session.End()
		return fmt.Errorf("remove dragged lines: %w", err)
	}

	c.reset()
	c.ctx = ctx
	c.state = StateDragging
	logger.DebugTagf("dnd", "dragstart [%d,%d) %q", from, to, ctx.Code)
	c.publish(event.TypeDragStarted, ctx)
	return nil
}

// BeginInsert begins dragging code that is not in the document yet.
func (c *Controller) BeginInsert(code string, kind InsertKind, id string, onDrop func()) error {
	if !c.host.Editable() {
		return core.ErrReadOnly
	}
	ctx := Context{Code: code, Kind: kind, ID: id, OnDropSuccess: onDrop}
	if err := c.session.Begin(ctx); err != nil {
		return err
	}
	c.reset()
	c.ctx = ctx
	c.state = StateDragging
	logger.DebugTagf("dnd", "begin %s insert %q", kind, id)
	c.publish(event.TypeDragStarted, ctx)
	return nil
}

func (c *Controller) reset() {
	c.preview = nil
	c.insert = changes.ChangeSet{}
	c.selection = nil
	c.dropped = false
	c.suppressed = false
}

// live returns the drag context when drag events should be handled.
func (c *Controller) live() (Context, bool) {
	if !c.host.Editable() {
		return Context{}, false
	}
	return c.session.Current()
}

// revertPreview takes the live preview out of the document.
func (c *Controller) revertPreview() {
	if c.preview == nil {
		return
	}
	if err := c.dispatch(c.preview.Inverse, EventCleanup); err != nil {
		logger.Warnf("dnd: revert preview: %v", err)
	}
	c.preview = nil
}

// DragOver shows the dragged code at the pointer, replacing any earlier
// preview. Repeating the last position does nothing, and a position that
// does not resolve leaves the current preview alone.
func (c *Controller) DragOver(line, pos int) {
	ctx, ok := c.live()
	if !ok {
		return
	}
	if c.preview != nil && c.preview.Line == line && c.preview.Pos == pos {
		return
	}

	base := c.host.Doc()
	if c.preview != nil {
		var err error
		if base, err = c.preview.Inverse.Apply(base); err != nil {
			logger.Warnf("dnd: dragover: %v", err)
			return
		}
	}
	insert, sel, err := c.policy.Insertion(base, ctx.Code, line, pos)
	if err != nil {
		logger.DebugTagf("dnd", "dragover line %d pos %d ignored: %v", line, pos, err)
		return
	}
	inverse, err := insert.Invert(base)
	if err != nil {
		logger.Warnf("dnd: dragover: %v", err)
		return
	}

	c.revertPreview()
	if err := c.dispatch(insert, EventPreview); err != nil {
		logger.Warnf("dnd: preview: %v", err)
		return
	}
	c.preview = &lastPreview{Line: line, Pos: pos, Inverse: inverse}
	c.insert = insert
	c.selection = sel
	c.state = StatePreviewing
	logger.DebugTagf("dnd", "dragover line %d pos %d", line, pos)
}

// DragEnter marks the pointer as inside the editor.
func (c *Controller) DragEnter() {
	if _, ok := c.live(); !ok {
		return
	}
	c.suppressed = true
	logger.DebugTagf("dnd", "dragenter")
}

// DragLeave handles the pointer leaving. Leaving the content area itself
// abandons the preview; leaving a child element is ignored.
func (c *Controller) DragLeave(contentArea bool) {
	ctx, ok := c.live()
	if !ok {
		return
	}
	c.publish(event.TypeDragLeft, ctx)
	if !contentArea {
		logger.DebugTagf("dnd", "dragleave (ignored)")
		return
	}
	c.suppressed = false
	c.revertPreview()
	c.insert = changes.ChangeSet{}
	c.selection = nil
	c.state = StateDragging
	logger.DebugTagf("dnd", "dragleave")
}

// Drop commits the drag. The preview and the origin deletion are undone
// outside the history, then one historied transaction deletes the origin
// and inserts the code where the preview showed it.
func (c *Controller) Drop() {
	ctx, ok := c.session.Current()
	if ok && ctx.OnDropSuccess != nil {
		ctx.OnDropSuccess()
	}
	if !ok || !c.host.Editable() {
		return
	}
	c.dropped = true
	c.suppressed = false
	c.revertPreview()

	if ctx.HasOrigin() {
		if err := c.dispatch(ctx.OriginDeleteInverse, EventUndoOrigin); err != nil {
			logger.Errorf("dnd: restore origin before drop: %v", err)
			return
		}
	}

	cs := c.insert
	if !cs.IsZero() && ctx.HasOrigin() {
		var err error
		if cs, err = ctx.OriginDelete.Compose(c.insert); err != nil {
			logger.Errorf("dnd: compose drop: %v", err)
			return
		}
	}
	if !cs.IsZero() {
		err := c.host.Dispatch(core.Transaction{
			Changes:   cs,
			Selection: c.selection,
			UserEvent: EventDrop + "." + ctx.Kind.String(),
		})
		if err != nil {
			logger.Errorf("dnd: drop: %v", err)
		}
	}

	c.insert = changes.ChangeSet{}
	c.selection = nil
	c.state = StateDropped
	logger.DebugTagf("dnd", "drop %s", ctx.Kind)
	c.session.End()
}

// DragEnd finishes the drag. Without a drop, the document is restored to
// what it was before the drag started.
func (c *Controller) DragEnd() {
	ctx, ok := c.session.Current()
	if ok && !c.dropped {
		c.revertPreview()
		if ctx.HasOrigin() {
			if err := c.dispatch(ctx.OriginDeleteInverse, EventRevert); err != nil {
				logger.Errorf("dnd: restore dragged lines: %v", err)
			}
		}
		c.state = StateReverted
		logger.DebugTagf("dnd", "dragend without drop, reverted")
	}
	if c.state == StateIdle {
		return
	}
	c.session.End()
	c.publish(event.TypeDragEnded, c.ctx)
	c.reset()
	c.ctx = Context{}
	c.state = StateIdle
}

func logDragStartError(err error) {
	logger.DebugTagf("dnd", "dragstart refused: %v", err)
}
