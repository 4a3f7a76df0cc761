package dnd

import (
	"github.com/xycoord/python-editor-next/internal/layout"
	"github.com/xycoord/python-editor-next/internal/view"
)

// HandleKind is the part of a block a handle draws.
type HandleKind int

const (
	HandleStatement HandleKind = iota // A simple statement
	HandleParent                      // The header of a compound statement
	HandleBody                        // The bar beside a compound body
)

// Theme style names for handles.
const (
	ClassLine   = "DragLine"
	ClassParent = "DragParent"
	ClassBody   = "DragBody"
)

// handleGlyph is drawn in every cell of a handle.
const handleGlyph = '▎'

// Handle is one positioned, draggable rectangle of a block.
type Handle struct {
	Kind       HandleKind
	X, Y, W, H int // Screen column, document row, size in cells
	Active     bool
	Draggable  bool
	Start, End int // Source range handed to the controller
}

// DragStart starts dragging the handle's source range.
func (h Handle) DragStart(ctrl *Controller) error {
	return ctrl.DragStart(h.Start, h.End)
}

// DragEnd finishes the drag the handle started.
func (h Handle) DragEnd(ctrl *Controller) {
	ctrl.DragEnd()
}

// Element converts the handle for drawing on a view layer.
func (h Handle) Element(ctrl *Controller) view.Element {
	class := ClassLine
	switch h.Kind {
	case HandleParent:
		class = ClassParent
	case HandleBody:
		class = ClassBody
	}
	el := view.Element{
		X: h.X, Y: h.Y, W: h.W, H: h.H,
		Class:     class,
		Active:    h.Active,
		Glyph:     handleGlyph,
		Draggable: h.Draggable,
	}
	if h.Draggable && ctrl != nil {
		el.OnDragStart = func() {
			if err := h.DragStart(ctrl); err != nil {
				logDragStartError(err)
			}
		}
		el.OnDragEnd = func() { h.DragEnd(ctrl) }
	}
	return el
}

// Block is one draggable statement: a simple statement with Parent set, or
// a compound clause with both Parent (its header) and Body set.
type Block struct {
	Parent           *layout.Positions
	Body             *layout.Positions
	IsSmallStatement bool
	Start, End       int

	// PullBack narrows body bars by this many cells.
	PullBack int
}

// Eq compares the geometry of two blocks.
func (b Block) Eq(other Block) bool {
	return b.IsSmallStatement == other.IsSmallStatement &&
		b.PullBack == other.PullBack &&
		eqPositions(b.Parent, other.Parent) &&
		eqPositions(b.Body, other.Body)
}

func eqPositions(a, b *layout.Positions) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Eq(*b)
}

// Active reports whether the block holds the cursor.
func (b Block) Active() bool {
	return (b.Parent != nil && b.Parent.CursorActive) || (b.Body != nil && b.Body.CursorActive)
}

// Range is the source range a drag of the block moves. A compound block's
// range stops one byte short of the body end so a trailing newline never
// pulls in the following line.
func (b Block) Range() (start, end int) {
	if b.IsSmallStatement {
		return b.Start, b.End
	}
	return b.Start, max(b.Start, b.End-1)
}

// handleX places a handle one column left of a box, or in the box's first
// column when nothing is reserved to its left.
func handleX(left int) int {
	return max(0, left-1)
}

// Handles lays out the block's handles. With pointerEvents false the
// handles are drawn but cannot be grabbed.
func (b Block) Handles(pointerEvents bool) []Handle {
	if b.Parent == nil {
		return nil
	}
	active := b.Active()
	p := *b.Parent
	start, end := b.Range()

	if b.IsSmallStatement {
		return []Handle{{
			Kind: HandleStatement,
			X:    handleX(p.Left), Y: p.Top, W: 1, H: p.Height,
			Active: active, Draggable: pointerEvents,
			Start: start, End: end,
		}}
	}

	handles := []Handle{{
		Kind: HandleParent,
		X:    handleX(p.Left), Y: p.Top, W: 1, H: p.Height,
		Active: active, Draggable: pointerEvents,
		Start: start, End: end,
	}}
	if b.Body != nil && !b.Body.Inline {
		body := *b.Body
		width := max(1, (body.Left-p.Left)/2-b.PullBack)
		handles = append(handles, Handle{
			Kind: HandleBody,
			X:    handleX(p.Left), Y: body.Top, W: width, H: body.Height,
			Active: active, Draggable: pointerEvents,
			Start: start, End: end,
		})
	}
	return handles
}

// Draw converts the block's handles to layer elements wired to ctrl.
func (b Block) Draw(ctrl *Controller, pointerEvents bool) []view.Element {
	handles := b.Handles(pointerEvents)
	els := make([]view.Element, 0, len(handles))
	for _, h := range handles {
		els = append(els, h.Element(ctrl))
	}
	return els
}

func blocksEqual(a, b []Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}
