package dnd

import (
	"github.com/xycoord/python-editor-next/internal/layout"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/structure"
	"github.com/xycoord/python-editor-next/internal/view"
)

const overlayMeasureKey = "dnd-overlay"

// Overlay draws a handle for every draggable block. It re-walks the syntax
// tree after every update but only redraws when the blocks moved.
type Overlay struct {
	view  *view.View
	ctrl  *Controller
	layer *view.Layer
	opts  Options

	blocks        []Block
	next          []Block
	pointerEvents bool
	drawn         bool
	redraws       int
}

// Options configure the overlay.
type Options struct {
	DragSmallStatements bool
	PullBack            int
}

func newOverlay(v *view.View, ctrl *Controller, opts Options) *Overlay {
	o := &Overlay{
		view:  v,
		ctrl:  ctrl,
		opts:  opts,
		layer: v.AddLayer("dnd-overlay", 1),
	}
	o.schedule()
	return o
}

// Update schedules a re-measure.
func (o *Overlay) Update(view.Update) {
	o.schedule()
}

// Destroy removes the overlay layer.
func (o *Overlay) Destroy() {
	o.view.RemoveLayer(o.layer)
}

// Blocks returns the blocks drawn last.
func (o *Overlay) Blocks() []Block { return o.blocks }

// Redraws counts how many times the layer was rebuilt.
func (o *Overlay) Redraws() int { return o.redraws }

func (o *Overlay) schedule() {
	o.view.RequestMeasure(view.Measure{Key: overlayMeasureKey, Read: o.read, Write: o.write})
}

func (o *Overlay) read(v *view.View) {
	tree, src := v.Tree()
	lang := v.Editor().Language()
	if tree == nil || lang == nil || !lang.HasStructure() {
		o.next = nil
		return
	}
	if string(src) != v.Layout().Text() {
		logger.DebugTagf("dnd", "overlay: tree is behind the document, skipping frame")
		o.next = o.blocks
		return
	}

	r := v.Resolver()
	var blocks []Block
	structure.Walk(tree, src, lang.Structure,
		func(start, end, depth int) {
			if !o.opts.DragSmallStatements {
				return
			}
			p := r.Resolve(start, end, depth, false)
			blocks = append(blocks, Block{Parent: &p, IsSmallStatement: true, Start: start, End: end})
		},
		func(header, body structure.Node, depth int) {
			p := r.Resolve(header.Start, header.End, depth, false)
			b := r.Resolve(body.Start, body.End, depth+1, true)
			blocks = append(blocks, Block{Parent: &p, Body: &b, Start: header.Start, End: body.End, PullBack: o.opts.PullBack})
		},
	)
	// Inner blocks are resolved first so they win the cursor; draw them
	// last so they sit on top of their parents.
	for i, j := 0, len(blocks)-1; i < j; i, j = i+1, j-1 {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	}
	o.next = blocks
}

func (o *Overlay) write(v *view.View) {
	o.layer.SetHeight(0)
	o.layer.SetHeight(v.Layout().ContentHeight())

	// Edits can shift source ranges without moving anything on screen, so
	// the latest blocks are always kept even when nothing is redrawn.
	pointerEvents := !o.ctrl.Dragging()
	unchanged := o.drawn && blocksEqual(o.blocks, o.next) && pointerEvents == o.pointerEvents
	o.blocks = o.next
	if unchanged {
		return
	}
	o.pointerEvents = pointerEvents
	o.drawn = true

	var els []view.Element
	for i, b := range o.blocks {
		for _, el := range b.Draw(o.ctrl, pointerEvents) {
			if el.OnDragStart != nil {
				el.OnDragStart = func() { o.dragStart(i) }
			}
			els = append(els, el)
		}
	}
	o.layer.SetElements(els)
	o.redraws++
	logger.DebugTagf("dnd", "overlay redrawn with %d block(s)", len(o.blocks))
}

// dragStart drags the current range of the i-th block.
func (o *Overlay) dragStart(i int) {
	if i >= len(o.blocks) {
		return
	}
	start, end := o.blocks[i].Range()
	if err := o.ctrl.DragStart(start, end); err != nil {
		logDragStartError(err)
	}
}

// Positions of every block, for callers that only need geometry.
func (o *Overlay) Positions() []layout.Positions {
	var out []layout.Positions
	for _, b := range o.blocks {
		if b.Parent != nil {
			out = append(out, *b.Parent)
		}
		if b.Body != nil {
			out = append(out, *b.Body)
		}
	}
	return out
}
