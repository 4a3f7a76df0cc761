// Package view keeps the on-screen state of an editor: its layout, scroll
// position, plugins and the layers they draw.
package view

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/xycoord/python-editor-next/internal/config"
	"github.com/xycoord/python-editor-next/internal/core"
	"github.com/xycoord/python-editor-next/internal/core/changes"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/layout"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// Options size and configure a view.
type Options struct {
	Width        int
	Height       int // Rows available for text
	ScrollOff    int
	LineNumbers  bool
	HandleGutter int
}

// OptionsFromConfig derives view options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config, width, height int) Options {
	opts := Options{
		Width:       width,
		Height:      height,
		ScrollOff:   cfg.Editor.ScrollOff,
		LineNumbers: cfg.Editor.LineNumbers,
	}
	if cfg.Dnd.IndentHandles {
		opts.HandleGutter = config.HandleGutterWidth
	}
	return opts
}

// View renders an editor through a layout. All methods except Post and
// SetWake must be called from the UI goroutine.
type View struct {
	editor   *core.Editor
	opts     Options
	layout   *layout.Layout
	resolver *layout.Resolver

	scrollTop    int
	followCursor bool

	plugins   []Plugin
	layers    []*Layer
	measures  []Measure
	measuring bool
	subs      []event.Subscription

	effectsMu sync.Mutex
	effects   []Effect
	wake      func()
}

// New creates a view over editor and starts the given extensions.
func New(editor *core.Editor, opts Options, exts ...Extension) *View {
	v := &View{editor: editor, opts: opts}
	v.relayout()
	v.resolver = layout.NewResolver(v.layout, editor.CursorOffset())

	if em := editor.GetEventManager(); em != nil {
		v.subs = append(v.subs,
			em.Subscribe(event.TypeBufferModified, v.handleBufferModified),
			em.Subscribe(event.TypeCursorMoved, v.handleCursorMoved),
			em.Subscribe(event.TypeBufferLoaded, v.handleBufferLoaded),
		)
	}

	for _, ext := range exts {
		v.plugins = append(v.plugins, ext(v))
	}
	return v
}

func (v *View) relayout() {
	v.layout = layout.New(v.editor.Doc(), layout.Options{
		Width:        v.opts.Width,
		TabWidth:     v.editor.TabWidth(),
		IndentUnit:   v.editor.IndentUnit(),
		HandleGutter: v.opts.HandleGutter,
		LineNumbers:  v.opts.LineNumbers,
	})
	if v.resolver != nil {
		v.resolver = layout.NewResolver(v.layout, v.editor.CursorOffset())
	}
}

func (v *View) update(u Update) {
	u.View = v
	for _, p := range v.plugins {
		p.Update(u)
	}
}

func (v *View) handleBufferModified(e event.Event) bool {
	data, ok := e.Data.(event.BufferModifiedData)
	if !ok {
		logger.Warnf("View: BufferModified with unexpected payload %T", e.Data)
		return false
	}
	v.relayout()
	v.followCursor = true
	v.update(Update{DocChanged: true, Changes: data.Changes, UserEvent: data.UserEvent})
	return false
}

func (v *View) handleCursorMoved(event.Event) bool {
	v.followCursor = true
	v.update(Update{SelectionSet: true})
	return false
}

func (v *View) handleBufferLoaded(event.Event) bool {
	v.relayout()
	v.scrollTop = 0
	v.update(Update{DocChanged: true, Changes: changes.Empty(len(v.layout.Text())), UserEvent: "load"})
	return false
}

// Close destroys the plugins and detaches from the editor.
func (v *View) Close() {
	if em := v.editor.GetEventManager(); em != nil {
		for _, sub := range v.subs {
			em.Unsubscribe(sub)
		}
	}
	v.subs = nil
	for _, p := range v.plugins {
		p.Destroy()
	}
	v.plugins = nil
}

// Frame brings the view up to date before drawing: posted effects are
// delivered, the cursor is scrolled into view and a measure cycle runs.
// It reports whether another frame is needed.
func (v *View) Frame() bool {
	v.FlushEffects()
	if v.followCursor {
		v.followCursor = false
		v.ScrollToCursor()
	}
	return v.RunMeasures()
}

// --- Accessors ---

func (v *View) Editor() *core.Editor { return v.editor }

func (v *View) Layout() *layout.Layout { return v.layout }

// Resolver returns the geometry resolver for the current frame.
func (v *View) Resolver() *layout.Resolver { return v.resolver }

func (v *View) Options() Options { return v.opts }

func (v *View) Plugins() []Plugin { return v.plugins }

// Tree returns the syntax tree and the text it was parsed from.
func (v *View) Tree() (*sitter.Tree, []byte) { return v.editor.Tree() }

// Editable reports whether the document accepts edits.
func (v *View) Editable() bool { return v.editor.Editable() }

// LineClass returns the first line style any plugin assigns to line.
func (v *View) LineClass(line int) string {
	for _, p := range v.plugins {
		if d, ok := p.(LineDecorator); ok {
			if class := d.LineClass(line); class != "" {
				return class
			}
		}
	}
	return ""
}

// --- Size and scrolling ---

// SetSize resizes the view, re-wrapping the text when the width changes.
func (v *View) SetSize(width, height int) {
	if width == v.opts.Width && height == v.opts.Height {
		return
	}
	widthChanged := width != v.opts.Width
	v.opts.Width, v.opts.Height = width, height
	if widthChanged {
		v.relayout()
	}
	v.scrollTop = v.clampScroll(v.scrollTop)
	v.update(Update{ViewportChanged: true})
}

// ScrollTop is the document row shown on the first screen row.
func (v *View) ScrollTop() int { return v.scrollTop }

// Height is the number of rows available for text.
func (v *View) Height() int { return v.opts.Height }

func (v *View) clampScroll(top int) int {
	maxTop := max(0, v.layout.ContentHeight()-v.opts.Height)
	return min(max(top, 0), maxTop)
}

// ScrollTo makes row the first visible row.
func (v *View) ScrollTo(row int) {
	row = v.clampScroll(row)
	if row == v.scrollTop {
		return
	}
	v.scrollTop = row
	v.update(Update{ViewportChanged: true})
}

// ScrollBy scrolls by delta rows.
func (v *View) ScrollBy(delta int) {
	v.ScrollTo(v.scrollTop + delta)
}

// ScrollToCursor scrolls the least amount that keeps the cursor ScrollOff
// rows away from the edges.
func (v *View) ScrollToCursor() {
	if v.opts.Height <= 0 {
		return
	}
	_, row := v.layout.CoordsAtPos(v.editor.CursorOffset())
	off := min(v.opts.ScrollOff, (v.opts.Height-1)/2)
	top := v.scrollTop
	if row < top+off {
		top = row - off
	}
	if row >= top+v.opts.Height-off {
		top = row - v.opts.Height + off + 1
	}
	v.ScrollTo(top)
}

// --- Coordinates ---

// PosAtCoords maps a screen cell to a document offset and line. Rows below
// the text resolve to the end of the document with line set to the line
// count. ok is false for cells outside the view.
func (v *View) PosAtCoords(x, y int) (pos, line int, ok bool) {
	if y < 0 || y >= v.opts.Height || x < 0 || (v.opts.Width > 0 && x >= v.opts.Width) {
		return 0, 0, false
	}
	row := y + v.scrollTop
	if row >= v.layout.ContentHeight() {
		return len(v.layout.Text()), v.layout.LineCount(), true
	}
	pos, vl := v.layout.PosAtCoords(x, row)
	return pos, vl.Line, true
}

// InContent reports whether screen cell (x, y) is over the text area.
func (v *View) InContent(x, y int) bool {
	return y >= 0 && y < v.opts.Height && x >= v.layout.ContentLeft() && (v.opts.Width <= 0 || x < v.opts.Width)
}

// CursorScreen returns the screen cell of the cursor and whether it is visible.
func (v *View) CursorScreen() (x, y int, visible bool) {
	cx, row := v.layout.CoordsAtPos(v.editor.CursorOffset())
	x = cx + v.layout.ContentLeft()
	y = row - v.scrollTop
	visible = y >= 0 && y < v.opts.Height && (v.opts.Width <= 0 || x < v.opts.Width)
	return x, y, visible
}
