package layout

import "strings"

// Positions is the on-screen box of a header, body or statement in cells.
// Top and Height are document rows; Left is a screen column.
type Positions struct {
	Top          int
	Left         int
	Height       int
	CursorActive bool
	// Inline marks a body that shares its row with the header.
	Inline bool
}

// Eq reports whether two boxes are drawn identically.
func (p Positions) Eq(other Positions) bool {
	return p == other
}

// Bottom is the first row below the box.
func (p Positions) Bottom() int {
	return p.Top + p.Height
}

// Resolver turns source ranges into boxes for one frame. At most one box per
// frame is marked active: the first one resolved that contains the cursor.
type Resolver struct {
	layout *Layout
	cursor int
	found  bool
}

// NewResolver creates a resolver over l with the main cursor at cursor.
func NewResolver(l *Layout, cursor int) *Resolver {
	return &Resolver{layout: l, cursor: cursor}
}

// Reset clears the active box for a new frame.
func (r *Resolver) Reset(cursor int) {
	r.cursor = cursor
	r.found = false
}

// Layout returns the layout being resolved against.
func (r *Resolver) Layout() *Layout {
	return r.layout
}

// Resolve computes the box for [start, end) nested depth levels deep.
// The box runs from the row holding start to the row holding end-1, with
// trailing blank lines skipped. body marks the range as a compound body so
// that one sharing the header's row is flagged Inline.
func (r *Resolver) Resolve(start, end, depth int, body bool) Positions {
	l := r.layout
	top := l.VisualLineAt(start)

	last := max(start, end-1)
	last = max(start, l.SkipBodyTrailers(last))
	bottom := l.VisualLineAt(last)

	p := Positions{
		Top:    top.Top,
		Left:   l.ContentLeft() + depth*l.IndentWidth(),
		Height: bottom.Bottom - top.Top,
	}
	if body {
		from, _ := l.LineRange(top.Line)
		p.Inline = strings.TrimSpace(l.text[from:min(start, len(l.text))]) != ""
	}
	if !r.found && r.cursor >= top.From && r.cursor <= bottom.To {
		p.CursorActive = true
		r.found = true
	}
	return p
}
