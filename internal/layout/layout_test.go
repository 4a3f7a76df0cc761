package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualLinesWithoutWrap(t *testing.T) {
	l := New("a = 1\n\nb = 2", Options{TabWidth: 4, IndentUnit: 4})
	lines := l.VisualLines()
	require.Len(t, lines, 3)
	assert.Equal(t, VisualLine{From: 0, To: 5, Top: 0, Bottom: 1, Line: 0}, lines[0])
	assert.Equal(t, VisualLine{From: 6, To: 6, Top: 1, Bottom: 2, Line: 1}, lines[1])
	assert.Equal(t, VisualLine{From: 7, To: 12, Top: 2, Bottom: 3, Line: 2}, lines[2])
	assert.Equal(t, 3, l.ContentHeight())
}

func TestWrapAndTabs(t *testing.T) {
	// Gutter: 2 handle columns + "9 " number column = 4; width 10 leaves 6 cells.
	l := New("abcdefghij\n\tx", Options{Width: 10, TabWidth: 4, HandleGutter: 2, LineNumbers: true})
	assert.Equal(t, 4, l.ContentLeft())

	lines := l.VisualLines()
	require.Len(t, lines, 3)
	assert.Equal(t, 0, lines[0].From)
	assert.Equal(t, 6, lines[0].To)
	assert.Equal(t, 6, lines[1].From)
	assert.Equal(t, 6, lines[1].StartCol)
	assert.Equal(t, 0, lines[1].Line)

	cells := l.Cells(lines[2])
	require.Len(t, cells, 2)
	assert.Equal(t, Cell{Pos: 11, Text: "\t", X: 0, Width: 4}, cells[0])
	assert.Equal(t, 4, cells[1].X)

	assert.Equal(t, lines[1], l.VisualLineAt(8))
	assert.Equal(t, lines[1], l.VisualLineAt(6), "wrap point belongs to the row it starts")
}

func TestPosAtCoords(t *testing.T) {
	l := New("if x:\n    pass\n", Options{HandleGutter: 2})
	pos, v := l.PosAtCoords(2+4, 1)
	assert.Equal(t, 10, pos)
	assert.Equal(t, 1, v.Line)

	pos, _ = l.PosAtCoords(0, 1)
	assert.Equal(t, 6, pos, "gutter maps to row start")

	pos, _ = l.PosAtCoords(80, 0)
	assert.Equal(t, 5, pos, "past the end maps to row end")

	pos, v = l.PosAtCoords(3, 99)
	assert.Equal(t, 2, v.Line, "rows below the content clamp to the last row")
	assert.Equal(t, len("if x:\n    pass\n"), pos)
}

func TestCoordsAtPos(t *testing.T) {
	l := New("ab\ncd", Options{})
	x, y := l.CoordsAtPos(4)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
	x, y = l.CoordsAtPos(2)
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
}

func TestSkipBodyTrailers(t *testing.T) {
	src := "if x:\n    a\n\n   \ny\n"
	l := New(src, Options{})
	// Offset of the whitespace-only line.
	assert.Equal(t, 11, l.SkipBodyTrailers(14))
	assert.Equal(t, 17, l.SkipBodyTrailers(17), "non-blank lines are left alone")
}

func TestResolveDepthAndHeight(t *testing.T) {
	src := "if x:\n    a = 1\n    b = 2\n\nc = 3\n"
	l := New(src, Options{HandleGutter: 2, IndentUnit: 4})
	r := NewResolver(l, -1)

	header := r.Resolve(0, 6, 0, false)
	assert.Equal(t, Positions{Top: 0, Left: 2, Height: 1}, header)

	body := r.Resolve(6, 27, 1, true)
	assert.Equal(t, Positions{Top: 1, Left: 6, Height: 2}, body, "blank trailer is skipped")
}

func TestResolveOnlyOneActive(t *testing.T) {
	src := "if x:\n    a = 1\n"
	l := New(src, Options{})
	r := NewResolver(l, 10)

	inner := r.Resolve(10, 15, 1, false)
	outer := r.Resolve(0, 16, 0, false)
	assert.True(t, inner.CursorActive)
	assert.False(t, outer.CursorActive)

	r.Reset(10)
	assert.True(t, r.Resolve(0, 16, 0, false).CursorActive, "reset starts a new frame")
}

func TestResolveInlineBody(t *testing.T) {
	src := "while x: pass\n"
	r := NewResolver(New(src, Options{}), -1)
	assert.True(t, r.Resolve(9, 13, 1, true).Inline)
	assert.False(t, r.Resolve(0, 8, 0, false).Inline)
}
