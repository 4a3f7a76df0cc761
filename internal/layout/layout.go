// Package layout maps document offsets to terminal rows and columns.
package layout

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// Options control how text is laid out.
type Options struct {
	Width        int // Total columns available, gutters included. <= 0 disables wrapping.
	TabWidth     int
	IndentUnit   int // Columns per nesting level
	HandleGutter int // Columns reserved left of the line numbers for drag handles
	LineNumbers  bool
}

// VisualLine is one screen row of a (possibly wrapped) document line.
// From/To are byte offsets; Top/Bottom are document rows, Bottom exclusive.
type VisualLine struct {
	From   int
	To     int
	Top    int
	Bottom int
	Line   int // Document line index
	// StartCol is the visual column of From within its document line.
	StartCol int
}

// Height returns the number of rows the visual line covers.
func (v VisualLine) Height() int {
	return v.Bottom - v.Top
}

// Cell is one grapheme cluster placed on a visual line. X is relative to the
// content area.
type Cell struct {
	Pos   int
	Text  string
	X     int
	Width int
}

// Layout is an immutable snapshot of wrapped text.
type Layout struct {
	opts      Options
	text      string
	lineFrom  []int // Byte offset of each document line
	visual    []VisualLine
	firstVis  []int // Index into visual of each document line's first row
	numberCol int
}

// New lays out text.
func New(text string, opts Options) *Layout {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.IndentUnit <= 0 {
		opts.IndentUnit = 4
	}
	l := &Layout{opts: opts, text: text}

	from := 0
	for {
		l.lineFrom = append(l.lineFrom, from)
		i := strings.IndexByte(text[from:], '\n')
		if i < 0 {
			break
		}
		from += i + 1
	}
	if opts.LineNumbers {
		l.numberCol = len(strconv.Itoa(len(l.lineFrom))) + 1
	}

	contentWidth := 0
	if opts.Width > 0 {
		contentWidth = max(1, opts.Width-l.ContentLeft())
	}

	row := 0
	for i, start := range l.lineFrom {
		end := l.lineEnd(i)
		l.firstVis = append(l.firstVis, len(l.visual))
		vl := VisualLine{From: start, Top: row, Line: i}
		col := 0
		g := uniseg.NewGraphemes(text[start:end])
		for g.Next() {
			from, _ := g.Positions()
			w := l.cellWidth(g.Str(), g.Width(), col)
			if contentWidth > 0 && col > vl.StartCol && col-vl.StartCol+w > contentWidth {
				vl.To = start + from
				vl.Bottom = row + 1
				l.visual = append(l.visual, vl)
				row++
				vl = VisualLine{From: start + from, Top: row, Line: i, StartCol: col}
			}
			col += w
		}
		vl.To = end
		vl.Bottom = row + 1
		l.visual = append(l.visual, vl)
		row++
	}
	return l
}

func (l *Layout) cellWidth(s string, w, col int) int {
	if s == "\t" {
		return l.opts.TabWidth - col%l.opts.TabWidth
	}
	return w
}

func (l *Layout) lineEnd(i int) int {
	if i+1 < len(l.lineFrom) {
		return l.lineFrom[i+1] - 1
	}
	return len(l.text)
}

// Text returns the laid out text.
func (l *Layout) Text() string { return l.text }

// Options returns the options the layout was built with.
func (l *Layout) Options() Options { return l.opts }

// HandleGutter is the width of the drag handle gutter.
func (l *Layout) HandleGutter() int { return l.opts.HandleGutter }

// NumberGutter is the width of the line number gutter, including its padding.
func (l *Layout) NumberGutter() int { return l.numberCol }

// ContentLeft is the screen column where text starts.
func (l *Layout) ContentLeft() int { return l.opts.HandleGutter + l.numberCol }

// CharWidth is the width of one character cell.
func (l *Layout) CharWidth() int { return 1 }

// IndentWidth is the width of one indentation level in cells.
func (l *Layout) IndentWidth() int { return l.opts.IndentUnit * l.CharWidth() }

// ContentHeight is the total number of rows.
func (l *Layout) ContentHeight() int {
	return l.visual[len(l.visual)-1].Bottom
}

// VisualLines returns all rows in order.
func (l *Layout) VisualLines() []VisualLine { return l.visual }

// LineCount is the number of document lines.
func (l *Layout) LineCount() int { return len(l.lineFrom) }

// LineRange returns the byte range of document line i, newline excluded.
func (l *Layout) LineRange(i int) (from, to int) {
	i = min(max(i, 0), len(l.lineFrom)-1)
	return l.lineFrom[i], l.lineEnd(i)
}

// LineOf returns the document line containing pos.
func (l *Layout) LineOf(pos int) int {
	pos = min(max(pos, 0), len(l.text))
	return sort.Search(len(l.lineFrom), func(i int) bool { return l.lineFrom[i] > pos }) - 1
}

// VisualLineAt returns the row containing pos. A position at a wrap point
// belongs to the row it starts.
func (l *Layout) VisualLineAt(pos int) VisualLine {
	line := l.LineOf(pos)
	first := l.firstVis[line]
	last := len(l.visual) - 1
	if line+1 < len(l.firstVis) {
		last = l.firstVis[line+1] - 1
	}
	for i := last; i > first; i-- {
		if l.visual[i].From <= pos {
			return l.visual[i]
		}
	}
	return l.visual[first]
}

// LineAtHeight returns the row at document row y, clamped to the content.
func (l *Layout) LineAtHeight(y int) VisualLine {
	y = min(max(y, 0), len(l.visual)-1)
	return l.visual[y]
}

// Cells returns the grapheme cells of row v.
func (l *Layout) Cells(v VisualLine) []Cell {
	var cells []Cell
	col := v.StartCol
	g := uniseg.NewGraphemes(l.text[v.From:v.To])
	for g.Next() {
		from, _ := g.Positions()
		w := l.cellWidth(g.Str(), g.Width(), col)
		cells = append(cells, Cell{Pos: v.From + from, Text: g.Str(), X: col - v.StartCol, Width: w})
		col += w
	}
	return cells
}

// PosAtCoords maps a screen column and document row to an offset. Columns
// left of the content map to the row start; columns past the end to the row end.
func (l *Layout) PosAtCoords(x, y int) (int, VisualLine) {
	v := l.LineAtHeight(y)
	x -= l.ContentLeft()
	if x <= 0 {
		return v.From, v
	}
	for _, c := range l.Cells(v) {
		if x < c.X+c.Width {
			if x-c.X > (c.Width-1)/2 && c.Width > 1 {
				return c.Pos + len(c.Text), v
			}
			return c.Pos, v
		}
	}
	return v.To, v
}

// CoordsAtPos returns the content-relative column and document row of pos.
func (l *Layout) CoordsAtPos(pos int) (x, y int) {
	v := l.VisualLineAt(pos)
	for _, c := range l.Cells(v) {
		if c.Pos >= pos {
			return c.X, v.Top
		}
	}
	x = 0
	if cells := l.Cells(v); len(cells) > 0 {
		last := cells[len(cells)-1]
		x = last.X + last.Width
	}
	return x, v.Top
}

// IsBlankLine reports whether document line i holds only whitespace.
func (l *Layout) IsBlankLine(i int) bool {
	from, to := l.LineRange(i)
	return strings.TrimSpace(l.text[from:to]) == ""
}

// SkipBodyTrailers moves pos back over trailing blank lines so a block ends
// on its last line of code. It never moves before line 0.
func (l *Layout) SkipBodyTrailers(pos int) int {
	line := l.LineOf(pos)
	for line > 0 && l.IsBlankLine(line) {
		line--
		_, pos = l.LineRange(line)
	}
	return pos
}
