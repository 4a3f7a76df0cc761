// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/theme"
	"github.com/xycoord/python-editor-next/internal/view"
)

// DrawView draws the visible rows of v: gutters, text, line decorations and
// every layer. Layers with a negative Z only recolor the background under
// the text; the others are drawn on top of it.
func DrawView(t *TUI, v *view.View, activeTheme *theme.Theme) {
	if activeTheme == nil {
		logger.Warnf("DrawView called with nil theme, using package default.")
		activeTheme = theme.GetCurrentTheme()
	}

	defaultStyle := activeTheme.GetStyle("Default")
	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	activeNumberStyle := activeTheme.GetStyle("LineNumberActive")

	width, _ := t.Size()
	height := v.Height()
	if height <= 0 || width <= 0 {
		return
	}

	l := v.Layout()
	contentLeft := l.ContentLeft()
	numberCol := l.NumberGutter()
	cursorLine := l.LineOf(v.Editor().CursorOffset())
	rowStyles := make([]tcell.Style, width)

	for screenY := 0; screenY < height; screenY++ {
		row := screenY + v.ScrollTop()

		for x := range rowStyles {
			rowStyles[x] = defaultStyle
		}
		if row >= l.ContentHeight() {
			fillRow(t.screen, screenY, rowStyles)
			continue
		}

		vl := l.LineAtHeight(row)
		if class := v.LineClass(vl.Line); class != "" {
			lineStyle := activeTheme.GetStyle(class)
			for x := contentLeft; x < width; x++ {
				rowStyles[x] = lineStyle
			}
		}
		for _, layer := range v.Layers() {
			if layer.Z >= 0 {
				continue
			}
			for _, el := range layer.Elements() {
				if row < el.Y || row >= el.Y+el.H {
					continue
				}
				bg := activeTheme.Background(el.Class)
				for x := max(el.X, 0); x < min(el.X+el.W, width); x++ {
					rowStyles[x] = rowStyles[x].Background(bg)
				}
			}
		}
		fillRow(t.screen, screenY, rowStyles)

		// Line numbers go on the first row of each document line only.
		if numberCol > 0 && vl.StartCol == 0 {
			style := lineNumberStyle
			if vl.Line == cursorLine {
				style = activeNumberStyle
			}
			drawString(t.screen, l.HandleGutter(), screenY, fmt.Sprintf("%*d", numberCol-1, vl.Line+1), style, contentLeft)
		}

		for _, c := range l.Cells(vl) {
			x := contentLeft + c.X
			if x >= width {
				break
			}
			if c.Text == "\t" {
				continue
			}
			runes := []rune(c.Text)
			t.screen.SetContent(x, screenY, runes[0], runes[1:], rowStyles[x])
		}

		for _, layer := range v.Layers() {
			if layer.Z < 0 {
				continue
			}
			drawOverlay(t.screen, layer, row, screenY, width, activeTheme)
		}
	}
}

func fillRow(s tcell.Screen, y int, styles []tcell.Style) {
	for x, style := range styles {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func drawOverlay(s tcell.Screen, layer *view.Layer, row, screenY, width int, th *theme.Theme) {
	for _, el := range layer.Elements() {
		if row < el.Y || row >= el.Y+el.H {
			continue
		}
		style := th.GetStyle(el.Class)
		if el.Active {
			style = th.GetStyle("DragActive")
		}
		for x := max(el.X, 0); x < min(el.X+el.W, width); x++ {
			if el.Glyph != 0 {
				s.SetContent(x, screenY, el.Glyph, nil, style)
				continue
			}
			mainc, comb, _, _ := s.GetContent(x, screenY)
			s.SetContent(x, screenY, mainc, comb, style)
		}
	}
}

// drawString draws text from x, stopping before limit.
func drawString(s tcell.Screen, x, y int, text string, style tcell.Style, limit int) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if x+w > limit {
			break
		}
		runes := gr.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// DrawCursor shows the terminal cursor at the editor cursor, or hides it
// when the cursor is scrolled out of view.
func DrawCursor(t *TUI, v *view.View) {
	x, y, visible := v.CursorScreen()
	if !visible {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, y)
}
