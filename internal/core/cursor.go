package core

import (
	"unicode/utf8"

	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/types"
)

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position {
	return e.Cursor
}

// CursorOffset returns the cursor as a byte offset.
func (e *Editor) CursorOffset() int {
	return e.buffer.PositionToOffset(e.Cursor)
}

// setCursorOffset moves the cursor without notifying. It reports whether the position changed.
func (e *Editor) setCursorOffset(offset int) bool {
	pos := e.buffer.OffsetToPosition(offset)
	if pos == e.Cursor {
		return false
	}
	e.Cursor = pos
	return true
}

// SetCursorOffset moves the cursor to a byte offset.
func (e *Editor) SetCursorOffset(offset int) {
	offset = min(max(offset, 0), e.buffer.Len())
	if e.setCursorOffset(offset) {
		e.notifyCursorMoved()
	}
}

// SetCursor sets the cursor position, clamped to the buffer.
func (e *Editor) SetCursor(pos types.Position) {
	e.SetCursorOffset(e.buffer.PositionToOffset(pos))
}

func (e *Editor) notifyCursorMoved() {
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.Cursor})
	}
}

// MoveCursor moves the cursor by lines and columns. Moving left from the
// start of a line wraps to the end of the previous one, and right from the
// end wraps to the next.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	currentLine := e.Cursor.Line
	currentCol := e.Cursor.Col
	lineCount := e.buffer.LineCount()
	var target types.Position
	switch {
	case deltaLine == 0 && deltaCol > 0 && currentCol >= e.lineRunes(currentLine) && currentLine < lineCount-1:
		target = types.Position{Line: currentLine + 1, Col: 0}
	case deltaLine == 0 && deltaCol < 0 && currentCol <= 0 && currentLine > 0:
		target = types.Position{Line: currentLine - 1, Col: e.lineRunes(currentLine - 1)}
	default:
		targetLine := min(max(currentLine+deltaLine, 0), lineCount-1)
		targetCol := min(max(currentCol+deltaCol, 0), e.lineRunes(targetLine))
		target = types.Position{Line: targetLine, Col: targetCol}
	}

	if target != e.Cursor {
		e.Cursor = target
		e.notifyCursorMoved()
	}
	logger.DebugTagf("core", "MoveCursor: Delta(%d,%d) → NewCursor(%d,%d)",
		deltaLine, deltaCol, e.Cursor.Line, e.Cursor.Col)
}

// PageMove moves the cursor by deltaPages pages of pageHeight lines.
func (e *Editor) PageMove(deltaPages, pageHeight int) {
	if pageHeight <= 0 {
		return
	}
	e.MoveCursor(deltaPages*pageHeight, 0)
}

// Home moves the cursor to the first non-blank character, or to column 0 if already there.
func (e *Editor) Home() {
	indent := e.lineIndentRunes(e.Cursor.Line)
	col := indent
	if e.Cursor.Col == indent {
		col = 0
	}
	e.SetCursor(types.Position{Line: e.Cursor.Line, Col: col})
}

// End moves the cursor to the end of the line.
func (e *Editor) End() {
	e.SetCursor(types.Position{Line: e.Cursor.Line, Col: e.lineRunes(e.Cursor.Line)})
}

func (e *Editor) lineRunes(line int) int {
	b, err := e.buffer.Line(line)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(b)
}

func (e *Editor) lineIndentRunes(line int) int {
	b, err := e.buffer.Line(line)
	if err != nil {
		return 0
	}
	n := 0
	for _, c := range b {
		if c != ' ' && c != '\t' {
			break
		}
		n++
	}
	return n
}
