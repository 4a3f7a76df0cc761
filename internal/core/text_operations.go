package core

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/xycoord/python-editor-next/internal/core/changes"
)

// insertAtCursor replaces nothing at the cursor with text.
func (e *Editor) insertAtCursor(text, userEvent string) error {
	if !e.Editable() {
		return ErrReadOnly
	}
	pos := e.CursorOffset()
	cs, err := changes.Of(e.buffer.Len(), changes.Spec{From: pos, To: pos, Insert: text})
	if err != nil {
		return err
	}
	return e.Dispatch(Transaction{Changes: cs, Selection: Cursor(pos + len(text)), UserEvent: userEvent})
}

// InsertRune inserts r at the cursor.
func (e *Editor) InsertRune(r rune) error {
	return e.insertAtCursor(string(r), EventInputType)
}

// InsertText inserts text at the cursor as a single step.
func (e *Editor) InsertText(text string) error {
	return e.insertAtCursor(text, EventInputPaste)
}

// InsertTab inserts spaces up to the next indentation stop.
func (e *Editor) InsertTab() error {
	n := e.indentUnit - e.Cursor.Col%e.indentUnit
	return e.insertAtCursor(strings.Repeat(" ", n), EventInputType)
}

// InsertNewLine splits the line at the cursor, keeping its indentation and
// indenting one more level after a line ending in ':'.
func (e *Editor) InsertNewLine() error {
	line := e.buffer.LineAt(e.CursorOffset())
	before := line.Text[:e.CursorOffset()-line.From]
	indent := before[:len(before)-len(strings.TrimLeft(before, " \t"))]
	if strings.HasSuffix(strings.TrimRight(before, " \t"), ":") {
		indent += strings.Repeat(" ", e.indentUnit)
	}
	return e.insertAtCursor("\n"+indent, EventInputNewline)
}

// DeleteBackward removes the grapheme before the cursor, joining lines at column 0.
// Inside leading whitespace it removes back to the previous indentation stop.
func (e *Editor) DeleteBackward() error {
	if !e.Editable() {
		return ErrReadOnly
	}
	pos := e.CursorOffset()
	if pos == 0 {
		return nil
	}
	line := e.buffer.LineAt(pos)
	before := line.Text[:pos-line.From]

	from := pos - 1
	switch {
	case before == "":
		// Join with the previous line
	case strings.TrimLeft(before, " ") == "":
		stop := (len(before) - 1) / e.indentUnit * e.indentUnit
		from = line.From + stop
	default:
		from = pos - lastGraphemeLen(before)
	}
	return e.deleteRange(from, pos, EventDeleteBackward)
}

// DeleteForward removes the grapheme after the cursor.
func (e *Editor) DeleteForward() error {
	if !e.Editable() {
		return ErrReadOnly
	}
	pos := e.CursorOffset()
	if pos >= e.buffer.Len() {
		return nil
	}
	line := e.buffer.LineAt(pos)
	to := pos + 1
	if pos < line.To {
		g := uniseg.NewGraphemes(line.Text[pos-line.From:])
		if g.Next() {
			to = pos + len(g.Str())
		}
	}
	return e.deleteRange(pos, to, EventDeleteForward)
}

func (e *Editor) deleteRange(from, to int, userEvent string) error {
	cs, err := changes.Of(e.buffer.Len(), changes.Spec{From: from, To: to})
	if err != nil {
		return err
	}
	return e.Dispatch(Transaction{Changes: cs, Selection: Cursor(from), UserEvent: userEvent})
}

// lastGraphemeLen returns the byte length of the last grapheme cluster in s.
func lastGraphemeLen(s string) int {
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last = len(g.Str())
	}
	if last == 0 {
		_, last = utf8.DecodeLastRuneInString(s)
	}
	return last
}
