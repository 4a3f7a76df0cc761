package dnd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xycoord/python-editor-next/internal/core"
	"github.com/xycoord/python-editor-next/internal/core/changes"
)

// ErrNoTarget is returned when a pointer position does not resolve to a
// line of the document.
var ErrNoTarget = errors.New("drop target outside the document")

// InsertionPolicy decides where dragged code lands. line is a zero-based
// document line, or the line count for the area below the text; pos is the
// offset under the pointer. The same inputs must always give the same result.
type InsertionPolicy interface {
	Insertion(doc, code string, line, pos int) (changes.ChangeSet, *core.Selection, error)
}

// LinePolicy inserts whole lines. Code goes in before the target line,
// unless the pointer is over the text of a line past its indentation, in
// which case that line is split at the pointer. Indentation is left as
// dragged.
type LinePolicy struct{}

func (LinePolicy) Insertion(doc, code string, line, pos int) (changes.ChangeSet, *core.Selection, error) {
	if code == "" {
		return changes.ChangeSet{}, nil, fmt.Errorf("empty code: %w", ErrNoTarget)
	}
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}

	starts := lineStarts(doc)
	if line < 0 || line > len(starts) {
		return changes.ChangeSet{}, nil, fmt.Errorf("line %d of %d: %w", line, len(starts), ErrNoTarget)
	}

	at, insert := len(doc), code
	if line < len(starts) {
		from := starts[line]
		to := len(doc)
		if line+1 < len(starts) {
			to = starts[line+1] - 1
		}
		text := doc[from:to]
		indent := len(text) - len(strings.TrimLeft(text, " \t"))
		at = from
		if pos > from+indent && pos < to && strings.TrimSpace(text) != "" {
			at, insert = pos, "\n"+code
		}
	}
	if at == len(doc) && doc != "" && !strings.HasSuffix(doc, "\n") {
		insert = "\n" + insert
	}

	cs, err := changes.Of(len(doc), changes.Spec{From: at, To: at, Insert: insert})
	if err != nil {
		return changes.ChangeSet{}, nil, err
	}
	// Cursor at the end of the inserted code, before its newline.
	return cs, core.Cursor(at + len(insert) - 1), nil
}

func lineStarts(doc string) []int {
	starts := []int{0}
	for i := 0; i < len(doc); i++ {
		if doc[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
