// internal/core/editor.go
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/xycoord/python-editor-next/internal/buffer"
	"github.com/xycoord/python-editor-next/internal/config"
	"github.com/xycoord/python-editor-next/internal/core/changes"
	"github.com/xycoord/python-editor-next/internal/core/history"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/structure"
	"github.com/xycoord/python-editor-next/internal/syntax"
	"github.com/xycoord/python-editor-next/internal/syntax/lang"
	"github.com/xycoord/python-editor-next/internal/types"
)

// ErrReadOnly is returned by editing operations on a read-only editor.
var ErrReadOnly = errors.New("editor is read-only")

type Editor struct {
	buffer buffer.Buffer
	Cursor types.Position

	eventManager *event.Manager
	history      *history.Manager
	syntax       *syntax.Manager

	readOnly        bool
	tabWidth        int
	indentUnit      int
	systemClipboard bool
	clipboard       []byte // Internal register, also the fallback when the system clipboard fails
}

// NewEditor creates a new Editor instance with a given buffer.
func NewEditor(buf buffer.Buffer) *Editor {
	e := &Editor{
		buffer:     buf,
		tabWidth:   config.DefaultTabWidth,
		indentUnit: config.DefaultIndentUnit,
	}
	e.history = history.NewManager(e, history.DefaultMaxHistory)
	return e
}

// Configure applies editor settings.
func (e *Editor) Configure(cfg config.EditorConfig) {
	e.tabWidth = cfg.TabWidth
	e.indentUnit = cfg.IndentUnit
	e.readOnly = cfg.ReadOnly
	e.systemClipboard = cfg.SystemClipboard
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager, which may be nil.
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// SetLanguage attaches a syntax manager for l and parses the buffer.
// A nil language detaches syntax support.
func (e *Editor) SetLanguage(l *lang.Language) error {
	if e.syntax != nil {
		e.syntax.Close()
		e.syntax = nil
	}
	if l == nil {
		return nil
	}
	e.syntax = syntax.NewManager(l)
	return e.syntax.Parse(context.Background(), e.buffer.Bytes())
}

// Language returns the current language, or nil.
func (e *Editor) Language() *lang.Language {
	if e.syntax == nil {
		return nil
	}
	return e.syntax.Language()
}

// Tree returns the current syntax tree and the text it was parsed from.
func (e *Editor) Tree() (*sitter.Tree, []byte) {
	if e.syntax == nil {
		return nil, nil
	}
	return e.syntax.Tree()
}

// Structure walks the current tree with the language's grammar. ok is false
// when there is no tree or the language has no structure.
func (e *Editor) Structure() (c structure.Collection, ok bool) {
	l := e.Language()
	tree, src := e.Tree()
	if tree == nil || !l.HasStructure() {
		return c, false
	}
	return structure.Collect(tree, src, l.Structure), true
}

// BlockAt returns the text of the innermost statement containing pos, from
// the start of its first line through its last line.
func (e *Editor) BlockAt(pos int) (string, bool) {
	c, ok := e.Structure()
	if !ok {
		return "", false
	}
	start, end, ok := c.Innermost(pos)
	if !ok {
		return "", false
	}
	doc := e.Doc()
	start = strings.LastIndexByte(doc[:start], '\n') + 1
	if i := strings.IndexByte(doc[end:], '\n'); i >= 0 {
		end += i
	} else {
		end = len(doc)
	}
	return doc[start:end], true
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// Doc returns the whole document.
func (e *Editor) Doc() string {
	return e.buffer.String()
}

// GetHistoryManager returns the undo stack.
func (e *Editor) GetHistoryManager() *history.Manager {
	return e.history
}

// Editable reports whether the document accepts user edits.
func (e *Editor) Editable() bool {
	return !e.readOnly
}

// SetReadOnly toggles read-only mode.
func (e *Editor) SetReadOnly(readOnly bool) {
	e.readOnly = readOnly
}

// TabWidth returns the configured tab width.
func (e *Editor) TabWidth() int { return e.tabWidth }

// IndentUnit returns the number of columns per indentation level.
func (e *Editor) IndentUnit() int { return e.indentUnit }

// Dispatch applies tr: the buffer is edited, the cursor placed, history
// recorded unless skipped, the syntax tree brought up to date and
// listeners notified.
func (e *Editor) Dispatch(tr Transaction) error {
	doc := e.buffer.String()
	cs := tr.Changes
	if cs.IsZero() {
		cs = changes.Empty(len(doc))
	}
	if cs.LenBefore() != len(doc) {
		return fmt.Errorf("dispatch %q against %d-byte document: %w", tr.UserEvent, len(doc), changes.ErrLengthMismatch)
	}

	cursorBefore := e.CursorOffset()
	docChanged := !cs.IsEmpty()
	record := docChanged && !tr.SkipHistory && e.history != nil

	var inverse changes.ChangeSet
	if record {
		var err error
		if inverse, err = cs.Invert(doc); err != nil {
			return fmt.Errorf("dispatch %q: %w", tr.UserEvent, err)
		}
	}

	// Replace back to front so earlier offsets stay valid.
	specs := cs.Specs()
	edits := make([]types.EditInfo, 0, len(specs))
	for i := len(specs) - 1; i >= 0; i-- {
		s := specs[i]
		edit, err := e.buffer.Replace(s.From, s.To, []byte(s.Insert))
		if err != nil {
			return fmt.Errorf("dispatch %q: %w", tr.UserEvent, err)
		}
		edits = append(edits, edit)
	}

	cursorAfter := cs.MapPos(cursorBefore, 1)
	if tr.Selection != nil {
		cursorAfter = tr.Selection.Head
	}
	cursorAfter = min(max(cursorAfter, 0), e.buffer.Len())

	if record {
		e.history.Record(history.Entry{
			Changes:      cs,
			Inverse:      inverse,
			CursorBefore: cursorBefore,
			CursorAfter:  cursorAfter,
			UserEvent:    tr.UserEvent,
		})
	}

	if docChanged {
		if e.syntax != nil {
			if err := e.syntax.Update(context.Background(), edits, e.buffer.Bytes()); err != nil {
				logger.Warnf("Editor: syntax update after %q failed: %v", tr.UserEvent, err)
			}
		}
		logger.DebugTagf("core", "Dispatch %q: %d change(s), history=%v", tr.UserEvent, len(specs), record)
	}

	// Cursor before the event so listeners see the final state.
	notifyCursor := e.setCursorOffset(cursorAfter) || docChanged

	if e.eventManager != nil {
		if docChanged {
			e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{
				Edits:     edits,
				Changes:   cs,
				UserEvent: tr.UserEvent,
			})
		}
		if notifyCursor {
			e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.Cursor})
		}
	}
	return nil
}

// ApplyHistory implements history.Applier.
func (e *Editor) ApplyHistory(cs changes.ChangeSet, cursor int, userEvent string) error {
	return e.Dispatch(Transaction{
		Changes:     cs,
		Selection:   Cursor(cursor),
		UserEvent:   userEvent,
		SkipHistory: true,
	})
}

// Replace is a convenience for a single historied replacement.
func (e *Editor) Replace(from, to int, text, userEvent string) error {
	cs, err := changes.Of(e.buffer.Len(), changes.Spec{From: from, To: to, Insert: text})
	if err != nil {
		return err
	}
	return e.Dispatch(Transaction{Changes: cs, UserEvent: userEvent})
}
