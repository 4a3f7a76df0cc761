package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xycoord/python-editor-next/internal/buffer"
	"github.com/xycoord/python-editor-next/internal/core/changes"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/syntax"
	"github.com/xycoord/python-editor-next/internal/types"
)

func newTestEditor(t *testing.T, text string) *Editor {
	t.Helper()
	e := NewEditor(buffer.NewSliceBufferFromString(text))
	e.SetEventManager(event.NewManager())
	return e
}

func mustChanges(t *testing.T, docLen int, specs ...changes.Spec) changes.ChangeSet {
	t.Helper()
	cs, err := changes.Of(docLen, specs...)
	require.NoError(t, err)
	return cs
}

func TestDispatchRecordsHistory(t *testing.T) {
	e := newTestEditor(t, "a = 1\n")
	cs := mustChanges(t, 6, changes.Spec{From: 6, To: 6, Insert: "b = 2\n"})

	require.NoError(t, e.Dispatch(Transaction{Changes: cs, Selection: Cursor(12), UserEvent: "test"}))
	assert.Equal(t, "a = 1\nb = 2\n", e.Doc())
	assert.Equal(t, types.Position{Line: 2, Col: 0}, e.GetCursor())

	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a = 1\n", e.Doc())
	assert.Equal(t, 0, e.CursorOffset())

	ok, err = e.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a = 1\nb = 2\n", e.Doc())
	assert.Equal(t, 12, e.CursorOffset())
}

func TestDispatchSkipHistory(t *testing.T) {
	e := newTestEditor(t, "x")
	cs := mustChanges(t, 1, changes.Spec{From: 0, To: 1, Insert: "y"})
	require.NoError(t, e.Dispatch(Transaction{Changes: cs, SkipHistory: true}))
	assert.Equal(t, "y", e.Doc())
	assert.False(t, e.GetHistoryManager().CanUndo())
}

func TestDispatchLengthMismatch(t *testing.T) {
	e := newTestEditor(t, "abc")
	err := e.Dispatch(Transaction{Changes: changes.Empty(5)})
	assert.ErrorIs(t, err, changes.ErrLengthMismatch)
	assert.Equal(t, "abc", e.Doc())
}

func TestDispatchMapsCursorWithoutSelection(t *testing.T) {
	e := newTestEditor(t, "abc\ndef")
	e.SetCursorOffset(5)
	cs := mustChanges(t, 7, changes.Spec{From: 0, To: 0, Insert: "zz\n"})
	require.NoError(t, e.Dispatch(Transaction{Changes: cs, SkipHistory: true}))
	assert.Equal(t, 8, e.CursorOffset())
}

func TestDispatchEmitsEvents(t *testing.T) {
	e := newTestEditor(t, "ab")
	var got []event.BufferModifiedData
	e.GetEventManager().Subscribe(event.TypeBufferModified, func(ev event.Event) bool {
		got = append(got, ev.Data.(event.BufferModifiedData))
		return false
	})

	cs := mustChanges(t, 2, changes.Spec{From: 0, To: 0, Insert: "x"}, changes.Spec{From: 2, To: 2, Insert: "y"})
	require.NoError(t, e.Dispatch(Transaction{Changes: cs, UserEvent: "dnd.preview", SkipHistory: true}))

	require.Len(t, got, 1)
	assert.Equal(t, "dnd.preview", got[0].UserEvent)
	assert.Len(t, got[0].Edits, 2)
	assert.Equal(t, "xaby", e.Doc())

	// A transaction that changes nothing does not report a modification.
	require.NoError(t, e.Dispatch(Transaction{Selection: Cursor(1)}))
	assert.Len(t, got, 1)
}

func TestDispatchKeepsTreeCurrent(t *testing.T) {
	e := newTestEditor(t, "x = 1\n")
	require.NoError(t, e.SetLanguage(syntax.Python()))

	cs := mustChanges(t, 6, changes.Spec{From: 0, To: 0, Insert: "if x:\n    pass\n"})
	require.NoError(t, e.Dispatch(Transaction{Changes: cs}))

	tree, src := e.Tree()
	require.NotNil(t, tree)
	assert.Equal(t, e.Doc(), string(src))
	assert.Equal(t, "if_statement", tree.RootNode().NamedChild(0).Type())
}

func TestInsertNewLineIndents(t *testing.T) {
	e := newTestEditor(t, "if x:")
	e.SetCursorOffset(5)
	require.NoError(t, e.InsertNewLine())
	assert.Equal(t, "if x:\n    ", e.Doc())

	require.NoError(t, e.InsertText("pass"))
	require.NoError(t, e.InsertNewLine())
	assert.Equal(t, "if x:\n    pass\n    ", e.Doc())
}

func TestDeleteBackward(t *testing.T) {
	e := newTestEditor(t, "ab\n        c")
	e.SetCursor(types.Position{Line: 1, Col: 8})
	require.NoError(t, e.DeleteBackward())
	assert.Equal(t, "ab\n    c", e.Doc(), "removes one indentation level")

	e.SetCursor(types.Position{Line: 1, Col: 0})
	require.NoError(t, e.DeleteBackward())
	assert.Equal(t, "ab    c", e.Doc(), "joins lines at column 0")

	require.NoError(t, e.DeleteBackward())
	assert.Equal(t, "a    c", e.Doc())
}

func TestDeleteForwardGrapheme(t *testing.T) {
	e := newTestEditor(t, "e\u0301x")
	require.NoError(t, e.DeleteForward())
	assert.Equal(t, "x", e.Doc())
}

func TestTypingJoinsIntoOneUndo(t *testing.T) {
	e := newTestEditor(t, "")
	for _, r := range "abc" {
		require.NoError(t, e.InsertRune(r))
	}
	ok, err := e.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", e.Doc())
}

func TestReadOnly(t *testing.T) {
	e := newTestEditor(t, "x")
	e.SetReadOnly(true)
	assert.False(t, e.Editable())
	assert.ErrorIs(t, e.InsertRune('y'), ErrReadOnly)
	assert.ErrorIs(t, e.DeleteBackward(), ErrReadOnly)
	_, err := e.Undo()
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Equal(t, "x", e.Doc())
}

func TestMoveCursorWraps(t *testing.T) {
	e := newTestEditor(t, "ab\ncd")
	e.SetCursor(types.Position{Line: 0, Col: 2})
	e.MoveCursor(0, 1)
	assert.Equal(t, types.Position{Line: 1, Col: 0}, e.GetCursor())
	e.MoveCursor(0, -1)
	assert.Equal(t, types.Position{Line: 0, Col: 2}, e.GetCursor())
	e.MoveCursor(5, 0)
	assert.Equal(t, types.Position{Line: 1, Col: 2}, e.GetCursor())
}

func TestBlockAt(t *testing.T) {
	e := newTestEditor(t, "if x:\n    a = 1\n    b = 2\nc = 3\n")
	_, ok := e.BlockAt(0)
	assert.False(t, ok, "no language, no structure")

	require.NoError(t, e.SetLanguage(syntax.Python()))

	block, ok := e.BlockAt(12)
	require.True(t, ok)
	assert.Equal(t, "    a = 1", block)

	block, ok = e.BlockAt(2)
	require.True(t, ok)
	assert.Equal(t, "if x:\n    a = 1\n    b = 2", block)

	block, ok = e.BlockAt(27)
	require.True(t, ok)
	assert.Equal(t, "c = 3", block)
}
