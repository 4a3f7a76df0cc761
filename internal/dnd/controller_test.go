package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xycoord/python-editor-next/internal/buffer"
	"github.com/xycoord/python-editor-next/internal/core"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/syntax"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEditor(t *testing.T, text string) *core.Editor {
	t.Helper()
	ed := core.NewEditor(buffer.NewSliceBufferFromString(text))
	ed.SetEventManager(event.NewManager())
	require.NoError(t, ed.SetLanguage(syntax.Python()))
	return ed
}

func newController(t *testing.T, text string) (*core.Editor, *Controller) {
	t.Helper()
	ed := newEditor(t, text)
	return ed, NewController(ed, WithEvents(ed.GetEventManager()))
}

func TestCancelledDragRestoresDocument(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		start, end int
		overs      [][2]int
	}{
		{name: "statement", doc: "a = 1\nb = 2\n", start: 6, end: 11, overs: [][2]int{{0, 0}, {1, 6}}},
		{name: "compound", doc: "if x:\n    y()\nz = 3\n", start: 0, end: 13, overs: [][2]int{{0, 0}, {1, 3}}},
		{name: "first line at offset zero", doc: "a = 1\nb = 2", start: 0, end: 0, overs: [][2]int{{1, 3}}},
		{name: "last line without newline", doc: "a = 1\nb = 2", start: 6, end: 11, overs: [][2]int{{1, 6}, {0, 0}}},
		{name: "no dragover", doc: "while True:\n    pass\n", start: 12, end: 20},
		{name: "unicode", doc: "s = 'héllo'\nt = 'wörld'\n", start: 0, end: 5, overs: [][2]int{{2, 25}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, c := newController(t, tt.doc)
			require.NoError(t, c.DragStart(tt.start, tt.end))
			assert.NotEqual(t, tt.doc, ed.Doc(), "dragged lines are removed while dragging")

			c.DragEnter()
			for _, o := range tt.overs {
				c.DragOver(o[0], o[1])
			}
			c.DragEnd()

			assert.Equal(t, tt.doc, ed.Doc())
			assert.False(t, ed.GetHistoryManager().CanUndo())
			assert.Equal(t, StateIdle, c.State())
			assert.False(t, c.Dragging())
		})
	}
}

func TestDropIsOneUndoStep(t *testing.T) {
	const doc = "if True:\n    pass\nx = 1\n"
	ed, c := newController(t, doc)

	require.NoError(t, c.DragStart(18, 23))
	assert.Equal(t, "if True:\n    pass\n", ed.Doc())
	assert.Equal(t, StateDragging, c.State())

	c.DragEnter()
	c.DragOver(1, 12)
	c.DragOver(2, 18)
	c.DragOver(0, 0)
	assert.Equal(t, StatePreviewing, c.State())
	assert.Equal(t, "x = 1\nif True:\n    pass\n", ed.Doc())
	assert.False(t, ed.GetHistoryManager().CanUndo(), "previews stay out of history")

	c.Drop()
	c.DragEnd()
	const dropped = "x = 1\nif True:\n    pass\n"
	assert.Equal(t, dropped, ed.Doc())
	assert.Equal(t, 5, ed.CursorOffset(), "cursor lands where the preview put it")
	assert.Equal(t, 1, ed.GetHistoryManager().Len())

	ok, err := ed.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, doc, ed.Doc())
	assert.False(t, ed.GetHistoryManager().CanUndo())

	ok, err = ed.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dropped, ed.Doc())
}

func TestDropKeepsIndentation(t *testing.T) {
	const doc = "if True:\n    pass\n"
	ed, c := newController(t, doc)

	require.NoError(t, c.DragStart(13, 17))
	assert.Equal(t, "if True:\n", ed.Doc())
	c.DragOver(0, 0)
	c.Drop()
	c.DragEnd()
	assert.Equal(t, "    pass\nif True:\n", ed.Doc())

	_, err := ed.Undo()
	require.NoError(t, err)
	assert.Equal(t, doc, ed.Doc())
	_, err = ed.Redo()
	require.NoError(t, err)
	assert.Equal(t, "    pass\nif True:\n", ed.Doc())
}

func TestDragLeaveDiscardsPreview(t *testing.T) {
	ed, c := newController(t, "a = 1\nb = 2\nc = 3\n")
	require.NoError(t, c.DragStart(0, 5))
	before := ed.Doc()

	c.DragEnter()
	assert.True(t, c.Suppressed())
	c.DragOver(1, 6)
	c.DragOver(2, 12)

	c.DragLeave(false)
	assert.NotEqual(t, before, ed.Doc(), "leaving a child keeps the preview")
	assert.Equal(t, StatePreviewing, c.State())

	c.DragLeave(true)
	assert.Equal(t, before, ed.Doc())
	assert.False(t, c.Suppressed())
	assert.Equal(t, StateDragging, c.State())

	// Dropping after leaving only puts the lines back.
	c.Drop()
	c.DragEnd()
	assert.Equal(t, "a = 1\nb = 2\nc = 3\n", ed.Doc())
	assert.False(t, ed.GetHistoryManager().CanUndo())
}

func TestDragOverIsIdempotent(t *testing.T) {
	ed, c := newController(t, "a = 1\nb = 2\n")
	modified := 0
	ed.GetEventManager().Subscribe(event.TypeBufferModified, func(event.Event) bool {
		modified++
		return false
	})

	require.NoError(t, c.DragStart(0, 0))
	c.DragOver(1, 6)
	n := modified
	doc := ed.Doc()
	for i := 0; i < 5; i++ {
		c.DragOver(1, 6)
	}
	assert.Equal(t, n, modified)
	assert.Equal(t, doc, ed.Doc())

	c.DragOver(0, 0)
	assert.Equal(t, n+2, modified, "one revert and one preview")
	c.DragEnd()
}

func TestDragOverUnresolvedKeepsPreview(t *testing.T) {
	ed, c := newController(t, "a = 1\nb = 2\n")
	require.NoError(t, c.DragStart(0, 0))
	c.DragOver(1, 6)
	doc := ed.Doc()

	c.DragOver(40, 0)
	c.DragOver(-1, 0)
	assert.Equal(t, doc, ed.Doc())
	assert.Equal(t, StatePreviewing, c.State())
	c.DragEnd()
	assert.Equal(t, "a = 1\nb = 2\n", ed.Doc())
}

func TestDropWithoutDrag(t *testing.T) {
	ed, c := newController(t, "a = 1\n")
	c.Drop()
	c.DragEnd()
	c.DragOver(0, 0)
	c.DragLeave(true)
	assert.Equal(t, "a = 1\n", ed.Doc())
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, ed.GetHistoryManager().CanUndo())
}

func TestReadOnlyIgnoresDrags(t *testing.T) {
	ed, c := newController(t, "a = 1\n")
	ed.SetReadOnly(true)
	assert.ErrorIs(t, c.DragStart(0, 0), core.ErrReadOnly)
	assert.ErrorIs(t, c.BeginInsert("x\n", KindSnippetInsert, "x", nil), core.ErrReadOnly)
	assert.False(t, c.Dragging())
	assert.Equal(t, "a = 1\n", ed.Doc())
}

func TestSecondDragIsRejected(t *testing.T) {
	ed, c := newController(t, "a = 1\nb = 2\n")
	require.NoError(t, c.DragStart(0, 0))
	during := ed.Doc()

	assert.ErrorIs(t, c.DragStart(0, 0), ErrDragInProgress)
	assert.ErrorIs(t, c.BeginInsert("x\n", KindCallInsert, "x", nil), ErrDragInProgress)
	assert.Equal(t, during, ed.Doc())

	c.DragEnd()
	assert.Equal(t, "a = 1\nb = 2\n", ed.Doc())
	require.NoError(t, c.DragStart(6, 6), "the slot is free again")
	c.DragEnd()
}

func TestDragStartOutOfRange(t *testing.T) {
	ed, c := newController(t, "a = 1\n")
	assert.Error(t, c.DragStart(3, 99))
	assert.Error(t, c.DragStart(4, 2))
	assert.False(t, c.Dragging())
	assert.Equal(t, "a = 1\n", ed.Doc())
}

func TestSnippetInsert(t *testing.T) {
	ed, c := newController(t, "a = 1")
	var userEvents []string
	ed.GetEventManager().Subscribe(event.TypeBufferModified, func(e event.Event) bool {
		userEvents = append(userEvents, e.Data.(event.BufferModifiedData).UserEvent)
		return false
	})

	called := false
	require.NoError(t, c.BeginInsert("sleep(1)", KindSnippetInsert, "sleep", func() { called = true }))
	c.DragEnter()
	c.DragOver(1, 5)
	assert.Equal(t, "a = 1\nsleep(1)\n", ed.Doc())
	c.Drop()
	c.DragEnd()

	assert.True(t, called)
	assert.Equal(t, "a = 1\nsleep(1)\n", ed.Doc())
	assert.Equal(t, []string{EventPreview, EventCleanup, "dnd.drop.snippet"}, userEvents)

	_, err := ed.Undo()
	require.NoError(t, err)
	assert.Equal(t, "a = 1", ed.Doc())
}

func TestCancelledInsertLeavesNothing(t *testing.T) {
	ed, c := newController(t, "a = 1\n")
	require.NoError(t, c.BeginInsert("f()\n", KindCallInsert, "f", nil))
	c.DragOver(0, 0)
	c.DragEnd()
	assert.Equal(t, "a = 1\n", ed.Doc())
}

func TestDragEvents(t *testing.T) {
	ed, c := newController(t, "a = 1\n")
	var got []event.Type
	var last event.DragData
	for _, typ := range []event.Type{event.TypeDragStarted, event.TypeDragLeft, event.TypeDragEnded} {
		ed.GetEventManager().Subscribe(typ, func(e event.Event) bool {
			got = append(got, e.Type)
			last = e.Data.(event.DragData)
			return false
		})
	}

	require.NoError(t, c.DragStart(0, 0))
	c.DragLeave(true)
	c.DragOver(1, 0)
	c.Drop()
	c.DragEnd()

	assert.Equal(t, []event.Type{event.TypeDragStarted, event.TypeDragLeft, event.TypeDragEnded}, got)
	assert.Equal(t, "statement", last.Kind)
	assert.True(t, last.Dropped)
}

func TestLinePolicy(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		line, pos int
		want      string
		cursor    int
	}{
		{name: "before line", doc: "a\nb\n", line: 1, pos: 2, want: "a\nX\nb\n", cursor: 3},
		{name: "split inside line", doc: "abc\n", line: 0, pos: 2, want: "ab\nX\nc\n", cursor: 4},
		{name: "inside indentation", doc: "    abc\n", line: 0, pos: 2, want: "X\n    abc\n", cursor: 1},
		{name: "end of unterminated doc", doc: "abc", line: 1, pos: 3, want: "abc\nX\n", cursor: 5},
		{name: "empty doc", doc: "", line: 0, pos: 0, want: "X\n", cursor: 1},
		{name: "blank last line", doc: "a\n", line: 1, pos: 2, want: "a\nX\n", cursor: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, sel, err := LinePolicy{}.Insertion(tt.doc, "X", tt.line, tt.pos)
			require.NoError(t, err)
			got, err := cs.Apply(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cursor, sel.Head)

			again, _, err := LinePolicy{}.Insertion(tt.doc, "X", tt.line, tt.pos)
			require.NoError(t, err)
			assert.Equal(t, cs, again)
		})
	}

	_, _, err := LinePolicy{}.Insertion("a\n", "X", 3, 0)
	assert.ErrorIs(t, err, ErrNoTarget)
}
