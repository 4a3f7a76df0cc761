package history

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xycoord/python-editor-next/internal/core/changes"
)

// docApplier is an in-memory document standing in for the editor.
type docApplier struct {
	doc    string
	cursor int
	fail   bool
}

func (d *docApplier) ApplyHistory(cs changes.ChangeSet, cursor int, _ string) error {
	if d.fail {
		return errors.New("boom")
	}
	out, err := cs.Apply(d.doc)
	if err != nil {
		return err
	}
	d.doc = out
	d.cursor = cursor
	return nil
}

// edit applies spec to d and returns the entry a historied dispatch would record.
func (d *docApplier) edit(t *testing.T, event string, at time.Time, spec changes.Spec) Entry {
	t.Helper()
	cs, err := changes.Of(len(d.doc), spec)
	require.NoError(t, err)
	inv, err := cs.Invert(d.doc)
	require.NoError(t, err)
	before := d.cursor
	d.doc, err = cs.Apply(d.doc)
	require.NoError(t, err)
	d.cursor = cs.MapPos(before, 1)
	return Entry{Changes: cs, Inverse: inv, CursorBefore: before, CursorAfter: d.cursor, UserEvent: event, At: at}
}

func TestUndoRedo(t *testing.T) {
	d := &docApplier{doc: "a = 1\n"}
	m := NewManager(d, 0)
	now := time.Now()

	m.Record(d.edit(t, "dnd.drop.statement", now, changes.Spec{From: 6, To: 6, Insert: "b = 2\n"}))
	assert.Equal(t, "a = 1\nb = 2\n", d.doc)
	assert.True(t, m.CanUndo())

	ok, err := m.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a = 1\n", d.doc)
	assert.False(t, m.CanUndo())
	assert.True(t, m.CanRedo())

	ok, err = m.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a = 1\nb = 2\n", d.doc)

	ok, err = m.Redo()
	require.NoError(t, err)
	assert.False(t, ok, "nothing left to redo")
}

func TestRecordTruncatesRedo(t *testing.T) {
	d := &docApplier{doc: ""}
	m := NewManager(d, 0)
	now := time.Now()

	m.Record(d.edit(t, "paste", now, changes.Spec{Insert: "x"}))
	_, err := m.Undo()
	require.NoError(t, err)
	m.Record(d.edit(t, "paste", now, changes.Spec{Insert: "y"}))

	assert.False(t, m.CanRedo())
	assert.Equal(t, 1, m.Len())
}

func TestTypingJoinsWithinWindow(t *testing.T) {
	d := &docApplier{doc: ""}
	m := NewManager(d, 0)
	now := time.Now()

	m.Record(d.edit(t, "input.type", now, changes.Spec{From: 0, To: 0, Insert: "a"}))
	m.Record(d.edit(t, "input.type", now.Add(100*time.Millisecond), changes.Spec{From: 1, To: 1, Insert: "b"}))
	m.Record(d.edit(t, "input.type", now.Add(2*time.Second), changes.Spec{From: 2, To: 2, Insert: "c"}))
	assert.Equal(t, "abc", d.doc)
	assert.Equal(t, 2, m.Len())

	_, err := m.Undo()
	require.NoError(t, err)
	assert.Equal(t, "ab", d.doc)
	_, err = m.Undo()
	require.NoError(t, err)
	assert.Equal(t, "", d.doc)
	assert.Equal(t, 0, d.cursor)
}

func TestMaxHistoryEvictsOldest(t *testing.T) {
	d := &docApplier{doc: ""}
	m := NewManager(d, 2)
	now := time.Now()
	for i := 0; i < 3; i++ {
		m.Record(d.edit(t, "paste", now, changes.Spec{From: i, To: i, Insert: "x"}))
	}
	assert.Equal(t, 2, m.Len())
}

func TestUndoErrorKeepsIndex(t *testing.T) {
	d := &docApplier{doc: ""}
	m := NewManager(d, 0)
	m.Record(d.edit(t, "paste", time.Now(), changes.Spec{Insert: "x"}))

	d.fail = true
	ok, err := m.Undo()
	assert.Error(t, err)
	assert.False(t, ok)
	assert.True(t, m.CanUndo())
}
