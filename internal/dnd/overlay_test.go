package dnd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xycoord/python-editor-next/internal/config"
	"github.com/xycoord/python-editor-next/internal/layout"
	"github.com/xycoord/python-editor-next/internal/view"
)

const sample = `import microbit

def show(n):
    if n > 0:
        display(n)
    else:
        display(0)

while True:
    show(1)
    sleep(100)
`

func newDndView(t *testing.T, text string, cfg config.DndConfig) (*view.View, *Controller, *Overlay, *Decorations) {
	t.Helper()
	return newDndViewWith(t, text, cfg, view.Options{Width: 60, Height: 20, LineNumbers: true, HandleGutter: config.HandleGutterWidth})
}

func newDndViewWith(t *testing.T, text string, cfg config.DndConfig, opts view.Options) (*view.View, *Controller, *Overlay, *Decorations) {
	t.Helper()
	ed := newEditor(t, text)
	ctrl := NewController(ed, WithEvents(ed.GetEventManager()))
	v := view.New(ed, opts, Extension(ctrl, cfg)...)
	t.Cleanup(v.Close)
	v.Frame()
	return v, ctrl, v.Plugins()[0].(*Overlay), v.Plugins()[1].(*Decorations)
}

func TestOverlayBlocks(t *testing.T) {
	_, _, o, _ := newDndView(t, sample, config.DndConfig{DragSmallStatements: true})

	var smalls, compounds int
	for _, b := range o.Blocks() {
		if b.IsSmallStatement {
			smalls++
			assert.Nil(t, b.Body)
		} else {
			compounds++
			require.NotNil(t, b.Body)
			assert.Greater(t, b.Body.Left, b.Parent.Left)
		}
	}
	assert.Equal(t, 5, smalls)
	assert.Equal(t, 4, compounds, "def, if, else and while")

	_, _, o, _ = newDndView(t, sample, config.DndConfig{})
	assert.Len(t, o.Blocks(), 4)
}

func TestAtMostOneActiveBlock(t *testing.T) {
	v, _, o, _ := newDndView(t, sample, config.DndConfig{DragSmallStatements: true})
	for pos := 0; pos <= len(sample); pos++ {
		v.Editor().SetCursorOffset(pos)
		v.Frame()
		active := 0
		for _, p := range o.Positions() {
			if p.CursorActive {
				active++
			}
		}
		assert.LessOrEqual(t, active, 1, "cursor at %d", pos)
	}
}

func TestInnermostBlockIsActive(t *testing.T) {
	v, _, o, _ := newDndView(t, sample, config.DndConfig{DragSmallStatements: true})
	v.Editor().SetCursorOffset(strings.Index(sample, "display(n)"))
	v.Frame()

	var active []Block
	for _, b := range o.Blocks() {
		if b.Active() {
			active = append(active, b)
		}
	}
	require.Len(t, active, 1)
	assert.True(t, active[0].IsSmallStatement)
	assert.Equal(t, "display(n)", sample[active[0].Start:active[0].End])
}

func TestOverlayRedrawsOnlyOnChange(t *testing.T) {
	v, _, o, _ := newDndView(t, sample, config.DndConfig{DragSmallStatements: true})
	n := o.Redraws()
	require.Positive(t, n)

	v.ScrollBy(0)
	v.Frame()
	assert.Equal(t, n, o.Redraws())

	at := strings.Index(sample, "display(n)")
	v.Editor().SetCursorOffset(at)
	v.Frame()
	assert.Equal(t, n+1, o.Redraws(), "the active block changed")

	v.Editor().SetCursorOffset(at + 3)
	v.Frame()
	assert.Equal(t, n+1, o.Redraws(), "moving within the same block changes nothing")

	require.NoError(t, v.Editor().Replace(0, 0, "\n", "input.type"))
	v.Frame()
	assert.Equal(t, n+2, o.Redraws())
}

func TestOverlayHandlesStartDrags(t *testing.T) {
	v, ctrl, o, _ := newDndView(t, "if True:\n    pass\nx = 1\n", config.DndConfig{DragSmallStatements: true})
	require.NotEmpty(t, o.Blocks())

	// The statement handle sits one column left of "x = 1" on row 2.
	el, ok := v.HitTest(v.Layout().ContentLeft()-1, 2)
	require.True(t, ok)
	assert.Equal(t, ClassLine, el.Class)

	el.OnDragStart()
	assert.True(t, ctrl.Dragging())
	assert.Equal(t, "if True:\n    pass\n", v.Editor().Doc())

	v.Frame()
	for _, el := range v.Layers()[len(v.Layers())-1].Elements() {
		assert.False(t, el.Draggable, "handles cannot be grabbed mid-drag")
	}
	el.OnDragEnd()
	assert.Equal(t, "if True:\n    pass\nx = 1\n", v.Editor().Doc())
}

func TestHandlesFollowEdits(t *testing.T) {
	v, ctrl, o, _ := newDndView(t, "x = 1\ny = 2\n", config.DndConfig{DragSmallStatements: true})
	n := o.Redraws()

	require.NoError(t, v.Editor().Replace(5, 5, "2", "input.type"))
	v.Frame()
	assert.Equal(t, n, o.Redraws(), "no handle moved on screen")

	el, ok := v.HitTest(v.Layout().ContentLeft()-1, 1)
	require.True(t, ok)
	el.OnDragStart()
	require.True(t, ctrl.Dragging())
	assert.Equal(t, "x = 12\n", v.Editor().Doc(), "only the second line is dragged")

	el.OnDragEnd()
	assert.Equal(t, "x = 12\ny = 2\n", v.Editor().Doc())
}

func TestHandlesWithoutGutters(t *testing.T) {
	v, ctrl, _, _ := newDndViewWith(t, "x = 1\ny = 2\n", config.DndConfig{DragSmallStatements: true}, view.Options{Width: 40, Height: 10})
	require.Zero(t, v.Layout().ContentLeft())

	el, ok := v.HitTest(0, 0)
	require.True(t, ok)
	assert.Equal(t, ClassLine, el.Class)

	el, ok = v.HitTest(0, 1)
	require.True(t, ok)
	el.OnDragStart()
	require.True(t, ctrl.Dragging())
	assert.Equal(t, "x = 1\n", v.Editor().Doc())
	el.OnDragEnd()
}

func TestDestroyRemovesLayers(t *testing.T) {
	v, _, _, _ := newDndView(t, sample, config.DndConfig{})
	require.Len(t, v.Layers(), 2)
	v.Close()
	assert.Empty(t, v.Layers())
}

func TestBlockHandles(t *testing.T) {
	parent := layout.Positions{Top: 0, Left: 4, Height: 1}
	body := layout.Positions{Top: 1, Left: 8, Height: 2, CursorActive: true}
	b := Block{Parent: &parent, Body: &body, Start: 0, End: 20, PullBack: 1}

	hs := b.Handles(true)
	require.Len(t, hs, 2)
	assert.Equal(t, Handle{Kind: HandleParent, X: 3, Y: 0, W: 1, H: 1, Active: true, Draggable: true, Start: 0, End: 19}, hs[0])
	assert.Equal(t, Handle{Kind: HandleBody, X: 3, Y: 1, W: 1, H: 2, Active: true, Draggable: true, Start: 0, End: 19}, hs[1])

	for _, h := range b.Handles(false) {
		assert.False(t, h.Draggable)
	}

	inline := body
	inline.Inline = true
	assert.Len(t, Block{Parent: &parent, Body: &inline}.Handles(true), 1)

	small := Block{Parent: &parent, IsSmallStatement: true, Start: 5, End: 10}
	assert.Equal(t, []Handle{{Kind: HandleStatement, X: 3, Y: 0, W: 1, H: 1, Draggable: true, Start: 5, End: 10}}, small.Handles(true))

	edge := layout.Positions{Top: 0, Left: 0, Height: 1}
	hs = Block{Parent: &edge, IsSmallStatement: true, Start: 0, End: 5}.Handles(true)
	require.Len(t, hs, 1)
	assert.Zero(t, hs[0].X, "no handle is placed off screen")
}

func TestBlockEq(t *testing.T) {
	p := layout.Positions{Top: 1, Left: 2, Height: 3}
	q := p
	a := Block{Parent: &p, IsSmallStatement: true, Start: 0, End: 4}
	b := Block{Parent: &q, IsSmallStatement: true, Start: 7, End: 9}
	assert.True(t, a.Eq(b), "ranges are not compared")

	q.CursorActive = true
	assert.False(t, a.Eq(b))
	assert.False(t, a.Eq(Block{IsSmallStatement: true}))
}

func TestDecorations(t *testing.T) {
	v, ctrl, _, d := newDndView(t, "a = 1\nb = 2\n", config.DndConfig{MarkerTimeoutMS: 5})
	woke := make(chan struct{}, 1)
	v.SetWake(func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	})

	require.NoError(t, ctrl.DragStart(0, 0))
	ctrl.DragOver(1, 6)
	assert.Equal(t, "b = 2\na = 1\n", v.Editor().Doc())
	assert.Equal(t, ClassPreview, v.LineClass(1))
	assert.Equal(t, "", v.LineClass(0))

	under := v.Layers()[0]
	require.NotEmpty(t, under.Elements())
	assert.Equal(t, ClassShadow, under.Elements()[0].Class)
	assert.Equal(t, 1, under.Elements()[0].Y)

	ctrl.Drop()
	ctrl.DragEnd()
	assert.Equal(t, ClassDroppedRecent, v.LineClass(1))
	assert.Empty(t, under.Elements())

	select {
	case <-woke:
	case <-time.After(2 * time.Second):
		t.Fatal("marker timeout never fired")
	}
	v.Frame()
	assert.Equal(t, ClassDroppedDone, d.LineClass(1))

	require.NoError(t, v.Editor().InsertRune('#'))
	assert.Equal(t, "", d.LineClass(1), "markers clear on the next edit")
}

func TestDecorationsClearShadowOnLeave(t *testing.T) {
	v, ctrl, _, _ := newDndView(t, "a = 1\nb = 2\n", config.DndConfig{})
	require.NoError(t, ctrl.DragStart(0, 0))
	ctrl.DragOver(1, 6)
	require.NotEmpty(t, v.Layers()[0].Elements())

	ctrl.DragLeave(false)
	assert.Empty(t, v.Layers()[0].Elements())
	ctrl.DragEnd()
}

func TestCountIndent(t *testing.T) {
	assert.Equal(t, 0, countIndent("x", 4))
	assert.Equal(t, 2, countIndent("        x", 4))
	assert.Equal(t, 2, countIndent("\t    x", 4))
	assert.Equal(t, 0, countIndent("  x", 4))
}
