package statusbar

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xycoord/python-editor-next/internal/theme"
	"github.com/xycoord/python-editor-next/internal/types"
)

func TestText(t *testing.T) {
	cfg := ConfigFromTheme(&theme.DevComfortDark, time.Second)
	sb := New(cfg)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sb.now = func() time.Time { return clock }

	text, style := sb.Text()
	assert.Equal(t, "[No Name] -- Line: 1, Col: 1", text)
	assert.Equal(t, cfg.StyleDefault, style)

	sb.SetFileInfo("main.py", true)
	sb.SetCursorInfo(types.Position{Line: 2, Col: 4})
	sb.SetEditorMode("COMMAND")
	text, style = sb.Text()
	assert.Equal(t, "main.py [Modified] -- Line: 3, Col: 5 -- COMMAND", text)
	assert.Equal(t, cfg.StyleModified, style)

	sb.SetDragInfo("statement")
	text, style = sb.Text()
	assert.Equal(t, "Dragging statement -- Esc to cancel", text)
	assert.Equal(t, cfg.StyleDrag, style)

	sb.SetTemporaryMessage("Saved %s", "main.py")
	text, style = sb.Text()
	assert.Equal(t, "Saved main.py", text)
	assert.Equal(t, cfg.StyleMessage, style)

	clock = clock.Add(2 * time.Second)
	text, _ = sb.Text()
	assert.Equal(t, "Dragging statement -- Esc to cancel", text, "messages expire")

	sb.SetDragInfo("")
	sb.SetTemporaryMessage("x")
	sb.ResetTemporaryMessage()
	text, _ = sb.Text()
	assert.Contains(t, text, "main.py")
}

func TestDraw(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	t.Cleanup(sim.Fini)
	sim.SetSize(12, 3)

	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("hello world, clipped")
	sb.Draw(sim, 12, 3)
	sim.Show()

	cells, w, _ := sim.GetContents()
	var row []rune
	for x := 0; x < w; x++ {
		row = append(row, cells[2*w+x].Runes[0])
	}
	assert.Equal(t, "hello world,", string(row))
}
