package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// wheelRows is how far one wheel notch scrolls.
const wheelRows = 3

// mouseState turns terminal press, motion and release reports into the
// drag gestures the controller understands. Whether the pointer is over the
// text during a drag is the controller's suppression flag, set by DragEnter
// and cleared by a content-area DragLeave or the end of the drag.
type mouseState struct {
	pressed  bool   // Button 1 is held
	fromDrag bool   // The held press started a handle drag
	onEnd    func() // Ends the handle drag on release
}

func (m *mouseState) reset() {
	m.fromDrag = false
	m.onEnd = nil
}

// handleMouse dispatches one mouse report and reports whether to redraw.
func (a *App) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.view.ScrollBy(-wheelRows)
		return true
	case buttons&tcell.WheelDown != 0:
		a.view.ScrollBy(wheelRows)
		return true
	case buttons&tcell.Button1 != 0:
		if !a.mouse.pressed {
			a.mouse.pressed = true
			return a.mousePress(x, y)
		}
		return a.mouseMotion(x, y)
	case buttons == tcell.ButtonNone:
		if a.mouse.pressed {
			a.mouse.pressed = false
			return a.mouseRelease()
		}
		return a.mouseMotion(x, y)
	}
	return false
}

// mousePress starts a handle drag, drops a pending insert, or moves the
// cursor.
func (a *App) mousePress(x, y int) bool {
	if a.drag.Dragging() {
		// A snippet or call insert follows the pointer; the click places it.
		a.dragOverAt(x, y)
		if a.drag.Suppressed() {
			a.drag.Drop()
		}
		a.drag.DragEnd()
		return true
	}

	if el, ok := a.view.HitTest(x, y); ok && el.OnDragStart != nil {
		el.OnDragStart()
		if a.drag.Dragging() {
			a.mouse.fromDrag = true
			a.mouse.onEnd = el.OnDragEnd
			a.dragOverAt(x, y)
			logger.DebugTagf("mouse", "handle drag from (%d,%d)", x, y)
		}
		return true
	}

	if pos, _, ok := a.view.PosAtCoords(x, y); ok {
		a.editor.SetCursorOffset(pos)
		return true
	}
	return false
}

// mouseMotion moves a live drag's preview.
func (a *App) mouseMotion(x, y int) bool {
	if !a.drag.Dragging() {
		return false
	}
	a.dragOverAt(x, y)
	return true
}

// mouseRelease drops a handle drag over the view, or cancels it elsewhere.
func (a *App) mouseRelease() bool {
	if !a.mouse.fromDrag {
		return false
	}
	if a.drag.Dragging() && a.drag.Suppressed() {
		a.drag.Drop()
	}
	onEnd := a.mouse.onEnd
	a.mouse.reset()
	if onEnd != nil {
		onEnd()
	}
	return true
}

// dragOverAt previews the drag at screen cell (x, y), entering and leaving
// the view as the pointer crosses its edge.
func (a *App) dragOverAt(x, y int) {
	pos, line, ok := a.view.PosAtCoords(x, y)
	if !ok {
		if a.drag.Suppressed() {
			a.drag.DragLeave(true)
		}
		return
	}
	if !a.drag.Suppressed() {
		a.drag.DragEnter()
	}
	a.drag.DragOver(line, pos)
}
