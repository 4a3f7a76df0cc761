package dnd

import (
	"strings"
	"sync"
	"time"

	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/layout"
	"github.com/xycoord/python-editor-next/internal/view"
)

// Line styles for lines touched by a drag.
const (
	ClassPreview        = "DndPreview"
	ClassDroppedRecent  = "DndDroppedRecent"
	ClassDroppedDone    = "DndDroppedDone"
	ClassShadow         = "DndShadow"
	ClassHandleShadow   = "DndHandleShadow"
	shadowHandleColumns = 1
)

// markerTimeout is posted when recently dropped lines should fade.
type markerTimeout struct{}

// Decorations marks previewed and dropped lines and draws a shadow under
// the preview. Markers last until the next document change; dropped lines
// switch from recent to done after a timeout.
type Decorations struct {
	view     *view.View
	underlay *view.Layer
	timeout  time.Duration

	preview       map[int]bool
	droppedRecent map[int]bool
	droppedDone   map[int]bool

	timerMu sync.Mutex
	timer   *time.Timer

	events *event.Manager
	sub    event.Subscription
}

func newDecorations(v *view.View, timeout time.Duration) *Decorations {
	d := &Decorations{
		view:          v,
		underlay:      v.AddLayer("dnd-underlay", -1),
		timeout:       timeout,
		preview:       map[int]bool{},
		droppedRecent: map[int]bool{},
		droppedDone:   map[int]bool{},
	}
	if em := v.Editor().GetEventManager(); em != nil {
		d.events = em
		d.sub = em.Subscribe(event.TypeDragLeft, func(event.Event) bool {
			d.underlay.Clear()
			return false
		})
	}
	return d
}

// LineClass implements view.LineDecorator.
func (d *Decorations) LineClass(line int) string {
	switch {
	case d.preview[line]:
		return ClassPreview
	case d.droppedRecent[line]:
		return ClassDroppedRecent
	case d.droppedDone[line]:
		return ClassDroppedDone
	}
	return ""
}

// Update implements view.Plugin.
func (d *Decorations) Update(u view.Update) {
	if !u.DocChanged {
		if u.HasEffect(markerTimeout{}) {
			d.droppedDone = d.droppedRecent
			d.droppedRecent = map[int]bool{}
		}
		return
	}

	clear(d.preview)
	clear(d.droppedRecent)
	clear(d.droppedDone)
	d.underlay.SetHeight(u.View.Layout().ContentHeight())

	isPreview := u.IsUserEvent(EventPreview)
	isDrop := u.IsUserEvent(EventDrop)
	if !isPreview && !isDrop {
		return
	}

	l := u.View.Layout()
	var shadows []view.Element
	u.Changes.Iter(func(_, _, fromB, toB int, _ string) {
		start, end := l.LineOf(fromB), l.LineOf(toB)
		for line := start; line < end; line++ {
			if l.IsBlankLine(line) {
				continue
			}
			if isPreview {
				d.preview[line] = true
			} else {
				d.droppedRecent[line] = true
			}
		}
		if isPreview {
			shadows = append(shadows, shadow(l, start, end-1)...)
		}
	})
	d.underlay.SetElements(shadows)

	if isDrop {
		d.startTimer()
	}
}

func (d *Decorations) startTimer() {
	d.timerMu.Lock()
	defer d.timerMu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	v := d.view
	d.timer = time.AfterFunc(d.timeout, func() { v.Post(markerTimeout{}) })
}

// Destroy stops the fade timer and removes the underlay.
func (d *Decorations) Destroy() {
	d.timerMu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.timerMu.Unlock()
	if d.events != nil {
		d.events.Unsubscribe(d.sub)
	}
	d.view.RemoveLayer(d.underlay)
}

// shadow returns the shadow boxes for lines [start, end] with blank lines
// at either end trimmed. A block header also gets a shadow in its handle
// column.
func shadow(l *layout.Layout, start, end int) []view.Element {
	for start < end && l.IsBlankLine(start) {
		start++
	}
	for end > start && l.IsBlankLine(end) {
		end--
	}
	if end < start {
		return nil
	}

	from, to := l.LineRange(start)
	text := l.Text()[from:to]
	left := l.ContentLeft() + countIndent(text, l.Options().IndentUnit)*l.IndentWidth()

	_, lastTo := l.LineRange(end)
	top := l.VisualLineAt(from).Top
	bottom := l.VisualLineAt(lastTo).Bottom

	els := []view.Element{{X: left, Y: top, W: max(1, l.Options().Width-left), H: bottom - top, Class: ClassShadow}}
	if strings.HasSuffix(strings.TrimSpace(text), ":") {
		els = append(els, view.Element{X: left - shadowHandleColumns, Y: top, W: shadowHandleColumns, H: 1, Class: ClassHandleShadow})
	}
	return els
}

// countIndent counts leading indentation levels: a tab or unit spaces each.
func countIndent(text string, unit int) int {
	n := 0
	spaces := strings.Repeat(" ", unit)
	for {
		switch {
		case strings.HasPrefix(text, spaces):
			text = text[unit:]
		case strings.HasPrefix(text, "\t"):
			text = text[1:]
		default:
			return n
		}
		n++
	}
}
