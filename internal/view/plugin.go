package view

import (
	"strings"

	"github.com/xycoord/python-editor-next/internal/core/changes"
)

// Effect is a value posted to the view from outside a transaction, such as a
// timer firing. Plugins recognise their own effects by comparing values.
type Effect interface{}

// Update describes one change to the view. A dispatched transaction produces
// one update; scrolling, resizing and flushed effects produce others.
type Update struct {
	View            *View
	DocChanged      bool
	SelectionSet    bool
	ViewportChanged bool
	Changes         changes.ChangeSet // Zero unless DocChanged
	UserEvent       string
	Effects         []Effect
}

// IsUserEvent reports whether the update came from a transaction tagged
// with event or with a more specific event below it, so "dnd.drop" matches
// "dnd.drop.statement".
func (u Update) IsUserEvent(event string) bool {
	return u.UserEvent == event || strings.HasPrefix(u.UserEvent, event+".")
}

// HasEffect reports whether e was among the update's effects.
func (u Update) HasEffect(e Effect) bool {
	for _, got := range u.Effects {
		if got == e {
			return true
		}
	}
	return false
}

// Plugin is a view extension with a lifecycle tied to the view.
type Plugin interface {
	Update(u Update)
	Destroy()
}

// LineDecorator is implemented by plugins that style whole lines.
// LineClass returns a theme style name or "" for none.
type LineDecorator interface {
	LineClass(line int) string
}

// Extension constructs a plugin for a view.
type Extension func(v *View) Plugin
