package dnd

import (
	"github.com/xycoord/python-editor-next/internal/config"
	"github.com/xycoord/python-editor-next/internal/view"
)

// Extension returns the view plugins that draw drag handles for ctrl and
// mark the lines a drag touches.
func Extension(ctrl *Controller, cfg config.DndConfig) []view.Extension {
	opts := Options{DragSmallStatements: cfg.DragSmallStatements}
	if cfg.BodyPullBack {
		opts.PullBack = 1
	}
	timeout := cfg.MarkerTimeout()
	if timeout <= 0 {
		timeout = config.DefaultMarkerTimeout
	}
	return []view.Extension{
		func(v *view.View) view.Plugin { return newOverlay(v, ctrl, opts) },
		func(v *view.View) view.Plugin { return newDecorations(v, timeout) },
	}
}
