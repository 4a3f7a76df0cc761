package modehandler

import (
	"fmt"

	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/plugin"
)

// registerBuiltins adds the commands every buffer has.
func (mh *ModeHandler) registerBuiltins() {
	builtins := map[string]plugin.CommandFunc{
		"w": func(args []string) error {
			mh.cancelDrag()
			if len(args) > 1 {
				return fmt.Errorf("usage: w [path]")
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			mh.save(path)
			return nil
		},
		"q": func([]string) error {
			mh.Quit(false)
			return nil
		},
		"q!": func([]string) error {
			mh.Quit(true)
			return nil
		},
		"wq": func([]string) error {
			mh.cancelDrag()
			if mh.save("") {
				mh.Quit(false)
			}
			return nil
		},
		"undo": func([]string) error {
			mh.cancelDrag()
			mh.undo()
			return nil
		},
		"redo": func([]string) error {
			mh.cancelDrag()
			mh.redo()
			return nil
		},
		"copyblock": func([]string) error {
			mh.copyBlock()
			return nil
		},
	}
	for name, fn := range builtins {
		if err := mh.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}
