package commands

import (
	"github.com/xycoord/python-editor-next/internal/plugin"
	"github.com/xycoord/python-editor-next/internal/theme"
)

// ThemeAPI is the part of the editor the theme commands need.
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// Registrar accepts named commands.
type Registrar interface {
	RegisterCommand(name string, cmdFunc plugin.CommandFunc) error
}
