// Package commands holds the built-in : commands that go through the plugin API.
package commands

import (
	"fmt"
	"strings"

	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/plugin"
)

// RegisterAppCommands registers built-in commands like :theme and :drag.
func RegisterAppCommands(api plugin.EditorAPI) {
	RegisterThemeCommands(api, api)
	RegisterDragCommands(api)
}

// RegisterThemeCommands registers :theme [name] and :themes.
func RegisterThemeCommands(reg Registrar, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(themeAPI.ListThemes(), ", "))
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeAPI.GetTheme().Name)
		return nil
	}

	themeListCmdFunc := func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	register(reg, "theme", themeCmdFunc)
	register(reg, "themes", themeListCmdFunc)
}

// RegisterDragCommands registers :drag, which reports the live drag.
func RegisterDragCommands(api plugin.EditorAPI) {
	register(api, "drag", func(args []string) error {
		if !api.IsDragging() {
			api.SetStatusMessage("No drag in progress")
			return nil
		}
		api.SetStatusMessage("Drag in progress -- Esc to cancel")
		return nil
	})
}

func register(reg Registrar, name string, fn plugin.CommandFunc) {
	if err := reg.RegisterCommand(name, fn); err != nil {
		logger.Warnf("Failed to register ':%s' command: %v", name, err)
	}
}
