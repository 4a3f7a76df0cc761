// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style. Dotted names fall back to their base
// ("DragLine.active" to "DragLine"), and anything unknown to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Background returns the background color of the named style.
func (t *Theme) Background(name string) tcell.Color {
	_, bg, _ := t.GetStyle(name).Decompose()
	return bg
}

// --- Built-in themes ---

var (
	DevComfortDark Theme
	MicrobitLight  Theme
)

func init() {
	// --- Palette for DevComfort Dark ---
	dcBackground := tcell.NewHexColor(0x2a2f38) // Status bar and panels
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)
	dcBlue := tcell.NewHexColor(0x61afef)
	dcShadow := tcell.NewHexColor(0x353b45)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":          baseStyle,
			"LineNumber":       baseStyle.Foreground(dcComment),
			"LineNumberActive": baseStyle.Foreground(dcForeground).Bold(true),

			"StatusBar":         tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			"StatusBarModified": tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground).Bold(true),
			"StatusBarDrag":     tcell.StyleDefault.Background(dcBackground).Foreground(dcGreen).Bold(true),

			// Drag handles
			"DragLine":   baseStyle.Foreground(dcComment),
			"DragParent": baseStyle.Foreground(dcBlue),
			"DragBody":   baseStyle.Foreground(dcBlue).Dim(true),
			"DragActive": baseStyle.Foreground(dcYellow).Bold(true),

			// Lines touched by a drag
			"DndPreview":       baseStyle.Background(tcell.NewHexColor(0x3b4048)),
			"DndDroppedRecent": baseStyle.Background(tcell.NewHexColor(0x4b5a3a)),
			"DndDroppedDone":   baseStyle.Background(tcell.NewHexColor(0x333a30)),
			"DndShadow":        baseStyle.Background(dcShadow),
			"DndHandleShadow":  baseStyle.Background(dcShadow),
		},
	}

	mbForeground := tcell.NewHexColor(0x262626)
	mbPurple := tcell.NewHexColor(0x6c4bc1)
	mbGrey := tcell.NewHexColor(0x8a8a8a)
	mbPanel := tcell.NewHexColor(0xe8e3f6)
	mbYellow := tcell.NewHexColor(0xf7febf)

	light := tcell.StyleDefault.Background(tcell.NewHexColor(0xffffff)).Foreground(mbForeground)

	MicrobitLight = Theme{
		Name: "Microbit Light",
		Styles: map[string]tcell.Style{
			"Default":          light,
			"LineNumber":       light.Foreground(mbGrey),
			"LineNumberActive": light.Foreground(mbForeground).Bold(true),

			"StatusBar":         tcell.StyleDefault.Background(mbPanel).Foreground(mbForeground),
			"StatusBarModified": tcell.StyleDefault.Background(mbPanel).Foreground(mbPurple),
			"StatusBarMessage":  tcell.StyleDefault.Background(mbPanel).Foreground(mbForeground).Bold(true),
			"StatusBarDrag":     tcell.StyleDefault.Background(mbPanel).Foreground(mbPurple).Bold(true),

			"DragLine":   light.Foreground(mbGrey),
			"DragParent": light.Foreground(mbPurple),
			"DragBody":   light.Foreground(mbPurple).Dim(true),
			"DragActive": light.Foreground(mbPurple).Bold(true),

			"DndPreview":       light.Background(tcell.NewHexColor(0xfbfde5)),
			"DndDroppedRecent": light.Background(mbYellow),
			"DndDroppedDone":   light.Background(tcell.NewHexColor(0xfdfff0)),
			"DndShadow":        light.Background(tcell.NewHexColor(0xf0f0f0)),
			"DndHandleShadow":  light.Background(tcell.NewHexColor(0xe0e0e0)),
		},
	}

	CurrentTheme = &DevComfortDark
}

var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &DevComfortDark
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
