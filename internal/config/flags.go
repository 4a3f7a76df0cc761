// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// Flags holds values bound to command-line flags. Only flags the user set
// override the config file.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	TabWidth       int
	ScrollOff      int
	EnableTags     []string
	DisableTags    []string
	EnablePkgs     []string
	DisablePkgs    []string
	ReadOnly       bool
	NoLineNumbers  bool
	Theme          string

	DragSmallStatements bool
	IndentHandles       bool
	DndDebug            bool
	SystemClipboard     bool
}

// Register defines the flags on fs, typically a cobra command's Flags().
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.ConfigFilePath, "config", "c", "", fmt.Sprintf("path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "path to write log file (use '-' for stderr)")
	fs.IntVar(&f.TabWidth, "tabwidth", DefaultTabWidth, "number of columns per tab")
	fs.IntVar(&f.ScrollOff, "scrolloff", DefaultScrollOff, "lines of context above/below cursor")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "log tags to enable")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "log tags to disable")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "packages to log from")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "packages to silence")
	fs.BoolVar(&f.ReadOnly, "readonly", false, "open the file read-only; drags are ignored")
	fs.BoolVar(&f.NoLineNumbers, "no-line-numbers", false, "hide the line number gutter")
	fs.StringVar(&f.Theme, "theme", "", "color theme name")
	fs.BoolVar(&f.DragSmallStatements, "drag-small-statements", true, "show drag handles on simple statements")
	fs.BoolVar(&f.IndentHandles, "indent-handles", true, "reserve a gutter for drag handles")
	fs.BoolVar(&f.DndDebug, "dnd-debug", false, "log drag and drop transitions")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "copy blocks to the system clipboard")
}

// ApplyOverrides updates cfg with the flags that were explicitly set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "tabwidth":
			if f.TabWidth > 0 {
				cfg.Editor.TabWidth = f.TabWidth
			}
		case "scrolloff":
			if f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = f.ScrollOff
			}
		case "log-tags":
			cfg.Logger.EnabledTags = trimList(f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = trimList(f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = trimList(f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = trimList(f.DisablePkgs)
		case "readonly":
			cfg.Editor.ReadOnly = f.ReadOnly
		case "no-line-numbers":
			cfg.Editor.LineNumbers = !f.NoLineNumbers
		case "theme":
			cfg.Theme.Name = strings.TrimSpace(f.Theme)
		case "drag-small-statements":
			cfg.Dnd.DragSmallStatements = f.DragSmallStatements
		case "indent-handles":
			cfg.Dnd.IndentHandles = f.IndentHandles
		case "dnd-debug":
			cfg.Dnd.Debug = f.DndDebug
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		}
	})
}

// trimList drops blank entries and surrounding whitespace.
func trimList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
