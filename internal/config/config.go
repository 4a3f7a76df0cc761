// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // Embed logger config under [logger] table
	Editor EditorConfig  `toml:"editor"`
	Dnd    DndConfig     `toml:"dnd"`
	Theme  ThemeConfig   `toml:"theme"`

	// Plugins holds free-form [plugins.<name>] tables read by each plugin.
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	Name string `toml:"name"` // Empty keeps the built-in default
	Dir  string `toml:"dir"`  // Extra *.toml themes; empty uses the config dir
}

// PluginValue returns [plugins.<plugin>] <key>.
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	table, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	IndentUnit      int  `toml:"indent_unit"` // Columns per nesting level
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`
	LineNumbers     bool `toml:"line_numbers"`
	ReadOnly        bool `toml:"read_only"`
}

// DndConfig configures drag and drop of code blocks.
type DndConfig struct {
	// DragSmallStatements adds a handle to every simple statement, not just compound ones.
	DragSmallStatements bool `toml:"drag_small_statements"`
	// IndentHandles reserves a gutter for handles instead of drawing them over the text.
	IndentHandles bool `toml:"indent_handles"`
	// MarkerTimeoutMS is how long a dropped line stays highlighted as recent.
	MarkerTimeoutMS int `toml:"marker_timeout_ms"`
	// BodyPullBack pulls nested body boxes one column left.
	BodyPullBack bool `toml:"body_pull_back"`
	// Debug logs every drag transition under the "dnd" tag.
	Debug bool `toml:"debug"`
}

// MarkerTimeout returns MarkerTimeoutMS as a duration.
func (d DndConfig) MarkerTimeout() time.Duration {
	return time.Duration(d.MarkerTimeoutMS) * time.Millisecond
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			IndentUnit:      DefaultIndentUnit,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
			LineNumbers:     true,
		},
		Dnd: DndConfig{
			DragSmallStatements: true,
			IndentHandles:       true,
			MarkerTimeoutMS:     int(DefaultMarkerTimeout / time.Millisecond),
		},
	}
}

// DefaultConfigPath returns ~/.config/pyedit/config.toml, or "" if the config dir is unknown.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file leaves cfg untouched.
func loadFromFile(filePath string, cfg *Config) (undecoded []string, err error) {
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	for _, key := range metadata.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.IndentUnit <= 0 {
		c.Editor.IndentUnit = defaults.Editor.IndentUnit
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Dnd.MarkerTimeoutMS < 0 {
		c.Dnd.MarkerTimeoutMS = defaults.Dnd.MarkerTimeoutMS
	}
	if c.Dnd.Debug {
		c.Logger.LogLevel = "debug"
	}
}

// Load builds a configuration from defaults, the TOML file at configFilePath
// (or the default location when empty) and any flags that were set.
// Values the file does not mention keep their defaults.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultConfigPath()
	}

	var undecoded []string
	var err error
	if path != "" {
		undecoded, err = loadFromFile(path, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, undecoded, err
}

// LoadConfig loads the configuration once and stores it for Get.
// Logging is not available yet, so problems are returned instead.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg, undecoded, err := Load(configFilePath, flags)
		loadErr = err
		if err == nil && len(undecoded) > 0 {
			loadErr = fmt.Errorf("config: unrecognized keys %v", undecoded)
		}
		loadedConfig = cfg
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
