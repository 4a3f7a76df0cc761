package config

import "time"

// Base application details
const AppName = "pyedit"
const ConfigDirName = "pyedit"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "pyedit.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultIndentUnit = 4
const DefaultScrollOff = 3
const SystemClipboard = true

// Drag and drop
const DefaultMarkerTimeout = 100 * time.Millisecond
const HandleGutterWidth = 2
