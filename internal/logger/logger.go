// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	defaultLogger *slog.Logger
	logLevel      *slog.LevelVar
	mu            sync.RWMutex
	closer        io.Closer
)

// debugFilter prints filter decisions to stderr. Only useful when working on the handler.
const debugFilter = false

// Init configures the package logger from cfg. It may be called again to reconfigure;
// the previous log file, if any, is closed.
func Init(cfg Config) error {
	cfg.process()

	output, c, err := openOutput(cfg)
	if err != nil {
		return err
	}

	level := new(slog.LevelVar)
	level.Set(cfg.level.Level())

	opts := slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	handler := newFilteringHandler(slog.NewTextHandler(output, &opts), &cfg)

	mu.Lock()
	if closer != nil {
		_ = closer.Close()
	}
	closer = c
	logLevel = level
	defaultLogger = slog.New(handler)
	mu.Unlock()

	// PC=0: no source for the init message
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "Logger initialized", 0)
	r.AddAttrs(slog.String("level", cfg.level.Level().String()), slog.String("file", cfg.LogFilePath))
	_ = handler.baseHandler.Handle(context.Background(), r)
	return nil
}

// openOutput picks the log destination. Files are rotated by lumberjack.
func openOutput(cfg Config) (io.Writer, io.Closer, error) {
	switch cfg.LogFilePath {
	case "":
		return io.Discard, nil, nil
	case "-":
		return os.Stderr, nil, nil
	}
	if dir := filepath.Dir(cfg.LogFilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return lj, lj, nil
}

// Close flushes and closes the log file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level slog.Level) {
	ensureInitialized()
	mu.RLock()
	defer mu.RUnlock()
	logLevel.Set(level)
}

// ensureInitialized installs a discarding logger if Init was never called.
func ensureInitialized() {
	mu.RLock()
	ready := defaultLogger != nil
	mu.RUnlock()
	if ready {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil {
		return
	}
	logLevel = new(slog.LevelVar)
	logLevel.Set(slog.LevelInfo)
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel}))
}

// logAtLevel creates and logs a record at the specified level, capturing the correct caller source.
func logAtLevel(level slog.Level, tag string, format string, args ...interface{}) {
	ensureInitialized()
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()

	if !l.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, "", format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, "", format, args...)
}

// DebugTagf logs a debug message carrying tag, so it can be filtered with EnabledTags/DisabledTags.
func DebugTagf(tag, format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, tag, format, args...)
}

// InfoTagf is DebugTagf at info level.
func InfoTagf(tag, format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, tag, format, args...)
}

// WarnTagf is DebugTagf at warn level.
func WarnTagf(tag, format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, tag, format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, "", format, args...)
	_ = Close()
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	ensureInitialized()
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}
