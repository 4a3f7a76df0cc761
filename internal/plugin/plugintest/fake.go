// Package plugintest provides an in-memory EditorAPI for plugin tests.
package plugintest

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/xycoord/python-editor-next/internal/buffer"
	"github.com/xycoord/python-editor-next/internal/core"
	"github.com/xycoord/python-editor-next/internal/dnd"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/plugin"
	"github.com/xycoord/python-editor-next/internal/structure"
	"github.com/xycoord/python-editor-next/internal/syntax"
	"github.com/xycoord/python-editor-next/internal/theme"
	"github.com/xycoord/python-editor-next/internal/types"
)

var _ plugin.EditorAPI = (*API)(nil)

// API backs the plugin interface with a real editor and drag controller.
// Work queued with RunOnUI is held until Drain runs it.
type API struct {
	Editor *core.Editor
	Events *event.Manager
	Drag   *dnd.Controller
	Themes *theme.Manager

	// Path overrides the buffer's file path when set.
	Path     string
	Commands map[string]plugin.CommandFunc
	Config   map[string]map[string]interface{}
	Saves    int

	mu       sync.Mutex
	messages []string
	queued   []func()
	notify   chan struct{}
}

// New creates an API over a Python buffer holding text.
func New(text string) *API {
	ed := core.NewEditor(buffer.NewSliceBufferFromString(text))
	em := event.NewManager()
	ed.SetEventManager(em)
	if err := ed.SetLanguage(syntax.Python()); err != nil {
		panic(err)
	}
	return &API{
		Editor:   ed,
		Events:   em,
		Drag:     dnd.NewController(ed, dnd.WithEvents(em)),
		Themes:   theme.NewManager(""),
		Commands: make(map[string]plugin.CommandFunc),
		Config:   make(map[string]map[string]interface{}),
		notify:   make(chan struct{}, 1),
	}
}

// Run executes a registered command.
func (a *API) Run(name string, args ...string) error {
	fn, ok := a.Commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	return fn(args)
}

// Messages returns every status message set so far.
func (a *API) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

// LastMessage returns the most recent status message.
func (a *API) LastMessage() string {
	msgs := a.Messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

// WaitQueued blocks until RunOnUI has been called or ctx is done.
func (a *API) WaitQueued(ctx context.Context) error {
	select {
	case <-a.notify:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs the work queued with RunOnUI and reports how much there was.
func (a *API) Drain() int {
	a.mu.Lock()
	queued := a.queued
	a.queued = nil
	a.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

func (a *API) GetBufferBytes() []byte  { return a.Editor.GetBuffer().Bytes() }
func (a *API) GetBufferLineCount() int { return a.Editor.GetBuffer().LineCount() }
func (a *API) IsBufferModified() bool  { return a.Editor.GetBuffer().IsModified() }

func (a *API) GetBufferFilePath() string {
	if a.Path != "" {
		return a.Path
	}
	return a.Editor.GetBuffer().FilePath()
}

func (a *API) SaveBuffer() error {
	a.Saves++
	return nil
}

func (a *API) GetStructure() (structure.Collection, bool) { return a.Editor.Structure() }
func (a *API) GetCursor() types.Position                  { return a.Editor.GetCursor() }
func (a *API) IsDragging() bool                           { return a.Drag.Dragging() }

func (a *API) BeginInsert(code string, kind dnd.InsertKind, id string, onDrop func()) error {
	return a.Drag.BeginInsert(code, kind, id, onDrop)
}

func (a *API) DispatchEvent(eventType event.Type, data interface{}) {
	a.Events.Dispatch(eventType, data)
}

func (a *API) SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription {
	return a.Events.Subscribe(eventType, handler)
}

func (a *API) UnsubscribeEvent(sub event.Subscription) { a.Events.Unsubscribe(sub) }

func (a *API) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if _, exists := a.Commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.Commands[name] = cmdFunc
	return nil
}

func (a *API) RunOnUI(fn func()) {
	a.mu.Lock()
	a.queued = append(a.queued, fn)
	a.mu.Unlock()
	select {
	case a.notify <- struct{}{}:
	default:
	}
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, fmt.Sprintf(format, args...))
}

func (a *API) GetThemeStyle(styleName string) tcell.Style {
	return a.Themes.Current().GetStyle(styleName)
}

func (a *API) SetTheme(name string) error { return a.Themes.SetTheme(name) }
func (a *API) GetTheme() *theme.Theme     { return a.Themes.Current() }
func (a *API) ListThemes() []string       { return a.Themes.ListThemes() }

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := a.Config[pluginName][key]
	return v, ok
}
