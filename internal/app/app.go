// internal/app/app.go
package app

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/xycoord/python-editor-next/internal/buffer"
	"github.com/xycoord/python-editor-next/internal/commands"
	"github.com/xycoord/python-editor-next/internal/config"
	"github.com/xycoord/python-editor-next/internal/core"
	"github.com/xycoord/python-editor-next/internal/dnd"
	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/input"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/modehandler"
	"github.com/xycoord/python-editor-next/internal/plugin"
	"github.com/xycoord/python-editor-next/internal/statusbar"
	"github.com/xycoord/python-editor-next/internal/syntax"
	"github.com/xycoord/python-editor-next/internal/syntax/lang"
	"github.com/xycoord/python-editor-next/internal/theme"
	"github.com/xycoord/python-editor-next/internal/tui"
	"github.com/xycoord/python-editor-next/internal/view"
)

// App encapsulates the core components and main loop of the editor.
//
// Editor, view and drag state belong to the goroutine running Run. Terminal
// events are read on a separate goroutine and handed over on a channel;
// other goroutines queue work with runOnUI.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	editor        *core.Editor
	view          *view.View
	drag          *dnd.Controller
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     plugin.EditorAPI
	filePath      string
	mouse         mouseState

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
	events        chan tcell.Event
	done          chan struct{} // Closed when Run returns
	pollDone      chan struct{} // Closed when the poll goroutine exits
	polling       bool
	closeOnce     sync.Once

	queueMu     sync.Mutex
	queued      []func()
	queueSignal chan struct{}
}

// NewApp creates the application on the real terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, filePath, tuiManager)
}

// NewAppWithScreen creates the application on s, typically a
// tcell.SimulationScreen.
func NewAppWithScreen(cfg *config.Config, filePath string, s tcell.Screen) (*App, error) {
	tuiManager, err := tui.NewWithScreen(s)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, filePath, tuiManager)
}

func newApp(cfg *config.Config, filePath string, tuiManager *tui.TUI) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	// --- Theme ---
	themesDir := cfg.Theme.Dir
	if themesDir == "" {
		themesDir = theme.DefaultThemesDir()
	}
	themeManager := theme.NewManager(themesDir)
	if cfg.Theme.Name != "" {
		if err := themeManager.SetTheme(cfg.Theme.Name); err != nil {
			logger.Warnf("App: %v, keeping %s", err, themeManager.Current().Name)
		}
	}
	theme.SetCurrentTheme(themeManager.Current())
	tuiManager.GetScreen().SetStyle(themeManager.Current().GetStyle("Default"))

	// --- Editor ---
	eventManager := event.NewManager()
	editor := core.NewEditor(buffer.NewSliceBuffer())
	editor.Configure(cfg.Editor)
	editor.SetEventManager(eventManager)
	if err := editor.SetLanguage(languageFor(filePath)); err != nil {
		logger.Warnf("App: language setup failed: %v", err)
	}
	if filePath != "" {
		if err := editor.LoadFile(filePath); err != nil {
			tuiManager.Close()
			return nil, fmt.Errorf("load %s: %w", filePath, err)
		}
	}

	// --- View with drag and drop ---
	drag := dnd.NewController(editor, dnd.WithEvents(eventManager))
	width, height := tuiManager.Size()
	v := view.New(editor, view.OptionsFromConfig(cfg, width, textHeight(cfg, height)), dnd.Extension(drag, cfg.Dnd)...)

	statusBar := statusbar.New(statusbar.ConfigFromTheme(themeManager.Current(), config.MessageTimeout))
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		Drag:           drag,
		QuitSignal:     quitChan,
	})
	modeHandler.SetPageHeight(v.Height())

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor,
		view:          v,
		drag:          drag,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		filePath:      filePath,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
		events:        make(chan tcell.Event),
		done:          make(chan struct{}),
		pollDone:      make(chan struct{}),
		queueSignal:   make(chan struct{}, 1),
	}
	v.SetWake(a.requestRedraw)
	a.editorAPI = newEditorAPI(a)

	a.subscribeEvents()
	commands.RegisterAppCommands(a.editorAPI)

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		logger.Warnf("App: %v", err)
	}

	return a, nil
}

// languageFor picks the language for path. Buffers without a known
// extension are edited as Python.
func languageFor(path string) *lang.Language {
	python := syntax.Python()
	if path == "" {
		return python
	}
	if l := lang.GetForFile(path); l != nil {
		return l
	}
	return python
}

// textHeight is the number of rows left for text above the status bar.
func textHeight(cfg *config.Config, screenHeight int) int {
	return max(0, screenHeight-cfg.Editor.StatusBarHeight)
}

// Run starts the application's main loop and blocks until quit.
func (a *App) Run() error {
	defer a.Close()

	a.polling = true
	go a.pollEvents()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Drag the bars beside the code to move it | Ctrl+S Save | :q Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.GetBuffer().IsModified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("Exiting application.")
			return nil
		case ev, ok := <-a.events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-a.queueSignal:
			if a.drainQueue() > 0 {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// Close stops plugins and the view, then releases the terminal. Run calls
// it on return; it is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		if a.drag.Dragging() {
			a.drag.DragEnd()
		}
		a.pluginManager.ShutdownPlugins()
		a.view.Close()
		close(a.done)
		a.tuiManager.Close()
		if a.polling {
			<-a.pollDone
		}
	})
}

// pollEvents forwards terminal events to the main loop until the screen is
// finalized.
func (a *App) pollEvents() {
	defer close(a.pollDone)
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.done:
			return
		}
	}
}

// handleEvent reacts to one terminal event and reports whether to redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(e)
	case *tcell.EventMouse:
		return a.handleMouse(e)
	}
	return false
}

// runOnUI queues fn for the main loop. Safe from any goroutine.
func (a *App) runOnUI(fn func()) {
	a.queueMu.Lock()
	a.queued = append(a.queued, fn)
	a.queueMu.Unlock()

	select {
	case a.queueSignal <- struct{}{}:
	default:
	}
}

func (a *App) drainQueue() int {
	a.queueMu.Lock()
	queued := a.queued
	a.queued = nil
	a.queueMu.Unlock()

	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// GetModeHandler allows the API adapter to access the mode handler for command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// Editor returns the edited document.
func (a *App) Editor() *core.Editor {
	return a.editor
}

// View returns the view the app draws.
func (a *App) View() *view.View {
	return a.view
}

// Drag returns the drag and drop controller.
func (a *App) Drag() *dnd.Controller {
	return a.drag
}
