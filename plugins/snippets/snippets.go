// Package snippets offers ready-made micro:bit code that is dragged into the
// buffer with the mouse.
package snippets

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xycoord/python-editor-next/internal/dnd"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/plugin"
)

var _ plugin.Plugin = (*Snippets)(nil)

// ErrUnknownSnippet is returned for a name missing from the catalog.
var ErrUnknownSnippet = errors.New("unknown snippet")

// Snippet is one piece of insertable code.
type Snippet struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"` // "snippet" or "call"
	Code string `toml:"code"`
}

func (s Snippet) insertKind() dnd.InsertKind {
	if s.Kind == "call" {
		return dnd.KindCallInsert
	}
	return dnd.KindSnippetInsert
}

type snippetFile struct {
	Snippets []Snippet `toml:"snippet"`
}

// Builtin is the catalog available without a snippets file.
var Builtin = []Snippet{
	{Name: "import", Kind: "snippet", Code: "from microbit import *\n"},
	{Name: "scroll", Kind: "snippet", Code: "display.scroll('Hello, World!')\n"},
	{Name: "forever", Kind: "snippet", Code: "while True:\n    display.show(Image.HEART)\n    sleep(1000)\n"},
	{Name: "button", Kind: "snippet", Code: "if button_a.was_pressed():\n    display.scroll('A')\n"},
	{Name: "loop", Kind: "snippet", Code: "for i in range(3):\n    display.scroll(i)\n"},
	{Name: "sleep", Kind: "call", Code: "sleep(1000)\n"},
	{Name: "show", Kind: "call", Code: "display.show(Image.HAPPY)\n"},
	{Name: "clear", Kind: "call", Code: "display.clear()\n"},
}

// Snippets registers :snippet, :call and :snippets.
type Snippets struct {
	api     plugin.EditorAPI
	catalog map[string]Snippet
	drops   map[string]int
}

// New creates the plugin with the built-in catalog.
func New() plugin.Plugin {
	return &Snippets{}
}

func (p *Snippets) Name() string {
	return "snippets"
}

// Initialize loads [plugins.snippets] file, if set, over the built-ins.
func (p *Snippets) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.catalog = make(map[string]Snippet, len(Builtin))
	p.drops = make(map[string]int)
	for _, s := range Builtin {
		p.catalog[s.Name] = s
	}

	if v, ok := api.GetPluginConfigValue(p.Name(), "file"); ok {
		path, isStr := v.(string)
		if !isStr {
			logger.Warnf("%s: Invalid type for 'file' config (%T), ignoring", p.Name(), v)
		} else if err := p.loadFile(path); err != nil {
			logger.Warnf("%s: %v", p.Name(), err)
		}
	}

	commands := map[string]plugin.CommandFunc{
		"snippet":  p.kindCommand("snippet"),
		"call":     p.kindCommand("call"),
		"snippets": p.listCommand,
	}
	for _, name := range []string{"snippet", "call", "snippets"} {
		if err := api.RegisterCommand(name, commands[name]); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	logger.Infof("%s initialized with %d snippets", p.Name(), len(p.catalog))
	return nil
}

func (p *Snippets) Shutdown() error {
	return nil
}

// loadFile adds the [[snippet]] entries of a TOML file. Entries with the
// name of an existing snippet replace it.
func (p *Snippets) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snippets file '%s': %w", path, err)
	}
	var file snippetFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return fmt.Errorf("parse snippets file '%s': %w", path, err)
	}
	for _, s := range file.Snippets {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" || s.Code == "" {
			logger.Warnf("%s: skipping snippet without name or code in '%s'", p.Name(), path)
			continue
		}
		if s.Kind != "call" {
			s.Kind = "snippet"
		}
		p.catalog[s.Name] = s
	}
	return nil
}

// Lookup returns the snippet called name.
func (p *Snippets) Lookup(name string) (Snippet, error) {
	s, ok := p.catalog[name]
	if !ok {
		return Snippet{}, fmt.Errorf("%w: %s", ErrUnknownSnippet, name)
	}
	return s, nil
}

// Names lists the snippets of kind, sorted.
func (p *Snippets) Names(kind string) []string {
	var names []string
	for name, s := range p.catalog {
		if s.Kind == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Drops reports how many times name has been dropped.
func (p *Snippets) Drops(name string) int {
	return p.drops[name]
}

// kindCommand begins an insert drag of a catalog entry. The pointer then
// places the code; a click drops it and Esc cancels.
func (p *Snippets) kindCommand(kind string) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <name> (one of: %s)", kind, strings.Join(p.Names(kind), ", "))
		}
		s, err := p.Lookup(args[0])
		if err != nil {
			return err
		}
		if s.Kind != kind {
			return fmt.Errorf("%s is a %s, not a %s", s.Name, s.Kind, kind)
		}
		onDrop := func() {
			p.drops[s.Name]++
			p.api.SetStatusMessage("Inserted %s", s.Name)
		}
		if err := p.api.BeginInsert(s.Code, s.insertKind(), s.Name, onDrop); err != nil {
			return err
		}
		p.api.SetStatusMessage("Place %s with the mouse, click to drop", s.Name)
		return nil
	}
}

func (p *Snippets) listCommand(args []string) error {
	p.api.SetStatusMessage("Snippets: %s | Calls: %s",
		strings.Join(p.Names("snippet"), ", "), strings.Join(p.Names("call"), ", "))
	return nil
}
