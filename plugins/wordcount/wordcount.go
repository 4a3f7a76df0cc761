// plugins/wordcount/wordcount.go
package wordcount

import (
	"bytes"
	"fmt"

	"github.com/xycoord/python-editor-next/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount reports buffer size and how many statements and blocks it holds.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() plugin.Plugin {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "WordCount"
}

// Initialize registers the :wc command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

// Stats is what :wc reports.
type Stats struct {
	Lines, Words, Bytes int
	Statements, Blocks  int
	MaxDepth            int
}

// Count computes the statistics for the current buffer.
func (p *WordCount) Count() Stats {
	data := p.api.GetBufferBytes()
	s := Stats{
		Lines: p.api.GetBufferLineCount(),
		Words: len(bytes.Fields(data)),
		Bytes: len(data),
	}
	if c, ok := p.api.GetStructure(); ok {
		s.Statements = len(c.Smalls)
		s.Blocks = len(c.Compounds)
		for _, cp := range c.Compounds {
			s.MaxDepth = max(s.MaxDepth, cp.Depth+1)
		}
	}
	return s
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	s := p.Count()
	p.api.SetStatusMessage("Lines: %d, Words: %d, Bytes: %d, Statements: %d, Blocks: %d, Depth: %d",
		s.Lines, s.Words, s.Bytes, s.Statements, s.Blocks, s.MaxDepth)
	return nil
}
