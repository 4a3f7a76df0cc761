// Package syntax keeps a tree-sitter tree in step with the buffer.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/syntax/lang"
	"github.com/xycoord/python-editor-next/internal/types"
)

// ErrNoLanguage is returned when parsing without a language.
var ErrNoLanguage = errors.New("no language set")

// Manager owns the parser and the current tree for one buffer.
type Manager struct {
	mu     sync.RWMutex
	parser *sitter.Parser
	lang   *lang.Language
	tree   *sitter.Tree
	src    []byte
}

// NewManager creates a manager for language l. l may be nil for plain text.
func NewManager(l *lang.Language) *Manager {
	m := &Manager{parser: sitter.NewParser(), lang: l}
	if l != nil {
		m.parser.SetLanguage(l.TreeSitterLang)
	}
	return m
}

// Language returns the manager's language, or nil.
func (m *Manager) Language() *lang.Language {
	return m.lang
}

// Parse replaces the tree with a full parse of src.
func (m *Manager) Parse(ctx context.Context, src []byte) error {
	if m.lang == nil {
		return ErrNoLanguage
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tree, err := m.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	m.replace(tree, src)
	return nil
}

// Update applies edits to the old tree, in the order they were made to the
// buffer, and reparses src incrementally.
func (m *Manager) Update(ctx context.Context, edits []types.EditInfo, src []byte) error {
	if m.lang == nil {
		return ErrNoLanguage
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.tree
	if old != nil {
		for _, e := range edits {
			old.Edit(e.InputEdit())
		}
	}
	tree, err := m.parser.ParseCtx(ctx, old, src)
	if err != nil {
		// Drop the edited tree; the next update starts from scratch.
		m.replace(nil, nil)
		return fmt.Errorf("incremental parse failed: %w", err)
	}
	m.replace(tree, src)
	logger.DebugTagf("syntax", "Reparsed %d bytes after %d edit(s)", len(src), len(edits))
	return nil
}

func (m *Manager) replace(tree *sitter.Tree, src []byte) {
	if m.tree != nil && m.tree != tree {
		m.tree.Close()
	}
	m.tree = tree
	m.src = src
}

// Tree returns the current tree and the source it was parsed from. Both are
// owned by the manager and stay valid until the next Parse or Update.
func (m *Manager) Tree() (*sitter.Tree, []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree, m.src
}

// Close releases the tree and parser.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replace(nil, nil)
	m.parser.Close()
}
