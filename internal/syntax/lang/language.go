package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/xycoord/python-editor-next/internal/structure"
)

// Language represents a programming language the editor can parse.
type Language struct {
	// Name is the display name of the language
	Name string

	// TreeSitterLang is the tree-sitter language instance
	TreeSitterLang *sitter.Language

	// Extensions maps file extensions to this language
	Extensions []string

	// Structure names the node types that make up statements and bodies.
	// Languages without one get no drag handles.
	Structure *structure.Grammar
}

// HasStructure reports whether blocks can be dragged in this language.
func (l *Language) HasStructure() bool {
	return l != nil && l.Structure != nil
}
