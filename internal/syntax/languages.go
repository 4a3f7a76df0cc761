// internal/syntax/languages.go
package syntax

import (
	"github.com/xycoord/python-editor-next/internal/logger"
	"github.com/xycoord/python-editor-next/internal/structure"
	"github.com/xycoord/python-editor-next/internal/syntax/lang"

	pythonsrc "github.com/smacker/go-tree-sitter/python"
)

// RegisterLanguages adds the built-in languages to the registry.
func RegisterLanguages() {
	lang.Register(&lang.Language{
		Name:           "Python",
		TreeSitterLang: pythonsrc.GetLanguage(),
		Extensions:     []string{".py", ".pyw", ".pyi"},
		Structure:      &structure.Python,
	})

	logger.DebugTagf("syntax", "Registration complete. Registered %d languages.", len(lang.GetAll()))
}

// Python returns the registered Python language, registering it if needed.
func Python() *lang.Language {
	if l := lang.GetByName("Python"); l != nil {
		return l
	}
	RegisterLanguages()
	return lang.GetByName("Python")
}
