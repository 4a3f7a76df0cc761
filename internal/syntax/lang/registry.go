package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/xycoord/python-editor-next/internal/logger"
)

var (
	// Global language registry
	registry struct {
		sync.RWMutex
		languages     []*Language
		extToLanguage map[string]*Language
		initialized   bool
	}

	// One-time initialization
	initOnce sync.Once
)

// Initialize ensures the registry is ready for use
func Initialize() {
	initOnce.Do(func() {
		registry.extToLanguage = make(map[string]*Language)
		registry.languages = make([]*Language, 0)
		registry.initialized = true
		logger.DebugTagf("syntax", "Language registry initialized")
	})
}

// Register adds a language to the registry
func Register(lang *Language) {
	Initialize()

	registry.Lock()
	defer registry.Unlock()

	// Re-registering a name replaces the earlier definition
	replaced := false
	for i, existing := range registry.languages {
		if existing.Name == lang.Name {
			registry.languages[i] = lang
			replaced = true
			break
		}
	}
	if !replaced {
		registry.languages = append(registry.languages, lang)
	}

	// Map each extension to this language
	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok && existing.Name != lang.Name {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}

	logger.DebugTagf("syntax", "Registered language: %s with extensions: %v (structure: %v)",
		lang.Name, lang.Extensions, lang.HasStructure())
}

// GetForFile returns the language for a given file path
func GetForFile(filePath string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	ext := strings.ToLower(filepath.Ext(filePath))
	lang, ok := registry.extToLanguage[ext]
	if !ok {
		return nil
	}
	return lang
}

// GetByName returns the language registered under name, case-insensitively.
func GetByName(name string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	for _, l := range registry.languages {
		if strings.EqualFold(l.Name, name) {
			return l
		}
	}
	return nil
}

// GetAll returns all registered languages
func GetAll() []*Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}