package history

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xycoord/python-editor-next/internal/core/changes"
	"github.com/xycoord/python-editor-next/internal/logger"
)

const (
	DefaultMaxHistory = 100
	// DefaultJoinWindow is how close consecutive typing must be to share an undo step.
	DefaultJoinWindow = 500 * time.Millisecond
)

// Applier applies a change set without recording it, then places the cursor.
type Applier interface {
	ApplyHistory(cs changes.ChangeSet, cursor int, userEvent string) error
}

// Manager handles the undo/redo stack.
type Manager struct {
	applier      Applier
	entries      []Entry
	currentIndex int // Index of the *next* entry to potentially Redo
	maxHistory   int
	joinWindow   time.Duration
	now          func() time.Time
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(applier Applier, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		applier:    applier,
		entries:    make([]Entry, 0, maxHistory),
		maxHistory: maxHistory,
		joinWindow: DefaultJoinWindow,
		now:        time.Now,
	}
}

// joinable reports whether next continues the typing run that ends in prev.
func (m *Manager) joinable(prev, next Entry) bool {
	if prev.UserEvent != next.UserEvent || next.At.Sub(prev.At) > m.joinWindow {
		return false
	}
	if !strings.HasPrefix(next.UserEvent, "input.type") && !strings.HasPrefix(next.UserEvent, "delete.") {
		return false
	}
	return prev.CursorAfter == next.CursorBefore
}

// Record adds a new entry, clearing any redo history. Consecutive typing
// within the join window is merged into one entry.
func (m *Manager) Record(entry Entry) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if entry.At.IsZero() {
		entry.At = m.now()
	}

	// If current index isn't at the end, truncate the redo history
	if m.currentIndex < len(m.entries) {
		m.entries = m.entries[:m.currentIndex]
	}

	if n := len(m.entries); n > 0 && m.joinable(m.entries[n-1], entry) {
		prev := m.entries[n-1]
		merged, err := prev.Changes.Compose(entry.Changes)
		inverse, invErr := entry.Inverse.Compose(prev.Inverse)
		if err == nil && invErr == nil {
			prev.Changes = merged
			prev.Inverse = inverse
			prev.CursorAfter = entry.CursorAfter
			prev.At = entry.At
			m.entries[n-1] = prev
			logger.DebugTagf("history", "Joined %q into entry %d", entry.UserEvent, n-1)
			return
		}
		logger.Warnf("History: could not join entries: %v / %v", err, invErr)
	}

	m.entries = append(m.entries, entry)

	// Limit history size
	if len(m.entries) > m.maxHistory {
		m.entries = m.entries[len(m.entries)-m.maxHistory:]
	}

	m.currentIndex = len(m.entries)

	logger.DebugTagf("history", "Recorded %q. Index: %d, Count: %d", entry.UserEvent, m.currentIndex, len(m.entries))
}

// Undo reverts the last recorded entry. The lock is not held while the
// applier runs, so listeners may query the manager.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	if m.currentIndex <= 0 {
		m.mutex.Unlock()
		logger.DebugTagf("history", "Nothing to undo.")
		return false, nil
	}
	idx := m.currentIndex - 1
	entry := m.entries[idx]
	m.mutex.Unlock()

	if err := m.applier.ApplyHistory(entry.Inverse, entry.CursorBefore, "undo"); err != nil {
		logger.Errorf("History: Error undoing %q: %v", entry.UserEvent, err)
		return false, fmt.Errorf("undo failed: %w", err)
	}

	m.mutex.Lock()
	m.currentIndex = idx
	m.mutex.Unlock()
	logger.DebugTagf("history", "Undid entry %d (%q)", idx, entry.UserEvent)
	return true, nil
}

// Redo reapplies the last undone entry.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	if m.currentIndex >= len(m.entries) {
		logger.DebugTagf("history", "Nothing to redo. currentIndex=%d, len(entries)=%d", m.currentIndex, len(m.entries))
		m.mutex.Unlock()
		return false, nil
	}
	idx := m.currentIndex
	entry := m.entries[idx]
	m.mutex.Unlock()

	if err := m.applier.ApplyHistory(entry.Changes, entry.CursorAfter, "redo"); err != nil {
		logger.Errorf("History: Error redoing %q: %v", entry.UserEvent, err)
		return false, fmt.Errorf("redo failed: %w", err)
	}

	m.mutex.Lock()
	m.currentIndex = idx + 1
	m.mutex.Unlock()
	logger.DebugTagf("history", "Redo completed. New currentIndex=%d", idx+1)
	return true, nil
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.entries = m.entries[:0]
	m.currentIndex = 0
	logger.DebugTagf("history", "Cleared.")
}

// CanUndo returns true if there are entries that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are entries that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.entries)
}

// Len returns the number of entries that can be undone.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex
}
