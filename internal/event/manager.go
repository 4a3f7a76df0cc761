// internal/event/manager.go
package event

import (
	"sync"

	"github.com/xycoord/python-editor-next/internal/logger"
)

// Handler defines the function signature for event subscribers.
// Returning true marks the event consumed and stops delivery to later handlers.
type Handler func(e Event) bool

// Subscription identifies a handler for Unsubscribe.
type Subscription struct {
	eventType Type
	id        uint64
}

type entry struct {
	id      uint64
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Type][]entry // Map event types to handlers in subscription order
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]entry),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], entry{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Handler %d subscribed to type %v", m.nextID, eventType)
	return Subscription{eventType: eventType, id: m.nextID}
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored.
func (m *Manager) Unsubscribe(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.handlers[sub.eventType]
	for i, e := range list {
		if e.id == sub.id {
			// Copy so an in-flight Dispatch keeps its snapshot intact.
			next := make([]entry, 0, len(list)-1)
			next = append(next, list[:i]...)
			m.handlers[sub.eventType] = append(next, list[i+1:]...)
			return
		}
	}
}

// Dispatch sends an event to the registered handlers for its type, synchronously
// and in subscription order. It reports whether a handler consumed the event.
func (m *Manager) Dispatch(eventType Type, data interface{}) bool {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return false
	}

	logger.DebugTagf("event", "Dispatching event type %v to %d handler(s)", eventType, len(handlers))

	// Handlers may subscribe or unsubscribe while we iterate; both replace the
	// slice rather than mutating it, so this snapshot stays valid.
	for _, e := range handlers {
		if e.handler(event) {
			return true
		}
	}
	return false
}
