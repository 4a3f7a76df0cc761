package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var calls []string
	m.Subscribe(TypeCursorMoved, func(Event) bool { calls = append(calls, "first"); return false })
	m.Subscribe(TypeCursorMoved, func(Event) bool { calls = append(calls, "second"); return true })
	m.Subscribe(TypeCursorMoved, func(Event) bool { calls = append(calls, "third"); return false })

	assert.True(t, m.Dispatch(TypeCursorMoved, CursorMovedData{}))
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.False(t, m.Dispatch(TypeBufferSaved, BufferSavedData{}))
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	count := 0
	sub := m.Subscribe(TypeBufferLoaded, func(Event) bool { count++; return false })
	m.Dispatch(TypeBufferLoaded, nil)
	m.Unsubscribe(sub)
	m.Unsubscribe(sub)
	m.Dispatch(TypeBufferLoaded, nil)
	assert.Equal(t, 1, count)
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	var sub Subscription
	later := 0
	sub = m.Subscribe(TypeDragEnded, func(Event) bool { m.Unsubscribe(sub); return false })
	m.Subscribe(TypeDragEnded, func(Event) bool { later++; return false })

	m.Dispatch(TypeDragEnded, DragData{})
	m.Dispatch(TypeDragEnded, DragData{})
	assert.Equal(t, 2, later)
}
