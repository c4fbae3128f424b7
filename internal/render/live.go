// Package render draws the board: a live layer of in-progress paths that a
// background loop composites on a fixed cadence, and the persisted layer of
// committed document elements.
package render

import (
	"sync"

	"InkBoard/internal/state"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// Shape is anything the live layer can draw.
type Shape interface {
	Path() *gg.Path
}

// Transient is one in-progress shape and the style to draw it with.
type Transient struct {
	Shape Shape
	Style state.Style
}

// LiveLayer is the set of transient shapes. Strategies add and remove
// entries from the input goroutine while the render loop reads them.
type LiveLayer struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Transient
}

func NewLiveLayer() *LiveLayer {
	return &LiveLayer{items: make(map[uuid.UUID]Transient)}
}

// Put adds or replaces the entry for id.
func (l *LiveLayer) Put(id uuid.UUID, shape Shape, style state.Style) {
	l.mu.Lock()
	l.items[id] = Transient{Shape: shape, Style: style}
	l.mu.Unlock()
}

func (l *LiveLayer) Remove(id uuid.UUID) {
	l.mu.Lock()
	delete(l.items, id)
	l.mu.Unlock()
}

// Clear drops every transient shape.
func (l *LiveLayer) Clear() {
	l.mu.Lock()
	clear(l.items)
	l.mu.Unlock()
}

func (l *LiveLayer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Get returns the entry for id.
func (l *LiveLayer) Get(id uuid.UUID) (Transient, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.items[id]
	return t, ok
}

// Snapshot copies the entries present right now. Order is unspecified.
func (l *LiveLayer) Snapshot() []Transient {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transient, 0, len(l.items))
	for _, t := range l.items {
		out = append(out, t)
	}
	return out
}
