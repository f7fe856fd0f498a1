package board

import (
	"sync"

	"studyglobe/internal/layout"
)

// Viewport is an observable viewport size.
type Viewport struct {
	mu   sync.Mutex
	size layout.Viewport
	subs map[uint64]func(layout.Viewport)
	next uint64
}

// NewViewport returns an observable starting at initial.
func NewViewport(initial layout.Viewport) *Viewport {
	return &Viewport{size: initial, subs: make(map[uint64]func(layout.Viewport))}
}

func (v *Viewport) Size() layout.Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

// Resize updates the size and notifies subscribers when it changed.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	next := layout.Viewport{Width: width, Height: height}
	if next == v.size {
		v.mu.Unlock()
		return
	}
	v.size = next
	subs := make([]func(layout.Viewport), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn for size changes and returns its cancel function.
func (v *Viewport) Subscribe(fn func(layout.Viewport)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.next
	v.next++
	v.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.subs, id)
		})
	}
}

// Subscribers is the number of active subscriptions.
func (v *Viewport) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}
