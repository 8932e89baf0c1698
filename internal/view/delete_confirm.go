package view

import (
	"sync"
	"time"
)

// DefaultConfirmWindow is how long a first delete press stays armed.
const DefaultConfirmWindow = 3 * time.Second

// DeleteConfirm implements the two-step delete gesture: the first press
// arms a per-id window, a second press inside it confirms, and the window
// self-clears when it expires. Arming one id never disturbs another.
type DeleteConfirm struct {
	mu     sync.Mutex
	window time.Duration
	armed  map[string]*time.Timer
}

func NewDeleteConfirm(window time.Duration) *DeleteConfirm {
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	return &DeleteConfirm{
		window: window,
		armed:  make(map[string]*time.Timer),
	}
}

// Press registers one activation for the id and reports whether it
// confirmed a pending window. A first press arms and returns false; a press
// while armed disarms and returns true.
func (c *DeleteConfirm) Press(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.armed[id]; ok {
		timer.Stop()
		delete(c.armed, id)
		return true
	}
	c.armed[id] = time.AfterFunc(c.window, func() { c.expire(id) })
	return false
}

// Armed reports whether the id currently has a pending window.
func (c *DeleteConfirm) Armed(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.armed[id]
	return ok
}

// Disarm cancels a pending window, if any.
func (c *DeleteConfirm) Disarm(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timer, ok := c.armed[id]; ok {
		timer.Stop()
		delete(c.armed, id)
	}
}

func (c *DeleteConfirm) expire(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.armed, id)
}
