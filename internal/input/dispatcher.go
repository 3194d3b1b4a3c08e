package input

import "sync"

// Dispatcher is an EventSource that fans events out to its subscribers.
// Hosts embed it and call the Dispatch methods from their native handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]Handler
}

var _ EventSource = (*Dispatcher)(nil)

// Subscribe registers h until the returned function is called.
func (d *Dispatcher) Subscribe(h Handler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.handlers == nil {
		d.handlers = make(map[int]Handler)
	}
	id := d.next
	d.next++
	d.handlers[id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.handlers, id)
			d.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered handlers.
func (d *Dispatcher) Subscribers() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers)
}

func (d *Dispatcher) snapshot() []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	hs := make([]Handler, 0, len(d.handlers))
	for i := 0; i < d.next; i++ {
		if h, ok := d.handlers[i]; ok {
			hs = append(hs, h)
		}
	}
	return hs
}

// DispatchPointer delivers ev to every subscriber.
func (d *Dispatcher) DispatchPointer(ev PointerEvent) {
	for _, h := range d.snapshot() {
		h.HandlePointer(ev)
	}
}

// DispatchKey delivers ev and reports whether any subscriber consumed it.
func (d *Dispatcher) DispatchKey(ev KeyEvent) bool {
	consumed := false
	for _, h := range d.snapshot() {
		if h.HandleKey(ev) {
			consumed = true
		}
	}
	return consumed
}

// DispatchResize delivers a new surface size.
func (d *Dispatcher) DispatchResize(width, height int) {
	for _, h := range d.snapshot() {
		h.HandleResize(width, height)
	}
}
