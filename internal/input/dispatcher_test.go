package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	pointers []PointerEvent
	keys     []KeyEvent
	sizes    [][2]int
	consume  bool
}

func (h *recordingHandler) HandlePointer(ev PointerEvent) { h.pointers = append(h.pointers, ev) }
func (h *recordingHandler) HandleKey(ev KeyEvent) bool {
	h.keys = append(h.keys, ev)
	return h.consume
}
func (h *recordingHandler) HandleResize(w, hh int) { h.sizes = append(h.sizes, [2]int{w, hh}) }

func TestDispatcherFanOutAndUnsubscribe(t *testing.T) {
	var d Dispatcher
	a := &recordingHandler{}
	b := &recordingHandler{consume: true}
	unsubA := d.Subscribe(a)
	unsubB := d.Subscribe(b)
	assert.Equal(t, 2, d.Subscribers())

	d.DispatchPointer(PointerEvent{Kind: PointerDown, X: 1})
	assert.True(t, d.DispatchKey(KeyEvent{Key: "z", Ctrl: true}))
	d.DispatchResize(10, 20)
	assert.Len(t, a.pointers, 1)
	assert.Len(t, b.keys, 1)
	assert.Equal(t, [][2]int{{10, 20}}, a.sizes)

	unsubB()
	unsubB()
	assert.Equal(t, 1, d.Subscribers())
	assert.False(t, d.DispatchKey(KeyEvent{Key: "z", Ctrl: true}))

	unsubA()
	d.DispatchPointer(PointerEvent{Kind: PointerMove})
	assert.Len(t, a.pointers, 1)
	assert.Zero(t, d.Subscribers())
}
