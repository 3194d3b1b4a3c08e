package input

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CanvasBoard/internal/state"
)

func counterIDs() state.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("stroke-%d", n)
	}
}

func TestStrokeShape(t *testing.T) {
	for _, moves := range []int{0, 1, 5, 40} {
		t.Run(fmt.Sprint(moves), func(t *testing.T) {
			r := NewRouter(counterIDs())
			var got []state.StrokeUpdate
			feed := func(ev PointerEvent) {
				if u, ok := r.Pointer(ev, "red"); ok {
					got = append(got, u)
				}
			}
			feed(PointerEvent{Kind: PointerDown, X: 1, Y: 1})
			for i := 0; i < moves; i++ {
				feed(PointerEvent{Kind: PointerMove, X: float64(i + 2), Y: 3})
			}
			feed(PointerEvent{Kind: PointerUp, X: -999, Y: -999})

			require.Len(t, got, moves+2)
			assert.Equal(t, state.Start, got[0].Type)
			for _, u := range got[1 : len(got)-1] {
				assert.Equal(t, state.Drag, u.Type)
			}
			stop := got[len(got)-1]
			assert.Equal(t, state.Stop, stop.Type)
			prev := got[len(got)-2]
			assert.Equal(t, prev.X, stop.X, "stop reuses last drawn position")
			assert.Equal(t, prev.Y, stop.Y)
			for _, u := range got {
				assert.Equal(t, "stroke-1", u.ID)
				assert.Equal(t, "red", u.Color)
				assert.True(t, u.Visible)
			}
			assert.False(t, r.Dragging())
		})
	}
}

func TestIgnoredEvents(t *testing.T) {
	r := NewRouter(counterIDs())
	for _, k := range []PointerKind{PointerMove, PointerUp, PointerCancel, PointerLeave} {
		_, ok := r.Pointer(PointerEvent{Kind: k}, "")
		assert.False(t, ok, "idle %s", k)
	}

	_, ok := r.Pointer(PointerEvent{Kind: PointerDown, X: 5, Y: 5}, "")
	require.True(t, ok)
	_, ok = r.Pointer(PointerEvent{Kind: PointerDown, X: 9, Y: 9}, "")
	assert.False(t, ok, "down while dragging")

	u, ok := r.Pointer(PointerEvent{Kind: PointerLeave}, "")
	require.True(t, ok)
	assert.Equal(t, state.Stop, u.Type)
	assert.Equal(t, 5.0, u.X)
}

func TestNewIDPerStroke(t *testing.T) {
	r := NewRouter(counterIDs())
	a, _ := r.Pointer(PointerEvent{Kind: PointerDown}, "")
	r.Pointer(PointerEvent{Kind: PointerCancel}, "")
	b, _ := r.Pointer(PointerEvent{Kind: PointerDown}, "")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestResetAbandonsStroke(t *testing.T) {
	r := NewRouter(nil)
	r.Pointer(PointerEvent{Kind: PointerDown}, "")
	r.Reset()
	_, ok := r.Pointer(PointerEvent{Kind: PointerMove}, "")
	assert.False(t, ok)
}

func TestKeyChords(t *testing.T) {
	tests := []struct {
		ev       KeyEvent
		action   Action
		consumed bool
	}{
		{KeyEvent{Key: "z", Ctrl: true}, ActionUndo, true},
		{KeyEvent{Key: "Z", Meta: true}, ActionUndo, true},
		{KeyEvent{Key: "y", Ctrl: true}, ActionRedo, true},
		{KeyEvent{Key: "S", Ctrl: true}, ActionSave, true},
		{KeyEvent{Key: "z"}, ActionNone, false},
		{KeyEvent{Key: "q", Ctrl: true}, ActionNone, false},
	}
	for _, tt := range tests {
		a, consumed := Key(tt.ev)
		assert.Equal(t, tt.action, a, "%+v", tt.ev)
		assert.Equal(t, tt.consumed, consumed, "%+v", tt.ev)
	}
}
