package board

import (
	"CanvasBoard/internal/input"
	"CanvasBoard/internal/state"
)

// HandlePointer feeds a pointer event through the stroke state machine.
// Events are ignored unless draw mode is on and no underlay is loading. Each
// resulting update is drawn in pixels, then recorded and queued for the next
// batch as fractions.
func (b *Board) HandlePointer(ev input.PointerEvent) {
	b.mu.Lock()
	if b.closed || !b.cfg.DrawEnabled || !b.drawMode || !b.ready {
		b.mu.Unlock()
		return
	}
	u, ok := b.router.Pointer(ev, b.color)
	if !ok {
		b.mu.Unlock()
		return
	}
	if u.Type == state.Stop {
		// The router's position predates any resize since the last move;
		// the render cursor was rescaled by the replay.
		last := b.renderer.Last()
		u.X, u.Y = last.X, last.Y
	}
	b.renderer.Draw(u, false)
	n := state.Normalize(u, float64(b.surface.Width()), float64(b.surface.Height()))
	b.history.Record(n)
	b.batcher.Enqueue(n)
	b.mu.Unlock()
	b.changed()
}

// HandleKey runs the undo, redo and save chords. Chords are reported as
// consumed even when the matching action is disabled. Keyboard undo and redo
// do not fire OnUndo or OnRedo.
func (b *Board) HandleKey(ev input.KeyEvent) bool {
	action, consumed := input.Key(ev)
	switch action {
	case input.ActionUndo:
		b.Undo(false)
	case input.ActionRedo:
		b.Redo(false)
	case input.ActionSave:
		if _, err := b.Save(); err != nil {
			b.log.Error("save failed", "err", err)
		}
	}
	return consumed
}

// HandleResize follows the host surface size.
func (b *Board) HandleResize(width, height int) {
	b.Resize(width, height)
}
