package state

// History is the ordered log of every recorded StrokeUpdate together with
// the undo and redo stacks of stroke ids.
//
// History is not safe for concurrent use; the board serializes access.
type History struct {
	entries []StrokeUpdate
	undo    []string
	redo    []string
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Record appends u to the log. A visible Stop completes its stroke and pushes
// the stroke id onto the undo stack.
func (h *History) Record(u StrokeUpdate) {
	h.entries = append(h.entries, u)
	if u.Type == Stop && u.Visible {
		h.undo = append(h.undo, u.ID)
	}
}

// Undo moves the most recent stroke from the undo stack to the redo stack and
// hides all of its entries. It reports false when there is nothing to undo.
func (h *History) Undo() (string, bool) {
	id, ok := pop(&h.undo)
	if !ok {
		return "", false
	}
	h.redo = append(h.redo, id)
	h.setVisible(id, false)
	return id, true
}

// Redo reverses the most recent Undo.
func (h *History) Redo() (string, bool) {
	id, ok := pop(&h.redo)
	if !ok {
		return "", false
	}
	h.undo = append(h.undo, id)
	h.setVisible(id, true)
	return id, true
}

// Rewind empties the log and the undo stack and returns the previous
// entries so they can be replayed through Record. The redo stack is kept.
func (h *History) Rewind() []StrokeUpdate {
	entries := h.entries
	h.entries = nil
	h.undo = nil
	return entries
}

// Reset discards the log and both stacks.
func (h *History) Reset() {
	h.entries = nil
	h.undo = nil
	h.redo = nil
}

// Entries returns a copy of the log in recording order.
func (h *History) Entries() []StrokeUpdate {
	out := make([]StrokeUpdate, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded updates.
func (h *History) Len() int { return len(h.entries) }

// UndoStack returns a copy of the undo stack, bottom first.
func (h *History) UndoStack() []string { return append([]string(nil), h.undo...) }

// RedoStack returns a copy of the redo stack, bottom first.
func (h *History) RedoStack() []string { return append([]string(nil), h.redo...) }

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) setVisible(id string, visible bool) {
	for i := range h.entries {
		if h.entries[i].ID == id {
			h.entries[i].Visible = visible
		}
	}
}

func pop(stack *[]string) (string, bool) {
	s := *stack
	if len(s) == 0 {
		return "", false
	}
	id := s[len(s)-1]
	*stack = s[:len(s)-1]
	return id, true
}
