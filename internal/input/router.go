package input

import (
	"strings"

	"CanvasBoard/internal/state"
)

// Action is an editing command produced by a key chord.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionSave
)

func (a Action) String() string {
	switch a {
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	case ActionSave:
		return "save"
	}
	return "none"
}

// Router is the Idle/Dragging state machine behind freehand drawing.
//
// Router is not safe for concurrent use.
type Router struct {
	newID    state.IDGenerator
	dragging bool
	strokeID string
	last     state.Point
}

// NewRouter returns an idle router. A nil generator uses state.NewStrokeID.
func NewRouter(newID state.IDGenerator) *Router {
	if newID == nil {
		newID = state.NewStrokeID
	}
	return &Router{newID: newID}
}

// Dragging reports whether a stroke is in progress.
func (r *Router) Dragging() bool { return r.dragging }

// Reset abandons any stroke in progress without emitting a Stop.
func (r *Router) Reset() {
	r.dragging = false
	r.strokeID = ""
}

// Pointer advances the state machine. It returns the update to draw, in
// pixel coordinates, and false when the event is ignored. Stop updates carry
// the last drawn position of the stroke since up, cancel and leave events
// have no reliable coordinates.
func (r *Router) Pointer(ev PointerEvent, color string) (state.StrokeUpdate, bool) {
	var typ state.UpdateType
	switch ev.Kind {
	case PointerDown:
		if r.dragging {
			return state.StrokeUpdate{}, false
		}
		r.dragging = true
		r.strokeID = r.newID()
		r.last = state.Point{X: ev.X, Y: ev.Y}
		typ = state.Start
	case PointerMove:
		if !r.dragging {
			return state.StrokeUpdate{}, false
		}
		r.last = state.Point{X: ev.X, Y: ev.Y}
		typ = state.Drag
	case PointerUp, PointerCancel, PointerLeave:
		if !r.dragging {
			return state.StrokeUpdate{}, false
		}
		r.dragging = false
		typ = state.Stop
	default:
		return state.StrokeUpdate{}, false
	}
	return state.StrokeUpdate{
		X:       r.last.X,
		Y:       r.last.Y,
		Type:    typ,
		Color:   color,
		ID:      r.strokeID,
		Visible: true,
	}, true
}

// Key maps Ctrl/Cmd+Z, Ctrl/Cmd+Y and Ctrl/Cmd+S to actions. consumed is
// true for every recognised chord, whether or not the action is enabled.
func Key(ev KeyEvent) (a Action, consumed bool) {
	if !ev.Ctrl && !ev.Meta {
		return ActionNone, false
	}
	switch strings.ToLower(ev.Key) {
	case "z":
		return ActionUndo, true
	case "y":
		return ActionRedo, true
	case "s":
		return ActionSave, true
	}
	return ActionNone, false
}
