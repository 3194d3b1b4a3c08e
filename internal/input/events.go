// Package input turns pointer and keyboard events into stroke updates and
// editing actions.
package input

// PointerKind is the kind of a pointer or touch event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	case PointerLeave:
		return "leave"
	}
	return "unknown"
}

// PointerEvent is a pointer or touch event in surface pixel coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// KeyEvent is a key press with modifier state. Key is the pressed key as
// typed, e.g. "z" or "Z".
type KeyEvent struct {
	Key  string
	Ctrl bool
	Meta bool
}

// Handler receives events from an EventSource.
type Handler interface {
	HandlePointer(ev PointerEvent)
	// HandleKey reports whether the event was consumed and the host default
	// action should be suppressed.
	HandleKey(ev KeyEvent) bool
	HandleResize(width, height int)
}

// EventSource delivers host events to subscribed handlers. The returned
// function removes the subscription; it is safe to call more than once.
type EventSource interface {
	Subscribe(h Handler) (unsubscribe func())
}
