package state

import (
	"fmt"
)

// UpdateType is the phase of a stroke a StrokeUpdate belongs to.
type UpdateType int

const (
	Start UpdateType = iota
	Drag
	Stop
)

var updateTypeNames = [...]string{
	Start: "start",
	Drag:  "drag",
	Stop:  "stop",
}

func (t UpdateType) String() string {
	if t < 0 || int(t) >= len(updateTypeNames) {
		return fmt.Sprintf("UpdateType(%d)", int(t))
	}
	return updateTypeNames[t]
}

// MarshalText encodes the type as "start", "drag" or "stop".
func (t UpdateType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(updateTypeNames) {
		return nil, fmt.Errorf("unknown update type %d", int(t))
	}
	return []byte(updateTypeNames[t]), nil
}

// UnmarshalText decodes the wire names produced by MarshalText.
func (t *UpdateType) UnmarshalText(b []byte) error {
	for i, name := range updateTypeNames {
		if string(b) == name {
			*t = UpdateType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown update type %q", string(b))
}

// StrokeUpdate is one point event of a stroke. X and Y are pixels while the
// update is being drawn locally and surface fractions once it is queued,
// recorded or received.
type StrokeUpdate struct {
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Type    UpdateType `json:"type"`
	Color   string     `json:"color"`
	ID      string     `json:"id"`
	Visible bool       `json:"visible"`
}

// Point is a position on the surface.
type Point struct{ X, Y float64 }
