package render

import (
	"image/color"

	"CanvasBoard/internal/logx"
	"CanvasBoard/internal/state"
)

// DefaultLineWidth is the stroke width of freehand segments.
const DefaultLineWidth = 2.0

// Renderer replays stroke updates onto a Surface. It owns the "last point"
// cursor that Drag segments start from, and the buffer of remote updates
// received while the surface is not ready.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	surface      Surface
	defaultColor color.Color
	lineWidth    float64
	colors       palette

	last    state.Point
	pending []state.StrokeUpdate
}

// NewRenderer returns a renderer drawing on s. defaultColor is used for
// updates whose color is empty or unparseable; lineWidth <= 0 uses
// DefaultLineWidth.
func NewRenderer(s Surface, defaultColor string, lineWidth float64) *Renderer {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	r := &Renderer{
		surface:   s,
		lineWidth: lineWidth,
		colors:    make(palette),
	}
	r.SetDefaultColor(defaultColor)
	return r
}

// SetDefaultColor changes the fallback stroke color.
func (r *Renderer) SetDefaultColor(s string) {
	c, ok := r.colors.lookup(s)
	if !ok {
		c, _ = r.colors.lookup(DefaultStrokeColor)
	}
	r.defaultColor = c
}

// Last returns the cursor position in pixels.
func (r *Renderer) Last() state.Point { return r.last }

// Draw renders u. When fractions is set, X and Y are surface fractions and
// are mapped to pixels using the current surface size. Drag updates draw a
// segment from the cursor, transparent when the update is hidden. The cursor
// always moves to the update's position.
func (r *Renderer) Draw(u state.StrokeUpdate, fractions bool) {
	x, y := u.X, u.Y
	if fractions {
		x, y = state.ToPixels(u.X, u.Y, float64(r.surface.Width()), float64(r.surface.Height()))
	}
	if u.Type == state.Drag {
		r.segment(r.last.X, r.last.Y, x, y, r.strokeColor(u))
	}
	r.last = state.Point{X: x, Y: y}
}

func (r *Renderer) strokeColor(u state.StrokeUpdate) color.Color {
	if !u.Visible {
		return color.Transparent
	}
	if u.Color != "" {
		if c, ok := r.colors.lookup(u.Color); ok {
			return c
		}
		logx.For("render").Debug("unparseable stroke color, using default", "color", u.Color)
	}
	return r.defaultColor
}

func (r *Renderer) segment(x0, y0, x1, y1 float64, c color.Color) {
	s := r.surface
	s.SetLineWidth(r.lineWidth)
	s.SetLineJoin(JoinRound)
	s.SetStrokeColor(c)
	s.MoveTo(x0, y0)
	s.LineTo(x1, y1)
	s.Stroke()
}

// ClearSurface resets the transform and wipes every pixel.
func (r *Renderer) ClearSurface() {
	r.surface.ResetTransform()
	r.surface.ClearRect(Rect{W: float64(r.surface.Width()), H: float64(r.surface.Height())})
}

// Defer queues updates that arrived while the surface was not ready.
func (r *Renderer) Defer(updates []state.StrokeUpdate) {
	r.pending = append(r.pending, updates...)
}

// TakePending returns and clears the deferred updates, oldest first.
func (r *Renderer) TakePending() []state.StrokeUpdate {
	p := r.pending
	r.pending = nil
	return p
}

// DiscardPending drops the deferred updates and reports how many there were.
func (r *Renderer) DiscardPending() int {
	n := len(r.pending)
	r.pending = nil
	return n
}

// PendingLen returns the number of deferred updates.
func (r *Renderer) PendingLen() int { return len(r.pending) }
