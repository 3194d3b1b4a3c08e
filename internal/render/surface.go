// Package render draws stroke updates onto a raster surface.
package render

import (
	"image"
	"image/color"
)

// LineJoin is the shape used where two stroked segments meet.
type LineJoin int

const (
	JoinRound LineJoin = iota
	JoinBevel
)

// Rect is a floating point rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Surface is the 2D raster target strokes are drawn on. It mirrors the
// subset of an HTML canvas context the whiteboard relies on.
type Surface interface {
	Width() int
	Height() int
	// Resize discards the contents and reallocates the surface.
	Resize(width, height int)
	ResetTransform()
	ClearRect(r Rect)
	SetLineWidth(w float64)
	SetLineJoin(j LineJoin)
	SetStrokeColor(c color.Color)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Stroke paints the current path and starts a new one.
	Stroke()
	// DrawImage scales the src region of img into dst.
	DrawImage(img image.Image, src, dst Rect)
	// Image returns a copy of the current pixels.
	Image() image.Image
	// Export encodes the surface. A zero-sized surface yields an empty slice.
	Export(mimeType string, quality float64) ([]byte, error)
}
