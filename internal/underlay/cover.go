package underlay

import (
	"math"

	"CanvasBoard/internal/render"
)

// CoverSource computes the region of an imageW x imageH picture that, scaled
// into dst, fills it completely while keeping the aspect ratio, like CSS
// "background-size: cover". focusX and focusY pick which part of the
// overflowing axis stays visible; they are clamped to [0,1], 0.5 centers.
func CoverSource(imageW, imageH float64, dst render.Rect, focusX, focusY float64) render.Rect {
	focusX = clamp01(focusX)
	focusY = clamp01(focusY)
	if imageW <= 0 || imageH <= 0 || dst.W <= 0 || dst.H <= 0 {
		return render.Rect{W: math.Max(imageW, 0), H: math.Max(imageH, 0)}
	}

	scale := math.Min(dst.W/imageW, dst.H/imageH)
	newW := imageW * scale
	newH := imageH * scale

	// Grow whichever side leaves a gap.
	ratio := 1.0
	if newW < dst.W {
		ratio = dst.W / newW
	}
	if math.Abs(ratio-1) < 1e-14 && newH < dst.H {
		ratio = dst.H / newH
	}
	newW *= ratio
	newH *= ratio

	src := render.Rect{
		W: imageW / (newW / dst.W),
		H: imageH / (newH / dst.H),
	}
	src.X = math.Max((imageW-src.W)*focusX, 0)
	src.Y = math.Max((imageH-src.H)*focusY, 0)
	src.W = math.Min(src.W, imageW)
	src.H = math.Min(src.H, imageH)
	return src
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0.5
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
