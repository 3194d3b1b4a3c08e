// Package rendertest provides a Surface that records draw calls.
package rendertest

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"CanvasBoard/internal/render"
)

// Segment is one stroked line.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Color          color.Color
	Width          float64
}

// Visible reports whether the segment was painted with a non-transparent color.
func (s Segment) Visible() bool {
	if s.Color == nil {
		return false
	}
	_, _, _, a := s.Color.RGBA()
	return a != 0
}

// ImageDraw is one DrawImage call.
type ImageDraw struct {
	Image    image.Image
	Src, Dst render.Rect
}

// Recorder is an in-memory render.Surface for tests.
type Recorder struct {
	mu sync.Mutex

	W, H     int
	Segments []Segment
	Images   []ImageDraw
	Clears   int
	Ops      []string

	width  float64
	join   render.LineJoin
	color  color.Color
	cx, cy float64
	path   [][4]float64
}

var _ render.Surface = (*Recorder)(nil)

// NewRecorder returns a recorder of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) op(format string, args ...any) {
	r.Ops = append(r.Ops, fmt.Sprintf(format, args...))
}

func (r *Recorder) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.W
}

func (r *Recorder) Height() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.H
}

func (r *Recorder) Resize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.W, r.H = w, h
	r.op("resize %dx%d", w, h)
}

func (r *Recorder) ResetTransform() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.op("identity")
}

// ClearRect forgets everything painted so far, so Segments and Images only
// describe what is currently visible after a full clear.
func (r *Recorder) ClearRect(rect render.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Clears++
	r.Segments = nil
	r.Images = nil
	r.op("clear")
}

func (r *Recorder) SetLineWidth(w float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = w
}

func (r *Recorder) SetLineJoin(j render.LineJoin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.join = j
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.color = c
}

func (r *Recorder) MoveTo(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cx, r.cy = x, y
}

func (r *Recorder) LineTo(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = append(r.path, [4]float64{r.cx, r.cy, x, y})
	r.cx, r.cy = x, y
}

func (r *Recorder) Stroke() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.path {
		r.Segments = append(r.Segments, Segment{X0: p[0], Y0: p[1], X1: p[2], Y1: p[3], Color: r.color, Width: r.width})
	}
	r.path = nil
	r.op("stroke")
}

func (r *Recorder) DrawImage(img image.Image, src, dst render.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Images = append(r.Images, ImageDraw{Image: img, Src: src, Dst: dst})
	r.op("image")
}

func (r *Recorder) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return image.NewRGBA(image.Rect(0, 0, r.W, r.H))
}

func (r *Recorder) Export(mimeType string, quality float64) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.W == 0 || r.H == 0 {
		return []byte{}, nil
	}
	return []byte(fmt.Sprintf("%s %dx%d", mimeType, r.W, r.H)), nil
}

// VisibleSegments returns the segments painted with a visible color.
func (r *Recorder) VisibleSegments() []Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Segment
	for _, s := range r.Segments {
		if s.Visible() {
			out = append(out, s)
		}
	}
	return out
}
