// Package underlay manages the optional background image drawn beneath
// strokes.
package underlay

import (
	"image"

	"CanvasBoard/internal/render"
)

// Manager tracks the current underlay image and the load in flight. Each
// Begin starts a new generation; completions from older generations are
// stale and ignored.
//
// Manager is not safe for concurrent use; the board serializes access.
type Manager struct {
	focusX, focusY float64

	url     string
	img     image.Image
	gen     uint64
	loading bool
}

// NewManager returns a manager that crops overflowing images around the
// given focal point.
func NewManager(focusX, focusY float64) *Manager {
	return &Manager{focusX: clamp01(focusX), focusY: clamp01(focusY)}
}

// Begin records that url is being loaded and returns its generation. It
// reports whether a previous load was still in flight.
func (m *Manager) Begin(url string) (gen uint64, restarted bool) {
	restarted = m.loading
	m.gen++
	m.url = url
	m.img = nil
	m.loading = true
	return m.gen, restarted
}

// Complete stores img if gen is the current generation. It reports false
// for stale completions.
func (m *Manager) Complete(gen uint64, img image.Image) bool {
	if gen != m.gen || !m.loading {
		return false
	}
	m.img = img
	m.loading = false
	return true
}

// Fail ends the current load without an image. Stale generations are
// ignored.
func (m *Manager) Fail(gen uint64) bool {
	if gen != m.gen || !m.loading {
		return false
	}
	m.loading = false
	return true
}

// Remove forgets the underlay and invalidates any load in flight.
func (m *Manager) Remove() {
	m.gen++
	m.url = ""
	m.img = nil
	m.loading = false
}

// URL returns the url of the current underlay, loaded or not.
func (m *Manager) URL() string { return m.url }

// Image returns the loaded image, or nil.
func (m *Manager) Image() image.Image { return m.img }

// Draw paints the loaded image over the whole surface using the cover
// algorithm. It does nothing when no image is loaded.
func (m *Manager) Draw(s render.Surface) {
	if m.img == nil {
		return
	}
	b := m.img.Bounds()
	dst := render.Rect{W: float64(s.Width()), H: float64(s.Height())}
	src := CoverSource(float64(b.Dx()), float64(b.Dy()), dst, m.focusX, m.focusY)
	s.DrawImage(m.img, src, dst)
}
