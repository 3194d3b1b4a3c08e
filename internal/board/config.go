package board

import (
	"time"

	"CanvasBoard/internal/render"
	"CanvasBoard/internal/state"
)

// Config holds the host-facing settings of a Board.
type Config struct {
	// Width and Height are the initial surface size in pixels.
	Width, Height int
	// AspectRatio, when positive, forces height = width * AspectRatio.
	AspectRatio float64

	BatchFlushDelay time.Duration

	// ImageURL is the optional underlay, loaded at construction.
	ImageURL string
	// FocusX and FocusY choose which part of an overflowing underlay stays
	// visible, in [0,1].
	FocusX, FocusY float64

	StrokeColor string
	LineWidth   float64

	DrawEnabled  bool
	ClearEnabled bool
	UndoEnabled  bool
	RedoEnabled  bool
	SaveEnabled  bool

	// SaveDir is where Save writes snapshots; empty means the working
	// directory.
	SaveDir string
}

// DefaultConfig mirrors the defaults of the embeddable component: drawing and
// clearing are available, undo, redo and save must be switched on.
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		BatchFlushDelay: state.DefaultBatchDelay,
		FocusX:          0.5,
		FocusY:          0.5,
		StrokeColor:     render.DefaultStrokeColor,
		LineWidth:       render.DefaultLineWidth,
		DrawEnabled:     true,
		ClearEnabled:    true,
	}
}

func (c Config) surfaceSize(width, height int) (int, int) {
	if c.AspectRatio > 0 {
		height = int(float64(width)*c.AspectRatio + 0.5)
	}
	return max(width, 0), max(height, 0)
}

// Listener receives board events. Callbacks run without the board lock held
// and may call back into the board. Nil callbacks are skipped.
type Listener struct {
	OnClear       func()
	OnUndo        func(strokeID string)
	OnRedo        func(strokeID string)
	OnBatch       func(batch state.Batch)
	OnImageLoaded func(ok bool)
	OnSave        func(path string)
	// OnChange fires after the surface was repainted.
	OnChange func()
}
