package ui

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"CanvasBoard/internal/board"
	"CanvasBoard/internal/input"
)

// BoardWidget shows a board and feeds it pointer, resize and shortcut
// events. It is the board's input.EventSource.
type BoardWidget struct {
	widget.BaseWidget
	input.Dispatcher

	mu        sync.RWMutex
	board     *board.Board
	raster    *canvas.Raster
	statusBar *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ input.EventSource = (*BoardWidget)(nil)

// NewBoardWidget creates an empty widget. Pass it to board.WithEventSource,
// then hand the board to SetBoard.
func NewBoardWidget() *BoardWidget {
	w := &BoardWidget{statusBar: widget.NewLabel("Ready")}
	w.raster = canvas.NewRaster(w.rasterImage)
	w.raster.ScaleMode = canvas.ImageScaleSmooth
	w.ExtendBaseWidget(w)
	return w
}

// SetBoard selects the board to display.
func (w *BoardWidget) SetBoard(b *board.Board) {
	w.mu.Lock()
	w.board = b
	w.mu.Unlock()
	w.Redraw()
}

// Board returns the displayed board.
func (w *BoardWidget) Board() *board.Board {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.board
}

func (w *BoardWidget) rasterImage(int, int) image.Image {
	if b := w.Board(); b != nil {
		return b.Snapshot()
	}
	return image.NewUniform(color.Transparent)
}

// Redraw repaints from any goroutine.
func (w *BoardWidget) Redraw() {
	fyne.Do(func() {
		w.raster.Resize(w.surfaceSize(w.Size()))
		w.raster.Refresh()
	})
}

// surfaceSize is the board surface in widget units. The raster is drawn at
// this size from the top left corner, so widget and surface coordinates
// agree; with an aspect ratio the surface can be shorter than the widget.
func (w *BoardWidget) surfaceSize(fallback fyne.Size) fyne.Size {
	b := w.Board()
	if b == nil {
		return fallback
	}
	width, height := b.Size()
	return fyne.NewSize(float32(width), float32(height))
}

func (w *BoardWidget) onSurface(pos fyne.Position) bool {
	s := w.surfaceSize(fyne.Size{})
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= s.Width && pos.Y <= s.Height
}

// SetStatus updates the status line from any goroutine.
func (w *BoardWidget) SetStatus(text string) {
	fyne.Do(func() { w.statusBar.SetText(text) })
}

// StatusBar is the label SetStatus writes to.
func (w *BoardWidget) StatusBar() *widget.Label { return w.statusBar }

// Resize also resizes the board surface.
func (w *BoardWidget) Resize(size fyne.Size) {
	w.DispatchResize(int(size.Width), int(size.Height))
	w.BaseWidget.Resize(size)
}

// pointer forwards an event in surface pixels. Presses off the surface are
// ignored and moves off it end the stroke, as leaving the surface does.
func (w *BoardWidget) pointer(kind input.PointerKind, pos fyne.Position) {
	if !w.onSurface(pos) {
		switch kind {
		case input.PointerDown:
			return
		case input.PointerMove:
			kind = input.PointerLeave
		}
	}
	w.DispatchPointer(input.PointerEvent{Kind: kind, X: float64(pos.X), Y: float64(pos.Y)})
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.pointer(input.PointerDown, e.Position)
	}
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.pointer(input.PointerUp, e.Position)
	}
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	w.pointer(input.PointerMove, e.Position)
}

func (w *BoardWidget) DragEnd() {
	w.DispatchPointer(input.PointerEvent{Kind: input.PointerUp})
}

func (w *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (w *BoardWidget) MouseOut() {
	w.DispatchPointer(input.PointerEvent{Kind: input.PointerLeave})
}

// InstallShortcuts binds Ctrl/Cmd+Z, Y and S on c to the board.
func (w *BoardWidget) InstallShortcuts(c fyne.Canvas) {
	for key, name := range map[string]fyne.KeyName{"z": fyne.KeyZ, "y": fyne.KeyY, "s": fyne.KeyS} {
		sc := &desktop.CustomShortcut{KeyName: name, Modifier: fyne.KeyModifierShortcutDefault}
		c.AddShortcut(sc, func(fyne.Shortcut) {
			w.DispatchKey(keyEvent(key, sc.Modifier))
		})
	}
}

func keyEvent(key string, mod fyne.KeyModifier) input.KeyEvent {
	return input.KeyEvent{
		Key:  key,
		Ctrl: mod&fyne.KeyModifierControl != 0,
		Meta: mod&fyne.KeyModifierSuper != 0,
	}
}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.White)
	return &boardWidgetRenderer{
		board:      w,
		background: background,
		objects:    []fyne.CanvasObject{background, w.raster},
	}
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardWidgetRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.raster.Resize(r.board.surfaceSize(size))
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
