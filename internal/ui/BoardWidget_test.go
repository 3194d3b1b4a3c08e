package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CanvasBoard/internal/board"
	"CanvasBoard/internal/render/rendertest"
	"CanvasBoard/internal/state"
)

func newTestBoard(t *testing.T, opts ...func(*board.Config)) (*BoardWidget, *board.Board) {
	t.Helper()
	test.NewTempApp(t)

	w := NewBoardWidget()
	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = 200, 100
	cfg.UndoEnabled = true
	for _, opt := range opts {
		opt(&cfg)
	}
	b := board.New(cfg,
		board.WithSurface(rendertest.NewRecorder(200, 100)),
		board.WithEventSource(w),
		board.WithListener(board.Listener{OnChange: w.Redraw}),
	)
	t.Cleanup(b.Close)
	w.SetBoard(b)
	return w, b
}

func TestWidgetDrawsStroke(t *testing.T) {
	w, b := newTestBoard(t)
	b.ToggleDrawMode()

	w.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 50)}, Button: desktop.MouseButtonPrimary})
	w.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 50)}})
	w.DragEnd()
	w.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})

	h := b.History()
	require.Len(t, h, 3)
	assert.Equal(t, []state.UpdateType{state.Start, state.Drag, state.Stop}, []state.UpdateType{h[0].Type, h[1].Type, h[2].Type})
	assert.InDelta(t, 0.1, h[0].X, 1e-9)
	assert.InDelta(t, 0.5, h[1].X, 1e-9)
}

func TestWidgetMouseOutEndsStroke(t *testing.T) {
	w, b := newTestBoard(t)
	b.ToggleDrawMode()

	w.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 50)}, Button: desktop.MouseButtonPrimary})
	w.MouseOut()
	assert.Len(t, b.History(), 2)
	assert.Equal(t, state.Stop, b.History()[1].Type)
}

func TestWidgetResizeFollowsBoard(t *testing.T) {
	w, b := newTestBoard(t)
	w.Resize(fyne.NewSize(320, 240))
	width, height := b.Size()
	assert.Equal(t, 320, width)
	assert.Equal(t, 240, height)
}

func TestWidgetMapsPointerWithAspectRatio(t *testing.T) {
	w, b := newTestBoard(t, func(cfg *board.Config) { cfg.AspectRatio = 0.5 })
	b.ToggleDrawMode()

	w.Resize(fyne.NewSize(400, 400))
	width, height := b.Size()
	require.Equal(t, 400, width)
	require.Equal(t, 200, height)
	assert.Equal(t, fyne.NewSize(400, 200), w.raster.Size())

	press := func(x, y float32) {
		w.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: desktop.MouseButtonPrimary})
	}
	drag := func(x, y float32) {
		w.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}})
	}

	press(100, 300)
	assert.Empty(t, b.History(), "a press below the surface is ignored")

	press(100, 100)
	drag(200, 150)
	drag(200, 300)
	w.DragEnd()

	h := b.History()
	require.Len(t, h, 3)
	assert.Equal(t, []state.UpdateType{state.Start, state.Drag, state.Stop}, []state.UpdateType{h[0].Type, h[1].Type, h[2].Type})
	assert.InDelta(t, 0.25, h[0].X, 1e-9)
	assert.InDelta(t, 0.5, h[0].Y, 1e-9)
	assert.InDelta(t, 0.75, h[1].Y, 1e-9)
	for _, u := range h {
		assert.LessOrEqual(t, u.Y, 1.0)
	}
}

func TestKeyEventModifiers(t *testing.T) {
	ev := keyEvent("z", fyne.KeyModifierControl)
	assert.True(t, ev.Ctrl)
	assert.False(t, ev.Meta)
	ev = keyEvent("z", fyne.KeyModifierSuper)
	assert.True(t, ev.Meta)
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#ff0000", ColorString(color.NRGBA{R: 255, A: 255}))
	assert.Equal(t, "#d8b800", ColorString(Palette[0]))
}
