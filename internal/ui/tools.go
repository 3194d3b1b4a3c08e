package ui

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"

	"CanvasBoard/internal/board"
	"CanvasBoard/internal/export"
	"CanvasBoard/internal/logx"
)

// Palette is the set of swatches offered by the toolbar.
var Palette = []color.Color{
	color.NRGBA{R: 216, G: 184, A: 255},
	color.Black,
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 160, A: 255},
	color.NRGBA{B: 255, A: 255},
	color.White,
}

// ColorString formats c the way stroke updates carry colors.
func ColorString(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the board controls. Buttons for disabled operations are
// left out.
func NewToolbar(w *BoardWidget) fyne.CanvasObject {
	b := w.Board()
	cfg := b.Config()

	var actions []widget.ToolbarItem
	if cfg.DrawEnabled {
		actions = append(actions, widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			b.ToggleDrawMode()
			if b.DrawMode() {
				w.SetStatus("Drawing")
			} else {
				w.SetStatus("Drawing off")
			}
		}))
	}
	if cfg.ClearEnabled {
		actions = append(actions, widget.NewToolbarAction(theme.DeleteIcon(), func() { b.Clear(true) }))
	}
	if cfg.UndoEnabled {
		actions = append(actions, widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			if !b.CanUndo() {
				w.SetStatus("Nothing to undo")
				return
			}
			b.Undo(true)
		}))
	}
	if cfg.RedoEnabled {
		actions = append(actions, widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
			if !b.CanRedo() {
				w.SetStatus("Nothing to redo")
				return
			}
			b.Redo(true)
		}))
	}
	if cfg.SaveEnabled {
		actions = append(actions,
			widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
				path, err := b.Save()
				if err != nil {
					w.SetStatus("Save failed: " + err.Error())
					return
				}
				w.SetStatus("Saved " + path)
			}),
			widget.NewToolbarAction(theme.FileIcon(), func() { exportPDF(w, cfg.SaveDir) }),
		)
	}
	tb := widget.NewToolbar(actions...)

	swatches := make([]fyne.CanvasObject, 0, len(Palette))
	for _, c := range Palette {
		swatches = append(swatches, newColorSwatch(c, func(c color.Color) {
			b.ChangeColor(ColorString(c))
		}))
	}

	return container.NewHBox(
		widget.NewLabel("Tools:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		container.NewHBox(swatches...),
		layout.NewSpacer(),
	)
}

func exportPDF(w *BoardWidget, dir string) {
	path := filepath.Join(dir, board.SaveName(time.Now(), export.MimePDF))
	w.Board().ExportBlob(export.MimePDF, 0, func(data []byte, err error) {
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		if err != nil {
			logx.For("ui").Error("pdf export failed", "err", err)
			w.SetStatus(fmt.Sprintf("Export failed: %v", err))
			return
		}
		w.SetStatus("Exported " + path)
	})
}
