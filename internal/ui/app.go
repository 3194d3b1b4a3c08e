package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RunApp opens the whiteboard window and blocks until it is closed. A non
// empty shareLink is shown so peers can join.
func RunApp(shareLink string, w *BoardWidget) {
	myApp := app.New()
	myWindow := myApp.NewWindow("CanvasBoard")
	cfg := w.Board().Config()
	myWindow.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)+80))

	w.InstallShortcuts(myWindow.Canvas())

	footer := container.NewHBox(w.StatusBar())
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		link.Disable()
		footer = container.NewBorder(nil, nil, widget.NewLabel("Share:"), w.StatusBar(), link)
	}

	content := container.NewBorder(NewToolbar(w), footer, nil, nil, w)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
