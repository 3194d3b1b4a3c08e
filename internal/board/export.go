package board

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"CanvasBoard/internal/export"
	"CanvasBoard/internal/render"
)

// ExportImage encodes the current surface. mimeType is image/png,
// image/jpeg or application/pdf; anything else yields PNG. quality applies
// to JPEG only, in (0,1].
func (b *Board) ExportImage(mimeType string, quality float64) ([]byte, error) {
	b.mu.Lock()
	if mimeType != export.MimePDF {
		defer b.mu.Unlock()
		return b.surface.Export(mimeType, quality)
	}
	if b.surface.Width() == 0 || b.surface.Height() == 0 {
		b.mu.Unlock()
		return []byte{}, nil
	}
	img := b.surface.Image()
	b.mu.Unlock()
	return export.PDFBytes(img)
}

// ExportBlob is ExportImage on its own goroutine; cb receives the result.
func (b *Board) ExportBlob(mimeType string, quality float64, cb func([]byte, error)) {
	go func() {
		data, err := b.ExportImage(mimeType, quality)
		if cb != nil {
			cb(data, err)
		}
	}()
}

// Save writes a PNG snapshot named canvas_drawing_<unix ms>.png into the
// configured directory and returns its path. It returns "" and no error when
// saving is disabled.
func (b *Board) Save() (string, error) {
	b.mu.Lock()
	enabled, dir := b.cfg.SaveEnabled, b.cfg.SaveDir
	b.mu.Unlock()
	if !enabled {
		return "", nil
	}

	data, err := b.ExportImage(render.MimePNG, 0)
	if err != nil {
		return "", err
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("save drawing: %w", err)
		}
	}
	path := filepath.Join(dir, SaveName(time.Now(), render.MimePNG))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save drawing: %w", err)
	}

	b.log.Info("drawing saved", "path", path, "bytes", len(data))
	if f := b.listener.OnSave; f != nil {
		f(path)
	}
	return path, nil
}

// SaveName is the download file name for a snapshot taken at t.
func SaveName(t time.Time, mimeType string) string {
	ext := "png"
	switch mimeType {
	case render.MimeJPEG:
		ext = "jpeg"
	case export.MimePDF:
		ext = "pdf"
	}
	return fmt.Sprintf("canvas_drawing_%d.%s", t.UnixMilli(), ext)
}
