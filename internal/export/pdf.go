// Package export writes whiteboard snapshots to document formats.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// MimePDF is the MIME type handled by PDF.
const MimePDF = "application/pdf"

// PDF writes img as a single page document whose page size, in points,
// matches the image size in pixels.
func PDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	if width == 0 || height == 0 {
		return fmt.Errorf("export pdf: empty image")
	}

	var page bytes.Buffer
	if err := png.Encode(&page, img); err != nil {
		return fmt.Errorf("export pdf: encode page: %w", err)
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("CanvasBoard", true)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opts, &page)
	p.ImageOptions("board", 0, 0, width, height, false, opts, 0, "")
	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

// PDFBytes is PDF into a byte slice.
func PDFBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := PDF(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
