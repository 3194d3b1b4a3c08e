package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// MIME types understood by Export.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
)

// GGSurface is a Surface backed by a fogleman/gg context.
type GGSurface struct {
	dc *gg.Context
}

var _ Surface = (*GGSurface)(nil)

// NewGGSurface allocates a transparent surface of the given size.
func NewGGSurface(width, height int) *GGSurface {
	return &GGSurface{dc: newContext(width, height)}
}

func newContext(width, height int) *gg.Context {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	dc := gg.NewContext(width, height)
	dc.SetLineCap(gg.LineCapRound)
	return dc
}

func (s *GGSurface) Width() int  { return s.dc.Width() }
func (s *GGSurface) Height() int { return s.dc.Height() }

func (s *GGSurface) Resize(width, height int) {
	s.dc = newContext(width, height)
}

func (s *GGSurface) ResetTransform() { s.dc.Identity() }

func (s *GGSurface) ClearRect(r Rect) {
	dst, ok := s.dc.Image().(draw.Image)
	if !ok {
		return
	}
	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
	draw.Draw(dst, rect, image.Transparent, image.Point{}, draw.Src)
}

func (s *GGSurface) SetLineWidth(w float64) { s.dc.SetLineWidth(w) }

func (s *GGSurface) SetLineJoin(j LineJoin) {
	switch j {
	case JoinBevel:
		s.dc.SetLineJoin(gg.LineJoinBevel)
	default:
		s.dc.SetLineJoin(gg.LineJoinRound)
	}
}

func (s *GGSurface) SetStrokeColor(c color.Color) { s.dc.SetColor(c) }
func (s *GGSurface) MoveTo(x, y float64)          { s.dc.MoveTo(x, y) }
func (s *GGSurface) LineTo(x, y float64)          { s.dc.LineTo(x, y) }
func (s *GGSurface) Stroke()                      { s.dc.Stroke() }

func (s *GGSurface) DrawImage(img image.Image, src, dst Rect) {
	target, ok := s.dc.Image().(draw.Image)
	if !ok || img == nil {
		return
	}
	b := img.Bounds()
	sr := image.Rect(
		b.Min.X+int(src.X), b.Min.Y+int(src.Y),
		b.Min.X+int(src.X+src.W), b.Min.Y+int(src.Y+src.H),
	).Intersect(b)
	dr := image.Rect(int(dst.X), int(dst.Y), int(dst.X+dst.W), int(dst.Y+dst.H))
	if sr.Empty() || dr.Empty() {
		return
	}
	xdraw.CatmullRom.Scale(target, dr, img, sr, xdraw.Over, nil)
}

func (s *GGSurface) Image() image.Image {
	src := s.dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}

// Export encodes the surface as PNG or JPEG. Unknown MIME types fall back to
// PNG. For JPEG, quality in (0,1] maps to 1..100; anything else uses the
// encoder default.
func (s *GGSurface) Export(mimeType string, quality float64) ([]byte, error) {
	if s.Width() == 0 || s.Height() == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	switch mimeType {
	case MimeJPEG:
		opts := &jpeg.Options{Quality: jpeg.DefaultQuality}
		if quality > 0 && quality <= 1 {
			opts.Quality = max(1, int(quality*100+0.5))
		}
		if err := jpeg.Encode(&buf, flatten(s.dc.Image()), opts); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := s.dc.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// flatten composites img over white, since JPEG has no alpha channel.
func flatten(img image.Image) image.Image {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
