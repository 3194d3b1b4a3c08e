package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// DefaultStrokeColor is used when an update carries no usable color.
const DefaultStrokeColor = "rgb(216, 184, 0)"

// ParseColor understands the CSS forms a host is likely to send: "#rgb",
// "#rrggbb", "rgb(r, g, b)", "rgba(r, g, b, a)", "transparent" and the
// named colors.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return nil, fmt.Errorf("empty color")
	case s == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

// parseRGBFunc handles rgb() and rgba(); alpha may be given as 0..1.
func parseRGBFunc(s string) (color.Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed color %q", s)
	}
	fields := strings.Split(s[open+1:len(s)-1], ",")
	if len(fields) != 3 && len(fields) != 4 {
		return nil, fmt.Errorf("malformed color %q", s)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse color %q: %w", s, err)
		}
		ch[i] = clampByte(v)
	}
	alpha := uint8(0xff)
	if len(fields) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = clampByte(a * 255)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// maxPalette bounds the cache; remote peers choose the color strings.
const maxPalette = 256

// palette caches parsed colors; strokes repeat the same few strings.
// Unparseable strings are not cached.
type palette map[string]color.Color

func (p palette) lookup(s string) (color.Color, bool) {
	if c, ok := p[s]; ok {
		return c, true
	}
	c, err := ParseColor(s)
	if err != nil {
		return nil, false
	}
	if len(p) >= maxPalette {
		clear(p)
	}
	p[s] = c
	return c, true
}
