package underlay

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"CanvasBoard/internal/logx"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedScheme is returned for URLs the loader cannot fetch.
var ErrUnsupportedScheme = errors.New("unsupported image url scheme")

// Loader fetches and decodes an image.
type Loader interface {
	Load(ctx context.Context, rawURL string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, rawURL string) (image.Image, error)

func (f LoaderFunc) Load(ctx context.Context, rawURL string) (image.Image, error) {
	return f(ctx, rawURL)
}

// DefaultLoader fetches http(s) URLs with Client and reads file:// URLs and
// bare paths from disk.
type DefaultLoader struct {
	Client *http.Client
	// MaxBytes bounds the encoded image size; 0 means 32 MiB.
	MaxBytes int64
}

// NewDefaultLoader returns a loader with a 30 second HTTP timeout.
func NewDefaultLoader() *DefaultLoader {
	return &DefaultLoader{Client: &http.Client{Timeout: 30 * time.Second}}
}

func (l *DefaultLoader) Load(ctx context.Context, rawURL string) (image.Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse image url: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return l.fetch(ctx, rawURL)
	case "file":
		return l.open(u.Path)
	case "":
		return l.open(rawURL)
	}
	// Windows drive letters parse as a one-letter scheme.
	if len(u.Scheme) == 1 && filepath.VolumeName(rawURL) != "" {
		return l.open(rawURL)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
}

func (l *DefaultLoader) limit() int64 {
	if l.MaxBytes > 0 {
		return l.MaxBytes
	}
	return 32 << 20
}

func (l *DefaultLoader) fetch(ctx context.Context, rawURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}
	return decode(io.LimitReader(resp.Body, l.limit()))
}

func (l *DefaultLoader) open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return decode(io.LimitReader(f, l.limit()))
}

func decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	logx.For("underlay").Debug("decoded image", "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}
