// Package config reads the CanvasBoard settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"CanvasBoard/internal/board"
	"CanvasBoard/internal/render"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// File is the on-disk layout:
//
//	[board]
//	width = 1024
//	aspect_ratio = 0.75
//	batch_flush_delay = "100ms"
//	image_url = "https://example.com/plan.png"
//	stroke_color = "#ff0000"
//	undo = true
//
//	[session]
//	name = "design review"
//	port = 8080
type File struct {
	Board   BoardSection   `toml:"board"`
	Session SessionSection `toml:"session"`
}

// BoardSection mirrors board.Config. Pointer fields distinguish "unset" from
// an explicit false or zero.
type BoardSection struct {
	Width           int      `toml:"width"`
	Height          int      `toml:"height"`
	AspectRatio     float64  `toml:"aspect_ratio"`
	BatchFlushDelay Duration `toml:"batch_flush_delay"`
	ImageURL        string   `toml:"image_url"`
	FocusX          *float64 `toml:"focus_x"`
	FocusY          *float64 `toml:"focus_y"`
	StrokeColor     string   `toml:"stroke_color"`
	LineWidth       float64  `toml:"line_width"`
	Draw            *bool    `toml:"draw"`
	Clear           *bool    `toml:"clear"`
	Undo            *bool    `toml:"undo"`
	Redo            *bool    `toml:"redo"`
	Save            *bool    `toml:"save"`
	SaveDir         string   `toml:"save_dir"`
}

// SessionSection configures the collaboration session.
type SessionSection struct {
	Name string `toml:"name"`
	Port int    `toml:"port"`
	// Join is a host address to connect to instead of hosting.
	Join string `toml:"join"`
}

// DefaultPort is the relay port when none is configured.
const DefaultPort = 8080

// Duration is a time.Duration written as a Go duration string.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalid, string(b), err)
	}
	*d = Duration(v)
	return nil
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML settings. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks value ranges.
func (f *File) Validate() error {
	b := f.Board
	switch {
	case b.Width < 0 || b.Height < 0:
		return fmt.Errorf("%w: negative board size", ErrInvalid)
	case b.AspectRatio < 0:
		return fmt.Errorf("%w: negative aspect_ratio", ErrInvalid)
	case b.BatchFlushDelay < 0:
		return fmt.Errorf("%w: negative batch_flush_delay", ErrInvalid)
	case b.LineWidth < 0:
		return fmt.Errorf("%w: negative line_width", ErrInvalid)
	case f.Session.Port < 0 || f.Session.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, f.Session.Port)
	}
	for name, v := range map[string]*float64{"focus_x": b.FocusX, "focus_y": b.FocusY} {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("%w: %s must be within [0,1]", ErrInvalid, name)
		}
	}
	if b.StrokeColor != "" {
		if _, err := render.ParseColor(b.StrokeColor); err != nil {
			return fmt.Errorf("%w: stroke_color: %v", ErrInvalid, err)
		}
	}
	return nil
}

// BoardConfig applies the file on top of board.DefaultConfig.
func (f *File) BoardConfig() board.Config {
	cfg := board.DefaultConfig()
	b := f.Board
	if b.Width > 0 {
		cfg.Width = b.Width
	}
	if b.Height > 0 {
		cfg.Height = b.Height
	}
	cfg.AspectRatio = b.AspectRatio
	if b.BatchFlushDelay > 0 {
		cfg.BatchFlushDelay = time.Duration(b.BatchFlushDelay)
	}
	cfg.ImageURL = b.ImageURL
	setFloat(&cfg.FocusX, b.FocusX)
	setFloat(&cfg.FocusY, b.FocusY)
	if b.StrokeColor != "" {
		cfg.StrokeColor = b.StrokeColor
	}
	if b.LineWidth > 0 {
		cfg.LineWidth = b.LineWidth
	}
	setBool(&cfg.DrawEnabled, b.Draw)
	setBool(&cfg.ClearEnabled, b.Clear)
	setBool(&cfg.UndoEnabled, b.Undo)
	setBool(&cfg.RedoEnabled, b.Redo)
	setBool(&cfg.SaveEnabled, b.Save)
	cfg.SaveDir = b.SaveDir
	return cfg
}

// Port returns the configured relay port or DefaultPort.
func (f *File) Port() int {
	if f.Session.Port == 0 {
		return DefaultPort
	}
	return f.Session.Port
}

// Default returns an empty file, which yields board.DefaultConfig.
func Default() *File { return &File{} }

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
