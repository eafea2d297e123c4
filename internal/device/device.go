// Package device drives the displays a demo can draw on: OLED panels on I2C or
// SPI, the Linux framebuffer, and a handful of emulators that write frames to
// disk, an HTTP page or an SDL window.
//
// Every Device works in logical coordinates. Rotation and colour mode
// conversion happen in Display, so callers always hand over an image of
// Size() in whatever colour model they like.
package device

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

var (
	// ErrClosed is returned by Display and Clear after Close.
	ErrClosed = errors.New("device: closed")
	// ErrUnknownDisplay is returned when a display name has no driver.
	ErrUnknownDisplay = errors.New("device: unknown display")
	// ErrDone is returned by Display when an emulator has stopped accepting
	// frames, for example when the GIF frame limit is reached or the SDL
	// window was closed. Callers treat it as a normal end of the demo.
	ErrDone = errors.New("device: done")
)

// Device is a display a demo can render frames to.
type Device interface {
	Width() int
	Height() int
	Size() image.Point
	Mode() Mode
	// Bounds is the bounding box of the logical display, always at the origin.
	Bounds() image.Rectangle
	// Display shows img, which must be Size() pixels.
	Display(img image.Image) error
	Clear() error
	Close() error
	String() string
}

// Logger is the logging surface drivers use.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

// Config is shared by every driver.
type Config struct {
	// Width and Height are the physical panel size in pixels.
	Width  int
	Height int
	// Rotate is the number of clockwise quarter turns, 0 to 3.
	Rotate int
	Mode   Mode
	Logger Logger
}

// base carries the behaviour every driver shares: logical size, rotation
// and colour conversion.
type base struct {
	name   string
	width  int // physical
	height int // physical
	rotate int
	mode   Mode
	logger Logger
	closed bool
}

func newBase(name string, cfg Config) (base, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return base{}, fmt.Errorf("%s: invalid size %dx%d", name, cfg.Width, cfg.Height)
	}
	if cfg.Rotate < 0 || cfg.Rotate > 3 {
		return base{}, fmt.Errorf("%s: rotate must be 0-3, got %d", name, cfg.Rotate)
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeRGB
	}
	if !mode.Valid() {
		return base{}, fmt.Errorf("%s: unsupported mode %q", name, mode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return base{
		name:   name,
		width:  cfg.Width,
		height: cfg.Height,
		rotate: cfg.Rotate,
		mode:   mode,
		logger: logger,
	}, nil
}

func (b *base) Width() int {
	if b.rotate%2 == 1 {
		return b.height
	}
	return b.width
}

func (b *base) Height() int {
	if b.rotate%2 == 1 {
		return b.width
	}
	return b.height
}

func (b *base) Size() image.Point { return image.Pt(b.Width(), b.Height()) }

func (b *base) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width(), b.Height()) }

func (b *base) Mode() Mode { return b.mode }

func (b *base) String() string {
	return fmt.Sprintf("%s{%dx%d mode=%s rotate=%d}", b.name, b.Width(), b.Height(), b.mode, b.rotate)
}

// prepare checks img against the logical size, rotates it onto the physical
// panel and converts it to the device mode.
func (b *base) prepare(img image.Image) (image.Image, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if img == nil {
		return nil, fmt.Errorf("%s: nil image", b.name)
	}
	if got := img.Bounds().Size(); got != b.Size() {
		return nil, fmt.Errorf("%s: image is %dx%d, display is %dx%d", b.name, got.X, got.Y, b.Width(), b.Height())
	}
	return Convert(Rotate(img, b.rotate), b.mode), nil
}

// blank returns a black logical frame.
func (b *base) blank() image.Image {
	img := image.NewRGBA(b.Bounds())
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

// Rotate turns img clockwise by quarter turns. The result is anchored at
// the origin.
func Rotate(img image.Image, quarters int) image.Image {
	quarters = ((quarters % 4) + 4) % 4
	src := img.Bounds()
	if quarters == 0 {
		return img
	}
	w, h := src.Dx(), src.Dy()
	var dst *image.RGBA
	if quarters == 2 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(src.Min.X+x, src.Min.Y+y)
			switch quarters {
			case 1:
				dst.Set(h-1-y, x, c)
			case 2:
				dst.Set(w-1-x, h-1-y, c)
			case 3:
				dst.Set(y, w-1-x, c)
			}
		}
	}
	return dst
}
