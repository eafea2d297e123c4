// Package virtual layers software displays over a device: a scrollable
// viewport onto a larger canvas, a frame history with savepoints, and a
// character terminal.
package virtual

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/rook-computer/panels/internal/device"
)

// Viewport is a Device larger than the display it wraps. Frames handed to
// Display are kept whole and the display shows the window at Position.
type Viewport struct {
	dev      device.Device
	size     image.Point
	frame    *image.RGBA
	position image.Point
}

// NewViewport wraps dev with a virtual surface of w x h, which must be at
// least as large as dev.
func NewViewport(dev device.Device, w, h int) (*Viewport, error) {
	if w < dev.Width() || h < dev.Height() {
		return nil, fmt.Errorf("viewport: %dx%d is smaller than the %dx%d display", w, h, dev.Width(), dev.Height())
	}
	v := &Viewport{dev: dev, size: image.Pt(w, h), frame: image.NewRGBA(image.Rect(0, 0, w, h))}
	draw.Draw(v.frame, v.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return v, nil
}

func (v *Viewport) Width() int              { return v.size.X }
func (v *Viewport) Height() int             { return v.size.Y }
func (v *Viewport) Size() image.Point       { return v.size }
func (v *Viewport) Bounds() image.Rectangle { return image.Rectangle{Max: v.size} }
func (v *Viewport) Mode() device.Mode       { return v.dev.Mode() }

func (v *Viewport) String() string {
	return fmt.Sprintf("viewport{%dx%d at %d,%d on %s}", v.size.X, v.size.Y, v.position.X, v.position.Y, v.dev)
}

// Display replaces the virtual surface with img and refreshes the window.
func (v *Viewport) Display(img image.Image) error {
	if got := img.Bounds().Size(); got != v.size {
		return fmt.Errorf("viewport: image is %dx%d, surface is %dx%d", got.X, got.Y, v.size.X, v.size.Y)
	}
	draw.Draw(v.frame, v.frame.Bounds(), img, img.Bounds().Min, draw.Src)
	return v.refresh()
}

func (v *Viewport) Clear() error {
	draw.Draw(v.frame, v.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return v.refresh()
}

// Close leaves the wrapped device open; it belongs to the caller.
func (v *Viewport) Close() error { return nil }

func (v *Viewport) Position() image.Point { return v.position }

// SetPosition moves the window to p and redisplays. Parts of the window
// beyond the surface show black.
func (v *Viewport) SetPosition(p image.Point) error {
	v.position = p
	return v.refresh()
}

func (v *Viewport) refresh() error {
	win := image.NewRGBA(v.dev.Bounds())
	draw.Draw(win, win.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(win, win.Bounds(), v.frame, v.position, draw.Src)
	return v.dev.Display(win)
}
