package device

import (
	"fmt"
	"image"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/panels/internal/system"
)

// DefaultFramebuffer is the framebuffer the linux_framebuffer display opens.
const DefaultFramebuffer = "/dev/fb0"

// Framebuffer draws onto a Linux framebuffer device. Frames are scaled by
// the largest whole factor that fits and centred. The console is switched to
// graphics mode while the device is open so the text cursor does not blink
// through.
type Framebuffer struct {
	base
	dev  *fb.Device
	dest image.Rectangle
	tty  bool
}

func NewFramebuffer(cfg Config, path string) (*Framebuffer, error) {
	b, err := newBase("linux_framebuffer", cfg)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = DefaultFramebuffer
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linux_framebuffer: open %s: %w", path, err)
	}
	f := &Framebuffer{base: b, dev: dev}
	bounds := dev.Bounds()
	f.dest = fitCentered(bounds, image.Pt(cfg.Width, cfg.Height))
	f.logger.Infof("fb", "framebuffer %s open, bounds=%dx%d, frame at %v", path, bounds.Dx(), bounds.Dy(), f.dest)

	if err := system.SetGraphicsModeWithLog(f.logger); err == nil {
		f.tty = true
		_ = system.HideCursorWithLog(f.logger)
	}
	return f, nil
}

// fitCentered places size inside bounds scaled by the largest integer factor
// that fits, or 1 when it does not fit at all.
func fitCentered(bounds image.Rectangle, size image.Point) image.Rectangle {
	scale := 1
	if size.X > 0 && size.Y > 0 {
		scale = max(1, min(bounds.Dx()/size.X, bounds.Dy()/size.Y))
	}
	w, h := size.X*scale, size.Y*scale
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h).Intersect(bounds)
}

func (f *Framebuffer) Display(img image.Image) error {
	frame, err := f.prepare(img)
	if err != nil {
		return err
	}
	xdraw.NearestNeighbor.Scale(f.dev, f.dest, frame, frame.Bounds(), xdraw.Src, nil)
	return nil
}

func (f *Framebuffer) Clear() error { return f.Display(f.blank()) }

func (f *Framebuffer) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.tty {
		_ = system.ShowCursorWithLog(f.logger)
		_ = system.RestoreTextModeWithLog(f.logger)
	}
	f.dev.Close()
	return nil
}
