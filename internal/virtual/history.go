package virtual

import (
	"errors"
	"image"
	"image/draw"

	"github.com/rook-computer/panels/internal/device"
)

// ErrNoSavepoint is returned by Restore when the history is empty.
var ErrNoSavepoint = errors.New("history: no savepoint")

// History is a Device that remembers frames. Savepoint stores the most
// recently displayed frame and Restore brings saved frames back in LIFO
// order.
type History struct {
	device.Device
	last       image.Image
	savepoints []image.Image
}

func NewHistory(dev device.Device) *History {
	return &History{Device: dev}
}

// Display shows img and keeps a copy of it for the next Savepoint, so the
// caller may keep drawing on img.
func (h *History) Display(img image.Image) error {
	if err := h.Device.Display(img); err != nil {
		return err
	}
	b := img.Bounds()
	saved := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(saved, saved.Bounds(), img, b.Min, draw.Src)
	h.last = saved
	return nil
}

// Savepoint pushes the last displayed frame. Without a new frame since the
// previous savepoint it does nothing.
func (h *History) Savepoint() {
	if h.last == nil {
		return
	}
	h.savepoints = append(h.savepoints, h.last)
	h.last = nil
}

// Restore discards drop savepoints, then pops the next one and displays it.
func (h *History) Restore(drop int) error {
	if drop < 0 {
		drop = 0
	}
	if drop >= len(h.savepoints) {
		h.savepoints = h.savepoints[:0]
		return ErrNoSavepoint
	}
	h.savepoints = h.savepoints[:len(h.savepoints)-drop]
	img := h.savepoints[len(h.savepoints)-1]
	h.savepoints = h.savepoints[:len(h.savepoints)-1]
	return h.Display(img)
}

// Len is the number of savepoints held.
func (h *History) Len() int { return len(h.savepoints) }
