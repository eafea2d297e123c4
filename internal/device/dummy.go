package device

import "image"

// Dummy keeps the last frame in memory.
type Dummy struct {
	base
	last   image.Image
	frames int
}

func NewDummy(cfg Config) (*Dummy, error) {
	b, err := newBase("dummy", cfg)
	if err != nil {
		return nil, err
	}
	return &Dummy{base: b}, nil
}

func (d *Dummy) Display(img image.Image) error {
	frame, err := d.prepare(img)
	if err != nil {
		return err
	}
	d.last = frame
	d.frames++
	return nil
}

func (d *Dummy) Clear() error { return d.Display(d.blank()) }

func (d *Dummy) Close() error {
	d.closed = true
	return nil
}

// Image returns the last frame as the panel would hold it: rotated and in
// the device mode. It is nil before the first Display.
func (d *Dummy) Image() image.Image { return d.last }

// Frames returns the number of Display calls that succeeded.
func (d *Dummy) Frames() int { return d.frames }
