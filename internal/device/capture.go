package device

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// emulator is the part every software display shares.
type emulator struct {
	base
	EmulatorConfig
}

func newEmulator(name string, cfg Config, ecfg EmulatorConfig) (emulator, error) {
	b, err := newBase(name, cfg)
	if err != nil {
		return emulator{}, err
	}
	if err := ecfg.validate(); err != nil {
		return emulator{}, fmt.Errorf("%s: %w", name, err)
	}
	return emulator{base: b, EmulatorConfig: ecfg}, nil
}

// render prepares img for the device and scales it for viewing.
func (e *emulator) render(img image.Image) (*image.RGBA, error) {
	frame, err := e.prepare(img)
	if err != nil {
		return nil, err
	}
	return e.Apply(frame), nil
}

// Capture writes every frame to its own PNG file.
type Capture struct {
	emulator
	dir   string
	count int
}

func NewCapture(cfg Config, ecfg EmulatorConfig, dir string) (*Capture, error) {
	e, err := newEmulator("capture", cfg, ecfg)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return &Capture{emulator: e, dir: dir}, nil
}

func (c *Capture) Display(img image.Image) error {
	frame, err := c.render(img)
	if err != nil {
		return err
	}
	c.count++
	path := filepath.Join(c.dir, fmt.Sprintf("capture_%06d.png", c.count))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := png.Encode(f, frame); err != nil {
		_ = f.Close()
		return fmt.Errorf("capture: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	c.logger.Infof("capture", "wrote %s", path)
	return nil
}

func (c *Capture) Clear() error { return c.Display(c.blank()) }

func (c *Capture) Close() error {
	c.closed = true
	return nil
}

// Count returns the number of files written.
func (c *Capture) Count() int { return c.count }
