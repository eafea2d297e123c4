package device

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"
	"path/filepath"
)

// GifAnimOptions configures the GIF recorder.
type GifAnimOptions struct {
	// Path of the GIF written on Close.
	Path string
	// Duration of each frame in seconds.
	Duration float64
	// Loop count, 0 loops forever.
	Loop int
	// MaxFrames stops recording after this many frames, 0 is unlimited.
	MaxFrames int
}

// GifAnim records frames and writes them as an animated GIF on Close, or as
// soon as MaxFrames is reached.
type GifAnim struct {
	emulator
	opts    GifAnimOptions
	anim    gif.GIF
	written bool
}

func NewGifAnim(cfg Config, ecfg EmulatorConfig, opts GifAnimOptions) (*GifAnim, error) {
	e, err := newEmulator("gifanim", cfg, ecfg)
	if err != nil {
		return nil, err
	}
	if opts.Path == "" {
		opts.Path = "panels.gif"
	}
	if opts.Duration <= 0 {
		opts.Duration = 0.01
	}
	loop := opts.Loop
	if loop < 0 {
		loop = -1
	}
	return &GifAnim{emulator: e, opts: opts, anim: gif.GIF{LoopCount: loop}}, nil
}

func (g *GifAnim) Display(img image.Image) error {
	if g.written {
		return ErrDone
	}
	frame, err := g.render(img)
	if err != nil {
		return err
	}
	p := image.NewPaletted(frame.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), frame, frame.Bounds().Min)
	g.anim.Image = append(g.anim.Image, p)
	g.anim.Delay = append(g.anim.Delay, int(math.Round(g.opts.Duration*100)))

	if g.opts.MaxFrames > 0 && len(g.anim.Image) >= g.opts.MaxFrames {
		if err := g.write(); err != nil {
			return err
		}
		return ErrDone
	}
	return nil
}

func (g *GifAnim) Clear() error { return g.Display(g.blank()) }

func (g *GifAnim) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.write()
}

// Frames returns the number of frames recorded.
func (g *GifAnim) Frames() int { return len(g.anim.Image) }

func (g *GifAnim) write() error {
	if g.written || len(g.anim.Image) == 0 {
		return nil
	}
	g.written = true
	if dir := filepath.Dir(g.opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("gifanim: %w", err)
		}
	}
	f, err := os.Create(g.opts.Path)
	if err != nil {
		return fmt.Errorf("gifanim: %w", err)
	}
	if err := gif.EncodeAll(f, &g.anim); err != nil {
		_ = f.Close()
		return fmt.Errorf("gifanim: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("gifanim: %w", err)
	}
	g.logger.Infof("gifanim", "wrote %d frames to %s", len(g.anim.Image), g.opts.Path)
	return nil
}
