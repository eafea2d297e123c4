//go:build sdl2

package device

import (
	"fmt"
	"image"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// SDL wants every call on the thread that initialised it.
	runtime.LockOSThread()
}

// SDLAvailable reports whether the binary was built with the sdl2 tag.
const SDLAvailable = true

// SDL shows frames in a desktop window. Closing the window or pressing
// Escape makes Display return ErrDone.
type SDL struct {
	emulator
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	w, h     int32
}

func NewSDL(cfg Config, ecfg EmulatorConfig) (Device, error) {
	e, err := newEmulator("sdl", cfg, ecfg)
	if err != nil {
		return nil, err
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}
	probe := e.Apply(image.NewRGBA(e.Bounds())).Bounds()
	w, h := int32(probe.Dx()), int32(probe.Dy())

	window, err := sdl.CreateWindow("panels", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: renderer: %w", err)
	}
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING, w, h)
	if err != nil {
		_ = renderer.Destroy()
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: texture: %w", err)
	}
	return &SDL{emulator: e, window: window, renderer: renderer, texture: texture, w: w, h: h}, nil
}

func (s *SDL) Display(img image.Image) error {
	if s.quitRequested() {
		return ErrDone
	}
	frame, err := s.render(img)
	if err != nil {
		return err
	}
	pixels, pitch, err := s.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("sdl: lock: %w", err)
	}
	b := frame.Bounds()
	for y := 0; y < int(s.h) && y < b.Dy(); y++ {
		for x := 0; x < int(s.w) && x < b.Dx(); x++ {
			c := frame.RGBAAt(b.Min.X+x, b.Min.Y+y)
			off := y*pitch + x*4
			pixels[off+0] = c.B
			pixels[off+1] = c.G
			pixels[off+2] = c.R
			pixels[off+3] = 0xff
		}
	}
	s.texture.Unlock()

	_ = s.renderer.Clear()
	_ = s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

func (s *SDL) quitRequested() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				quit = true
			}
		}
	}
	return quit
}

func (s *SDL) Clear() error { return s.Display(s.blank()) }

func (s *SDL) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	_ = s.texture.Destroy()
	_ = s.renderer.Destroy()
	_ = s.window.Destroy()
	sdl.Quit()
	return nil
}
