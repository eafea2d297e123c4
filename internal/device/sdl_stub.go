//go:build !sdl2

package device

import "errors"

// SDLAvailable reports whether the binary was built with the sdl2 tag.
const SDLAvailable = false

func NewSDL(cfg Config, ecfg EmulatorConfig) (Device, error) {
	return nil, errors.New("sdl: not available, rebuild with -tags sdl2")
}
