package opts

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rook-computer/panels/internal/device"
)

// GifName is the file the gifanim display writes under -output.
const GifName = "panels.gif"

// CreateDevice builds the display o selects. The web display is started
// and stops with ctx.
func CreateDevice(ctx context.Context, o Options, logger device.Logger) (device.Device, error) {
	category, ok := device.Category(o.Display)
	if !ok {
		return nil, fmt.Errorf("%w: %s", device.ErrUnknownDisplay, o.Display)
	}
	cfg := device.Config{
		Width:  o.Width,
		Height: o.Height,
		Rotate: o.Rotate,
		Mode:   device.Mode(o.Mode),
		Logger: logger,
	}

	switch category {
	case device.CategoryOLED:
		serial := SerialConfig(o)
		switch o.Display {
		case "ssd1306":
			return device.NewSSD1306(cfg, serial)
		case "sh1106":
			return device.NewSH1106(cfg, serial)
		case "ssd1322":
			return device.NewSSD1322(cfg, serial)
		}
	case device.CategoryLCD:
		return asDevice(device.NewFramebuffer(cfg, o.Framebuffer))
	case device.CategoryEmulator:
		ecfg := device.EmulatorConfig{Transform: device.Transform(o.Transform), Scale: o.Scale}
		switch o.Display {
		case "capture":
			return asDevice(device.NewCapture(cfg, ecfg, o.Output))
		case "gifanim":
			return asDevice(device.NewGifAnim(cfg, ecfg, device.GifAnimOptions{
				Path:      filepath.Join(o.Output, GifName),
				Duration:  o.Duration,
				Loop:      o.Loop,
				MaxFrames: o.MaxFrames,
			}))
		case "web":
			w, err := device.NewWeb(cfg, ecfg, o.Listen)
			if err != nil {
				return nil, err
			}
			if err := w.Start(ctx); err != nil {
				return nil, err
			}
			return w, nil
		case "sdl":
			return device.NewSDL(cfg, ecfg)
		case "dummy":
			return asDevice(device.NewDummy(cfg))
		}
	}
	return nil, fmt.Errorf("%w: %s", device.ErrUnknownDisplay, o.Display)
}

// asDevice keeps a failed constructor from returning a typed nil Device.
func asDevice[T device.Device](d T, err error) (device.Device, error) {
	if err != nil {
		return nil, err
	}
	return d, nil
}

// SerialConfig extracts the bus settings from o.
func SerialConfig(o Options) device.SerialConfig {
	return device.SerialConfig{
		Interface:       o.Interface,
		I2CPort:         o.I2CPort,
		I2CAddress:      o.I2CAddress,
		SPIPort:         o.SPIPort,
		SPIDevice:       o.SPIDevice,
		SPIBusSpeed:     o.SPIBusSpeed,
		GPIODataCommand: o.GPIODataCommand,
		GPIOReset:       o.GPIOReset,
		GPIOBacklight:   o.GPIOBacklight,
	}
}
