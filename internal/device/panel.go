package device

import (
	"errors"
	"fmt"
	"image"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306"
)

// panel adapts a periph display.Drawer to Device.
type panel struct {
	base
	drawer display.Drawer
	link   *link
}

func newPanel(name string, cfg Config, drawer display.Drawer, l *link) *panel {
	b, _ := newBase(name, cfg)
	return &panel{base: b, drawer: drawer, link: l}
}

func (p *panel) Display(img image.Image) error {
	frame, err := p.prepare(img)
	if err != nil {
		return err
	}
	if err := p.drawer.Draw(p.drawer.Bounds(), frame, image.Point{}); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	return nil
}

func (p *panel) Clear() error { return p.Display(p.blank()) }

func (p *panel) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	err := p.drawer.Halt()
	if p.link != nil {
		err = errors.Join(err, p.link.Close())
	}
	return err
}

func (p *panel) String() string {
	if p.link == nil {
		return p.base.String()
	}
	return p.base.String() + " on " + p.link.String()
}

// NewSSD1306 opens a monochrome SSD1306 panel. Over I2C the controller
// must sit at the default address 0x3C.
func NewSSD1306(cfg Config, serial SerialConfig) (Device, error) {
	cfg.Mode = Mode1
	if _, err := newBase("ssd1306", cfg); err != nil {
		return nil, err
	}
	if serial.Interface == InterfaceI2C && serial.I2CAddress != 0x3C {
		return nil, fmt.Errorf("ssd1306: unsupported i2c address 0x%02X, only 0x3C", serial.I2CAddress)
	}
	l, err := openLink(serial)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	opts := &ssd1306.Opts{W: cfg.Width, H: cfg.Height}

	var dev *ssd1306.Dev
	switch serial.Interface {
	case InterfaceSPI:
		dev, err = ssd1306.NewSPI(l.spiPort, l.dc, opts)
	default:
		dev, err = ssd1306.NewI2C(l.i2cBus, opts)
	}
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	return newPanel("ssd1306", cfg, dev, l), nil
}
