package device

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3/physic"
)

// SH1106 RAM is 132 columns wide; 128 pixel panels start at column 2.
const sh1106RAMWidth = 132

var errSH1106Halted = errors.New("sh1106: halted")

// sh1106 is a monochrome controller written one 8 row page at a time.
// Pages that did not change since the previous frame are skipped.
type sh1106 struct {
	bus    bus
	rect   image.Rectangle
	column int

	frame  *image.Paletted
	pages  [][]byte
	halted bool
}

func newSH1106Driver(b bus, width, height int) (*sh1106, error) {
	if width <= 0 || width > sh1106RAMWidth {
		return nil, fmt.Errorf("sh1106: width must be 1-132, got %d", width)
	}
	if height <= 0 || height > 64 || height%8 != 0 {
		return nil, fmt.Errorf("sh1106: height must be a multiple of 8 up to 64, got %d", height)
	}
	rect := image.Rect(0, 0, width, height)
	return &sh1106{
		bus:    b,
		rect:   rect,
		column: (sh1106RAMWidth - width) / 2,
		frame:  image.NewPaletted(rect, monochrome),
		pages:  make([][]byte, height/8),
	}, nil
}

func (d *sh1106) init() error {
	h := byte(d.rect.Dy() - 1)
	seq := [][]byte{
		{0xAE},       // display off
		{0xD5, 0x80}, // clock
		{0xA8, h},    // multiplex
		{0xD3, 0x00}, // offset
		{0x40},       // start line
		{0xAD, 0x8B}, // charge pump
		{0xA1},       // segment remap
		{0xC8},       // COM scan descending
		{0xDA, 0x12}, // COM pins
		{0x81, 0x7F}, // contrast
		{0xD9, 0x22}, // precharge
		{0xDB, 0x35}, // VCOM detect
		{0xA4},       // resume RAM
		{0xA6},       // normal
	}
	for _, cmd := range seq {
		if err := d.bus.command(cmd...); err != nil {
			return fmt.Errorf("sh1106: init: %w", err)
		}
	}
	if err := d.flush(); err != nil {
		return err
	}
	return d.bus.command(0xAF)
}

func (d *sh1106) String() string {
	return fmt.Sprintf("sh1106{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

func (d *sh1106) Halt() error {
	d.halted = true
	return d.bus.command(0xAE)
}

func (d *sh1106) ColorModel() color.Model { return monochrome }

func (d *sh1106) Bounds() image.Rectangle { return d.rect }

func (d *sh1106) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errSH1106Halted
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	draw.Draw(d.frame, r, src, sp, draw.Src)
	return d.flush()
}

// flush writes every page whose bytes differ from what the panel holds.
func (d *sh1106) flush() error {
	for page := range d.pages {
		buf := d.page(page)
		if d.pages[page] != nil && bytes.Equal(buf, d.pages[page]) {
			continue
		}
		col := d.column
		if err := d.bus.command(0xB0|byte(page), byte(col&0x0F), 0x10|byte(col>>4)); err != nil {
			return fmt.Errorf("sh1106: page %d: %w", page, err)
		}
		if err := d.bus.data(buf); err != nil {
			return fmt.Errorf("sh1106: page %d: %w", page, err)
		}
		d.pages[page] = buf
	}
	return nil
}

// page packs rows 8p..8p+7 one byte per column, top pixel in bit 0.
func (d *sh1106) page(p int) []byte {
	buf := make([]byte, d.rect.Dx())
	for x := range buf {
		var b byte
		for bit := 0; bit < 8; bit++ {
			if d.frame.ColorIndexAt(x, p*8+bit) == 1 {
				b |= 1 << bit
			}
		}
		buf[x] = b
	}
	return buf
}

// NewSH1106 opens a monochrome SH1106 panel on I2C or SPI.
func NewSH1106(cfg Config, serial SerialConfig) (Device, error) {
	cfg.Mode = Mode1
	if _, err := newBase("sh1106", cfg); err != nil {
		return nil, err
	}
	l, err := openLink(serial)
	if err != nil {
		return nil, fmt.Errorf("sh1106: %w", err)
	}
	if err := reset(l.rst, func() { time.Sleep(10 * time.Millisecond) }); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("sh1106: %w", err)
	}
	b, err := l.bus(8 * physic.MegaHertz)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("sh1106: %w", err)
	}
	drv, err := newSH1106Driver(b, cfg.Width, cfg.Height)
	if err == nil {
		err = drv.init()
	}
	if err != nil {
		_ = l.Close()
		return nil, err
	}
	return newPanel("sh1106", cfg, drv, l), nil
}
