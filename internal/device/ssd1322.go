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

// The SSD1322 addresses its 480 pixel wide RAM in columns of four pixels.
const (
	ssd1322RAMWidth    = 480
	ssd1322MaxHeight   = 128
	ssd1322ColumnPixel = 4
)

var errSSD1322Halted = errors.New("ssd1322: halted")

// ssd1322 is a 16 level greyscale controller. It keeps the last frame sent
// and only rewrites the rows and columns that changed.
type ssd1322 struct {
	bus    bus
	rect   image.Rectangle
	offset int // first RAM pixel used, the panel is centred in RAM

	next   *NibbleImage
	shown  []byte
	halted bool
}

func newSSD1322Driver(b bus, width, height int) (*ssd1322, error) {
	if width <= 0 || width > ssd1322RAMWidth || width%ssd1322ColumnPixel != 0 {
		return nil, fmt.Errorf("ssd1322: width must be a multiple of 4 up to 480, got %d", width)
	}
	if height <= 0 || height > ssd1322MaxHeight {
		return nil, fmt.Errorf("ssd1322: height must be 1-128, got %d", height)
	}
	rect := image.Rect(0, 0, width, height)
	next := NewNibbleImage(rect)
	return &ssd1322{
		bus:    b,
		rect:   rect,
		offset: (ssd1322RAMWidth - width) / 2,
		next:   next,
		shown:  make([]byte, len(next.Pix)),
	}, nil
}

func (d *ssd1322) init() error {
	h := byte(d.rect.Dy() - 1)
	seq := [][]byte{
		{0xFD, 0x12},       // unlock
		{0xAE},             // display off
		{0xB3, 0xF2},       // clock
		{0xCA, h},          // multiplex ratio
		{0xA2, 0x00},       // display offset
		{0xA1, 0x00},       // start line
		{0xA0, 0x14, 0x11}, // remap, dual COM
		{0xAB, 0x01},       // internal VDD
		{0xB4, 0xA0, 0xFD}, // external VSL
		{0xC1, 0xFF},       // contrast
		{0xC7, 0x0F},       // master contrast
		{0xB9},             // linear grey table
		{0xB1, 0xE2},       // phase length
		{0xD1, 0x82, 0x20}, // enhancement B
		{0xBB, 0x1F},       // precharge voltage
		{0xB6, 0x08},       // second precharge
		{0xBE, 0x07},       // VCOMH
		{0xA6},             // normal
		{0xA9},             // exit partial
	}
	for _, cmd := range seq {
		if err := d.bus.command(cmd...); err != nil {
			return fmt.Errorf("ssd1322: init: %w", err)
		}
	}
	if err := d.window(0, d.rect.Dx(), 0, d.rect.Dy()); err != nil {
		return err
	}
	if err := d.bus.data(make([]byte, len(d.shown))); err != nil {
		return fmt.Errorf("ssd1322: clear: %w", err)
	}
	return d.bus.command(0xAF)
}

// window selects pixels [x0,x1) x [y0,y1) for the next RAM write. x0 and x1
// must be multiples of four.
func (d *ssd1322) window(x0, x1, y0, y1 int) error {
	c0 := byte((d.offset + x0) / ssd1322ColumnPixel)
	c1 := byte((d.offset+x1)/ssd1322ColumnPixel - 1)
	return d.bus.command(0x15, c0, c1, 0x75, byte(y0), byte(y1-1), 0x5C)
}

func (d *ssd1322) String() string {
	return fmt.Sprintf("ssd1322{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

func (d *ssd1322) Halt() error {
	d.halted = true
	return d.bus.command(0xAE)
}

func (d *ssd1322) ColorModel() color.Model { return Gray4Model }

func (d *ssd1322) Bounds() image.Rectangle { return d.rect }

func (d *ssd1322) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errSSD1322Halted
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	draw.Draw(d.next, r, src, sp, draw.Src)

	dirty, ok := d.dirty()
	if !ok {
		return nil
	}
	if err := d.window(dirty.Min.X, dirty.Max.X, dirty.Min.Y, dirty.Max.Y); err != nil {
		return err
	}
	if err := d.bus.data(d.region(dirty)); err != nil {
		return fmt.Errorf("ssd1322: write: %w", err)
	}
	copy(d.shown, d.next.Pix)
	return nil
}

// SetContrast sets the segment current, 0-255.
func (d *ssd1322) SetContrast(level uint8) error {
	if d.halted {
		return errSSD1322Halted
	}
	return d.bus.command(0xC1, level)
}

// dirty returns the changed area of next against shown, widened to whole
// RAM columns.
func (d *ssd1322) dirty() (image.Rectangle, bool) {
	stride := d.next.Stride
	minX, maxX, minY, maxY := stride, -1, d.rect.Dy(), -1
	for y := 0; y < d.rect.Dy(); y++ {
		row := y * stride
		if bytes.Equal(d.shown[row:row+stride], d.next.Pix[row:row+stride]) {
			continue
		}
		minY = min(minY, y)
		maxY = max(maxY, y)
		for i := 0; i < stride; i++ {
			if d.shown[row+i] != d.next.Pix[row+i] {
				minX = min(minX, i)
				maxX = max(maxX, i)
			}
		}
	}
	if maxY < 0 {
		return image.Rectangle{}, false
	}
	// Byte i holds pixels 2i and 2i+1.
	x0 := (minX * 2) &^ (ssd1322ColumnPixel - 1)
	x1 := (maxX*2 + 2 + ssd1322ColumnPixel - 1) &^ (ssd1322ColumnPixel - 1)
	return image.Rect(x0, minY, min(x1, d.rect.Dx()), maxY+1), true
}

func (d *ssd1322) region(r image.Rectangle) []byte {
	rowBytes := r.Dx() / 2
	out := make([]byte, 0, rowBytes*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		start := y*d.next.Stride + r.Min.X/2
		out = append(out, d.next.Pix[start:start+rowBytes]...)
	}
	return out
}

// NewSSD1322 opens a greyscale SSD1322 panel on SPI.
func NewSSD1322(cfg Config, serial SerialConfig) (Device, error) {
	cfg.Mode = ModeL
	if _, err := newBase("ssd1322", cfg); err != nil {
		return nil, err
	}
	if serial.Interface != InterfaceSPI {
		return nil, fmt.Errorf("ssd1322: only the spi interface is supported")
	}
	l, err := openLink(serial)
	if err != nil {
		return nil, fmt.Errorf("ssd1322: %w", err)
	}
	if err := reset(l.rst, func() { time.Sleep(200 * time.Millisecond) }); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("ssd1322: %w", err)
	}
	b, err := l.bus(10 * physic.MegaHertz)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("ssd1322: %w", err)
	}
	drv, err := newSSD1322Driver(b, cfg.Width, cfg.Height)
	if err == nil {
		err = drv.init()
	}
	if err != nil {
		_ = l.Close()
		return nil, err
	}
	return newPanel("ssd1322", cfg, drv, l), nil
}
