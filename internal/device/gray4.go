package device

import (
	"image"
	"image/color"
)

// Gray4 is a 16 level grey.
type Gray4 struct {
	Y uint8
}

func (c Gray4) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y&0x0f) * 0x1111
	return y, y, y, 0xffff
}

// Gray4Model converts colours to Gray4 using BT.601 luma.
var Gray4Model = color.ModelFunc(func(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
})

// NibbleImage is a Gray4 image packed two pixels per byte, left pixel in
// the high nibble. This is the RAM layout of greyscale OLED controllers.
type NibbleImage struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewNibbleImage allocates an image for r. The width must be even.
func NewNibbleImage(r image.Rectangle) *NibbleImage {
	if r.Dx()%2 != 0 {
		panic("device: nibble image width must be even")
	}
	stride := r.Dx() / 2
	return &NibbleImage{Pix: make([]byte, stride*r.Dy()), Stride: stride, Rect: r}
}

func (p *NibbleImage) ColorModel() color.Model { return Gray4Model }

func (p *NibbleImage) Bounds() image.Rectangle { return p.Rect }

func (p *NibbleImage) At(x, y int) color.Color { return p.Gray4At(x, y) }

func (p *NibbleImage) Gray4At(x, y int) Gray4 {
	if !image.Pt(x, y).In(p.Rect) {
		return Gray4{}
	}
	i, shift := p.offset(x, y)
	return Gray4{Y: p.Pix[i] >> shift & 0x0f}
}

func (p *NibbleImage) Set(x, y int, c color.Color) {
	p.SetGray4(x, y, Gray4Model.Convert(c).(Gray4))
}

func (p *NibbleImage) SetGray4(x, y int, c Gray4) {
	if !image.Pt(x, y).In(p.Rect) {
		return
	}
	i, shift := p.offset(x, y)
	p.Pix[i] = p.Pix[i]&^(0x0f<<shift) | (c.Y&0x0f)<<shift
}

func (p *NibbleImage) offset(x, y int) (int, uint) {
	dx := x - p.Rect.Min.X
	i := (y-p.Rect.Min.Y)*p.Stride + dx/2
	if dx%2 == 0 {
		return i, 4
	}
	return i, 0
}
