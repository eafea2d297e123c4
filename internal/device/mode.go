package device

import (
	"image"
	"image/color"
	"image/draw"
)

// Mode is the colour mode of a display.
type Mode string

const (
	// Mode1 is 1-bit monochrome.
	Mode1    Mode = "1"
	ModeL    Mode = "L"
	ModeRGB  Mode = "RGB"
	ModeRGBA Mode = "RGBA"
)

// Modes lists the accepted modes in flag order.
var Modes = []Mode{Mode1, ModeL, ModeRGB, ModeRGBA}

func (m Mode) Valid() bool {
	for _, v := range Modes {
		if m == v {
			return true
		}
	}
	return false
}

var monochrome = color.Palette{color.Black, color.White}

// Convert returns img in mode m. Mode "1" is dithered with Floyd-Steinberg,
// "RGB" is flattened onto black, and "RGBA" keeps alpha.
func Convert(img image.Image, m Mode) image.Image {
	r := img.Bounds()
	switch m {
	case Mode1:
		if p, ok := img.(*image.Paletted); ok && isMonochrome(p.Palette) {
			return p
		}
		dst := image.NewPaletted(r, monochrome)
		draw.FloydSteinberg.Draw(dst, r, img, r.Min)
		return dst
	case ModeL:
		if g, ok := img.(*image.Gray); ok {
			return g
		}
		dst := image.NewGray(r)
		draw.Draw(dst, r, img, r.Min, draw.Src)
		return dst
	case ModeRGBA:
		if rgba, ok := img.(*image.RGBA); ok {
			return rgba
		}
		dst := image.NewRGBA(r)
		draw.Draw(dst, r, img, r.Min, draw.Src)
		return dst
	default:
		dst := image.NewRGBA(r)
		draw.Draw(dst, r, image.NewUniform(color.Black), image.Point{}, draw.Src)
		draw.Draw(dst, r, img, r.Min, draw.Over)
		return dst
	}
}

func isMonochrome(p color.Palette) bool {
	if len(p) != 2 {
		return false
	}
	for _, c := range p {
		if c != color.Black && c != color.White {
			r, g, b, _ := c.RGBA()
			if !(r == g && g == b && (r == 0 || r == 0xffff)) {
				return false
			}
		}
	}
	return true
}
