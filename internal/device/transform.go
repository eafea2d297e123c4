package device

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Transform is how an emulator scales frames for viewing.
type Transform string

const (
	TransformNone        Transform = "none"
	TransformIdentity    Transform = "identity"
	TransformScale2x     Transform = "scale2x"
	TransformSmoothScale Transform = "smoothscale"
	TransformLEDMatrix   Transform = "led_matrix"
)

// Transforms lists the accepted transforms in flag order.
var Transforms = []Transform{TransformNone, TransformIdentity, TransformScale2x, TransformSmoothScale, TransformLEDMatrix}

func (t Transform) Valid() bool {
	for _, v := range Transforms {
		if t == v {
			return true
		}
	}
	return false
}

// EmulatorConfig is shared by the emulators.
type EmulatorConfig struct {
	Transform Transform
	Scale     int
}

func (c EmulatorConfig) validate() error {
	if !c.Transform.Valid() {
		return fmt.Errorf("unknown transform %q", c.Transform)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", c.Scale)
	}
	return nil
}

// Apply scales img for display. TransformNone ignores the scale factor.
func (c EmulatorConfig) Apply(img image.Image) *image.RGBA {
	scale := c.Scale
	if c.Transform == TransformNone || scale < 1 {
		scale = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	switch c.Transform {
	case TransformSmoothScale:
		xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	case TransformScale2x:
		scale2x(dst, img, scale)
	case TransformLEDMatrix:
		ledMatrix(dst, img, scale)
	default:
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}
	return dst
}

// scale2x doubles img with the EPX rule as many times as scale allows, then
// makes up any remainder with nearest neighbour.
func scale2x(dst *image.RGBA, img image.Image, scale int) {
	src := toRGBA(img)
	for f := 2; f <= scale; f *= 2 {
		src = epx(src)
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

func epx(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w*2, h*2))
	at := func(x, y int) color.RGBA {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		return src.RGBAAt(b.Min.X+x, b.Min.Y+y)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := at(x, y)
			a, bb, c, d := at(x, y-1), at(x+1, y), at(x-1, y), at(x, y+1)
			e0, e1, e2, e3 := p, p, p, p
			if c == a && c != d && a != bb {
				e0 = a
			}
			if a == bb && a != c && bb != d {
				e1 = bb
			}
			if d == c && d != bb && c != a {
				e2 = c
			}
			if bb == d && bb != a && d != c {
				e3 = d
			}
			dst.SetRGBA(2*x, 2*y, e0)
			dst.SetRGBA(2*x+1, 2*y, e1)
			dst.SetRGBA(2*x, 2*y+1, e2)
			dst.SetRGBA(2*x+1, 2*y+1, e3)
		}
	}
	return dst
}

// ledMatrix draws each pixel as a round lamp on black.
func ledMatrix(dst *image.RGBA, img image.Image, scale int) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	b := img.Bounds()
	r := float64(scale) / 2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			ox, oy := (x-b.Min.X)*scale, (y-b.Min.Y)*scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					fx, fy := float64(dx)+0.5-r, float64(dy)+0.5-r
					if fx*fx+fy*fy <= r*r {
						dst.Set(ox+dx, oy+dy, c)
					}
				}
			}
		}
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
