// Package render is the drawing surface the demos paint frames on before
// they are handed to a device.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/rook-computer/panels/internal/device"
)

// Canvas wraps an RGBA frame the size of a device. Rectangles follow the
// image package convention: Min is inclusive, Max is exclusive.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a black canvas of w x h pixels.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	c.Clear(color.Black)
	return c
}

// NewCanvasFrom returns a canvas holding a copy of background.
func NewCanvasFrom(background image.Image) *Canvas {
	r := background.Bounds()
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))}
	draw.Draw(c.img, c.img.Bounds(), background, r.Min, draw.Src)
	return c
}

// Draw hands fn a fresh black canvas of the device size and displays the
// result once fn returns.
func Draw(dev device.Device, fn func(c *Canvas)) error {
	c := NewCanvas(dev.Width(), dev.Height())
	fn(c)
	return dev.Display(c.img)
}

// DrawOn is Draw starting from a copy of background instead of black.
func DrawOn(dev device.Device, background image.Image, fn func(c *Canvas)) error {
	c := NewCanvasFrom(background)
	fn(c)
	return dev.Display(c.img)
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Point sets a single pixel.
func (c *Canvas) Point(p image.Point, col color.Color) {
	if p.In(c.img.Bounds()) {
		c.img.Set(p.X, p.Y, col)
	}
}

// Rectangle draws r filled with fill and framed by a one pixel outline.
// Either colour may be nil.
func (c *Canvas) Rectangle(r image.Rectangle, outline, fill color.Color) {
	r = r.Canon()
	if fill != nil {
		draw.Draw(c.img, r, image.NewUniform(fill), image.Point{}, draw.Over)
	}
	if outline == nil || r.Empty() {
		return
	}
	src := image.NewUniform(outline)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(c.img, e, src, image.Point{}, draw.Over)
	}
}

// Ellipse draws the ellipse inscribed in r.
func (c *Canvas) Ellipse(r image.Rectangle, outline, fill color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	inside := func(x, y int, rx, ry float64) bool {
		if rx <= 0 || ry <= 0 {
			return false
		}
		dx := (float64(x) + 0.5 - cx) / rx
		dy := (float64(y) + 0.5 - cy) / ry
		return dx*dx+dy*dy <= 1
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !inside(x, y, rx, ry) {
				continue
			}
			edge := !inside(x, y, rx-1, ry-1)
			switch {
			case edge && outline != nil:
				c.Point(image.Pt(x, y), outline)
			case fill != nil:
				c.Point(image.Pt(x, y), fill)
			}
		}
	}
}

// Line draws a one pixel line from p0 to p1, both ends included.
func (c *Canvas) Line(p0, p1 image.Point, col color.Color) {
	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	e := dx + dy
	x, y := p0.X, p0.Y
	for {
		c.Point(image.Pt(x, y), col)
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// Polygon draws the closed polygon through pts. The fill uses the even-odd
// rule sampled at pixel centres.
func (c *Canvas) Polygon(pts []image.Point, outline, fill color.Color) {
	if len(pts) < 2 {
		return
	}
	if fill != nil && len(pts) > 2 {
		c.fillPolygon(pts, fill)
	}
	if outline != nil {
		for i := range pts {
			c.Line(pts[i], pts[(i+1)%len(pts)], outline)
		}
	}
}

func (c *Canvas) fillPolygon(pts []image.Point, col color.Color) {
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	var xs []float64
	for y := minY; y <= maxY; y++ {
		fy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			ay, by := float64(a.Y), float64(b.Y)
			if (ay <= fy) == (by <= fy) {
				continue
			}
			t := (fy - ay) / (by - ay)
			xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			x1 := int(math.Floor(xs[i+1] - 0.5))
			for x := x0; x <= x1; x++ {
				c.Point(image.Pt(x, y), col)
			}
		}
	}
}

// Bitmap paints col through mask at p. The mask's brightness is used as
// coverage, so a white-on-black glyph image draws just the glyph.
func (c *Canvas) Bitmap(p image.Point, mask image.Image, col color.Color) {
	mr := mask.Bounds()
	alpha := image.NewAlpha(image.Rect(0, 0, mr.Dx(), mr.Dy()))
	for y := 0; y < mr.Dy(); y++ {
		for x := 0; x < mr.Dx(); x++ {
			g := color.GrayModel.Convert(mask.At(mr.Min.X+x, mr.Min.Y+y)).(color.Gray)
			alpha.SetAlpha(x, y, color.Alpha{A: g.Y})
		}
	}
	dst := image.Rectangle{Min: p, Max: p.Add(mr.Size())}
	draw.DrawMask(c.img, dst, image.NewUniform(col), image.Point{}, alpha, image.Point{}, draw.Over)
}

// Paste composites img with its top left corner at p.
func (c *Canvas) Paste(p image.Point, img image.Image) {
	r := img.Bounds()
	dst := image.Rectangle{Min: p, Max: p.Add(r.Size())}
	draw.Draw(c.img, dst, img, r.Min, draw.Over)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
