package demos

import (
	"image"

	"github.com/rook-computer/panels/internal/render"
)

// drawPrimitives paints a row of shapes and two words of text.
func drawPrimitives(c *render.Canvas) {
	const padding, shapeWidth = 2, 20
	face := render.DefaultFace()
	b := c.Bounds()
	top := padding
	bottom := b.Dy() - padding - 1

	c.Rectangle(b, render.White, render.Black)
	x := padding
	c.Ellipse(box(x, top, x+shapeWidth, bottom), named("red"), render.Black)
	x += shapeWidth + padding
	c.Rectangle(box(x, top, x+shapeWidth, bottom), named("blue"), render.Black)
	x += shapeWidth + padding
	c.Polygon([]image.Point{
		{x, bottom},
		{x + shapeWidth/2, top},
		{x + shapeWidth, bottom},
	}, named("green"), render.Black)
	x += shapeWidth + padding
	c.Line(image.Pt(x, bottom), image.Pt(x+shapeWidth, top), named("yellow"))
	c.Line(image.Pt(x, top), image.Pt(x+shapeWidth, bottom), named("yellow"))
	x += shapeWidth + padding
	c.Text(image.Pt(x, top), "Hello", face, named("cyan"))
	c.Text(image.Pt(x, top+16), "World!", face, named("purple"))
}
