package demos

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
)

const greyShades = 16

// gradient is a left to right ramp from black to white.
func gradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		y := uint8(x * 255 / max(1, w-1))
		for row := 0; row < h; row++ {
			img.SetGray(x, row, color.Gray{Y: y})
		}
	}
	return img
}

func drawGreyBars(c *render.Canvas) {
	b := c.Bounds()
	barW := float64(b.Dx()) / greyShades
	for i := 0; i < greyShades; i++ {
		x0 := int(float64(i) * barW)
		x1 := int(float64(i+1) * barW)
		c.Rectangle(image.Rect(x0, 0, x1, b.Dy()), nil, render.Gray(uint8(i*greyShades)))
	}

	face := render.DefaultFace()
	size := render.TextBBox("greyscale", face).Size()
	left := (b.Dx() - size.X) / 2
	top := (b.Dy() - size.Y) / 2
	c.Rectangle(box(left-1, top, left+size.X, top+size.Y), nil, render.Black)
	c.Rectangle(b, render.White, nil)
	c.Text(image.Pt(left, top), "greyscale", face, render.White)
}

func greyscale(ctx context.Context, env app.Env) error {
	dev := env.Device
	ramp := gradient(dev.Width(), dev.Height())
	for {
		if err := dev.Display(ramp); err != nil {
			return err
		}
		if err := app.Sleep(ctx, 5*time.Second); err != nil {
			return err
		}
		if err := render.Draw(dev, drawGreyBars); err != nil {
			return err
		}
		if err := app.Sleep(ctx, 5*time.Second); err != nil {
			return err
		}
	}
}
