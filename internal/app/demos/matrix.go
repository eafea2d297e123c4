package demos

import (
	"context"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/sprite"
)

// trail is the colour of each drop from its head upwards.
var trail = []color.RGBA{
	{154, 173, 154, 0xff},
	{0, 255, 0, 0xff},
	{0, 235, 0, 0xff},
	{0, 220, 0, 0xff},
	{0, 185, 0, 0xff},
	{0, 165, 0, 0xff},
	{0, 128, 0, 0xff},
	{0, 0, 0, 0xff},
	{154, 173, 154, 0xff},
	{0, 145, 0, 0xff},
	{0, 125, 0, 0xff},
	{0, 100, 0, 0xff},
	{0, 80, 0, 0xff},
	{0, 60, 0, 0xff},
	{0, 40, 0, 0xff},
	{0, 0, 0, 0xff},
}

type drop struct {
	x     int
	y     float64
	speed float64
}

func matrix(ctx context.Context, env app.Env) error {
	dev := env.Device
	w, h := dev.Width(), dev.Height()
	maxDrops := w * 8
	var drops []*drop
	regulator := sprite.NewFramerateRegulator(10)

	for tick := 1; ; tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := regulator.Regulate(ctx, func() error {
			return render.Draw(dev, func(c *render.Canvas) {
				for _, d := range drops {
					y := int(d.y)
					for _, col := range trail {
						if y >= 0 && y < h {
							c.Point(image.Pt(d.x, y), col)
						}
						y--
					}
					d.y += d.speed
				}
			})
		})
		if err != nil {
			return err
		}

		if tick%5 == 0 || tick%3 == 0 {
			drops = append(drops, &drop{
				x:     rand.IntN(w + 1),
				speed: rand.NormFloat64()*0.6 + 1.2,
			})
		}
		if len(drops) > maxDrops {
			drops = drops[len(drops)-maxDrops:]
		}
	}
}
