package demos

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/sprite"
)

type ball struct {
	w, h   float64
	radius float64
	x, y   float64
	vx, vy float64
	color  color.Color
}

func newBall(w, h int, radius float64, col color.Color) *ball {
	fw, fh := float64(w), float64(h)
	return &ball{
		w:      fw,
		h:      fh,
		radius: radius,
		x:      radius + rand.Float64()*max(fw-2*radius, 0),
		y:      radius + rand.Float64()*max(fh-2*radius, 0),
		vx:     (rand.Float64() - 0.5) * 10,
		vy:     (rand.Float64() - 0.5) * 10,
		color:  col,
	}
}

func (b *ball) move() {
	if b.x+b.radius >= b.w {
		b.vx = -math.Abs(b.vx)
	}
	if b.x-b.radius <= 0 {
		b.vx = math.Abs(b.vx)
	}
	if b.y+b.radius >= b.h {
		b.vy = -math.Abs(b.vy)
	}
	if b.y-b.radius <= 0 {
		b.vy = math.Abs(b.vy)
	}
	b.x += b.vx
	b.y += b.vy
}

func (b *ball) draw(c *render.Canvas) {
	r := image.Rect(
		int(b.x-b.radius), int(b.y-b.radius),
		int(b.x+b.radius)+1, int(b.y+b.radius)+1,
	)
	c.Ellipse(r, b.color, b.color)
}

func bounce(ctx context.Context, env app.Env) error {
	dev := env.Device
	palette := []color.Color{
		named("red"), named("orange"), named("yellow"),
		named("green"), named("blue"), named("magenta"),
	}
	balls := make([]*ball, 10)
	for i := range balls {
		balls[i] = newBall(dev.Width(), dev.Height(), float64(i)*1.5, palette[i%len(palette)])
	}

	face := render.DefaultFace()
	regulator := sprite.NewFramerateRegulator(0)
	fps := ""
	for ctx.Err() == nil {
		err := regulator.Regulate(ctx, func() error {
			if regulator.Called()%20 == 0 {
				fps = fmt.Sprintf("FPS: %0.3f", regulator.EffectiveFPS())
			}
			return render.Draw(dev, func(c *render.Canvas) {
				for _, b := range balls {
					b.move()
					b.draw(c)
				}
				c.Text(image.Point{}, fps, face, render.White)
			})
		})
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}
