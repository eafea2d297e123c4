package demos

import (
	"context"
	"image"
	"math"
	"time"

	"golang.org/x/image/font"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/render/layout"
)

// analogMinHeight is the smallest display that gets a clock face.
const analogMinHeight = 64

func clock(ctx context.Context, env app.Env) error {
	dev := env.Device
	face := render.DefaultFace()
	for {
		now := time.Now()
		err := render.Draw(dev, func(c *render.Canvas) {
			if dev.Height() >= analogMinHeight {
				drawAnalogClock(c, now, face)
			} else {
				drawDigitalClock(c, now, face)
			}
		})
		if err != nil {
			return err
		}
		if err := app.Sleep(ctx, time.Until(now.Truncate(time.Second).Add(time.Second))); err != nil {
			return err
		}
	}
}

// hand is the end point of a clock hand of length l pointing at angle
// radians clockwise from twelve.
func hand(centre image.Point, angle, l float64) image.Point {
	return image.Pt(
		centre.X+int(math.Round(l*math.Sin(angle))),
		centre.Y-int(math.Round(l*math.Cos(angle))),
	)
}

func drawAnalogClock(c *render.Canvas, now time.Time, face font.Face) {
	b := c.Bounds()
	faceArea, side := layout.SplitVertical(b, b.Dy())
	dial := layout.Inset(layout.FitSquare(faceArea), 2)
	centre := layout.Center(dial)
	radius := float64(dial.Dx()) / 2

	c.Ellipse(dial, render.White, nil)
	for h := 0; h < 12; h++ {
		a := float64(h) * math.Pi / 6
		c.Line(hand(centre, a, radius-3), hand(centre, a, radius-1), render.White)
	}

	sec := float64(now.Second())
	minute := float64(now.Minute()) + sec/60
	hour := float64(now.Hour()%12) + minute/60
	c.Line(centre, hand(centre, hour*math.Pi/6, radius*0.5), render.White)
	c.Line(centre, hand(centre, minute*math.Pi/30, radius*0.75), render.White)
	c.Line(centre, hand(centre, sec*math.Pi/30, radius*0.9), named("red"))
	c.Ellipse(image.Rectangle{Min: centre.Sub(image.Pt(1, 1)), Max: centre.Add(image.Pt(2, 2))}, render.White, render.White)

	if side.Dx() < render.TextBBox("00:00:00", face).Dx() {
		return
	}
	date, tod := layout.SplitHorizontal(side, side.Dy()/2)
	c.TextCentered(date, now.Format("Mon 02 Jan"), face, render.White)
	c.TextCentered(tod, now.Format("15:04:05"), face, render.White)
}

func drawDigitalClock(c *render.Canvas, now time.Time, face font.Face) {
	b := c.Bounds()
	lineH := render.TextBBox("0", face).Dy()
	if b.Dy() < 2*lineH {
		c.TextCentered(b, now.Format("15:04:05"), face, render.White)
		return
	}
	date, tod := layout.SplitHorizontal(b, b.Dy()/2)
	c.TextCentered(date, now.Format("2006-01-02"), face, render.White)
	c.TextCentered(tod, now.Format("15:04:05"), face, render.White)
}
