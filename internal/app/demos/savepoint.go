package demos

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/virtual"
)

func renderBox(c *render.Canvas, idx int, col color.Color) {
	face := render.DefaultFace()
	message := fmt.Sprintf("Nesting level: %d", idx)
	size := render.TextBBox(message, face).Size()
	left, top := idx*4, idx*4
	c.Rectangle(box(left, top, left+size.X+2, top+size.Y+2), render.White, render.Black)
	c.Text(image.Pt(left+2, top+1), message, face, col)
}

func savepoint(ctx context.Context, env app.Env) error {
	colors := []color.Color{
		named("red"), named("green"), named("blue"),
		named("yellow"), named("magenta"), named("cyan"),
	}
	hist := virtual.NewHistory(env.Device)
	pause := func() error { return app.Sleep(ctx, time.Second) }

	for {
		// Each box on a fresh canvas.
		for idx, col := range colors {
			if err := render.Draw(hist, func(c *render.Canvas) { renderBox(c, idx, col) }); err != nil {
				return err
			}
			hist.Savepoint()
			if err := pause(); err != nil {
				return err
			}
		}
		for hist.Len() > 0 {
			// Skips every other savepoint.
			if err := hist.Restore(1); err != nil {
				return err
			}
			if err := pause(); err != nil {
				return err
			}
		}

		// The same canvas throughout, so the boxes pile up.
		c := render.NewCanvas(hist.Width(), hist.Height())
		for idx, col := range colors {
			renderBox(c, idx, col)
			if err := hist.Display(c.Image()); err != nil {
				return err
			}
			hist.Savepoint()
			if err := pause(); err != nil {
				return err
			}
		}
		for hist.Len() > 0 {
			if err := hist.Restore(0); err != nil {
				return err
			}
			if err := pause(); err != nil {
				return err
			}
		}
	}
}
