package demos

import (
	"context"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/sprite"
)

// perfStatsEvery is how many frames pass between statistics lines.
const perfStatsEvery = 31

func perfloop(ctx context.Context, env app.Env) error {
	dev := env.Device
	c := render.NewCanvas(dev.Width(), dev.Height())
	drawPrimitives(c)
	frame := c.Image()

	env.Logger.Infof("perfloop", "testing display rendering performance on %s", dev)
	if err := dev.Display(frame); err != nil {
		return err
	}
	for i := 5; i > 0; i-- {
		env.Logger.Infof("perfloop", "starting in %d seconds...", i)
		if err := app.Sleep(ctx, time.Second); err != nil {
			return err
		}
	}

	regulator := sprite.NewFramerateRegulator(0)
	for ctx.Err() == nil {
		if err := regulator.Regulate(ctx, func() error { return dev.Display(frame) }); err != nil {
			return err
		}
		if regulator.Called()%perfStatsEvery == 0 {
			env.Logger.Infof("perfloop", "iter = %6d: render time = %.2f ms, frame rate = %.2f FPS",
				regulator.Called(),
				float64(regulator.AverageTransitTime().Microseconds())/1000,
				regulator.EffectiveFPS())
		}
	}
	return ctx.Err()
}
