package demos

import (
	"context"
	"image"
	"strings"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/virtual"
)

const blurb = `


   Episode IV:
   A NEW HOPE

It is a period of
civil war. Rebel
spaceships, striking
from a hidden base,
have won their first
victory against the
evil Galactic Empire.

During the battle,
Rebel spies managed
to steal secret plans
to the Empire's ulti-
mate weapon, the
DEATH STAR, an armor-
ed space station with
enough power to des-
troy an entire planet.

Pursued by the
Empire's sinister
agents, Princess Leia
races home aboard her
starship, custodian
of the stolen plans
that can save her
people and restore
freedom to the
galaxy....
`

const (
	crawlHeight = 768
	crawlLine   = 12
	crawlTop    = 40
	crawlSteps  = 450
	crawlStep   = 10 * time.Millisecond
)

func crawl(ctx context.Context, env app.Env) error {
	face := render.DefaultFace()
	vp, err := virtual.NewViewport(env.Device, env.Device.Width(), crawlHeight)
	if err != nil {
		return err
	}
	for {
		err := render.Draw(vp, func(c *render.Canvas) {
			c.Text(image.Pt(0, 0), "A long time ago", face, render.White)
			c.Text(image.Pt(0, crawlLine), "in a galaxy far", face, render.White)
			c.Text(image.Pt(0, 2*crawlLine), "far away....", face, render.White)
		})
		if err != nil {
			return err
		}
		if err := app.Sleep(ctx, 5*time.Second); err != nil {
			return err
		}

		logo := render.FaceOrDefault("gobold", 16)
		err = render.Draw(vp, func(c *render.Canvas) {
			c.TextCentered(image.Rect(0, 0, c.Bounds().Dx(), crawlTop), "STAR WARS", logo, named("yellow"))
			for i, line := range strings.Split(blurb, "\n") {
				c.Text(image.Pt(0, crawlTop+i*crawlLine), line, face, render.White)
			}
		})
		if err != nil {
			return err
		}
		if err := app.Sleep(ctx, 2*time.Second); err != nil {
			return err
		}

		for y := 0; y < crawlSteps; y++ {
			if err := vp.SetPosition(image.Pt(0, y)); err != nil {
				return err
			}
			if err := app.Sleep(ctx, crawlStep); err != nil {
				return err
			}
		}
	}
}
