package demos

import (
	"context"
	"image"
	"time"

	"golang.org/x/image/font"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/compose"
	"github.com/rook-computer/panels/internal/device"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/scroll"
)

type title struct {
	song, artist string
}

var titles = []title{
	{"Bridge over troubled water", "Simon & Garfunkel"},
	{"Up", "R.E.M."},
	{"Wild Child", "Lou Reed & The Velvet Underground"},
	{"(Shake Shake Shake) Shake your body", "KC & The Sunshine Band"},
}

const (
	// scrollDelay is the number of ticks a title rests at either end.
	scrollDelay = 100
	titleTick   = 25 * time.Millisecond
	titleCycles = 3
)

func imageComposition(ctx context.Context, env app.Env) error {
	dev := env.Device
	face := render.DefaultFace()
	if dev.Height() >= 32 {
		face = render.FaceOrDefault("goregular", 12)
	}
	ic := compose.New(dev.Width(), dev.Height())
	for {
		for _, t := range titles {
			if err := playTitle(ctx, dev, ic, face, t); err != nil {
				return err
			}
		}
	}
}

// playTitle scrolls song and artist in step until the song has gone
// through titleCycles rounds.
func playTitle(ctx context.Context, dev device.Device, ic *compose.ImageComposition, face font.Face, t title) error {
	artistY := min(30, dev.Height()/2)
	song := compose.NewComposableImage(render.TextImage(t.song, face, render.White), image.Pt(0, 1))
	artist := compose.NewComposableImage(render.TextImage(t.artist, face, render.White), image.Pt(0, artistY))
	ic.AddImage(song)
	ic.AddImage(artist)
	defer ic.RemoveImage(artist)
	defer ic.RemoveImage(song)

	sync := scroll.NewSynchroniser()
	songScroller := scroll.NewForWidth(song, song.Width(), dev.Width(), scrollDelay, sync)
	artistScroller := scroll.NewForWidth(artist, artist.Width(), dev.Width(), scrollDelay, sync)
	defer songScroller.Close()
	defer artistScroller.Close()

	for songScroller.Cycles() < titleCycles {
		artistScroller.Tick()
		songScroller.Tick()
		if err := app.Sleep(ctx, titleTick); err != nil {
			return err
		}
		ic.Refresh()
		err := render.DrawOn(dev, ic.Image(), func(c *render.Canvas) {
			c.Rectangle(c.Bounds(), render.White, nil)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
