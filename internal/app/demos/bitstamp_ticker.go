package demos

import (
	"context"
	"image"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/feed"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/state"
)

var bitstampURL = feed.DefaultBitstampURL

const (
	tickerRefresh = 60 * time.Second
	tickerRedraw  = time.Second
	tickerRow     = 14
)

// tickerLines renders a quote as the two display rows.
func tickerLines(pair string, q state.Quote) [2]string {
	switch q.Phase {
	case state.LIVE:
		return q.Ticker.Lines()
	case state.STALE:
		lines := q.Ticker.Lines()
		lines[0] += " *"
		return lines
	case state.ERROR:
		return [2]string{pair + " n/a", "fetch failed"}
	default:
		return [2]string{pair, "loading..."}
	}
}

func bitstampTicker(ctx context.Context, env app.Env) error {
	dev := env.Device
	pairs := []string{"BTC/USD"}
	if dev.Height() >= 64 {
		pairs = append(pairs, "LTC/USD")
	}

	client := feed.NewBitstampClient()
	client.BaseURL = bitstampURL
	store := state.NewStore()
	pollCtx, stop := context.WithCancel(ctx)
	defer stop()
	go feed.Poll(pollCtx, client, pairs, tickerRefresh, store, env.Logger)

	face := render.FaceOrDefault("gomono", 11)
	for {
		snap := store.Snapshot()
		err := render.Draw(dev, func(c *render.Canvas) {
			for i, pair := range pairs {
				lines := tickerLines(pair, snap.Quote(pair))
				c.Text(image.Pt(0, 2*i*tickerRow), lines[0], face, render.White)
				c.Text(image.Pt(0, (2*i+1)*tickerRow), lines[1], face, render.White)
			}
		})
		if err != nil {
			return err
		}
		if err := app.Sleep(ctx, tickerRedraw); err != nil {
			return err
		}
	}
}
