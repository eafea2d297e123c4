package demos

import (
	"context"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/render/layout"
)

const qrRefresh = 30 * time.Second

// qrPayload is -text, or a URL for this host when it has an address.
func qrPayload(ctx context.Context, env app.Env) (payload, caption string) {
	if env.Options.Text != "" {
		return env.Options.Text, env.Options.Text
	}
	if env.IP != nil {
		ip, err := env.IP.IPAddress(ctx)
		if err == nil && ip != "" {
			return "http://" + ip + "/", ip
		}
		if err != nil {
			env.Logger.Errorf("qrcode", "%v", err)
		}
	}
	return "panels", "no network"
}

func qrCode(ctx context.Context, env app.Env) error {
	dev := env.Device
	face := render.DefaultFace()
	for {
		payload, caption := qrPayload(ctx, env)
		b := dev.Bounds()
		codeArea, captionArea := layout.SplitVertical(b, min(b.Dx(), b.Dy()))
		square := layout.FitSquare(codeArea)
		code, err := render.GenerateQRCodeImage(payload, square.Dx())
		if err != nil {
			return err
		}
		err = render.Draw(dev, func(c *render.Canvas) {
			c.Paste(square.Min, code)
			if captionArea.Dx() > 0 {
				c.TextCentered(layout.Inset(captionArea, 2), caption, face, render.White)
			}
		})
		if err != nil {
			return err
		}
		if err := app.Sleep(ctx, qrRefresh); err != nil {
			return err
		}
	}
}
