// Package demos holds the programs panels can run. Each one draws on
// env.Device until its context is cancelled.
package demos

import (
	"image"
	"image/color"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
)

// All returns every demo, in no particular order.
func All() []app.Demo {
	return []app.Demo{
		app.NewDemo("10-print", "random maze of slashes on a terminal", tenPrint),
		app.NewDemo("bitstamp_ticker", "Bitstamp BTC and LTC prices, refreshed every minute", bitstampTicker),
		app.NewDemo("bounce", "coloured balls bouncing around the screen", bounce),
		app.NewDemo("clock", "analog clock, or a digital one on short displays", clock),
		app.NewDemo("crawl", "vertical text crawl over a tall viewport", crawl),
		app.NewDemo("greyscale", "gradient and 16 grey bars", greyscale),
		app.NewDemo("image_composition", "scrolling song and artist titles", imageComposition),
		app.NewDemo("matrix", "digital rain", matrix),
		app.NewDemo("perfloop", "display rendering benchmark", perfloop),
		app.NewDemo("qrcode", "QR code of -text or the device URL", qrCode),
		app.NewDemo("savepoint", "nested boxes with history savepoints", savepoint),
		app.NewDemo("sys_histogram", "uptime, RAM bar, load histogram and thermometer", sysHistogram),
		app.NewDemo("sys_info", "CPU, memory, disk, network and IP address", sysInfo),
	}
}

// box is the rectangle with inclusive corners (x0, y0) and (x1, y1).
func box(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(x0, y0, x1+1, y1+1)
}

func named(name string) color.RGBA {
	c, err := render.ParseColor(name)
	if err != nil {
		panic(err)
	}
	return c
}
