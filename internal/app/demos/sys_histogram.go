package demos

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"time"

	"golang.org/x/image/font"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/system"
)

// Drawn for a 128x64 panel; larger displays get the same layout in the
// top left corner.
const (
	histRefresh = time.Second

	ramBarTop    = 15
	ramBarBottom = 25
	ramBarLeft   = 3
	ramBarRight  = 105

	thermoTop    = 3
	thermoBottom = 60
	// thermoFull is the temperature that fills the thermometer.
	thermoFull = 55.0

	histBottom = 60
	histTop    = 30
	histLeft   = 3
	histRight  = 105
)

// histogram is the sys_histogram demo's state between frames.
type histogram struct {
	times []int
	data  []int
	blink bool
	face  font.Face
}

func newHistogram() *histogram {
	h := &histogram{blink: true, face: render.DefaultFace()}
	x := 106
	for i := 0; i < 100; i++ {
		x -= 2
		if x > 2 {
			h.times = append(h.times, x)
		}
	}
	h.data = make([]int, len(h.times))
	for i := range h.data {
		h.data[i] = histBottom
	}
	return h
}

// scale maps percent onto the span from empty to full.
func scale(percent float64, empty, full int) int {
	return int((100-percent)*float64(empty-full)/100) + full
}

// push adds a load sample at the left of the graph and drops the oldest.
func (h *histogram) push(y int) {
	copy(h.data[1:], h.data[:len(h.data)-1])
	h.data[0] = y
}

func (h *histogram) draw(c *render.Canvas, up time.Duration, mem system.Memory, load system.Load, temp float64) {
	face := h.face

	c.Rectangle(c.Bounds(), render.White, nil)
	c.Rectangle(box(histLeft, histTop, histRight, histBottom), render.White, nil)
	c.Rectangle(box(110, thermoTop, 124, thermoBottom), render.White, nil)
	c.Rectangle(box(104, thermoTop, 110, thermoTop+8), nil, render.White)
	c.Text(image.Pt(105, thermoTop-1), "C", face, render.Black)

	c.Rectangle(box(ramBarLeft, ramBarTop, ramBarRight, ramBarBottom), render.White, nil)
	c.Text(image.Pt(ramBarRight-18, ramBarTop), "RAM", face, render.White)
	c.Text(image.Pt(3, 2), "Uptime: "+system.FormatClock(up), face, render.White)

	usedMB := mem.Used >> 20
	ramWidth := scale(mem.Percent(), ramBarLeft, ramBarRight)
	if ramWidth < ramBarRight {
		c.Rectangle(box(ramBarLeft, ramBarTop, ramWidth, ramBarBottom), nil, render.White)
		label := strconv.FormatUint(usedMB, 10)
		c.Text(image.Pt(ramWidth-render.TextBBox(label, face).Dx()-1, ramBarTop), label, face, render.Black)
	} else {
		c.Rectangle(box(ramBarLeft, ramBarTop, ramBarRight, ramBarBottom), nil, named("red"))
	}

	y := scale(float64(cpuPercent(load)), histBottom, histTop)
	if y <= histTop {
		y = histTop
		c.Text(image.Pt((histLeft+histRight)/2, (histTop+histBottom)/2), "WARNING!", face, render.White)
	}
	h.push(y)
	for i := 0; i+1 < len(h.times); i++ {
		c.Line(image.Pt(h.times[i+1], h.data[i+1]), image.Pt(h.times[i], h.data[i]), named("orange"))
	}
	c.Rectangle(box(histLeft, histTop, histLeft+27, histTop+13), render.White, render.Black)
	c.Text(image.Pt(histLeft+2, histTop+2), fmt.Sprintf("%.2f", load.One), face, render.White)

	h.drawThermometer(c, temp)
}

func (h *histogram) drawThermometer(c *render.Canvas, temp float64) {
	face := h.face
	label := strconv.Itoa(int(temp))
	top := thermoTop
	if temp > 0 {
		top = scale(temp/thermoFull*100, thermoBottom, thermoTop)
	}
	if top > thermoTop {
		c.Rectangle(box(112, top, 122, thermoBottom), nil, render.Gray(0x80))
		c.Rectangle(box(110, top, 124, top+10), nil, render.White)
		c.Text(image.Pt(112, top), label, face, render.Black)
		return
	}
	// Off the scale: flash the label.
	c.Rectangle(box(110, thermoTop, 124, thermoBottom), render.White, nil)
	if h.blink {
		c.Rectangle(box(112, thermoTop, 122, thermoBottom), nil, render.Gray(0x80))
		c.Rectangle(box(110, thermoTop, 124, thermoTop+10), nil, render.White)
		c.Text(image.Pt(112, thermoTop), label, face, render.Black)
	} else {
		c.Rectangle(box(110, thermoTop, 124, thermoTop+10), render.White, render.Black)
		c.Text(image.Pt(112, thermoTop), label, face, render.White)
	}
	h.blink = !h.blink
}

func sysHistogram(ctx context.Context, env app.Env) error {
	h := newHistogram()
	for {
		up, _ := system.Uptime()
		mem, _ := system.VirtualMemory()
		load, _ := system.LoadAverage()
		temp, err := system.CPUTemperature()
		if err != nil {
			temp = 0
		}
		err = render.Draw(env.Device, func(c *render.Canvas) {
			h.draw(c, up, mem, load, temp)
		})
		if err != nil {
			return err
		}
		if err := app.Sleep(ctx, histRefresh); err != nil {
			return err
		}
	}
}
