package demos

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/device"
	"github.com/rook-computer/panels/internal/feed"
	"github.com/rook-computer/panels/internal/opts"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/state"
	"github.com/rook-computer/panels/internal/system"
)

func fakeBitstamp(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"last": "2300.00", "high": "2400.00", "low": "2200.00", "volume": "1", "timestamp": "1500000000"}`)
	}))
	t.Cleanup(srv.Close)
	old := bitstampURL
	bitstampURL = srv.URL
	t.Cleanup(func() { bitstampURL = old })
}

func TestAllNamesUnique(t *testing.T) {
	all := All()
	if len(all) != 13 {
		t.Errorf("All() has %d demos, want 13", len(all))
	}
	reg := app.NewRegistry(all...)
	if got := len(reg.Names()); got != len(all) {
		t.Errorf("registry holds %d names for %d demos", got, len(all))
	}
	for _, d := range all {
		if app.Description(d) == "" {
			t.Errorf("%s has no description", d.Name())
		}
	}
}

// TestDemosDraw runs every demo briefly and expects at least one frame and
// a clean stop.
func TestDemosDraw(t *testing.T) {
	fakeBitstamp(t)
	sizes := []image.Point{{128, 64}, {32, 16}}
	for _, size := range sizes {
		for _, demo := range All() {
			t.Run(fmt.Sprintf("%s/%dx%d", demo.Name(), size.X, size.Y), func(t *testing.T) {
				dev, err := device.NewDummy(device.Config{Width: size.X, Height: size.Y, Mode: device.ModeRGB})
				if err != nil {
					t.Fatal(err)
				}
				env := app.Env{
					Device:  dev,
					Options: opts.Options{Text: "hello"},
					Logger:  app.NoopLogger{},
				}
				ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
				defer cancel()
				err = demo.Run(ctx, env)
				if !errors.Is(err, context.DeadlineExceeded) {
					t.Errorf("Run() = %v, want the context error", err)
				}
				if dev.Frames() == 0 {
					t.Error("no frame displayed")
				}
			})
		}
	}
}

func TestDemoStopsOnDeviceError(t *testing.T) {
	dev, err := device.NewDummy(device.Config{Width: 128, Height: 64})
	if err != nil {
		t.Fatal(err)
	}
	_ = dev.Close()
	env := app.Env{Device: dev, Logger: app.NoopLogger{}}
	if err := clock(context.Background(), env); !errors.Is(err, device.ErrClosed) {
		t.Errorf("clock on a closed device = %v, want ErrClosed", err)
	}
}

func TestTickerLines(t *testing.T) {
	ticker := feed.Ticker{Pair: "BTC/USD", Last: "2300.00", High: "2400.00", Low: "2200.00"}
	tests := []struct {
		q    state.Quote
		want [2]string
	}{
		{state.Quote{Phase: state.LOADING}, [2]string{"BTC/USD", "loading..."}},
		{state.Quote{Phase: state.LIVE, Ticker: ticker}, [2]string{"BTC/USD 2300.00", "24h Hi 2400.00 Lo 2200.00"}},
		{state.Quote{Phase: state.STALE, Ticker: ticker}, [2]string{"BTC/USD 2300.00 *", "24h Hi 2400.00 Lo 2200.00"}},
		{state.Quote{Phase: state.ERROR, Err: "timeout"}, [2]string{"BTC/USD n/a", "fetch failed"}},
	}
	for _, tt := range tests {
		if got := tickerLines("BTC/USD", tt.q); got != tt.want {
			t.Errorf("%s: tickerLines = %q, want %q", tt.q.Phase, got, tt.want)
		}
	}
}

func TestHistogram(t *testing.T) {
	h := newHistogram()
	if len(h.times) != 51 || h.times[0] != 104 || h.times[len(h.times)-1] != 4 {
		t.Fatalf("times = %v", h.times)
	}
	h.push(40)
	h.push(35)
	if h.data[0] != 35 || h.data[1] != 40 || h.data[2] != histBottom {
		t.Errorf("data after two samples = %v", h.data[:3])
	}
	if len(h.data) != len(h.times) {
		t.Errorf("history grew to %d", len(h.data))
	}

	tests := []struct {
		percent     float64
		empty, full int
		want        int
	}{
		{0, histBottom, histTop, histBottom},
		{100, histBottom, histTop, histTop},
		{50, histBottom, histTop, 45},
		{0, ramBarLeft, ramBarRight, ramBarLeft},
		{100, ramBarLeft, ramBarRight, ramBarRight},
	}
	for _, tt := range tests {
		if got := scale(tt.percent, tt.empty, tt.full); got != tt.want {
			t.Errorf("scale(%v, %d, %d) = %d, want %d", tt.percent, tt.empty, tt.full, got, tt.want)
		}
	}
}

func TestThermometerBlinks(t *testing.T) {
	h := newHistogram()
	c := render.NewCanvas(128, 64)
	h.drawThermometer(c, 70)
	first := c.Image().RGBAAt(116, 20)
	if h.blink {
		t.Fatal("blink state did not flip")
	}
	c = render.NewCanvas(128, 64)
	h.drawThermometer(c, 70)
	if second := c.Image().RGBAAt(116, 20); second == first {
		t.Errorf("over temperature column did not change between frames: %v", first)
	}

	h = newHistogram()
	h.drawThermometer(render.NewCanvas(128, 64), 30)
	if !h.blink {
		t.Error("a normal reading toggled the blink state")
	}
}

func TestCPUPercent(t *testing.T) {
	if got := cpuPercent(system.Load{}); got != 0 {
		t.Errorf("idle = %d", got)
	}
	if got := cpuPercent(system.Load{One: 1e6}); got != 100 {
		t.Errorf("overloaded = %d, want 100", got)
	}
}

func TestQRPayload(t *testing.T) {
	env := app.Env{Options: opts.Options{Text: "https://example.com"}, Logger: app.NoopLogger{}}
	payload, caption := qrPayload(context.Background(), env)
	if payload != "https://example.com" || caption != payload {
		t.Errorf("qrPayload = %q, %q", payload, caption)
	}
	env.Options.Text = ""
	if payload, _ := qrPayload(context.Background(), env); payload != "panels" {
		t.Errorf("qrPayload without text or IP checker = %q", payload)
	}
}

func TestBox(t *testing.T) {
	if got, want := box(1, 2, 3, 4), image.Rect(1, 2, 4, 5); got != want {
		t.Errorf("box = %v, want %v", got, want)
	}
}
