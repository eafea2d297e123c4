package device

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTransformSizes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	tests := []struct {
		cfg  EmulatorConfig
		want image.Point
	}{
		{EmulatorConfig{Transform: TransformNone, Scale: 4}, image.Pt(16, 8)},
		{EmulatorConfig{Transform: TransformIdentity, Scale: 3}, image.Pt(48, 24)},
		{EmulatorConfig{Transform: TransformScale2x, Scale: 2}, image.Pt(32, 16)},
		{EmulatorConfig{Transform: TransformScale2x, Scale: 3}, image.Pt(48, 24)},
		{EmulatorConfig{Transform: TransformScale2x, Scale: 4}, image.Pt(64, 32)},
		{EmulatorConfig{Transform: TransformSmoothScale, Scale: 2}, image.Pt(32, 16)},
		{EmulatorConfig{Transform: TransformLEDMatrix, Scale: 5}, image.Pt(80, 40)},
	}
	for _, tt := range tests {
		got := tt.cfg.Apply(src).Bounds().Size()
		if got != tt.want {
			t.Errorf("%s x%d: size = %v, want %v", tt.cfg.Transform, tt.cfg.Scale, got, tt.want)
		}
	}
}

func TestEPXKeepsSolidBlocks(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, white)
		}
	}
	out := epx(src)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if out.RGBAAt(x, y) != white {
				t.Fatalf("epx pixel (%d,%d) = %v, want white", x, y, out.RGBAAt(x, y))
			}
		}
	}
}

func TestLEDMatrixLeavesCornersDark(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{G: 0xff, A: 0xff})
	out := EmulatorConfig{Transform: TransformLEDMatrix, Scale: 8}.Apply(src)
	if c := out.RGBAAt(0, 0); c.G != 0 {
		t.Errorf("corner = %v, want black", c)
	}
	if c := out.RGBAAt(4, 4); c.G != 0xff {
		t.Errorf("centre = %v, want green", c)
	}
}

func TestEmulatorConfigValidation(t *testing.T) {
	cfg := Config{Width: 8, Height: 8}
	if _, err := NewCapture(cfg, EmulatorConfig{Transform: "blur", Scale: 1}, t.TempDir()); err == nil {
		t.Error("unknown transform accepted")
	}
	if _, err := NewCapture(cfg, EmulatorConfig{Transform: TransformNone, Scale: 0}, t.TempDir()); err == nil {
		t.Error("scale 0 accepted")
	}
}

func TestCaptureWritesOnePNGPerFrame(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCapture(Config{Width: 8, Height: 4}, EmulatorConfig{Transform: TransformIdentity, Scale: 2}, dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := c.Display(image.NewRGBA(c.Bounds())); err != nil {
			t.Fatalf("Display %d: %v", i, err)
		}
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "capture_*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("wrote %d files, want 3: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "capture_000001.png" {
		t.Errorf("first file = %s, want capture_000001.png", filepath.Base(files[0]))
	}
	if c.Count() != 3 {
		t.Errorf("Count() = %d, want 3", c.Count())
	}
}

func TestGifAnimMaxFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "anim.gif")
	g, err := NewGifAnim(Config{Width: 8, Height: 8}, EmulatorConfig{Transform: TransformNone, Scale: 1}, GifAnimOptions{
		Path:      path,
		Duration:  0.05,
		MaxFrames: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	frame := image.NewRGBA(g.Bounds())
	if err := g.Display(frame); err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if err := g.Display(frame); !errors.Is(err, ErrDone) {
		t.Fatalf("frame 2 = %v, want ErrDone", err)
	}
	if err := g.Display(frame); !errors.Is(err, ErrDone) {
		t.Fatalf("frame 3 = %v, want ErrDone", err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("gif has %d frames, want 2", len(anim.Image))
	}
	if anim.Delay[0] != 5 {
		t.Errorf("delay = %d, want 5", anim.Delay[0])
	}
}

func TestGifAnimWritesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anim.gif")
	g, err := NewGifAnim(Config{Width: 4, Height: 4}, EmulatorConfig{Transform: TransformIdentity, Scale: 2}, GifAnimOptions{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("gif written before Close: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("gif not written on Close: %v", err)
	}
}

func TestWebHandler(t *testing.T) {
	w, err := NewWeb(Config{Width: 8, Height: 8}, EmulatorConfig{Transform: TransformIdentity, Scale: 2}, "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(w.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("frame before Display: status %d, want 503", resp.StatusCode)
	}

	if err := w.Clear(); err != nil {
		t.Fatal(err)
	}
	resp, err = http.Get(srv.URL + "/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("frame: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if img.Bounds().Size() != image.Pt(16, 16) {
		t.Errorf("frame size = %v, want 16x16", img.Bounds().Size())
	}

	for path, want := range map[string]string{"/": "<img", "/healthz": "ok"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if !strings.Contains(string(body), want) {
			t.Errorf("GET %s body = %q, want it to contain %q", path, body, want)
		}
	}

	resp, err = http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /nope status %d, want 404", resp.StatusCode)
	}
}

func TestWebDisplayAPI(t *testing.T) {
	w, err := NewWeb(Config{Width: 16, Height: 8, Mode: ModeL}, EmulatorConfig{Transform: TransformIdentity, Scale: 3}, "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(w.Handler())
	defer srv.Close()
	if err := w.Clear(); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/api/v1/display")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var got displayResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := displayResponse{Display: "web", Width: 16, Height: 8, Mode: ModeL, Transform: TransformIdentity, Scale: 3, Frames: 1}
	if got != want {
		t.Errorf("display = %+v, want %+v", got, want)
	}

	resp2, err := http.Post(srv.URL+"/api/v1/display", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	var apiErr apiError
	if err := json.NewDecoder(resp2.Body).Decode(&apiErr); err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != http.StatusMethodNotAllowed || apiErr.Error != "method_not_allowed" {
		t.Errorf("POST = %d %+v", resp2.StatusCode, apiErr)
	}
}

func TestWebStartStop(t *testing.T) {
	w, err := NewWeb(Config{Width: 8, Height: 8}, EmulatorConfig{Transform: TransformNone, Scale: 1}, "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	resp, err := http.Get("http://" + w.ListenAddr() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status %d", resp.StatusCode)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(ctx); err == nil {
		t.Error("Start after Close succeeded")
	}
}
