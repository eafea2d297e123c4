package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/rook-computer/panels/internal/device"
)

func isWhite(c *Canvas, x, y int) bool {
	return c.Image().RGBAAt(x, y) == White
}

func TestRectangle(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Rectangle(image.Rect(2, 2, 6, 6), White, nil)
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 2, true},
		{5, 5, true},
		{5, 2, true},
		{3, 3, false},
		{6, 6, false},
		{1, 1, false},
	}
	for _, tt := range tests {
		if got := isWhite(c, tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) white = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	c.Rectangle(image.Rect(2, 2, 6, 6), nil, White)
	if !isWhite(c, 3, 3) {
		t.Error("fill did not cover the inside")
	}
}

func TestLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(image.Pt(0, 0), image.Pt(3, 0), White)
	for x := 0; x <= 3; x++ {
		if !isWhite(c, x, 0) {
			t.Errorf("(%d,0) not drawn", x)
		}
	}
	if isWhite(c, 4, 0) {
		t.Error("line overran its end")
	}

	c.Line(image.Pt(9, 9), image.Pt(5, 7), White)
	if !isWhite(c, 9, 9) || !isWhite(c, 5, 7) {
		t.Error("diagonal line missing an end point")
	}
	// Off-canvas lines are clipped.
	c.Line(image.Pt(-5, -5), image.Pt(20, 20), White)
}

func TestEllipse(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Ellipse(image.Rect(0, 0, 10, 10), nil, White)
	if !isWhite(c, 5, 5) {
		t.Error("centre not filled")
	}
	if isWhite(c, 0, 0) || isWhite(c, 9, 9) {
		t.Error("corner filled")
	}

	c = NewCanvas(10, 10)
	c.Ellipse(image.Rect(0, 0, 10, 10), White, nil)
	if isWhite(c, 5, 5) {
		t.Error("outline-only ellipse filled its centre")
	}
	if !isWhite(c, 5, 0) || !isWhite(c, 0, 5) {
		t.Error("outline missing at the top or left")
	}
}

func TestPolygon(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Polygon([]image.Point{{0, 0}, {8, 0}, {0, 8}}, nil, White)
	if !isWhite(c, 1, 1) {
		t.Error("triangle not filled near its right angle")
	}
	if isWhite(c, 7, 7) {
		t.Error("fill leaked past the hypotenuse")
	}
}

func TestBitmap(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 2, 1))
	mask.SetGray(0, 0, color.Gray{Y: 0xff})
	red := color.RGBA{R: 0xff, A: 0xff}

	c := NewCanvas(10, 10)
	c.Bitmap(image.Pt(3, 3), mask, red)
	if got := c.Image().RGBAAt(3, 3); got != red {
		t.Errorf("(3,3) = %v, want red", got)
	}
	if got := c.Image().RGBAAt(4, 3); got != Black {
		t.Errorf("(4,3) = %v, want black", got)
	}
}

func TestTextBBox(t *testing.T) {
	face := DefaultFace()
	tests := []struct {
		s    string
		want image.Rectangle
	}{
		{"", image.Rectangle{}},
		{"hello", image.Rect(0, 0, 35, 13)},
		{"ab\ncde", image.Rect(0, 0, 21, 26)},
	}
	for _, tt := range tests {
		if got := TextBBox(tt.s, face); got != tt.want {
			t.Errorf("TextBBox(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestTextStaysInBBox(t *testing.T) {
	c := NewCanvas(64, 32)
	at := image.Pt(4, 6)
	c.Text(at, "Hi", nil, White)
	box := TextBBox("Hi", DefaultFace()).Add(at)

	lit := 0
	b := c.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.Image().RGBAAt(x, y) == Black {
				continue
			}
			if !image.Pt(x, y).In(box) {
				t.Fatalf("pixel (%d,%d) drawn outside %v", x, y, box)
			}
			lit++
		}
	}
	if lit == 0 {
		t.Error("no text drawn")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"white", White, false},
		{"Yellow", color.RGBA{R: 0xff, G: 0xff, A: 0xff}, false},
		{"grey", Gray(0x80), false},
		{"#102030", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"#12", color.RGBA{}, true},
		{"#gg0000", color.RGBA{}, true},
		{"chartreuse", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDrawDisplaysFrame(t *testing.T) {
	dev, err := device.NewDummy(device.Config{Width: 16, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	err = Draw(dev, func(c *Canvas) {
		c.Rectangle(c.Bounds(), White, nil)
	})
	if err != nil {
		t.Fatal(err)
	}
	if dev.Frames() != 1 {
		t.Fatalf("frames = %d, want 1", dev.Frames())
	}
	r, g, b, _ := dev.Image().At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Error("outline missing from the displayed frame")
	}

	background := image.NewRGBA(dev.Bounds())
	for i := range background.Pix {
		background.Pix[i] = 0xff
	}
	if err := DrawOn(dev, background, func(c *Canvas) {}); err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := dev.Image().At(8, 4).RGBA(); r != 0xffff {
		t.Error("background not carried into the frame")
	}
}

func TestLoadFace(t *testing.T) {
	face, err := LoadFace("goregular", 12)
	if err != nil {
		t.Fatal(err)
	}
	if TextBBox("abc", face).Dx() == 0 {
		t.Error("loaded face measures nothing")
	}
	if _, err := LoadFace("comic", 12); err == nil {
		t.Error("unknown font loaded")
	}
	if FaceOrDefault("comic", 12) != DefaultFace() {
		t.Error("FaceOrDefault did not fall back")
	}
}

func TestLoadTTF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	face, err := LoadTTF(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if face.Metrics().Ascent <= 0 {
		t.Error("face has no ascent")
	}
	if _, err := LoadTTF(filepath.Join(t.TempDir(), "missing.ttf"), 10); err == nil {
		t.Error("missing file loaded")
	}
}

func TestGenerateQRCodeImage(t *testing.T) {
	if _, err := GenerateQRCodeImage("", 64); err == nil {
		t.Error("empty payload accepted")
	}
	img, err := GenerateQRCodeImage("http://192.168.1.2/", 64)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() < 64 || b.Dx() != b.Dy() {
		t.Errorf("bounds = %v, want a square of at least 64", b)
	}
}

func TestTextImage(t *testing.T) {
	img := TextImage("abc", DefaultFace(), White)
	if got := img.Bounds(); got != image.Rect(0, 0, 21, 13) {
		t.Errorf("bounds = %v", got)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("background is not transparent")
	}
}
