package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/rook-computer/panels/internal/scroll"
)

// stripes is w x h with the red channel of each pixel set to its column.
func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: 0xff, A: 0xff})
		}
	}
	return img
}

func TestRefreshOffset(t *testing.T) {
	ic := New(8, 4)
	ci := NewComposableImage(stripes(20, 2), image.Pt(0, 1))
	ic.AddImage(ci)

	ci.SetOffset(image.Pt(5, 0))
	ic.Refresh()
	frame := ic.Image()
	if got := frame.RGBAAt(0, 1).R; got != 5 {
		t.Errorf("(0,1) shows column %d, want 5", got)
	}
	if got := frame.RGBAAt(7, 2).R; got != 12 {
		t.Errorf("(7,2) shows column %d, want 12", got)
	}
	if got := frame.RGBAAt(0, 0); got != (color.RGBA{A: 0xff}) {
		t.Errorf("(0,0) = %v, want background", got)
	}
	if got := frame.RGBAAt(0, 3); got != (color.RGBA{A: 0xff}) {
		t.Errorf("(0,3) = %v, want background below the layer", got)
	}
}

func TestRefreshClips(t *testing.T) {
	tests := []struct {
		name     string
		pos      image.Point
		offset   image.Point
		x        int
		wantCol  uint8
		wantDraw bool
	}{
		{"end of source", image.Pt(0, 0), image.Pt(16, 0), 3, 19, true},
		{"past end of source", image.Pt(0, 0), image.Pt(16, 0), 4, 0, false},
		{"right of frame", image.Pt(6, 0), image.Pt(0, 0), 7, 1, true},
		{"left of frame", image.Pt(-3, 0), image.Pt(0, 0), 0, 3, true},
		{"left of frame with offset", image.Pt(-3, 0), image.Pt(2, 0), 0, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic := New(8, 2)
			ci := NewComposableImage(stripes(20, 2), tt.pos)
			ci.SetOffset(tt.offset)
			ic.AddImage(ci)
			ic.Refresh()
			got := ic.Image().RGBAAt(tt.x, 0)
			drawn := got.G == 0xff
			if drawn != tt.wantDraw {
				t.Fatalf("(%d,0) drawn = %v, want %v", tt.x, drawn, tt.wantDraw)
			}
			if drawn && got.R != tt.wantCol {
				t.Errorf("(%d,0) shows column %d, want %d", tt.x, got.R, tt.wantCol)
			}
		})
	}
}

func TestAddRemove(t *testing.T) {
	ic := New(4, 4)
	a := NewComposableImage(stripes(4, 4), image.Point{})
	b := NewComposableImage(image.NewUniform(color.White), image.Point{})
	ic.AddImage(a)
	ic.AddImage(a)
	ic.AddImage(b)
	if ic.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ic.Len())
	}

	// b is on top.
	ic.Refresh()
	if got := ic.Image().RGBAAt(1, 1); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("top layer = %v, want white", got)
	}

	ic.RemoveImage(b)
	ic.RemoveImage(b)
	ic.Refresh()
	if got := ic.Image().RGBAAt(1, 1).R; got != 1 {
		t.Errorf("after remove column = %d, want 1", got)
	}
	ic.RemoveImage(a)
	ic.Refresh()
	if got := ic.Image().RGBAAt(1, 1); got != (color.RGBA{A: 0xff}) {
		t.Errorf("empty composition = %v, want black", got)
	}
}

func TestScrollerMovesLayer(t *testing.T) {
	ic := New(8, 2)
	ci := NewComposableImage(stripes(12, 2), image.Point{})
	ic.AddImage(ci)

	s := scroll.NewForWidth(ci, ci.Width(), ic.Bounds().Dx(), 0, nil)
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	ic.Refresh()
	if got := ci.Offset().X; got != s.Offset() {
		t.Fatalf("layer offset %d, scroller offset %d", got, s.Offset())
	}
	if got := ic.Image().RGBAAt(0, 0).R; int(got) != s.Offset() {
		t.Errorf("(0,0) shows column %d, want %d", got, s.Offset())
	}
}
