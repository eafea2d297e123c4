package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/panels/internal/assets"
)

// DefaultFace is the bitmap font used when a demo does not load one.
func DefaultFace() font.Face { return basicfont.Face7x13 }

// LoadFace opens one of the bundled Go fonts at size points.
func LoadFace(name string, size float64) (font.Face, error) {
	data, ok := assets.Font(name)
	if !ok {
		return nil, fmt.Errorf("font %q not bundled (have %s)", name, strings.Join(assets.FontNames(), ", "))
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", name, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", name, err)
	}
	return face, nil
}

// LoadTTF opens a TrueType file from disk at size points.
func LoadTTF(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// FaceOrDefault loads name and falls back to DefaultFace when it cannot.
func FaceOrDefault(name string, size float64) font.Face {
	face, err := LoadFace(name, size)
	if err != nil {
		return DefaultFace()
	}
	return face
}

// lineHeight is the distance between baselines of consecutive lines.
func lineHeight(face font.Face) int {
	m := face.Metrics()
	if h := m.Height.Ceil(); h > 0 {
		return h
	}
	return (m.Ascent + m.Descent).Ceil()
}

// Text draws s with its top left corner at p. Lines are split on '\n'.
func (c *Canvas) Text(p image.Point, s string, face font.Face, col color.Color) {
	if face == nil {
		face = DefaultFace()
	}
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	step := lineHeight(face)
	for i, line := range strings.Split(s, "\n") {
		d.Dot = fixed.P(p.X, p.Y+ascent+i*step)
		d.DrawString(line)
	}
}

// TextCentered draws s centred horizontally in r with its top at r.Min.Y.
func (c *Canvas) TextCentered(r image.Rectangle, s string, face font.Face, col color.Color) {
	size := TextBBox(s, face).Size()
	c.Text(image.Pt(r.Min.X+(r.Dx()-size.X)/2, r.Min.Y), s, face, col)
}

// TextBBox returns the box Text would cover when drawing s at the origin.
func TextBBox(s string, face font.Face) image.Rectangle {
	if face == nil {
		face = DefaultFace()
	}
	if s == "" {
		return image.Rectangle{}
	}
	lines := strings.Split(s, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	m := face.Metrics()
	height := (len(lines)-1)*lineHeight(face) + (m.Ascent + m.Descent).Ceil()
	return image.Rect(0, 0, width, height)
}

// TextImage renders s on a transparent image exactly as large as its
// TextBBox.
func TextImage(s string, face font.Face, col color.Color) *image.RGBA {
	box := TextBBox(s, face)
	c := &Canvas{img: image.NewRGBA(box)}
	c.Text(image.Point{}, s, face, col)
	return c.img
}
