// Package compose layers several images onto one display-sized frame. Each
// layer can be moved and can show a window into a larger source image, which
// is how scrolling text is drawn.
package compose

import (
	"image"
	"image/color"
	"image/draw"
	"slices"
)

// ComposableImage is one layer: a source image placed at Position on the
// composition, showing the part of the source that starts at Offset.
type ComposableImage struct {
	src      image.Image
	Position image.Point
	offset   image.Point
}

func NewComposableImage(src image.Image, position image.Point) *ComposableImage {
	return &ComposableImage{src: src, Position: position}
}

// SetOffset moves the window into the source. It satisfies scroll.Target.
func (c *ComposableImage) SetOffset(offset image.Point) { c.offset = offset }

func (c *ComposableImage) Offset() image.Point { return c.offset }

func (c *ComposableImage) Source() image.Image { return c.src }

func (c *ComposableImage) Width() int { return c.src.Bounds().Dx() }

func (c *ComposableImage) Height() int { return c.src.Bounds().Dy() }

// visible is the source rectangle shown in a region of size whose top left
// corner lies skip pixels past Position.
func (c *ComposableImage) visible(skip, size image.Point) image.Rectangle {
	sb := c.src.Bounds()
	min := sb.Min.Add(c.offset).Add(skip)
	return image.Rectangle{Min: min, Max: min.Add(size)}.Intersect(sb)
}

// ImageComposition is the frame the layers are composed onto.
type ImageComposition struct {
	background color.Color
	frame      *image.RGBA
	images     []*ComposableImage
}

// New returns an empty w x h composition on a black background.
func New(w, h int) *ImageComposition {
	return &ImageComposition{
		background: color.Black,
		frame:      image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

// SetBackground changes the colour Refresh clears to.
func (ic *ImageComposition) SetBackground(c color.Color) { ic.background = c }

// AddImage appends img above the existing layers. Adding a layer twice is a
// no-op.
func (ic *ImageComposition) AddImage(img *ComposableImage) {
	if img == nil || slices.Contains(ic.images, img) {
		return
	}
	ic.images = append(ic.images, img)
}

// RemoveImage drops img; unknown layers are ignored.
func (ic *ImageComposition) RemoveImage(img *ComposableImage) {
	ic.images = slices.DeleteFunc(ic.images, func(c *ComposableImage) bool { return c == img })
}

func (ic *ImageComposition) Len() int { return len(ic.images) }

// Refresh clears the frame and redraws every layer in order, clipped to
// the frame.
func (ic *ImageComposition) Refresh() {
	bounds := ic.frame.Bounds()
	draw.Draw(ic.frame, bounds, image.NewUniform(ic.background), image.Point{}, draw.Src)
	for _, c := range ic.images {
		dst := image.Rectangle{Min: c.Position, Max: bounds.Max}.Intersect(bounds)
		if dst.Empty() {
			continue
		}
		src := c.visible(dst.Min.Sub(c.Position), dst.Size())
		if src.Empty() {
			continue
		}
		draw.Draw(ic.frame, image.Rectangle{Min: dst.Min, Max: dst.Min.Add(src.Size())}, c.src, src.Min, draw.Over)
	}
}

// Image is the composed frame as of the last Refresh. The returned image is
// reused by the next Refresh.
func (ic *ImageComposition) Image() *image.RGBA { return ic.frame }

func (ic *ImageComposition) Bounds() image.Rectangle { return ic.frame.Bounds() }
