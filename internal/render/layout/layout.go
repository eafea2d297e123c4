// Package layout splits a display into regions. All helpers normalise their
// input and never return a rectangle larger than the one they were given.
package layout

import "image"

// Inset shrinks rect by px on all sides.
func Inset(rect image.Rectangle, px int) image.Rectangle {
	if px <= 0 {
		return rect.Canon()
	}
	rect = rect.Canon()
	x0, y0 := rect.Min.X+px, rect.Min.Y+px
	x1, y1 := rect.Max.X-px, rect.Max.Y-px
	// image.Rect would swap crossed edges instead of collapsing them.
	if x0 >= x1 || y0 >= y1 {
		c := Center(rect)
		return image.Rectangle{Min: c, Max: c}
	}
	return image.Rectangle{Min: image.Pt(x0, y0), Max: image.Pt(x1, y1)}
}

// Center returns the middle point of rect.
func Center(rect image.Rectangle) image.Point {
	rect = rect.Canon()
	return image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
}

// SplitVertical cuts rect into a left column of leftPx and the rest.
func SplitVertical(rect image.Rectangle, leftPx int) (left, right image.Rectangle) {
	rect = rect.Canon()
	leftPx = clamp(leftPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// SplitHorizontal cuts rect into a top band of topPx and the rest.
func SplitHorizontal(rect image.Rectangle, topPx int) (top, bottom image.Rectangle) {
	rect = rect.Canon()
	topPx = clamp(topPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// Rows stacks as many rows of rowPx as fit in rect, top to bottom.
func Rows(rect image.Rectangle, rowPx int) []image.Rectangle {
	rect = rect.Canon()
	if rowPx <= 0 {
		return nil
	}
	var rows []image.Rectangle
	for y := rect.Min.Y; y+rowPx <= rect.Max.Y; y += rowPx {
		rows = append(rows, image.Rect(rect.Min.X, y, rect.Max.X, y+rowPx))
	}
	return rows
}

// Columns cuts rect into n columns of equal width; the last one takes the
// remainder.
func Columns(rect image.Rectangle, n int) []image.Rectangle {
	rect = rect.Canon()
	if n <= 0 {
		return nil
	}
	w := rect.Dx() / n
	cols := make([]image.Rectangle, n)
	for i := range cols {
		x0 := rect.Min.X + i*w
		x1 := x0 + w
		if i == n-1 {
			x1 = rect.Max.X
		}
		cols[i] = image.Rect(x0, rect.Min.Y, x1, rect.Max.Y)
	}
	return cols
}

// Place returns a w x h rectangle centred in rect, clipped to it.
func Place(rect image.Rectangle, w, h int) image.Rectangle {
	rect = rect.Canon()
	w = clamp(w, 0, rect.Dx())
	h = clamp(h, 0, rect.Dy())
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// FitSquare is the largest square in rect, centred.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = rect.Canon()
	size := min(rect.Dx(), rect.Dy())
	return Place(rect, size, size)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
