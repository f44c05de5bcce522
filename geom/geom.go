// Package geom provides the page-space geometry primitives shared by the
// margin checker and the annotation renderer. Coordinates follow the decoder
// convention: origin at the top-left corner of the page, y increasing
// downward, units in points (1/72 inch).
package geom

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle in page space.
type Rect struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// NewRect builds a rectangle from its four edges.
func NewRect(x0, top, x1, bottom float64) Rect {
	return Rect{X0: x0, Top: top, X1: x1, Bottom: bottom}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Empty reports whether the rectangle has non-positive extent on either axis.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Truncate drops the fractional part of every edge, rounding toward zero.
// Sampling rectangles are built from truncated coordinates so sub-pixel
// boundaries always resolve to the same pixels.
func (r Rect) Truncate() Rect {
	return Rect{
		X0:     math.Trunc(r.X0),
		Top:    math.Trunc(r.Top),
		X1:     math.Trunc(r.X1),
		Bottom: math.Trunc(r.Bottom),
	}
}

// ClampTo restricts the rectangle to [0, width] x [0, height].
func (r Rect) ClampTo(width, height float64) Rect {
	return Rect{
		X0:     clamp(r.X0, 0, width),
		Top:    clamp(r.Top, 0, height),
		X1:     clamp(r.X1, 0, width),
		Bottom: clamp(r.Bottom, 0, height),
	}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Top && y <= r.Bottom
}

// Intersect returns the overlap of two rectangles. The zero Rect is returned
// when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		X0:     math.Max(r.X0, o.X0),
		Top:    math.Max(r.Top, o.Top),
		X1:     math.Min(r.X1, o.X1),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Scale multiplies every edge by f. Used to map page points onto device
// pixels (f = dpi/72).
func (r Rect) Scale(f float64) Rect {
	return Rect{X0: r.X0 * f, Top: r.Top * f, X1: r.X1 * f, Bottom: r.Bottom * f}
}

// ImageRect converts the rectangle to image coordinates, rounding outward so
// the covered pixels fully enclose the page-space rectangle.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X0)),
		int(math.Floor(r.Top)),
		int(math.Ceil(r.X1)),
		int(math.Ceil(r.Bottom)),
	)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
