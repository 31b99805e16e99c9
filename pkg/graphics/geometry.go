// Package graphics provides the geometry types shared by the layout packages.
package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Size is a width and height in layout units.
type Size struct {
	Width  float64
	Height float64
}

// Unbounded returns a size with the given width and an infinite height,
// used when a child is measured without a vertical constraint.
func Unbounded(width float64) Size {
	return Size{Width: width, Height: math.Inf(1)}
}

// WithHeight returns a copy of s with the height replaced.
func (s Size) WithHeight(height float64) Size {
	return Size{Width: s.Width, Height: height}
}

// Rect is an axis-aligned rectangle stored as its four edges.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH builds a Rect from its top-left corner and size.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the width and height of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Intersect returns the area shared by r and other, or the zero Rect when
// they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, other.Left),
		Top:    math.Max(r.Top, other.Top),
		Right:  math.Min(r.Right, other.Right),
		Bottom: math.Min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Overlaps reports whether r and other share any area.
func (r Rect) Overlaps(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// NearlyEqual reports whether two values differ by less than the layout tolerance.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
