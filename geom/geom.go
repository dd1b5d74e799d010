// Package geom provides the small set of geometric value types shared by
// every layer of the layout engine: scalars, points, rectangles and font
// metrics.
//
// Ported from: skia/models (alias.go, rect.go, font_metrics.go) in the
// go-skia-support teacher, trimmed to the subset the layout engine needs.
package geom

// Scalar is the unit used for every coordinate and measurement in the
// layout engine.
type Scalar = float32

// Point is a 2D coordinate in Scalar units.
type Point struct {
	X, Y Scalar
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left, Top, Right, Bottom Scalar
}

// Width returns Right - Left.
func (r Rect) Width() Scalar { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() Scalar { return r.Bottom - r.Top }

// IsSorted returns true if Left <= Right and Top <= Bottom.
func (r Rect) IsSorted() bool {
	return r.Left <= r.Right && r.Top <= r.Bottom
}

// Outset returns a rectangle outset by (dx, dy) on every edge.
func (r Rect) Outset(dx, dy Scalar) Rect {
	return Rect{
		Left:   r.Left - dx,
		Top:    r.Top - dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Shift translates the rectangle by (dx, dy).
func (r Rect) Shift(dx, dy Scalar) Rect {
	return Rect{Left: r.Left + dx, Right: r.Right + dx, Top: r.Top + dy, Bottom: r.Bottom + dy}
}

// FontMetrics carries the handful of font-level measurements the layout
// engine reads; everything else (hinting, embedded bitmaps, ...) is a
// rasterizer concern and lives outside this module.
type FontMetrics struct {
	Ascent  Scalar // typically negative
	Descent Scalar // typically positive
	Leading Scalar
}
