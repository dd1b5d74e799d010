// Package font defines the small, fixed capability interfaces the layout
// engine reads from a resolved typeface. Per spec.md §9 ("dynamic dispatch
// on Style collapses to a single concrete Style type with an interface
// boundary"), the same idea applies on the font side: layout never needs
// the full rasterizer-facing SkTypeface/SkFont surface, only the metrics
// and identity a shaper and a font matcher already computed.
//
// Ported from: skia/interfaces/font.go, skia/interfaces/typeface.go in the
// go-skia-support teacher, narrowed to what Font Run construction reads.
package font

import "github.com/glyphforge/textlayout/geom"

// Typeface is an opaque, reference-counted, thread-safe handle to a
// resolved font face. Typefaces are immutable and safely shareable across
// goroutines once returned by a Matcher (spec.md §5).
type Typeface interface {
	// UniqueID returns a value unique to this typeface within a process.
	UniqueID() uint32
	// FamilyName returns the family name, e.g. "Noto Sans".
	FamilyName() string
	// IsBold and IsItalic describe the typeface's intrinsic style.
	IsBold() bool
	IsItalic() bool
}

// Face is a sized, styled instance of a Typeface, as handed to the shaper.
type Face interface {
	Typeface() Typeface
	// Size returns the EM size in logical pixels.
	Size() geom.Scalar
	// Metrics returns the face's intrinsic font metrics at Size.
	Metrics() geom.FontMetrics
}
