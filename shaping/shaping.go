// Package shaping defines the shaping delegate spec.md §6 requires: a pure
// function from (codepoints, typeface, size, direction, features) to
// (glyph indices, cluster mapping, advances). The layout engine never
// shapes text itself; it only depends on this boundary, with one real
// backing implementation (HarfbuzzShaper) wired to go-text/typesetting.
//
// Ported from: skia/shaper/interfaces.go and skia/shaper/handler.go in the
// go-skia-support teacher, narrowed from the push-style RunHandler
// callback protocol (built for feeding an SkTextBlobBuilder) to a single
// pull-style Shape call, since nothing downstream of the Font Run Builder
// needs incremental blob construction.
package shaping

import "github.com/glyphforge/textlayout/font"

// Direction is the shaping direction for a single run. It always matches
// one bidi level's parity (spec.md §3: "direction ∈ {LTR, RTL}").
type Direction int

const (
	LTR Direction = iota
	RTL
)

// Feature is an OpenType feature tag/value pair, threaded from
// style.FontFeature (spec.md §6: "features derived from style").
type Feature struct {
	Tag   string
	Value uint32
}

// Glyph is one shaped glyph: its id, its advance, its offset (for
// kerning/mark positioning), and the codepoint index (into the run's own
// codepoint slice, not the whole buffer) of the cluster it belongs to.
//
// Ported from: skia/shaper/handler.go's Buffer (Glyphs/Positions/Offsets/
// Clusters parallel arrays), flattened into one struct per glyph since the
// Font Run Builder consumes them one at a time to build relative_cp_x.
type Glyph struct {
	GlyphID    uint16
	XAdvance   float32
	YAdvance   float32
	XOffset    float32
	YOffset    float32
	Cluster    int // codepoint index within the shaped run
	RuneCount  int // codepoints covered by this glyph's cluster
}

// Output is the full shaped result for one run.
type Output struct {
	Glyphs  []Glyph
	Advance float32 // total X advance
}

// Shaper shapes a slice of codepoints that share a single typeface,
// size, direction, and locale. Ported from: skia/shaper/interfaces.go's
// Shaper interface, narrowed to the single-run case (the Font Run Builder, not
// the shaper, owns run segmentation — spec.md §4.3 explicitly delegates
// segmentation to the builder, segmenting only by font affinity and bidi
// level before calling Shape). locale is a BCP-47-ish language tag from
// style.Style.Locale, or "" when unspecified; it matches the teacher's
// shaper.RunInfo.Language.
type Shaper interface {
	Shape(codepoints []rune, face font.Face, direction Direction, locale string, features []Feature) (Output, error)
}
