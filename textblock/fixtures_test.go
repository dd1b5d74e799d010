package textblock

import (
	"github.com/glyphforge/textlayout/font"
	"github.com/glyphforge/textlayout/fontmatch"
	"github.com/glyphforge/textlayout/geom"
	"github.com/glyphforge/textlayout/shaping"
)

// fakeTypeface/fakeFace/fakeMatcher/fakeShaper give the Text Block
// deterministic, monospace stand-ins for the shaping/font-matching
// delegates, so tests never depend on an actual HarfBuzz/fontmatch
// backend (spec.md §6 treats both as opaque external collaborators).

type fakeTypeface struct{ id uint32 }

func (t *fakeTypeface) UniqueID() uint32   { return t.id }
func (t *fakeTypeface) FamilyName() string { return "fake" }
func (t *fakeTypeface) IsBold() bool       { return false }
func (t *fakeTypeface) IsItalic() bool     { return false }

type fakeFace struct {
	tf   *fakeTypeface
	size float32
}

func (f *fakeFace) Typeface() font.Typeface { return f.tf }
func (f *fakeFace) Size() geom.Scalar       { return f.size }
func (f *fakeFace) Metrics() geom.FontMetrics {
	return geom.FontMetrics{Ascent: -f.size * 0.8, Descent: f.size * 0.2, Leading: 0}
}

type fakeMatcher struct{ face *fakeFace }

func (m *fakeMatcher) Match(r rune, families []string, weight int, italic bool) (font.Face, error) {
	return m.face, nil
}

func newFakeMatcher() fontmatch.Matcher {
	return &fakeMatcher{face: &fakeFace{tf: &fakeTypeface{id: 1}, size: 12}}
}

// fakeShaper assigns each codepoint one glyph of a fixed advance,
// reversing cluster order for RTL so downstream bidi/position code
// exercises both directions without a real shaping backend.
type fakeShaper struct{ advance float32 }

func (s *fakeShaper) Shape(codepoints []rune, face font.Face, direction shaping.Direction, locale string, features []shaping.Feature) (shaping.Output, error) {
	n := len(codepoints)
	glyphs := make([]shaping.Glyph, n)
	var total float32
	for i := 0; i < n; i++ {
		cluster := i
		if direction == shaping.RTL {
			cluster = n - 1 - i
		}
		glyphs[i] = shaping.Glyph{GlyphID: uint16(codepoints[cluster]), XAdvance: s.advance, Cluster: cluster}
		total += s.advance
	}
	return shaping.Output{Glyphs: glyphs, Advance: total}, nil
}

func newFakeShaper() shaping.Shaper { return &fakeShaper{advance: 10} }
