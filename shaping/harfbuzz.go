package shaping

import (
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	gshaping "github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/glyphforge/textlayout/font"
)

// GoTextFace is implemented by a font.Face that can hand back the
// underlying go-text/typesetting Face the HarfbuzzShaper needs. Ported
// from: skia/shaper/harfbuzz.go's UseGoTextFace.
type GoTextFace interface {
	GoTextFace() *gofont.Face
}

// ErrUnresolvedFace is returned when a font.Face doesn't expose a
// go-text/typesetting Face, i.e. it came from a Matcher that couldn't
// resolve the codepoint (spec.md §7 kind 4: shaper/font-matcher failure).
type ErrUnresolvedFace struct{}

func (ErrUnresolvedFace) Error() string { return "shaping: face has no go-text backing" }

// HarfbuzzShaper implements Shaper using the HarfBuzz-compatible shaper
// from go-text/typesetting.
//
// Ported from: skia/shaper/harfbuzz.go's HarfbuzzShaper, narrowed to the
// single pull-style Shape call (see shaping.go's doc comment) — the
// teacher's shaper-driven line-breaking (ShapeWithIterators,
// findBestBreak, emitLine) belongs to Skia's SkShaper::shape(width)
// convenience entry point, which this module's Line Builder replaces with
// its own RelativeCPX-based word wrap (spec.md §4.5), so it is not ported.
type HarfbuzzShaper struct {
	hb gshaping.HarfbuzzShaper
}

// NewHarfbuzzShaper creates a new HarfbuzzShaper.
func NewHarfbuzzShaper() *HarfbuzzShaper {
	return &HarfbuzzShaper{}
}

// Shape implements Shaper.
func (s *HarfbuzzShaper) Shape(codepoints []rune, face font.Face, direction Direction, locale string, features []Feature) (Output, error) {
	if len(codepoints) == 0 {
		return Output{}, nil
	}
	gf, ok := face.(GoTextFace)
	if !ok {
		return Output{}, ErrUnresolvedFace{}
	}
	goFace := gf.GoTextFace()
	if goFace == nil {
		return Output{}, ErrUnresolvedFace{}
	}

	dir := di.DirectionLTR
	if direction == RTL {
		dir = di.DirectionRTL
	}

	var runFeatures []gshaping.FontFeature
	for _, f := range features {
		runFeatures = append(runFeatures, gshaping.FontFeature{
			Tag:   gofont.Tag(tagFromString(f.Tag)),
			Value: f.Value,
		})
	}

	tag := "und"
	if locale != "" {
		tag = locale
	}

	input := gshaping.Input{
		Text:         codepoints,
		RunStart:     0,
		RunEnd:       len(codepoints),
		Direction:    dir,
		Face:         goFace,
		Size:         floatToFixed(face.Size()),
		FontFeatures: runFeatures,
		Language:     language.NewLanguage(tag),
	}

	out := s.hb.Shape(input)

	glyphs := make([]Glyph, len(out.Glyphs))
	var advance float32
	for i, g := range out.Glyphs {
		glyphs[i] = Glyph{
			GlyphID:   uint16(g.GlyphID),
			XAdvance:  fixedToFloat(g.XAdvance),
			YAdvance:  fixedToFloat(g.YAdvance),
			XOffset:   fixedToFloat(g.XOffset),
			YOffset:   fixedToFloat(g.YOffset),
			Cluster:   int(g.ClusterIndex),
			RuneCount: int(g.RuneCount),
		}
		advance += fixedToFloat(g.XAdvance)
	}

	return Output{Glyphs: glyphs, Advance: advance}, nil
}

func tagFromString(s string) uint32 {
	var b [4]byte
	copy(b[:], s)
	for i := len(s); i < 4; i++ {
		b[i] = ' '
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func floatToFixed(f float32) fixed.Int26_6 { return fixed.Int26_6(f * 64) }
func fixedToFloat(i fixed.Int26_6) float32 { return float32(i) / 64.0 }
