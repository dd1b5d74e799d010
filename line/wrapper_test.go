package line

import (
	"testing"

	"github.com/glyphforge/textlayout/fontrun"
	"github.com/glyphforge/textlayout/geom"
	"github.com/glyphforge/textlayout/shaping"
	"github.com/glyphforge/textlayout/style"
)

// makeRun builds a synthetic, one-glyph-per-codepoint LTR run over text,
// with each codepoint advancing advancePerCP units, starting at cpStart.
func makeRun(text string, cpStart int32, advancePerCP float32) *fontrun.Run {
	cps := []rune(text)
	n := int32(len(cps))
	glyphs := make([]shaping.Glyph, n)
	positions := make([]geom.Point, n)
	rel := make([]float32, n+1)
	var x float32
	for i := int32(0); i < n; i++ {
		glyphs[i] = shaping.Glyph{GlyphID: uint16(cps[i]), XAdvance: advancePerCP, Cluster: int(i)}
		positions[i] = geom.Point{X: x}
		rel[i] = x
		x += advancePerCP
	}
	rel[n] = x
	return &fontrun.Run{
		Start:       cpStart,
		Length:      n,
		Direction:   fontrun.LTR,
		Glyphs:      glyphs,
		Positions:   positions,
		RelativeCPX: rel,
		Width:       x,
		Metrics:     geom.FontMetrics{Ascent: -10, Descent: 2, Leading: 0},
	}
}

func TestBreakSimpleLTRWrap(t *testing.T) {
	// S3: "hello world foo" should wrap after "hello world" given a width
	// that fits the first two words but not all three.
	text := "hello world foo"
	run := makeRun(text, 0, 10) // 10 units per codepoint

	b := NewBuilder(func(int32) *style.Style { return nil }, nil)
	// "hello world" is 11 codepoints = 110 units; "hello world foo" is 15 = 150.
	result, err := b.Break([]rune(text), []*fontrun.Run{run}, Params{MaxWidth: 120})
	if err != nil {
		t.Fatalf("Break: %v", err)
	}

	if len(result.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(result.Lines))
	}

	line1 := result.Lines[0]
	if line1.EndCP != 12 { // "hello world " -- break after the space following "world"
		t.Errorf("line1.EndCP = %d, want 12", line1.EndCP)
	}

	// The trailing space on line 1 must be classified TrailingWhitespace.
	foundTrailing := false
	for _, r := range line1.Runs {
		if r.Kind == fontrun.TrailingWhitespace {
			foundTrailing = true
		}
	}
	if !foundTrailing {
		t.Error("expected a TrailingWhitespace run on line 1")
	}
}

func TestBreakUnboundedSingleLine(t *testing.T) {
	text := "no wrapping here"
	run := makeRun(text, 0, 5)
	b := NewBuilder(func(int32) *style.Style { return nil }, nil)

	result, err := b.Break([]rune(text), []*fontrun.Run{run}, Params{})
	if err != nil {
		t.Fatalf("Break: %v", err)
	}
	if len(result.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(result.Lines))
	}
	if result.Overflowed {
		t.Error("unbounded layout should not overflow")
	}
}
