package fontrun

import (
	"testing"

	"github.com/glyphforge/textlayout/geom"
	"github.com/glyphforge/textlayout/shaping"
)

func makeLTRTestRun() *Run {
	// 4 codepoints, one glyph per codepoint, each advancing 10 units.
	glyphs := []shaping.Glyph{
		{GlyphID: 1, XAdvance: 10, Cluster: 0},
		{GlyphID: 2, XAdvance: 10, Cluster: 1},
		{GlyphID: 3, XAdvance: 10, Cluster: 2},
		{GlyphID: 4, XAdvance: 10, Cluster: 3},
	}
	positions := []geom.Point{{X: 0}, {X: 10}, {X: 20}, {X: 30}}
	return &Run{
		Start:       100,
		Length:      4,
		Direction:   LTR,
		Glyphs:      glyphs,
		Positions:   positions,
		RelativeCPX: []float32{0, 10, 20, 30, 40},
		Width:       40,
	}
}

func TestSplitLTRPreservesConcatenation(t *testing.T) {
	run := makeLTRTestRun()

	left, right, err := Split(run, 102) // split after 2 codepoints
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if left.Length != 2 || right.Length != 2 {
		t.Fatalf("left.Length=%d right.Length=%d, want 2,2", left.Length, right.Length)
	}
	if left.Start != 100 || right.Start != 102 {
		t.Fatalf("left.Start=%d right.Start=%d, want 100,102", left.Start, right.Start)
	}
	if left.Width != 20 {
		t.Errorf("left.Width = %v, want 20", left.Width)
	}
	if right.Width != 20 {
		t.Errorf("right.Width = %v, want 20", right.Width)
	}

	// Concatenation check (spec.md §8 property 3): right's positions
	// translated back by left's width must match the original's tail.
	for i, p := range right.Positions {
		orig := run.Positions[len(left.Positions)+i]
		got := geom.Point{X: p.X + left.Width, Y: p.Y}
		if got.X != orig.X {
			t.Errorf("right glyph %d translated X = %v, want %v", i, got.X, orig.X)
		}
	}
}

func makeRTLTestRun() *Run {
	// 4 codepoints, visual (left-to-right) glyph order reversed from
	// logical order, matching HarfBuzz's RTL output convention: the
	// leftmost glyph (array index 0) is the logically-last codepoint.
	glyphs := []shaping.Glyph{
		{GlyphID: 4, XAdvance: 10, Cluster: 3},
		{GlyphID: 3, XAdvance: 10, Cluster: 2},
		{GlyphID: 2, XAdvance: 10, Cluster: 1},
		{GlyphID: 1, XAdvance: 10, Cluster: 0},
	}
	positions := []geom.Point{{X: 0}, {X: 10}, {X: 20}, {X: 30}}
	return &Run{
		Start:       100,
		Length:      4,
		Direction:   RTL,
		Glyphs:      glyphs,
		Positions:   positions,
		RelativeCPX: []float32{40, 30, 20, 10, 0},
		Width:       40,
	}
}

// TestSplitRTLLogicalOrder guards against the return-order/glyph-pairing
// bug this function used to have: for an RTL run, left must still be the
// logically-earlier codepoint range (lower Start), and its glyphs/width
// must belong to those codepoints, not the run's other half.
func TestSplitRTLLogicalOrder(t *testing.T) {
	run := makeRTLTestRun()

	left, right, err := Split(run, 102) // split after 2 codepoints
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if left.Start != 100 || left.Length != 2 {
		t.Fatalf("left.Start=%d left.Length=%d, want 100,2", left.Start, left.Length)
	}
	if right.Start != 102 || right.Length != 2 {
		t.Fatalf("right.Start=%d right.Length=%d, want 102,2", right.Start, right.Length)
	}
	if left.Width != 20 || right.Width != 20 {
		t.Fatalf("left.Width=%v right.Width=%v, want 20,20", left.Width, right.Width)
	}

	// left holds codepoints 0-1 (global 100-101): its glyphs must carry
	// clusters {0,1} (local), not the other half's {2,3}.
	for _, g := range left.Glyphs {
		if g.Cluster != 0 && g.Cluster != 1 {
			t.Errorf("left glyph cluster = %d, want 0 or 1", g.Cluster)
		}
	}
	for _, g := range right.Glyphs {
		if g.Cluster != 0 && g.Cluster != 1 {
			t.Errorf("right glyph cluster = %d, want 0 or 1 (local)", g.Cluster)
		}
	}

	// Both halves' RelativeCPX must follow the RTL convention:
	// RelativeCPX[0] == width, RelativeCPX[Length] == 0.
	for _, r := range []*Run{left, right} {
		if r.RelativeCPX[0] != r.Width {
			t.Errorf("RelativeCPX[0] = %v, want width %v", r.RelativeCPX[0], r.Width)
		}
		if r.RelativeCPX[r.Length] != 0 {
			t.Errorf("RelativeCPX[Length] = %v, want 0", r.RelativeCPX[r.Length])
		}
	}
}

func TestSplitOutOfRange(t *testing.T) {
	run := makeLTRTestRun()
	if _, _, err := Split(run, 100); err == nil {
		t.Error("Split at run.Start should error (not strictly interior)")
	}
	if _, _, err := Split(run, 104); err == nil {
		t.Error("Split at run.End should error (not strictly interior)")
	}
}
