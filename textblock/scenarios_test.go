package textblock

import (
	"strings"
	"testing"

	"github.com/glyphforge/textlayout/fontrun"
	"github.com/glyphforge/textlayout/style"
)

func newTestBlock() *TextBlock {
	return New(newFakeShaper(), newFakeMatcher())
}

func utf16Of(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r < 0x10000 {
			units = append(units, uint16(r))
			continue
		}
		r -= 0x10000
		units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
	}
	return units
}

func defaultStyle() *style.Style {
	return style.NewBuilder().FontSize(12).Seal()
}

// TestSimpleLTRWrap is S3: "hello world foo" wraps after "hello world "
// at a width that fits the first two words but not the third.
func TestSimpleLTRWrap(t *testing.T) {
	tb := newTestBlock()
	if err := tb.AppendStyled(utf16Of("hello world foo"), defaultStyle()); err != nil {
		t.Fatalf("AppendStyled: %v", err)
	}
	if err := tb.Layout(LayoutParams{MaxWidth: 120}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if tb.LineCount() != 2 {
		t.Fatalf("got %d lines, want 2", tb.LineCount())
	}
}

// TestRTLLine is S4: a pure-RTL line should produce one FR with
// direction RTL, visual x_coord origin at 0, relative_cp_x[0] == width,
// relative_cp_x[len] == 0.
func TestRTLLine(t *testing.T) {
	tb := newTestBlock()
	text := "שלום עולם"
	if err := tb.AppendStyled(utf16Of(text), defaultStyle()); err != nil {
		t.Fatalf("AppendStyled: %v", err)
	}
	if err := tb.Layout(LayoutParams{BaseDirection: DirectionAuto}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if tb.LineCount() != 1 {
		t.Fatalf("got %d lines, want 1", tb.LineCount())
	}
	ln := tb.lines[0]
	if len(ln.Runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(ln.Runs))
	}
	r := ln.Runs[0]
	if r.Direction != fontrun.RTL {
		t.Errorf("direction = %v, want RTL", r.Direction)
	}
	if r.XCoord != 0 {
		t.Errorf("x_coord = %v, want 0", r.XCoord)
	}
	n := r.Length
	if r.RelativeCPX[0] != r.Width {
		t.Errorf("relative_cp_x[0] = %v, want width %v", r.RelativeCPX[0], r.Width)
	}
	if r.RelativeCPX[n] != 0 {
		t.Errorf("relative_cp_x[len] = %v, want 0", r.RelativeCPX[n])
	}
}

// TestMixedBidiLine is S5: "abc אבג def" should produce three FRs on
// one line in visual order abc, <hebrew>, def.
func TestMixedBidiLine(t *testing.T) {
	tb := newTestBlock()
	text := "abc אבג def"
	if err := tb.AppendStyled(utf16Of(text), defaultStyle()); err != nil {
		t.Fatalf("AppendStyled: %v", err)
	}
	if err := tb.Layout(LayoutParams{BaseDirection: DirectionAuto}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if tb.LineCount() != 1 {
		t.Fatalf("got %d lines, want 1", tb.LineCount())
	}
	ln := tb.lines[0]
	if len(ln.Runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(ln.Runs))
	}
	if ln.Runs[0].Direction != fontrun.LTR || ln.Runs[2].Direction != fontrun.LTR {
		t.Error("first and last runs should be LTR")
	}
	if ln.Runs[1].Direction != fontrun.RTL {
		t.Error("middle run should be RTL")
	}
	for i := 1; i < len(ln.Runs); i++ {
		if ln.Runs[i].XCoord < ln.Runs[i-1].XCoord {
			t.Errorf("run %d x_coord %v < run %d x_coord %v", i, ln.Runs[i].XCoord, i-1, ln.Runs[i-1].XCoord)
		}
	}
}

// TestEllipsisOverflow is S6: a long run of text with max_lines=2 and
// ellipsis enabled at a narrow width produces exactly 2 lines, the last
// ending with a single-codepoint ellipsis FR, with overflowed == true.
func TestEllipsisOverflow(t *testing.T) {
	tb := newTestBlock()
	text := strings.Repeat("word ", 200)
	if err := tb.AppendStyled(utf16Of(text), defaultStyle()); err != nil {
		t.Fatalf("AppendStyled: %v", err)
	}
	if err := tb.Layout(LayoutParams{MaxWidth: 100, MaxLines: 2, Ellipsis: true}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if tb.LineCount() != 2 {
		t.Fatalf("got %d lines, want 2", tb.LineCount())
	}
	if !tb.Overflowed() {
		t.Error("expected overflowed == true")
	}
	last := tb.lines[1]
	if len(last.Runs) == 0 {
		t.Fatal("last line has no runs")
	}
	tail := last.Runs[len(last.Runs)-1]
	if tail.Kind != fontrun.Ellipsis {
		t.Errorf("last run kind = %v, want Ellipsis", tail.Kind)
	}
	if tail.Length != 1 {
		t.Errorf("ellipsis run length = %d, want 1", tail.Length)
	}
}

func TestHitTestAndCaretInfo(t *testing.T) {
	tb := newTestBlock()
	if err := tb.AppendStyled(utf16Of("hello world"), defaultStyle()); err != nil {
		t.Fatalf("AppendStyled: %v", err)
	}
	if err := tb.Layout(LayoutParams{}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	res := tb.HitTest(0, 0)
	if res.LineIndex != 0 {
		t.Errorf("LineIndex = %d, want 0", res.LineIndex)
	}
	ci, err := tb.CaretInfo(0)
	if err != nil {
		t.Fatalf("CaretInfo: %v", err)
	}
	if ci.X != 0 {
		t.Errorf("CaretInfo(0).X = %v, want 0", ci.X)
	}
}

func TestMeasuredSize(t *testing.T) {
	tb := newTestBlock()
	if err := tb.AppendStyled(utf16Of("hello"), defaultStyle()); err != nil {
		t.Fatalf("AppendStyled: %v", err)
	}
	if err := tb.Layout(LayoutParams{}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	size := tb.MeasuredSize()
	if size.Height <= 0 {
		t.Error("expected positive measured height")
	}
}
