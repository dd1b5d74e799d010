package textblock

import (
	"sort"

	"github.com/glyphforge/textlayout/errkind"
	"github.com/glyphforge/textlayout/font"
	"github.com/glyphforge/textlayout/fontrun"
	"github.com/glyphforge/textlayout/geom"
	"github.com/glyphforge/textlayout/linebreak"
)

// Affinity disambiguates a hit-test/caret position that falls exactly on
// a boundary between two runs of differing direction. Ported from:
// skia/paragraph/types.go's Affinity (Upstream/Downstream), renamed to
// spec.md §4.6's own vocabulary ("affinity ∈ {leading, trailing}").
type Affinity int

const (
	AffinityLeading Affinity = iota
	AffinityTrailing
)

// HitTestResult is spec.md §4.6's hit_test output.
type HitTestResult struct {
	LineIndex int
	CPIndex   int32
	Affinity  Affinity
}

// CaretInfo is spec.md §4.6's caret_info output.
type CaretInfo struct {
	X      float32
	Top    float32
	Bottom float32
}

// Size is spec.md §4.6's measured_size output.
type Size struct {
	Width          float32
	Height         float32
	MeasuredWidth  float32
	MeasuredHeight float32
}

// SelectionRect is one rectangle of spec.md §4.6's get_selection_rects
// output, carrying the direction of the run it came from (a selection
// spanning a bidi boundary yields one rect per directional run).
type SelectionRect struct {
	Rect      geom.Rect
	Direction fontrun.Direction
}

// FontInfo pairs a resolved Face with the codepoint range it covers,
// ported from: skia/paragraph/paragraph.go's FontInfo.
type FontInfo struct {
	Face  font.Face
	Start int32
	End   int32
}

// Range is a half-open codepoint range, spec.md §4.6's get_word_boundary
// output shape.
type Range struct {
	Start int32
	End   int32
}

// HitTest implements spec.md §4.6's hit_test: find the line containing
// y, then the codepoint within that line closest to x. Ported from:
// GetGlyphPositionAtCoordinate/PositionWithAffinity.
func (tb *TextBlock) HitTest(x, y float32) HitTestResult {
	if len(tb.lines) == 0 {
		return HitTestResult{}
	}
	li := tb.lineIndexForY(y)
	ln := tb.lines[li]

	if len(ln.Runs) == 0 {
		return HitTestResult{LineIndex: li, CPIndex: ln.StartCP}
	}

	if x <= ln.Runs[0].XCoord {
		return HitTestResult{LineIndex: li, CPIndex: leadingCP(ln.Runs[0]), Affinity: AffinityLeading}
	}
	last := ln.Runs[len(ln.Runs)-1]
	if x >= last.XCoord+last.Width {
		return HitTestResult{LineIndex: li, CPIndex: trailingCP(last), Affinity: AffinityTrailing}
	}

	for _, r := range ln.Runs {
		if x < r.XCoord || x >= r.XCoord+r.Width {
			continue
		}
		cp, aff := hitTestWithinRun(r, x-r.XCoord)
		return HitTestResult{LineIndex: li, CPIndex: cp, Affinity: aff}
	}
	return HitTestResult{LineIndex: li, CPIndex: trailingCP(last), Affinity: AffinityTrailing}
}

// lineIndexForY clamps y into [0, len(lines)-1] by accumulated line
// height, matching the teacher's out-of-bounds clamping convention for
// hit-testing above/below the laid-out block.
func (tb *TextBlock) lineIndexForY(y float32) int {
	for i, ln := range tb.lines {
		if y < ln.YCoord+ln.Height {
			return i
		}
	}
	return len(tb.lines) - 1
}

// hitTestWithinRun locates the closest codepoint boundary to localX
// (measured from the run's visual left edge) within run, returning
// leading affinity when localX sits in the first half of the matched
// codepoint's advance and trailing otherwise.
func hitTestWithinRun(r *fontrun.Run, localX float32) (int32, Affinity) {
	n := r.Length
	for i := int32(0); i < n; i++ {
		lo, hi := visualEdges(r, i)
		if localX < lo || localX >= hi {
			continue
		}
		mid := (lo + hi) / 2
		if localX < mid {
			return r.Start + i, AffinityLeading
		}
		return r.Start + i + 1, AffinityTrailing
	}
	if r.Direction == fontrun.LTR {
		return r.Start, AffinityLeading
	}
	return r.Start + n, AffinityTrailing
}

// visualEdges returns codepoint i's [left, right) visual extent within
// run, from the run's own left edge, accounting for relative_cp_x's
// LTR/RTL edge convention (spec.md §3 GLOSSARY).
func visualEdges(r *fontrun.Run, i int32) (float32, float32) {
	if r.Direction == fontrun.LTR {
		return r.RelativeCPX[i], r.RelativeCPX[i+1]
	}
	return r.RelativeCPX[i+1], r.RelativeCPX[i]
}

func leadingCP(r *fontrun.Run) int32 {
	if r.Direction == fontrun.LTR {
		return r.Start
	}
	return r.Start + r.Length
}

func trailingCP(r *fontrun.Run) int32 {
	if r.Direction == fontrun.LTR {
		return r.Start + r.Length
	}
	return r.Start
}

// CaretInfo implements spec.md §4.6's caret_info: the x position and
// vertical extent of a caret placed just before codepoint cp. Ported
// from: GetGlyphInfoAtUTF16Offset.
func (tb *TextBlock) CaretInfo(cp int32) (CaretInfo, error) {
	li, r := tb.findRunContaining(cp)
	if li < 0 {
		return CaretInfo{}, &errkind.OutOfRange{Op: "textblock.CaretInfo", Index: cp, Limit: tb.buf.Len()}
	}
	ln := tb.lines[li]
	x := ln.Width()
	if r != nil {
		// RelativeCPX[local] is cp's leading edge in either direction.
		x = r.XCoord + r.RelativeCPX[cp-r.Start]
	}
	return CaretInfo{X: x, Top: ln.YCoord, Bottom: ln.YCoord + ln.Height}, nil
}

// findRunContaining returns the line index and the run covering cp, or
// (-1, nil) if cp is out of range. A nil run with a valid line index
// means cp sits exactly at the end of the block's content.
func (tb *TextBlock) findRunContaining(cp int32) (int, *fontrun.Run) {
	for li, ln := range tb.lines {
		if cp < ln.StartCP || cp > ln.EndCP {
			continue
		}
		for _, r := range ln.Runs {
			if cp >= r.Start && cp < r.End() {
				return li, r
			}
		}
		return li, nil
	}
	return -1, nil
}

// MeasuredSize implements spec.md §4.6's measured_size.
func (tb *TextBlock) MeasuredSize() Size {
	return Size{
		Width:          tb.measuredWidth,
		Height:         tb.measuredHeight,
		MeasuredWidth:  tb.maxIntrinsicWidth,
		MeasuredHeight: tb.measuredHeight,
	}
}

// SelectionRects implements spec.md §4.6's get_selection_rects: one
// rectangle per directional run intersecting [start, end), per line.
// Ported from: GetRectsForRange.
func (tb *TextBlock) SelectionRects(start, end int32) []SelectionRect {
	if end <= start {
		return nil
	}
	var rects []SelectionRect
	for _, ln := range tb.lines {
		if ln.EndCP <= start || ln.StartCP >= end {
			continue
		}
		for _, r := range ln.Runs {
			if r.Kind == fontrun.TrailingWhitespace {
				continue
			}
			lo := maxI32(start, r.Start)
			hi := minI32(end, r.End())
			if lo >= hi {
				continue
			}
			loX := r.RelativeCPX[lo-r.Start]
			hiX := r.RelativeCPX[hi-r.Start]
			if loX > hiX {
				loX, hiX = hiX, loX
			}
			rects = append(rects, SelectionRect{
				Rect: geom.Rect{
					Left:   r.XCoord + loX,
					Right:  r.XCoord + hiX,
					Top:    ln.YCoord,
					Bottom: ln.YCoord + ln.Height,
				},
				Direction: r.Direction,
			})
		}
	}
	return rects
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// FontsForLine implements spec.md §4.6's fonts_for_line, coalescing
// consecutive runs sharing the same resolved Face.
func (tb *TextBlock) FontsForLine(i int) []FontInfo {
	if i < 0 || i >= len(tb.lines) {
		return nil
	}
	ln := tb.lines[i]
	var out []FontInfo
	for _, r := range ln.Runs {
		if len(out) > 0 && sameFontInfo(out[len(out)-1].Face, r.Face) && out[len(out)-1].End == r.Start {
			out[len(out)-1].End = r.End()
			continue
		}
		out = append(out, FontInfo{Face: r.Face, Start: r.Start, End: r.End()})
	}
	return out
}

func sameFontInfo(a, b font.Face) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Typeface().UniqueID() == b.Typeface().UniqueID() && a.Size() == b.Size()
}

// RunsForLine implements spec.md §4.6's runs_for_line.
func (tb *TextBlock) RunsForLine(i int) []*fontrun.Run {
	if i < 0 || i >= len(tb.lines) {
		return nil
	}
	return tb.lines[i].Runs
}

// LineCount returns the number of laid-out lines.
func (tb *TextBlock) LineCount() int { return len(tb.lines) }

// WordBoundary implements spec.md §9's supplemental word-boundary
// query, grounded on GetWordBoundary: the codepoint range of the word
// containing cp, via the line-break delegate's word-segmentation mode.
func (tb *TextBlock) WordBoundary(cp int32) Range {
	codepoints := tb.buf.Slice(0, tb.buf.Len())
	bounds := linebreak.WordBoundaries(codepoints)
	idx := sort.Search(len(bounds), func(i int) bool { return bounds[i] > int(cp) })
	start := int32(0)
	if idx > 0 {
		start = int32(bounds[idx-1])
	}
	end := tb.buf.Len()
	if idx < len(bounds) {
		end = int32(bounds[idx])
	}
	return Range{Start: start, End: end}
}
