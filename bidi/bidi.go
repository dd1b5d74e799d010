// Package bidi is the bidi-level delegate spec.md §6 requires: a pure
// function from (codepoints, base direction) to per-codepoint embedding
// levels, plus the UAX #9 reordering of level runs into visual order. The
// layout engine never implements the bidi algorithm itself; it depends on
// this boundary, backed here by golang.org/x/text/unicode/bidi.
//
// Ported from: skia/paragraph/paragraph_impl_layout.go's
// computeCodeUnitProperties in the go-skia-support teacher, which drives
// ICU's ubidi through SkUnicode; golang.org/x/text/unicode/bidi plays the
// same role here, operating directly on the codepoint buffer instead of
// UTF-8 byte ranges.
package bidi

import (
	xbidi "golang.org/x/text/unicode/bidi"
)

// Direction is the paragraph's base direction (spec.md §3: "paragraph
// direction ∈ {LTR, RTL}").
type Direction int

const (
	LTR Direction = iota
	RTL
)

// Levels computes a UAX #9 embedding level for every codepoint in the
// paragraph, given its base direction. Ported from: the teacher's
// computeCodeUnitProperties, which calls SkUnicode::BidiRegion to get
// per-code-unit levels; here x/text/unicode/bidi.Paragraph.Order does the
// equivalent analysis and each resulting Run reports its codepoint
// position range directly (Run.Pos operates in rune-index space, so no
// UTF-8 byte mapping is needed).
//
// x/text collapses a run's true UAX #9 level to its direction parity
// (LeftToRight/RightToLeft); this is sufficient for Reorder, which only
// needs parity, not the absolute level.
func Levels(codepoints []rune, base Direction) ([]uint8, error) {
	if len(codepoints) == 0 {
		return nil, nil
	}

	var p xbidi.Paragraph
	dir := xbidi.LeftToRight
	if base == RTL {
		dir = xbidi.RightToLeft
	}
	if _, err := p.SetString(string(codepoints), xbidi.DefaultDirection(dir)); err != nil {
		return nil, err
	}
	ordering, err := p.Order()
	if err != nil {
		return nil, err
	}

	levels := make([]uint8, len(codepoints))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		lvl := uint8(0)
		if run.Direction() == xbidi.RightToLeft {
			lvl = 1
		}
		for cp := start; cp <= end && cp < len(levels); cp++ {
			levels[cp] = lvl
		}
	}
	return levels, nil
}

// Reorder computes the visual-order permutation of line-relative clusters
// given their embedding levels, per UAX #9 rule L2 (reverse each maximal
// run of codepoints whose level is greater than or equal to, in
// descending order, each odd level). Ported from: the teacher's
// InternalLineMetrics / TextWrapper reordering of runs before emission.
// It works on any level slice; the Line Builder passes one level per
// Font Run on a line and reorders whole runs.
func Reorder(levels []uint8) []int {
	n := len(levels)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n == 0 {
		return order
	}

	maxLevel := uint8(0)
	minOddLevel := uint8(255)
	for _, l := range levels {
		if l > maxLevel {
			maxLevel = l
		}
		if l%2 == 1 && l < minOddLevel {
			minOddLevel = l
		}
	}
	if minOddLevel == 255 {
		return order
	}

	for lvl := maxLevel; ; lvl-- {
		i := 0
		for i < n {
			if levels[order[i]] < lvl {
				i++
				continue
			}
			j := i
			for j < n && levels[order[j]] >= lvl {
				j++
			}
			reverse(order[i:j])
			i = j
		}
		if lvl == minOddLevel {
			break
		}
	}
	return order
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
