// Package linebreak is the line-break and word-boundary delegate spec.md
// §6 requires: pure functions from a codepoint slice to break
// opportunities, classified as mandatory, soft, or none (UAX #14), plus
// word-boundary segmentation (UAX #29) for TextBlock.WordBoundary. The
// layout engine never classifies breaks itself.
//
// Ported from: skia/shaper/harfbuzz.go's buildLineBreaks in the
// go-skia-support teacher, which drives go-text/typesetting/segmenter to
// get break offsets for its width-driven shapeWithWrapping path; this
// package exposes the same segmenter walk as a standalone delegate the
// Line Builder calls directly, operating on codepoint indices throughout
// instead of re-deriving byte offsets.
package linebreak

import (
	"github.com/go-text/typesetting/segmenter"
)

// Class is the kind of break opportunity at a codepoint boundary.
type Class int

const (
	// None means no break may occur here.
	None Class = iota
	// Soft means a break may occur here if the line needs to wrap.
	Soft
	// Mandatory means a break must occur here (e.g. after a newline).
	Mandatory
)

// Break is one break opportunity, given as the codepoint index of the
// position immediately after the breaking codepoint (matching the
// teacher's buildLineBreaks, which records offsets as "end of segment").
type Break struct {
	Index int
	Class Class
}

// Breaks returns every UAX #14 break opportunity in codepoints, in
// ascending index order. Ported from: the teacher's buildLineBreaks,
// generalized to report every opportunity (not just the ones a
// width-driven shaper needs) and to classify each as Soft or Mandatory,
// since spec.md §4.5's word-wrap algorithm needs both (mandatory breaks
// force a new line even when the current one has room remaining).
func Breaks(codepoints []rune) []Break {
	if len(codepoints) == 0 {
		return nil
	}

	var seg segmenter.Segmenter
	seg.Init(codepoints)
	iter := seg.LineIterator()

	var breaks []Break
	for iter.Next() {
		line := iter.Line()
		end := line.Offset + len(line.Text)
		if end <= 0 || end > len(codepoints) {
			continue
		}
		class := Soft
		if end == len(codepoints) || isMandatoryBreak(codepoints[end-1]) {
			class = Mandatory
		}
		breaks = append(breaks, Break{Index: end, Class: class})
	}
	return breaks
}

// isMandatoryBreak reports whether r is one of the hard line-break
// codepoints UAX #14 classifies as BK/CR/LF/NL (teacher's equivalent
// logic lives inside ICU's break iterator; go-text/typesetting's
// segmenter doesn't expose the mandatory/soft distinction directly, so it
// is reconstructed from the terminating codepoint, matching the set the
// teacher's TextWrapper checks in its own hard-break handling).
func isMandatoryBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x0085, 0x2028, 0x2029:
		return true
	default:
		return false
	}
}

// WordBoundaries returns the codepoint indices of every UAX #29 word
// boundary in codepoints, for TextBlock.WordBoundary (spec.md §8).
// Ported from: go-text/typesetting/segmenter's WordIterator, the word
// analog of the LineIterator walk above.
func WordBoundaries(codepoints []rune) []int {
	if len(codepoints) == 0 {
		return nil
	}

	var seg segmenter.Segmenter
	seg.Init(codepoints)
	iter := seg.WordIterator()

	bounds := []int{0}
	for iter.Next() {
		word := iter.Word()
		end := word.Offset + len(word.Text)
		if end > 0 && end <= len(codepoints) {
			bounds = append(bounds, end)
		}
	}
	return bounds
}
