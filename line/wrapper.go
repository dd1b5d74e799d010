package line

import (
	"github.com/glyphforge/textlayout/bidi"
	"github.com/glyphforge/textlayout/fontrun"
	"github.com/glyphforge/textlayout/linebreak"
	"github.com/glyphforge/textlayout/style"
)

// Params are the Line Builder's layout parameters (spec.md §6: "Layout
// parameters").
type Params struct {
	MaxWidth float32 // <= 0 means unbounded
	MaxLines int     // <= 0 means unbounded
	Ellipsis bool
}

// Result is the Line Builder's output: the finished Lines plus the
// overflow flag spec.md §7 kind 5 describes.
type Result struct {
	Lines      []*Line
	Overflowed bool
}

// EllipsisShaper produces a single-codepoint Font Run shaped from '…' in
// the given style, for spec.md §4.5 step 6. Implemented by the caller
// (the Text Block), which owns the shaper/font-matcher pair the Font Run
// Builder already wraps; the Line Builder only decides *when* an
// ellipsis is needed, not how to shape one.
type EllipsisShaper func(s *style.Style) (*fontrun.Run, error)

// Builder implements spec.md §4.5's word-wrap and line-assembly
// algorithm. Ported from: skia/paragraph/text_wrapper.go's TextWrapper
// in the go-skia-support teacher, re-expressed over whole Font Runs
// (each already single-direction and single-font by construction from
// the Font Run Builder) instead of the teacher's per-Cluster walk; this
// module finds break points by scanning a Font Run's RelativeCPX table
// instead of re-deriving cluster widths from glyph positions.
type Builder struct {
	StyleAt func(cp int32) *style.Style
	Ellipsis EllipsisShaper
}

// NewBuilder creates a Builder. styleAt resolves the Style owning a
// given codepoint (used to pick the ellipsis run's style, spec.md §4.5
// step 6: "style matches the last non-ellipsis run's style").
func NewBuilder(styleAt func(cp int32) *style.Style, ellipsis EllipsisShaper) *Builder {
	return &Builder{StyleAt: styleAt, Ellipsis: ellipsis}
}

// Break runs spec.md §4.5's algorithm over runs (logical order,
// covering [0, len(codepoints)) contiguously) and codepoints (the full
// buffer content, needed to classify trailing whitespace and to query
// line-break opportunities).
func (b *Builder) Break(codepoints []rune, runs []*fontrun.Run, params Params) (*Result, error) {
	breakClass := buildBreakClassArray(codepoints)

	queue := append([]*fontrun.Run(nil), runs...)
	var lines []*Line
	overflowed := false

	var lineRuns []*fontrun.Run
	var accWidth float32
	lineStartCP := int32(0)
	if len(queue) > 0 {
		lineStartCP = queue[0].Start
	}

	flushLine := func(endCP int32) {
		lineRuns = classifyTrailingWhitespace(lineRuns, codepoints)
		ln := assembleLine(lineRuns, lineStartCP, endCP)
		lines = append(lines, ln)
		lineRuns = nil
		accWidth = 0
	}

	for len(queue) > 0 {
		if params.MaxLines > 0 && len(lines) >= params.MaxLines {
			overflowed = true
			break
		}

		run := queue[0]
		unbounded := params.MaxWidth <= 0

		if unbounded || accWidth+run.Width <= params.MaxWidth {
			// Step 1/4: whole run fits; still check for an interior
			// mandatory break (step 4: "On mandatory break: finalize the
			// current line, advance").
			if mCP, ok := firstMandatoryBreak(breakClass, run.Start+1, run.End()-1); ok {
				left, right, err := fontrun.Split(run, mCP)
				if err != nil {
					return nil, err
				}
				lineRuns = append(lineRuns, left)
				accWidth += left.Width
				flushLine(mCP)
				queue[0] = right
				lineStartCP = right.Start
				continue
			}

			lineRuns = append(lineRuns, run)
			accWidth += run.Width
			queue = queue[1:]
			if int(run.End()) < len(breakClass) && breakClass[run.End()] == linebreak.Mandatory {
				flushLine(run.End())
				if len(queue) > 0 {
					lineStartCP = queue[0].Start
				}
			}
			continue
		}

		// Step 3: accumulated width would exceed W with this run included.
		breakCP, found := findLineBreakWithin(breakClass, run, accWidth, params.MaxWidth)
		if found && breakCP > run.Start {
			left, right, err := fontrun.Split(run, breakCP)
			if err != nil {
				return nil, err
			}
			lineRuns = append(lineRuns, left)
			flushLine(breakCP)
			queue[0] = right
			lineStartCP = right.Start
			continue
		}

		if len(lineRuns) > 0 {
			// A break exists before this run (end of previous run); flush
			// there and retry this run on a fresh line.
			flushLine(run.Start)
			lineStartCP = run.Start
			continue
		}

		// Word overflow: no permissible break anywhere and the line is
		// still empty. Force-split at find_break_position (spec.md §4.5's
		// find_break_position helper).
		splitCP := findBreakPosition(run, params.MaxWidth)
		if splitCP <= run.Start {
			// Can't even fit one codepoint: emit the whole run over-long.
			lineRuns = append(lineRuns, run)
			queue = queue[1:]
			flushLine(run.End())
			continue
		}
		left, right, err := fontrun.Split(run, splitCP)
		if err != nil {
			return nil, err
		}
		lineRuns = append(lineRuns, left)
		flushLine(splitCP)
		queue[0] = right
		lineStartCP = right.Start
	}

	if len(lineRuns) > 0 {
		endCP := lineStartCP
		if len(lineRuns) > 0 {
			endCP = lineRuns[len(lineRuns)-1].End()
		}
		flushLine(endCP)
	}
	if len(queue) > 0 {
		overflowed = true
	}

	if overflowed && params.Ellipsis && len(lines) > 0 {
		if err := b.appendEllipsis(lines[len(lines)-1], params.MaxWidth); err != nil {
			return nil, err
		}
	}

	return &Result{Lines: lines, Overflowed: overflowed}, nil
}

// findBreakPosition implements spec.md §4.5's find_break_position for
// the force-split (word-overflow) case: the largest codepoint whose
// leading width is < maxWidth, or the first codepoint with non-zero
// leading width if none, or run.Start if neither.
func findBreakPosition(run *fontrun.Run, maxWidth float32) int32 {
	best := run.Start
	for i := int32(1); i <= run.Length; i++ {
		lw := localLeadingWidth(run, i)
		if lw < maxWidth {
			best = run.Start + i
		}
	}
	if best == run.Start {
		for i := int32(1); i <= run.Length; i++ {
			if localLeadingWidth(run, i) > 0 {
				return run.Start + i
			}
		}
	}
	return best
}

// localLeadingWidth returns codepoint i's leading width within run, in
// the run's own reading-progress coordinate. relative_cp_x holds the
// leading edge's x from the run's left side (spec.md §4.3 step 4: "for
// RTL, the leading edge of codepoint i is width − Σ advances up to i"),
// so for RTL the leading width is RelativeCPX[0] − RelativeCPX[i].
func localLeadingWidth(run *fontrun.Run, i int32) float32 {
	if run.Direction == fontrun.RTL {
		return run.RelativeCPX[0] - run.RelativeCPX[i]
	}
	return run.RelativeCPX[i]
}

// findLineBreakWithin finds a soft or mandatory break position strictly
// inside (run.Start, run.End()] whose cumulative line width (the
// already-committed accWidth plus this run's own leading width up to
// that point) still fits within maxWidth, preferring the latest such
// position so the line packs as full as possible before wrapping.
func findLineBreakWithin(breakClass []linebreak.Class, run *fontrun.Run, accWidth, maxWidth float32) (int32, bool) {
	for i := run.End(); i > run.Start; i-- {
		if breakClass[i] == linebreak.None {
			continue
		}
		local := i - run.Start
		if accWidth+localLeadingWidth(run, local) <= maxWidth {
			return i, true
		}
	}
	return 0, false
}

func firstMandatoryBreak(breakClass []linebreak.Class, start, end int32) (int32, bool) {
	for i := start; i <= end; i++ {
		if i < int32(len(breakClass)) && breakClass[i] == linebreak.Mandatory {
			return i, true
		}
	}
	return 0, false
}

func buildBreakClassArray(codepoints []rune) []linebreak.Class {
	classes := make([]linebreak.Class, len(codepoints)+1)
	for _, brk := range linebreak.Breaks(codepoints) {
		if brk.Index >= 0 && brk.Index < len(classes) {
			c := linebreak.Soft
			if brk.Class == linebreak.Mandatory {
				c = linebreak.Mandatory
			}
			classes[brk.Index] = c
		}
	}
	return classes
}

// classifyTrailingWhitespace implements spec.md §4.5 step 5: the final
// whitespace codepoints of a line are reclassified as TrailingWhitespace,
// excluded from width and overhang (spec.md §3 GLOSSARY). A run entirely
// made of whitespace is marked in place; a run that only ends in
// whitespace is split so the whitespace tail becomes its own Run, since
// a single Font Run can span both content and its trailing space.
func classifyTrailingWhitespace(runs []*fontrun.Run, codepoints []rune) []*fontrun.Run {
	i := len(runs) - 1
	for i >= 0 && isAllWhitespace(codepoints[runs[i].Start:runs[i].End()]) {
		runs[i].Kind = fontrun.TrailingWhitespace
		i--
	}
	if i < 0 {
		return runs
	}

	r := runs[i]
	cps := codepoints[r.Start:r.End()]
	j := len(cps)
	for j > 0 && isWhitespaceRune(cps[j-1]) {
		j--
	}
	if j == len(cps) || j == 0 {
		return runs
	}

	left, right, err := fontrun.Split(r, r.Start+int32(j))
	if err != nil {
		return runs
	}
	right.Kind = fontrun.TrailingWhitespace
	runs[i] = left
	tail := append([]*fontrun.Run{right}, runs[i+1:]...)
	return append(runs[:i+1], tail...)
}

func isWhitespaceRune(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isAllWhitespace(cps []rune) bool {
	for _, c := range cps {
		if !isWhitespaceRune(c) {
			return false
		}
	}
	return len(cps) > 0
}

// assembleLine implements spec.md §4.5 steps 7-8: bidi-reorder the
// line's Font Runs into visual order, assign cumulative XCoord, and
// compute baseline/height from the normal runs' metrics.
func assembleLine(runs []*fontrun.Run, startCP, endCP int32) *Line {
	levels := make([]uint8, len(runs))
	for i, r := range runs {
		if r.Direction == fontrun.RTL {
			levels[i] = 1
		}
	}
	order := bidi.Reorder(levels)

	visual := make([]*fontrun.Run, len(runs))
	for i, srcIdx := range order {
		visual[i] = runs[srcIdx]
	}

	m := NewMetrics()
	var x float32
	for _, r := range visual {
		r.XCoord = x
		x += r.Width
		if r.Kind != fontrun.TrailingWhitespace {
			m.AddRun(r.Metrics.Ascent, r.Metrics.Descent, r.Metrics.Leading)
		}
	}

	return &Line{
		Runs:     visual,
		Height:   m.Height(),
		Baseline: m.Baseline(),
		StartCP:  startCP,
		EndCP:    endCP,
	}
}

// appendEllipsis implements spec.md §4.5 step 6: on the last line, walk
// visual-end-inward removing runs until an ellipsis run fits, then
// append it.
func (b *Builder) appendEllipsis(ln *Line, maxWidth float32) error {
	if len(ln.Runs) == 0 {
		return nil
	}
	lastStyle := b.StyleAt(ln.Runs[len(ln.Runs)-1].Start)

	ell, err := b.Ellipsis(lastStyle)
	if err != nil {
		return err
	}

	if maxWidth <= 0 {
		ln.Runs = append(ln.Runs, ell)
		ell.XCoord = ln.Width()
		return nil
	}

	for len(ln.Runs) > 0 && ln.Width()+ell.Width > maxWidth {
		ln.Runs = ln.Runs[:len(ln.Runs)-1]
	}
	ell.XCoord = ln.Width()
	ln.Runs = append(ln.Runs, ell)
	return nil
}
