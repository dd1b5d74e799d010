// Package textblock implements the Text Block (spec.md §3/§4.6): the
// public aggregate owning the Codepoint Buffer, Style Run Table, the
// flat logical Font Run list, and the finished Lines, plus the
// layout-and-query surface callers actually use.
//
// Ported from: skia/paragraph's Paragraph/ParagraphImpl interface+impl
// split (paragraph.go/paragraph_impl.go/paragraph_impl_methods.go) in
// the go-skia-support teacher, narrowed to this module's smaller query
// surface (spec.md §4.6 lists six operations against the teacher's much
// larger Paragraph interface) and re-targeted at the Codepoint
// Buffer/Font Run/Line types this module's own packages define instead
// of the teacher's UTF-8 TextRange/Run/TextLine triad.
package textblock

import (
	"github.com/glyphforge/textlayout/bidi"
	"github.com/glyphforge/textlayout/buffer"
	"github.com/glyphforge/textlayout/fontmatch"
	"github.com/glyphforge/textlayout/fontrun"
	"github.com/glyphforge/textlayout/geom"
	"github.com/glyphforge/textlayout/line"
	"github.com/glyphforge/textlayout/pool"
	"github.com/glyphforge/textlayout/shaping"
	"github.com/glyphforge/textlayout/style"
)

// TextAlign selects the horizontal distribution of a line's content
// within max_width. Ported from: skia/paragraph/types.go's TextAlign.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignRight
	AlignCenter
	AlignJustify
)

// BaseDirection selects the paragraph's base bidi direction, or asks
// the Text Block to infer it from the first strong directional
// codepoint (spec.md §6: "base_direction ∈ {LTR, RTL, auto}").
type BaseDirection int

const (
	DirectionAuto BaseDirection = iota
	DirectionLTR
	DirectionRTL
)

// layoutState mirrors the teacher's ParagraphImpl internal state
// machine (State{Indexed,Shaped,LineBroken,Formatted}), kept under the
// same names. It records how far the last Layout call got; Layout never
// reads it and always reruns every stage, which is what keeps repeated
// calls with identical inputs byte-identical (spec.md §8 property 6).
type layoutState int

const (
	stateIndexed layoutState = iota
	stateShaped
	stateLineBroken
	stateFormatted
)

// LayoutParams are spec.md §6's layout parameters.
type LayoutParams struct {
	MaxWidth      float32 // <= 0 means unbounded
	MaxHeight     float32 // stored with the params; Layout does not limit height by it
	MaxLines      int     // <= 0 means unbounded
	TextAlignment TextAlign
	BaseDirection BaseDirection
	Ellipsis      bool

	// Strut, when Enabled, overrides per-line metrics (spec.md §9
	// supplemental feature, grounded on strut_style.go).
	Strut style.Strut

	// Pool, when non-nil, is used to check out Font Run instances
	// instead of allocating them directly (spec.md §5/§9's object
	// pool). Never shared across goroutines.
	Pool *pool.Pool[fontrun.Run]
}

// placeholderSlot records where an inline Placeholder (spec.md §9
// supplemental feature) was appended, keyed by its reserved codepoint
// index in the Codepoint Buffer.
type placeholderSlot struct {
	cp int32
	ph style.Placeholder
}

// objectReplacementChar is U+FFFC, the codepoint a Placeholder reserves
// one Codepoint Buffer slot with, matching the teacher's
// PlaceholderStyle handling in paragraph_builder.go.
const objectReplacementChar = '￼'

// TextBlock is the public aggregate (spec.md §3: "owns CB, SRT, the
// flat logical-order FR list, and the Lines list").
type TextBlock struct {
	buf *buffer.Buffer
	srt *style.Table

	shaper  shaping.Shaper
	matcher fontmatch.Matcher
	frb     *fontrun.Builder

	placeholders []placeholderSlot

	fontRuns []*fontrun.Run // flat, logical order, spanning the whole buffer
	lines    []*line.Line
	levels   []uint8

	overflowed bool
	state      layoutState
	params     LayoutParams

	measuredWidth, measuredHeight float32
	minIntrinsicWidth             float32
	maxIntrinsicWidth             float32
}

// New creates an empty TextBlock wired to the given shaper and font
// matcher (spec.md §6's delegated shape/match_font functions).
func New(shaper shaping.Shaper, matcher fontmatch.Matcher) *TextBlock {
	return &TextBlock{
		buf:     buffer.New(),
		srt:     style.NewTable(),
		shaper:  shaper,
		matcher: matcher,
		frb:     fontrun.NewBuilder(shaper, matcher),
	}
}

// AppendStyled extends the Codepoint Buffer and Style Run Table with
// utf16 decoded under s (spec.md §6: "styled text append... appended in
// sequence, extending CB and SRT"). Invalidates any prior layout.
func (tb *TextBlock) AppendStyled(utf16 []uint16, s *style.Style) error {
	start := tb.buf.Len()
	tb.buf.Append(utf16)
	length := tb.buf.Len() - start
	if length > 0 {
		tb.srt.AddRun(start, length, s)
	}
	tb.state = stateIndexed
	return nil
}

// AppendPlaceholder reserves one Codepoint Buffer slot (U+FFFC) for an
// inline non-text element (spec.md §9 supplemental feature, grounded on
// placeholder.go's PlaceholderStyle). The placeholder's style governs
// only what font the reserved slot would shape under if ever queried as
// text; its box is supplied directly to the Line Builder at layout time.
func (tb *TextBlock) AppendPlaceholder(w, h float32, align style.PlaceholderAlignment, baselineOffset float32, s *style.Style) error {
	cp := tb.buf.Len()
	tb.buf.Append([]uint16{objectReplacementChar})
	tb.srt.AddRun(cp, 1, s)
	tb.placeholders = append(tb.placeholders, placeholderSlot{
		cp: cp,
		ph: style.Placeholder{Width: w, Height: h, Alignment: align, BaselineOffset: baselineOffset},
	})
	tb.state = stateIndexed
	return nil
}

// Overflowed reports spec.md §7 kind 5: whether max_lines truncated
// content, whether or not an ellipsis was appended.
func (tb *TextBlock) Overflowed() bool { return tb.overflowed }

// Layout rebuilds the FR and Line tables (spec.md §4.6's layout entry
// point), running the full CB → bidi levels → FRB → LB pipeline.
// Ported from: the teacher's ParagraphImpl.Layout state machine
// (paragraph_impl_layout.go), which this module keeps under the same
// stateIndexed/stateShaped/stateLineBroken/stateFormatted names.
func (tb *TextBlock) Layout(params LayoutParams) error {
	if err := tb.srt.Validate(tb.buf.Len()); err != nil {
		return err
	}
	tb.releaseFontRuns(params.Pool)
	tb.params = params
	tb.frb.Pool = params.Pool

	codepoints := tb.buf.Slice(0, tb.buf.Len())

	levels, err := tb.computeLevels(codepoints, params.BaseDirection)
	if err != nil {
		return err
	}
	tb.levels = levels
	tb.state = stateIndexed

	fontRuns, err := tb.buildFontRuns(codepoints, levels)
	if err != nil {
		return err
	}
	tb.fontRuns = fontRuns
	tb.state = stateShaped

	lb := line.NewBuilder(tb.srt.StyleAt, tb.ellipsisShaper())
	result, err := lb.Break(codepoints, fontRuns, line.Params{
		MaxWidth: params.MaxWidth,
		MaxLines: params.MaxLines,
		Ellipsis: params.Ellipsis,
	})
	if err != nil {
		return err
	}
	tb.lines = result.Lines
	tb.overflowed = result.Overflowed
	tb.state = stateLineBroken

	tb.applyStrutAndAlign(params)
	tb.computeMeasurements(params)
	tb.state = stateFormatted

	return nil
}

// releaseFontRuns returns a prior layout's Font Runs to p (spec.md §5:
// "returning a run to the pool releases any embedded shaping cache"),
// a no-op when p is nil or this is the first Layout call.
func (tb *TextBlock) releaseFontRuns(p *pool.Pool[fontrun.Run]) {
	if p == nil {
		return
	}
	for _, r := range tb.fontRuns {
		p.Put(r)
	}
	tb.fontRuns = nil
}

// computeLevels runs the bidi delegate over the whole buffer once
// (spec.md §4.3's doc comment on Builder.Build: "bidi analysis needs
// surrounding context", so it is never computed per Style Run).
func (tb *TextBlock) computeLevels(codepoints []rune, base BaseDirection) ([]uint8, error) {
	if len(codepoints) == 0 {
		return nil, nil
	}
	dir := bidi.LTR
	if base == DirectionRTL {
		dir = bidi.RTL
	}
	if base == DirectionAuto {
		dir = firstStrongDirection(codepoints)
	}
	return bidi.Levels(codepoints, dir)
}

// firstStrongDirection implements the "auto" half of spec.md §9's open
// question on base-direction precedence: the paragraph direction
// follows the first strongly-directional codepoint, defaulting to LTR
// when none is found, matching ICU's ubidi_getBaseDirection convention
// the teacher's SkUnicode wraps.
func firstStrongDirection(codepoints []rune) bidi.Direction {
	for _, r := range codepoints {
		switch {
		case isStrongRTL(r):
			return bidi.RTL
		case isStrongLTR(r):
			return bidi.LTR
		}
	}
	return bidi.LTR
}

func isStrongLTR(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= 0x00C0 && r <= 0x02AF)
}

func isStrongRTL(r rune) bool {
	return (r >= 0x0590 && r <= 0x08FF) || (r >= 0xFB1D && r <= 0xFDFF) || (r >= 0xFE70 && r <= 0xFEFF)
}

// buildFontRuns runs the Font Run Builder over every Style Run in
// order, flattening the result into one logical-order slice. A Style
// Run that exactly spans a reserved placeholder codepoint (spec.md §9)
// never reaches the shaper: placeholder.go documents that its box is
// reserved directly rather than laid out by the Font Run Builder, so
// this substitutes a Placeholder-kind Run carrying the reserved
// dimensions instead of shaping the U+FFFC stand-in codepoint as text.
func (tb *TextBlock) buildFontRuns(codepoints []rune, levels []uint8) ([]*fontrun.Run, error) {
	var out []*fontrun.Run
	for _, r := range tb.srt.Runs() {
		if slot, ok := tb.placeholderAt(r.Start, r.Length); ok {
			out = append(out, tb.newPlaceholderRun(r.Start, levels, slot))
			continue
		}
		runs, err := tb.frb.Build(codepoints, r.Start, r.Length, levels, r.Style)
		if err != nil {
			return nil, err
		}
		out = append(out, runs...)
	}
	return out, nil
}

// placeholderAt reports the placeholder slot reserved at [start, start+
// length), when the Style Run is exactly that one reserved codepoint.
func (tb *TextBlock) placeholderAt(start, length int32) (placeholderSlot, bool) {
	if length != 1 {
		return placeholderSlot{}, false
	}
	for _, p := range tb.placeholders {
		if p.cp == start {
			return p, true
		}
	}
	return placeholderSlot{}, false
}

// newPlaceholderRun builds the box Run a placeholder slot occupies:
// Width/Height come from the reserved dimensions, direction from the
// surrounding bidi level (a placeholder still participates in
// reordering like any other run), and RelativeCPX is the trivial
// two-entry table a single-codepoint run needs.
func (tb *TextBlock) newPlaceholderRun(start int32, levels []uint8, slot placeholderSlot) *fontrun.Run {
	dir := fontrun.LTR
	if len(levels) > int(start) && levels[start]%2 == 1 {
		dir = fontrun.RTL
	}
	run := tb.frb.NewRun()
	run.Kind = fontrun.Placeholder
	run.LineIndex = -1
	run.Start = start
	run.Length = 1
	run.Direction = dir
	run.Width = slot.ph.Width
	run.Metrics = geom.FontMetrics{Ascent: -slot.ph.Height, Descent: 0, Leading: 0}
	run.RelativeCPX = []float32{0, slot.ph.Width}
	if dir == fontrun.RTL {
		run.RelativeCPX = []float32{slot.ph.Width, 0}
	}
	return run
}

// ellipsisShaper adapts the Text Block's own shaper/matcher pair into
// the Line Builder's EllipsisShaper callback (spec.md §4.5 step 6: the
// ellipsis FR's style matches the last non-ellipsis run's style).
func (tb *TextBlock) ellipsisShaper() line.EllipsisShaper {
	return func(s *style.Style) (*fontrun.Run, error) {
		ellipsisCPs := []rune{'…'}
		runs, err := tb.frb.Build(ellipsisCPs, 0, 1, []uint8{0}, s)
		if err != nil || len(runs) == 0 {
			return nil, err
		}
		run := runs[0]
		run.Kind = fontrun.Ellipsis
		return run, nil
	}
}

// applyStrutAndAlign implements the strut override (spec.md §9) and
// the alignment pass (spec.md §6's text_alignment, grounded on
// paragraph_impl_layout.go's formatLines/justificationShifts).
func (tb *TextBlock) applyStrutAndAlign(params LayoutParams) {
	var y float32
	for _, ln := range tb.lines {
		if params.Strut.Enabled {
			applyStrut(ln, params.Strut)
		}
		ln.YCoord = y
		y += ln.Height

		if params.MaxWidth > 0 {
			shiftLineForAlignment(ln, params.MaxWidth, params.TextAlignment)
		}
	}
}

// applyStrut forces a line's height/baseline to the strut's values,
// matching the teacher's StrutStyle.ForceHeight/HalfLeading handling.
func applyStrut(ln *line.Line, strut style.Strut) {
	height := strut.Height * strut.FontSize
	if strut.ForceHeight || ln.Height < height {
		if strut.HalfLeading {
			extra := height - ln.Height
			ln.Baseline += extra / 2
		}
		ln.Height = height
	}
}

// shiftLineForAlignment shifts every run's XCoord to realize the
// requested text_alignment; Justify distributes the slack evenly across
// inter-run gaps (the teacher's justificationShifts), skipping the
// trailing-whitespace run since it is excluded from width.
func shiftLineForAlignment(ln *line.Line, maxWidth float32, align TextAlign) {
	slack := maxWidth - ln.Width()
	if slack <= 0 {
		return
	}
	switch align {
	case AlignRight:
		shiftAll(ln, slack)
	case AlignCenter:
		shiftAll(ln, slack/2)
	case AlignJustify:
		justify(ln, slack)
	}
}

func shiftAll(ln *line.Line, dx float32) {
	for _, r := range ln.Runs {
		r.XCoord += dx
	}
}

// justify distributes slack evenly across the gaps between non-
// whitespace runs, matching the teacher's per-glyph justification shape
// but applied at Font Run granularity (this module's Run already
// represents a whole shaped cluster, not an individual glyph).
func justify(ln *line.Line, slack float32) {
	gaps := 0
	for _, r := range ln.Runs {
		if r.Kind != fontrun.TrailingWhitespace {
			gaps++
		}
	}
	if gaps <= 1 {
		return
	}
	per := slack / float32(gaps-1)
	var shift float32
	for _, r := range ln.Runs {
		r.XCoord += shift
		if r.Kind != fontrun.TrailingWhitespace {
			shift += per
		}
	}
}

// computeMeasurements fills in spec.md §4.6's measured_size fields.
func (tb *TextBlock) computeMeasurements(params LayoutParams) {
	tb.measuredWidth = params.MaxWidth
	var longest float32
	var height float32
	for _, ln := range tb.lines {
		if ln.Width() > longest {
			longest = ln.Width()
		}
		height += ln.Height
	}
	tb.measuredHeight = height
	tb.maxIntrinsicWidth = longest
	tb.minIntrinsicWidth = tb.longestWordWidth()
	if tb.measuredWidth <= 0 {
		tb.measuredWidth = longest
	}
}

// longestWordWidth approximates min_intrinsic_width as the width of the
// widest logical Font Run, loosely grounded on the teacher's
// calculateMinIntrinsicWidth. It does not split runs into words, so a
// run holding several words counts at its full width.
func (tb *TextBlock) longestWordWidth() float32 {
	var widest float32
	for _, r := range tb.fontRuns {
		if r.Width > widest {
			widest = r.Width
		}
	}
	return widest
}
