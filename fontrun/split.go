package fontrun

import (
	"github.com/glyphforge/textlayout/errkind"
	"github.com/glyphforge/textlayout/geom"
	"github.com/glyphforge/textlayout/shaping"
)

// Split implements spec.md §4.4: splits run at codepoint p (global
// Codepoint Buffer index), strictly interior to [run.Start, run.End()),
// assigning whole glyph clusters to one side or the other. Returns
// (left, right) in logical order; both inherit run's StyleRunIndex,
// Direction, Face, Metrics, and Script.
//
// Ported from: no direct teacher analog — skia/paragraph's line breaking
// (text_wrapper.go) mutates TextRange/ClusterRange bounds on the
// original Cluster/Run tables in place rather than materializing split
// Run values; this module instead produces two independent immutable
// Runs, matching spec.md §4.4's explicit "produce two FRs" contract and
// §4.4's invalidation rule ("all previously cached rendering artifacts
// are invalidated" — trivially true here since nothing is shared).
func Split(run *Run, p int32) (left, right *Run, err error) {
	if p <= run.Start || p >= run.End() {
		return nil, nil, &errkind.OutOfRange{Op: "fontrun.Split", Index: p, Limit: run.End()}
	}
	cpSplit := p - run.Start

	glyphSplit := findGlyphSplit(run, cpSplit)

	if run.Direction == LTR {
		left = sliceRun(run, 0, cpSplit, 0, glyphSplit, 0)
		right = sliceRun(run, cpSplit, run.Length, glyphSplit, len(run.Glyphs), left.Width)
		return left, right, nil
	}

	// RTL: codepoints still split into [0, cpSplit) and [cpSplit, Length)
	// in logical order, same as the LTR branch above. But run.Glyphs is
	// in visual (left-to-right) presentation order, and for RTL the
	// logically-earlier codepoints sit at the *higher* end of that glyph
	// array (reading starts at the run's right edge), so the glyph
	// ranges pair with the cp ranges in the opposite order from LTR:
	// earlier gets glyphs[glyphSplit:], later gets glyphs[:glyphSplit].
	earlier := sliceRun(run, 0, cpSplit, glyphSplit, len(run.Glyphs), 0)
	later := sliceRun(run, cpSplit, run.Length, 0, glyphSplit, 0)
	// later (logically later codepoints) sits at the run's original
	// origin in RTL layout; earlier's glyph positions are shifted left by
	// later's width so they start from earlier's own origin.
	translate(earlier, -later.Width)
	return earlier, later, nil
}

// findGlyphSplit finds the glyph index boundary assigning whole clusters
// to one side (spec.md §4.4: "the smallest glyph index whose cluster ≥ p
// (LTR), or (RTL) the largest glyph index whose cluster ≥ p plus one").
func findGlyphSplit(run *Run, cpSplit int32) int {
	if run.Direction == LTR {
		for i, g := range run.Glyphs {
			if int32(g.Cluster) >= cpSplit {
				return i
			}
		}
		return len(run.Glyphs)
	}
	for i := len(run.Glyphs) - 1; i >= 0; i-- {
		if int32(run.Glyphs[i].Cluster) >= cpSplit {
			return i + 1
		}
	}
	return 0
}

func sliceRun(run *Run, cpFrom, cpTo int32, glyphFrom, glyphTo int, xTranslate float32) *Run {
	out := &Run{
		Kind:          run.Kind,
		StyleRunIndex: run.StyleRunIndex,
		LineIndex:     -1,
		Start:         run.Start + cpFrom,
		Length:        cpTo - cpFrom,
		Direction:     run.Direction,
		Script:        run.Script,
		Face:          run.Face,
		Metrics:       run.Metrics,
	}

	out.Glyphs = append([]shaping.Glyph(nil), run.Glyphs[glyphFrom:glyphTo]...)
	out.Positions = append([]geom.Point(nil), run.Positions[glyphFrom:glyphTo]...)

	// run.RelativeCPX is monotonically increasing for LTR (0 at cpFrom's
	// global position, growing rightward) and monotonically decreasing
	// for RTL (0 at the global trailing edge, growing leftward) — so the
	// anchor that must land on 0 in the new local table is cpFrom for
	// LTR but cpTo for RTL. Anchoring on cpFrom in both directions (as if
	// the table always increased) would give a local table whose values
	// run the wrong way for any RTL slice that isn't the run's own tail.
	out.RelativeCPX = make([]float32, out.Length+1)
	anchor := cpFrom
	if out.Direction == RTL {
		anchor = cpTo
	}
	for i := int32(0); i <= out.Length; i++ {
		out.RelativeCPX[i] = run.RelativeCPX[cpFrom+i] - run.RelativeCPX[anchor]
	}
	if out.Direction == LTR {
		out.Width = out.RelativeCPX[out.Length]
	} else {
		out.Width = out.RelativeCPX[0]
	}

	for i := range out.Positions {
		out.Positions[i].X -= xTranslate
	}
	for i := range out.Glyphs {
		out.Glyphs[i].Cluster -= int(cpFrom)
	}

	return out
}

func translate(run *Run, dx float32) {
	for i := range run.Positions {
		run.Positions[i].X += dx
	}
}
