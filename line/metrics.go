// Package line implements the Line Builder (spec.md §3/§4.5): the
// component that consumes the logical-order Font Run sequence and
// produces Lines with bidi-reordered, absolutely positioned Font Runs.
//
// Ported from: skia/paragraph/internal_line_metrics.go's
// InternalLineMetrics and skia/paragraph/text_wrapper.go's TextWrapper
// in the go-skia-support teacher, re-expressed over fontrun.Run (which
// already carries codepoint-space RelativeCPX) instead of the teacher's
// Cluster/ClusterPos indirection — this module's Font Run Builder
// computes per-codepoint widths up front, so the Line Builder never
// needs a separate Cluster abstraction to answer "width up to codepoint
// i" queries.
package line

import "math"

// Metrics tracks the running ascent/descent/leading for a line while
// it's being built, ported from the teacher's InternalLineMetrics.
type Metrics struct {
	Ascent  float32
	Descent float32
	Leading float32

	ForceStrut bool
}

// NewMetrics returns metrics initialized to their "nothing added yet"
// sentinel values, as the teacher's NewInternalLineMetrics does.
func NewMetrics() Metrics {
	return Metrics{Ascent: math.MaxFloat32, Descent: -math.MaxFloat32}
}

// AddRun folds in a run's ascent/descent/leading (spec.md §4.5 step 8:
// "baseline = max ascent over normal FRs; height = max(...) across
// FRs"). Ported from: the teacher's InternalLineMetrics.AddRun.
func (m *Metrics) AddRun(ascent, descent, leading float32) {
	if m.ForceStrut {
		return
	}
	m.Ascent = minF(m.Ascent, ascent)
	m.Descent = maxF(m.Descent, descent)
	m.Leading = maxF(m.Leading, leading)
}

// Height returns the line's total height.
func (m Metrics) Height() float32 {
	return m.Descent - m.Ascent + m.Leading
}

// Baseline returns the line's alphabetic baseline offset from its top.
func (m Metrics) Baseline() float32 {
	return m.Leading/2 - m.Ascent
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
