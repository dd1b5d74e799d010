package style

import (
	"fmt"
	"sort"
)

// Run is a Style Run: a half-open [Start, Start+Length) range into the
// Codepoint Buffer, owning a reference to a sealed Style (spec.md §3).
type Run struct {
	Start  int32
	Length int32
	Style  *Style
}

// End returns Start+Length.
func (r Run) End() int32 { return r.Start + r.Length }

// ErrMalformedCoverage is spec.md §7 kind 3: a gap or overlap between
// adjacent Style Runs, detected at layout entry (fail-fast, per spec.md
// §4.2's "Invariant check (fail-fast)").
type ErrMalformedCoverage struct {
	Index       int
	PrevEnd     int32
	Start       int32
}

func (e *ErrMalformedCoverage) Error() string {
	if e.Start < e.PrevEnd {
		return fmt.Sprintf("style: run %d overlaps previous run (starts at %d, previous ends at %d)", e.Index, e.Start, e.PrevEnd)
	}
	return fmt.Sprintf("style: run %d leaves a gap after previous run (starts at %d, previous ends at %d)", e.Index, e.Start, e.PrevEnd)
}

// Table is the Style Run Table: an ordered, gap-free, non-overlapping
// sequence of Runs covering [0, length) of a Codepoint Buffer.
//
// Ported from: the teacher's skia/paragraph package has no single
// SRT type — style runs are implicit in the (start, end, TextStyle)
// triples StyleBlock records internally inside the Paragraph builder.
// This type makes that table an explicit, independently testable
// component, per spec.md §3's SRT being a first-class structure.
type Table struct {
	runs []Run
}

// NewTable creates an empty Table.
func NewTable() *Table { return &Table{} }

// AddRun appends a Run. Callers guarantee coverage; Validate checks it.
func (t *Table) AddRun(start, length int32, s *Style) {
	t.runs = append(t.runs, Run{Start: start, Length: length, Style: s})
}

// Runs returns the runs in order.
func (t *Table) Runs() []Run { return t.runs }

// Validate checks spec.md §4.2's invariant: runs are sorted by start,
// disjoint, and cover [0, cbLen) exactly.
func (t *Table) Validate(cbLen int32) error {
	var prevEnd int32
	for i, r := range t.runs {
		if r.Start != prevEnd {
			return &ErrMalformedCoverage{Index: i, PrevEnd: prevEnd, Start: r.Start}
		}
		prevEnd = r.End()
	}
	if prevEnd != cbLen {
		return &ErrMalformedCoverage{Index: len(t.runs), PrevEnd: prevEnd, Start: cbLen}
	}
	return nil
}

// StyleAt finds the Style covering codepoint index i via binary search
// (spec.md §4.2: "style_at(i32) -> &Style: binary search").
func (t *Table) StyleAt(i int32) *Style {
	n := sort.Search(len(t.runs), func(k int) bool {
		return t.runs[k].End() > i
	})
	if n == len(t.runs) {
		return nil
	}
	return t.runs[n].Style
}
