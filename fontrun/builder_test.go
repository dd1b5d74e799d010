package fontrun

import (
	"testing"

	"github.com/glyphforge/textlayout/shaping"
)

// TestComputeRelativeCPXLetterSpacingPerCluster guards spec.md §4.3 step
// 5: letter spacing is inserted once per glyph cluster, not once per
// codepoint. A run where codepoints 1 and 2 shape into a single
// multi-codepoint cluster (base + combining mark) must only see spacing
// after codepoint 0 and after codepoint 2 (the run's end) — never an
// extra insertion between codepoints 1 and 2, which share one cluster.
func TestComputeRelativeCPXLetterSpacingPerCluster(t *testing.T) {
	run := &Run{
		Direction: LTR,
		Length:    3,
		Glyphs: []shaping.Glyph{
			{Cluster: 0, XAdvance: 10},
			{Cluster: 1, XAdvance: 15}, // covers codepoints 1 and 2 as one cluster
		},
	}

	computeRelativeCPX(run, 5)

	want := []float32{0, 15, 30, 35}
	if len(run.RelativeCPX) != len(want) {
		t.Fatalf("RelativeCPX = %v, want %v", run.RelativeCPX, want)
	}
	for i, w := range want {
		if run.RelativeCPX[i] != w {
			t.Errorf("RelativeCPX[%d] = %v, want %v", i, run.RelativeCPX[i], w)
		}
	}
	if run.Width != 35 {
		t.Errorf("Width = %v, want 35 (2 clusters x 5 spacing + 25 advance)", run.Width)
	}
}

// TestComputeRelativeCPXLetterSpacingPerClusterRTL mirrors the LTR case
// above with Direction reversed.
func TestComputeRelativeCPXLetterSpacingPerClusterRTL(t *testing.T) {
	run := &Run{
		Direction: RTL,
		Length:    3,
		Glyphs: []shaping.Glyph{
			{Cluster: 1, XAdvance: 15}, // codepoints 1 and 2, one cluster
			{Cluster: 0, XAdvance: 10},
		},
	}

	computeRelativeCPX(run, 5)

	// rel[2] and rel[3] both land on 0: codepoints 1 and 2 share one
	// cluster, so the boundary between them (index 2) isn't a real
	// split point and inherits the cluster's trailing-edge value.
	want := []float32{35, 20, 0, 0}
	if len(run.RelativeCPX) != len(want) {
		t.Fatalf("RelativeCPX = %v, want %v", run.RelativeCPX, want)
	}
	for i, w := range want {
		if run.RelativeCPX[i] != w {
			t.Errorf("RelativeCPX[%d] = %v, want %v", i, run.RelativeCPX[i], w)
		}
	}
	if run.Width != 35 {
		t.Errorf("Width = %v, want 35", run.Width)
	}
}
