package fontrun

import (
	"github.com/glyphforge/textlayout/font"
	"github.com/glyphforge/textlayout/fontmatch"
	"github.com/glyphforge/textlayout/geom"
	"github.com/glyphforge/textlayout/pool"
	"github.com/glyphforge/textlayout/shaping"
	"github.com/glyphforge/textlayout/style"
)

// Builder produces Font Runs from a Style Run, per spec.md §4.3's
// algorithm. It holds the two delegated collaborators spec.md §6 names
// (shaper and font matcher); the bidi levels are supplied by the caller
// (the Text Block computes them once per layout over the whole buffer).
type Builder struct {
	Shaper  shaping.Shaper
	Matcher fontmatch.Matcher

	// Pool, when set, checks out Run instances instead of allocating
	// them (spec.md §5/§9's object pool). Callers are responsible for
	// returning a prior layout's Runs to the same Pool before the next
	// Build call, since Get resets whatever comes back.
	Pool *pool.Pool[Run]
}

// NewBuilder creates a Builder wired to the given shaper and matcher.
func NewBuilder(s shaping.Shaper, m fontmatch.Matcher) *Builder {
	return &Builder{Shaper: s, Matcher: m}
}

func (b *Builder) newRun() *Run {
	if b.Pool != nil {
		return b.Pool.Get()
	}
	return &Run{}
}

// NewRun checks out a Run the same way Build does internally, for
// callers that construct a Run's fields themselves instead of going
// through Build (the Text Block's placeholder box runs, spec.md §9).
func (b *Builder) NewRun() *Run { return b.newRun() }

// segment is an intermediate (start, end) codepoint-local span sharing a
// bidi direction and a resolved face, before shaping.
type segment struct {
	start, end int32
	dir        Direction
	face       font.Face
	script     uint32
}

// Build runs spec.md §4.3's algorithm over one Style Run: segment by
// bidi level, then by font affinity within each directional sub-run,
// shape each segment, and compute RelativeCPX. Returns Font Runs in
// logical order.
//
// codepoints is the full buffer; styleStart/styleLength bound the Style
// Run within it; levels is the per-codepoint bidi level array for the
// *entire* buffer (bidi.Levels is computed once per paragraph, not per
// style run, since bidi analysis needs surrounding context).
func (b *Builder) Build(codepoints []rune, styleStart, styleLength int32, levels []uint8, s *style.Style) ([]*Run, error) {
	if styleLength == 0 {
		return nil, nil
	}
	runeCps := codepoints[styleStart : styleStart+styleLength]

	if s.HasReplacementChar() {
		runeCps = substituteAll(runeCps, s.ReplacementChar())
	}

	segments := b.segmentByBidiAndFont(runeCps, levels[styleStart:styleStart+styleLength], s)

	runs := make([]*Run, 0, len(segments))
	for _, seg := range segments {
		run, err := b.shapeSegment(runeCps, styleStart, seg, s)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// segmentByBidiAndFont implements spec.md §4.3 steps 1-2: split by bidi
// level first, then by font-affinity within each directional sub-run,
// keeping combining marks and ZWJ glued to the preceding base codepoint's
// segment regardless of what the font matcher alone would choose.
func (b *Builder) segmentByBidiAndFont(cps []rune, localLevels []uint8, s *style.Style) []segment {
	scripts := scriptRuns(cps)

	var segments []segment
	i := 0
	for i < len(cps) {
		level := localLevels[i]
		j := i
		for j < len(cps) && localLevels[j] == level {
			j++
		}
		// [i, j) shares one bidi level; now split by font affinity.
		segments = append(segments, b.splitByFontAffinity(cps, i, j, level, scripts, s)...)
		i = j
	}
	return segments
}

func (b *Builder) splitByFontAffinity(cps []rune, from, to int, level uint8, scripts []uint32, s *style.Style) []segment {
	dir := LTR
	if level%2 == 1 {
		dir = RTL
	}

	var segments []segment
	segStart := from
	var segFace font.Face

	for i := from; i < to; i++ {
		if isCombining(cps[i]) && i > segStart {
			continue // glue to the preceding base cluster's affinity
		}
		face, err := b.Matcher.Match(cps[i], s.FontFamilies(), s.FontWeight(), s.Italic())
		if err != nil {
			face = segFace // shaper/font-matcher failure: spec.md §7 kind 4, handled in shapeSegment via U+FFFD
		}
		if segFace == nil {
			segFace = face
		}
		if face != segFace && !sameFace(face, segFace) {
			segments = append(segments, segment{start: int32(segStart), end: int32(i), dir: dir, face: segFace, script: scripts[segStart]})
			segStart = i
			segFace = face
		}
	}
	segments = append(segments, segment{start: int32(segStart), end: int32(to), dir: dir, face: segFace, script: scripts[segStart]})
	return segments
}

func sameFace(a, b font.Face) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Typeface().UniqueID() == b.Typeface().UniqueID() && a.Size() == b.Size()
}

// shapeSegment implements spec.md §4.3 steps 3-7 for one segment.
func (b *Builder) shapeSegment(cps []rune, styleStart int32, seg segment, s *style.Style) (*Run, error) {
	segCps := cps[seg.start:seg.end]

	var features []shaping.Feature
	for _, f := range s.Features() {
		features = append(features, shaping.Feature{Tag: f.Tag, Value: uint32(f.Value)})
	}

	face := seg.face
	if face == nil {
		// No face resolved anywhere in the segment (spec.md §7 kind 4):
		// substitute U+FFFD and shape once with the nil face. Whether that
		// yields glyphs is up to the Shaper; HarfbuzzShaper returns
		// ErrUnresolvedFace, which Build passes back to its caller.
		segCps = substituteAll(append([]rune(nil), segCps...), 0xFFFD)
	}

	out, err := b.Shaper.Shape(segCps, face, seg.dir, s.Locale(), features)
	if err != nil {
		return nil, err
	}

	faceSize := s.FontSize()
	if s.Variant() != style.FontVariantNormal {
		faceSize *= 0.65
	}
	// Super/sub-script runs are shaped at the face's own size and then
	// scaled down, which matches shaping at faceSize.
	scale := faceSize / s.FontSize()
	if scale != 1 {
		for i := range out.Glyphs {
			g := &out.Glyphs[i]
			g.XAdvance *= scale
			g.YAdvance *= scale
			g.XOffset *= scale
			g.YOffset *= scale
		}
	}

	run := b.newRun()
	run.Kind = Normal
	run.LineIndex = -1
	run.Start = styleStart + seg.start
	run.Length = int32(len(segCps))
	run.Direction = seg.dir
	run.Script = seg.script
	run.Face = face
	run.Glyphs = out.Glyphs
	run.Width = out.Advance
	if face != nil {
		run.Metrics = face.Metrics()
	}

	ascent, descent, leading := calculateMetrics(run.Metrics, s.LineHeight(), false)
	run.Metrics = geom.FontMetrics{Ascent: ascent * scale, Descent: descent * scale, Leading: leading * scale}

	run.Positions = make([]geom.Point, len(out.Glyphs))
	var x, y float32
	for i, g := range out.Glyphs {
		run.Positions[i] = geom.Point{X: x + g.XOffset, Y: y + g.YOffset}
		x += g.XAdvance
		y += g.YAdvance
	}

	computeRelativeCPX(run, s.LetterSpacing())
	return run, nil
}

// computeRelativeCPX implements spec.md §4.3 step 4 (accumulate advances
// per codepoint) and step 5 (letter spacing inserted at cluster
// boundaries, not within a cluster's own glyphs). Cursive scripts never
// receive letter spacing: inserting advance between clusters there would
// visibly break the joining the shaper already produced.
func computeRelativeCPX(run *Run, letterSpacing float32) {
	n := run.Length
	rel := make([]float32, n+1)

	// advancePerCluster[c] = sum of XAdvance over glyphs whose Cluster == c
	// (c is the cluster's own starting codepoint index — a grapheme
	// cluster spanning several codepoints, e.g. base + combining mark,
	// contributes its whole advance at that one starting index and 0 at
	// the codepoints it subsumes).
	advancePerCluster := make([]float32, n)
	// isClusterStart[i] marks the codepoints that actually begin a
	// glyph cluster, so spacing can be gated on true cluster boundaries
	// instead of every codepoint index.
	isClusterStart := make([]bool, n)
	for _, g := range run.Glyphs {
		if g.Cluster >= 0 && int32(g.Cluster) < n {
			advancePerCluster[g.Cluster] += g.XAdvance
			isClusterStart[g.Cluster] = true
		}
	}

	spacing := letterSpacing
	if IsCursiveScript(run.Script) {
		spacing = 0
	}

	if run.Direction == LTR {
		var acc float32
		for i := int32(0); i < n; i++ {
			rel[i] = acc
			acc += advancePerCluster[i]
			// A cluster ends at i when the next codepoint starts a new
			// one, or i is the run's last codepoint — only then does
			// spacing belong, never partway through a multi-codepoint
			// cluster.
			if spacing != 0 && (i == n-1 || isClusterStart[i+1]) {
				acc += spacing
			}
		}
		rel[n] = acc
	} else {
		var acc float32
		for i := n - 1; i >= 0; i-- {
			rel[i+1] = acc
			acc += advancePerCluster[i]
			// Walking backwards, a cluster's advance only actually lands
			// when i reaches its own starting index (every other index
			// it spans contributed 0 above) — that's the boundary.
			if spacing != 0 && isClusterStart[i] {
				acc += spacing
			}
		}
		rel[0] = acc
	}

	run.RelativeCPX = rel
	if run.Direction == LTR {
		run.Width = rel[n]
	} else {
		run.Width = rel[0]
	}
}

func substituteAll(cps []rune, r rune) []rune {
	out := make([]rune, len(cps))
	for i := range cps {
		out[i] = r
	}
	return out
}
