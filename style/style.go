// Package style implements the Style Descriptor (spec.md §3): the
// immutable-after-seal set of attributes a Style Run carries. Per
// spec.md §9 ("sealed mutable config maps to a builder that produces an
// immutable value once seal() is called"), configuration happens through
// a Builder; the resulting Style is read-only and freely shareable
// across Text Blocks laid out on different goroutines.
//
// Ported from: skia/paragraph/text_style.go's TextStyle in the
// go-skia-support teacher, trimmed to the fields layout actually reads
// (paint-facing fields like ForegroundPaint/Edging/Hinting belong to the
// out-of-scope paint layer per spec.md §1) and reshaped from a plain
// mutable struct into the builder/seal pattern spec.md §9 calls for.
package style

import "fmt"

// UnderlineKind enumerates the underline variants a Style may request,
// as a bitflag so IME-composition variants can combine with a base kind.
// Ported from: skia/paragraph/decoration.go's TextDecoration, narrowed
// from the teacher's general decoration bitmask (underline|overline|
// line-through) to the underline-only axis spec.md §3 names, plus the
// teacher's TextDecorationMode folded in as the "gapped" variant.
type UnderlineKind uint8

const (
	UnderlineNone         UnderlineKind = 0
	UnderlineSolid        UnderlineKind = 1 << 0
	UnderlineGapped       UnderlineKind = 1 << 1
	UnderlineOverline     UnderlineKind = 1 << 2
	UnderlineIMEInput     UnderlineKind = 1 << 3
	UnderlineIMETarget    UnderlineKind = 1 << 4
	UnderlineIMEConverted UnderlineKind = 1 << 5
)

// StrikeKind enumerates strike-through presentation, separate from
// UnderlineKind since spec.md §3 lists them as independent fields.
type StrikeKind int

const (
	StrikeNone StrikeKind = iota
	StrikeSingle
	StrikeDouble
)

// StrokeStyle is the line style used to paint underline/strike/overline
// decorations. Ported from: skia/paragraph/decoration.go's
// TextDecorationStyle.
type StrokeStyle int

const (
	StrokeSolid StrokeStyle = iota
	StrokeDashed
	StrokeDotted
	StrokeDouble
	StrokeWavy
)

// FontVariant selects the baseline-shifting presentation spec.md §4.3
// step 7 scales for (super/sub-script).
type FontVariant int

const (
	FontVariantNormal FontVariant = iota
	FontVariantSuperscript
	FontVariantSubscript
)

// DirectionOverride is the per-run directional override spec.md §9's
// open question resolves: Auto defers to the paragraph's base direction.
type DirectionOverride int

const (
	DirectionAuto DirectionOverride = iota
	DirectionLTR
	DirectionRTL
)

// TextEffect names an additional paint-time effect (e.g. a highlight or
// glow) layered on top of the base decoration set. Layout threads these
// through opaquely; only the paint layer interprets them.
type TextEffect string

// FontFeature is an OpenType feature tag/value pair threaded to the
// shaper. Ported from: skia/paragraph/font_feature.go's FontFeature.
type FontFeature struct {
	Tag   string
	Value int
}

// Style is the immutable, sealed style descriptor a Style Run owns.
// Zero value is not valid; obtain one via NewBuilder()...Seal().
//
// Ported from: skia/paragraph/text_style.go's TextStyle, trimmed to
// layout-relevant fields and all fields unexported so Seal is the only
// construction path (mutation after Seal is spec.md §7 kind 1: a fatal
// programmer error, enforced here by making the struct impossible to
// address-and-assign into from outside the package).
type Style struct {
	fontFamilies  []string
	fontSize      float32
	fontWeight    int
	italic        bool
	underline     UnderlineKind
	strike        StrikeKind
	lineHeight    float32
	foreground    uint32
	background    uint32
	underlineColor uint32
	letterSpacing float32
	variant       FontVariant
	direction     DirectionOverride
	replacement   rune
	strokeWidth   float32
	hasStroke     bool
	underlineOffset float32
	strikeOffset    float32
	overlineOffset  float32
	strokeStyle     StrokeStyle
	inkSkip         bool
	effects         []TextEffect
	features        []FontFeature
	shadows         []Shadow
	locale          string
	sealed          bool
}

func (s *Style) FontFamilies() []string       { return s.fontFamilies }
func (s *Style) FontSize() float32            { return s.fontSize }
func (s *Style) FontWeight() int              { return s.fontWeight }
func (s *Style) Italic() bool                 { return s.italic }
func (s *Style) Underline() UnderlineKind     { return s.underline }
func (s *Style) Strike() StrikeKind           { return s.strike }
func (s *Style) LineHeight() float32          { return s.lineHeight }
func (s *Style) Foreground() uint32           { return s.foreground }
func (s *Style) Background() uint32           { return s.background }
func (s *Style) UnderlineColor() uint32       { return s.underlineColor }
func (s *Style) LetterSpacing() float32       { return s.letterSpacing }
func (s *Style) Variant() FontVariant         { return s.variant }
func (s *Style) Direction() DirectionOverride { return s.direction }
func (s *Style) ReplacementChar() rune        { return s.replacement }
func (s *Style) HasReplacementChar() bool     { return s.replacement != 0 }
func (s *Style) StrokeWidth() (float32, bool) { return s.strokeWidth, s.hasStroke }
func (s *Style) UnderlineOffset() float32     { return s.underlineOffset }
func (s *Style) StrikeOffset() float32        { return s.strikeOffset }
func (s *Style) OverlineOffset() float32      { return s.overlineOffset }
func (s *Style) StrokeStyle() StrokeStyle     { return s.strokeStyle }
func (s *Style) InkSkip() bool                { return s.inkSkip }
func (s *Style) Effects() []TextEffect        { return s.effects }
func (s *Style) Features() []FontFeature      { return s.features }
func (s *Style) Shadows() []Shadow            { return s.shadows }

// Locale is a BCT-47-ish language tag (e.g. "en", "ja", "ar-EG") threaded
// to the shaper as its language input, matching
// go-text/typesetting/shaping.Input.Language (spec.md §3's per-run
// style attributes). Empty means "unspecified" — the shaper falls back
// to its own default ("und").
func (s *Style) Locale() string { return s.locale }

// Builder assembles a Style before sealing it. Ported from: spec.md §9's
// builder/seal design note, with field defaults matching the teacher's
// NewTextStyle.
type Builder struct {
	s Style
}

// NewBuilder creates a Builder with the teacher's default values
// (DefaultFontFamily "sans-serif", DefaultFontSize 14, line height 1.0).
func NewBuilder() *Builder {
	return &Builder{s: Style{
		fontFamilies: []string{"sans-serif"},
		fontSize:     14.0,
		fontWeight:   400,
		lineHeight:   1.0,
	}}
}

func (b *Builder) mustNotBeSealed() {
	if b.s.sealed {
		panic("style: mutation of a sealed Style (spec.md §7 kind 1: fatal)")
	}
}

func (b *Builder) FontFamilies(families []string) *Builder {
	b.mustNotBeSealed()
	b.s.fontFamilies = families
	return b
}

func (b *Builder) FontSize(size float32) *Builder {
	b.mustNotBeSealed()
	b.s.fontSize = size
	return b
}

func (b *Builder) FontWeight(weight int) *Builder {
	b.mustNotBeSealed()
	b.s.fontWeight = weight
	return b
}

func (b *Builder) Italic(italic bool) *Builder {
	b.mustNotBeSealed()
	b.s.italic = italic
	return b
}

func (b *Builder) Underline(kind UnderlineKind, color uint32, offset float32) *Builder {
	b.mustNotBeSealed()
	b.s.underline = kind
	b.s.underlineColor = color
	b.s.underlineOffset = offset
	return b
}

func (b *Builder) Strike(kind StrikeKind, offset float32) *Builder {
	b.mustNotBeSealed()
	b.s.strike = kind
	b.s.strikeOffset = offset
	return b
}

func (b *Builder) Overline(offset float32) *Builder {
	b.mustNotBeSealed()
	b.s.overlineOffset = offset
	return b
}

func (b *Builder) LineHeight(multiplier float32) *Builder {
	b.mustNotBeSealed()
	b.s.lineHeight = multiplier
	return b
}

func (b *Builder) Colors(foreground, background uint32) *Builder {
	b.mustNotBeSealed()
	b.s.foreground = foreground
	b.s.background = background
	return b
}

func (b *Builder) LetterSpacing(spacing float32) *Builder {
	b.mustNotBeSealed()
	b.s.letterSpacing = spacing
	return b
}

func (b *Builder) Variant(v FontVariant) *Builder {
	b.mustNotBeSealed()
	b.s.variant = v
	return b
}

func (b *Builder) Direction(d DirectionOverride) *Builder {
	b.mustNotBeSealed()
	b.s.direction = d
	return b
}

func (b *Builder) ReplacementChar(r rune) *Builder {
	b.mustNotBeSealed()
	b.s.replacement = r
	return b
}

func (b *Builder) Stroke(width float32, style StrokeStyle) *Builder {
	b.mustNotBeSealed()
	b.s.strokeWidth = width
	b.s.hasStroke = true
	b.s.strokeStyle = style
	return b
}

func (b *Builder) InkSkip(skip bool) *Builder {
	b.mustNotBeSealed()
	b.s.inkSkip = skip
	return b
}

func (b *Builder) Effects(effects ...TextEffect) *Builder {
	b.mustNotBeSealed()
	b.s.effects = effects
	return b
}

func (b *Builder) Features(features ...FontFeature) *Builder {
	b.mustNotBeSealed()
	b.s.features = features
	return b
}

// Shadows sets text shadows, consumed only as data since painting is
// out of scope here.
func (b *Builder) Shadows(shadows ...Shadow) *Builder {
	b.mustNotBeSealed()
	b.s.shadows = shadows
	return b
}

// Locale sets the run's language tag, threaded to the shaper (spec.md
// §6: shaping delegate input). Ported from: skia/paragraph/text_style.go's
// TextStyle.Locale.
func (b *Builder) Locale(locale string) *Builder {
	b.mustNotBeSealed()
	b.s.locale = locale
	return b
}

// Seal validates and freezes the Style, returning an immutable handle.
// Further calls on b panic; the returned Style is safe to share.
func (b *Builder) Seal() *Style {
	b.mustNotBeSealed()
	if b.s.fontSize <= 0 {
		panic(fmt.Sprintf("style: font size must be positive, got %v", b.s.fontSize))
	}
	b.s.sealed = true
	sealed := b.s
	return &sealed
}
