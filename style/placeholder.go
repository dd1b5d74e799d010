package style

// PlaceholderAlignment mirrors skia/paragraph/placeholder.go's
// PlaceholderAlignment: how a non-text inline element aligns against the
// surrounding line's baseline.
type PlaceholderAlignment int

const (
	PlaceholderBaseline PlaceholderAlignment = iota
	PlaceholderAboveBaseline
	PlaceholderBelowBaseline
	PlaceholderTop
	PlaceholderBottom
	PlaceholderMiddle
)

// Placeholder is an inline, non-text element reserving Width x Height of
// line space. Ported from: skia/paragraph/placeholder.go's
// PlaceholderStyle. Not laid out by the Font Run Builder (there is no
// codepoint to shape) — the Line Builder reserves its box directly,
// which is why it lives alongside Style rather than inside Style itself.
type Placeholder struct {
	Width          float32
	Height         float32
	Alignment      PlaceholderAlignment
	BaselineOffset float32
}
