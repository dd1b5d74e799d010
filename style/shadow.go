package style

import "github.com/glyphforge/textlayout/geom"

// Shadow is a text shadow effect. Ported from:
// skia/paragraph/text_shadow.go's TextShadow.
type Shadow struct {
	Color     uint32
	Offset    geom.Point
	BlurSigma float64
}

// HasEffect reports whether the shadow is visible (non-zero blur or
// offset), mirroring the teacher's TextShadow.HasShadow.
func (s Shadow) HasEffect() bool {
	return s.BlurSigma > 0 || s.Offset.X != 0 || s.Offset.Y != 0
}
