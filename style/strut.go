package style

// Strut forces a consistent line height independent of the metrics of
// the runs actually placed on a line. Ported from:
// skia/paragraph/strut_style.go's StrutStyle in the go-skia-support
// teacher, trimmed to the fields that affect Line Builder metrics
// (spec.md §4.5 step 8 computes baseline/height from the normal FRs'
// metrics; a Strut, when enabled, overrides that computation instead).
type Strut struct {
	FontFamilies []string
	FontSize     float32
	Height       float32
	Leading      float32
	Enabled      bool
	ForceHeight  bool
	HalfLeading  bool
}

// NewStrut returns a disabled Strut with the teacher's default values.
func NewStrut() Strut {
	return Strut{FontSize: 14.0, Height: 1.0}
}
