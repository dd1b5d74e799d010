package line

import "github.com/glyphforge/textlayout/fontrun"

// Line is an ordered list of Font Runs in visual (left-to-right) order,
// with absolute y-position and the accumulated metrics of its contents
// (spec.md §3: "Line. Ordered list of Font Runs in visual... order").
type Line struct {
	Runs []*fontrun.Run

	YCoord   float32
	Height   float32
	Baseline float32

	// StartCP/EndCP are the logical codepoint range [StartCP, EndCP)
	// this line covers, including any trailing whitespace.
	StartCP int32
	EndCP   int32
}

// Width returns the sum of the visual widths of the line's runs,
// excluding trailing-whitespace runs (spec.md §3 "Trailing whitespace...
// excluded from width and overhang").
func (l *Line) Width() float32 {
	var w float32
	for _, r := range l.Runs {
		if r.Kind == fontrun.TrailingWhitespace {
			continue
		}
		w += r.Width
	}
	return w
}
