// Package errkind defines typed errors for spec.md §7 kinds 1 and 2;
// kind 3 (malformed style coverage) is style.ErrMalformedCoverage. A
// font-match failure (kind 4) falls back to shaping U+FFFD with no face;
// with HarfbuzzShaper that returns shaping.ErrUnresolvedFace to the
// caller. Kind 5 (overflow) is a queryable flag, not an error. Ported from: the teacher's packages use bare fmt.Errorf and
// panics ad hoc (e.g. skia/paragraph/range.go's Range validity checks);
// this package gives those failure modes typed, matchable values instead,
// since spec.md §7 requires callers to distinguish the three kinds.
package errkind

import "fmt"

// OutOfRange is spec.md §7 kind 2: an index out of range passed to a
// query or split operation.
type OutOfRange struct {
	Op    string
	Index int32
	Limit int32
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("textlayout: %s: index %d out of range [0, %d)", e.Op, e.Index, e.Limit)
}

// SealedMutation describes spec.md §7 kind 1: an attempted mutation of a
// sealed Style. style.Builder does not raise this type; it panics with a
// plain string message on such a mutation.
type SealedMutation struct {
	Field string
}

func (e *SealedMutation) Error() string {
	return fmt.Sprintf("textlayout: mutation of sealed style field %q", e.Field)
}
