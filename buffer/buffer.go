// Package buffer implements the Codepoint Buffer: an append-only UTF-32
// store with bidirectional offset maps to the UTF-16 view callers append
// from. Ported from: skia/paragraph/paragraph.go's internal UTF-8 text
// storage in the go-skia-support teacher, which keeps only a byte-range
// text string and recomputes UTF-16 offsets on demand via
// icu.Utf8ToUtf16Indices; this package instead stores the dual maps
// directly at append time (spec.md §3/§4.1), since the UTF-16 view must
// survive exactly as the external caller indexed it, including lone
// surrogates the teacher's UTF-8 round trip cannot represent.
package buffer

// Buffer is the append-only Codepoint Buffer (spec.md §3).
type Buffer struct {
	scalars    []rune
	utf16To32  []int32
	utf32To16  []int32
}

// New creates an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Len returns the number of codepoints stored.
func (b *Buffer) Len() int32 { return int32(len(b.scalars)) }

// At returns the codepoint at UTF-32 index i.
func (b *Buffer) At(i int32) rune { return b.scalars[i] }

// Slice returns the codepoints in [start, start+length).
func (b *Buffer) Slice(start, length int32) []rune {
	return b.scalars[start : start+length]
}

// Utf16ToUtf32 maps a UTF-16 code unit index from the original appended
// text into this buffer's UTF-32 index space.
func (b *Buffer) Utf16ToUtf32(i16 int32) int32 { return b.utf16To32[i16] }

// Utf32ToUtf16 maps a UTF-32 codepoint index to the first UTF-16 code
// unit index that produced it.
func (b *Buffer) Utf32ToUtf16(i32 int32) int32 { return b.utf32To16[i32] }

// Utf16Len returns the number of UTF-16 code units appended so far.
func (b *Buffer) Utf16Len() int32 { return int32(len(b.utf16To32)) }

// Append decodes a UTF-16 code unit sequence into the buffer: surrogate
// pairs collapse to one scalar each, and CRLF collapses to a single LF
// scalar (the CR is dropped from the UTF-32 stream but both units map to
// the LF's UTF-32 index). Ported from: spec.md §3/§4.1's decoding rule,
// with no teacher analog — the teacher's SkUnicode wraps ICU's UTF-16
// conversion utilities, which this module reimplements directly since it
// must also build the offset maps, not merely decode.
func (b *Buffer) Append(units []uint16) {
	i := 0
	for i < len(units) {
		u := units[i]

		switch {
		case isHighSurrogate(u) && i+1 < len(units) && isLowSurrogate(units[i+1]):
			lo := units[i+1]
			scalar := rune(0x10000 + (int32(u)-0xD800)<<10 + (int32(lo) - 0xDC00))
			idx := b.pushScalar(scalar)
			b.utf16To32 = append(b.utf16To32, idx, idx)
			i += 2

		case u == '\r' && i+1 < len(units) && units[i+1] == '\n':
			idx := b.pushScalar('\n')
			b.utf16To32 = append(b.utf16To32, idx, idx)
			i += 2

		default:
			idx := b.pushScalar(rune(u))
			b.utf16To32 = append(b.utf16To32, idx)
			i++
		}
	}
}

// AppendString decodes a Go string (already valid UTF-8, so free of lone
// surrogates) as a convenience over Append, normalizing CRLF→LF the same
// way.
func (b *Buffer) AppendString(s string) {
	units := utf16Encode(s)
	b.Append(units)
}

func (b *Buffer) pushScalar(r rune) int32 {
	idx := int32(len(b.scalars))
	b.scalars = append(b.scalars, r)
	b.utf32To16 = append(b.utf32To16, int32(len(b.utf16To32)))
	return idx
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

// utf16Encode mirrors unicode/utf16.Encode without pulling in another
// stdlib surrogate-handling path alongside this package's own — kept
// local so Append remains the single source of truth for the decode/
// encode contract spec.md §4.1 and §6 describe.
func utf16Encode(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		switch {
		case r < 0x10000:
			units = append(units, uint16(r))
		default:
			r -= 0x10000
			hi := uint16(0xD800 + (r >> 10))
			lo := uint16(0xDC00 + (r & 0x3FF))
			units = append(units, hi, lo)
		}
	}
	return units
}
