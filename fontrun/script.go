package fontrun

import "unicode"

// Script tags, as four-byte OpenType script codes. Ported from:
// skia/shaper/script_iterator.go's scriptRunIterator.
const (
	scriptCommon    uint32 = 0x5A797979 // Zyyy
	scriptInherited uint32 = 0x5A696E68 // Zinh
	scriptLatin     uint32 = 0x4C61746E // Latn
)

var scriptTagByName = map[string]uint32{
	"Latin": scriptLatin, "Greek": tag("Grek"), "Cyrillic": tag("Cyrl"),
	"Arabic": tag("Arab"), "Hebrew": tag("Hebr"), "Han": tag("Hani"),
	"Hiragana": tag("Hira"), "Katakana": tag("Kana"), "Hangul": tag("Hang"),
	"Thai": tag("Thai"), "Devanagari": tag("Deva"), "Bengali": tag("Beng"),
	"Gurmukhi": tag("Guru"), "Gujarati": tag("Gujr"), "Oriya": tag("Orya"),
	"Tamil": tag("Taml"), "Telugu": tag("Telu"), "Kannada": tag("Knda"),
	"Malayalam": tag("Mlym"), "Sinhala": tag("Sinh"), "Myanmar": tag("Mymr"),
	"Khmer": tag("Khmr"), "Lao": tag("Laoo"), "Tibetan": tag("Tibt"),
	"Georgian": tag("Geor"), "Armenian": tag("Armn"), "Braille": tag("Brai"),
	"Mongolian": tag("Mong"), "Syriac": tag("Syrc"), "Nko": tag("Nkoo"),
	"Phags_Pa": tag("Phag"), "Mandaic": tag("Mand"),
	"Common": scriptCommon, "Inherited": scriptInherited,
}

// scriptOf returns the four-byte script tag for a codepoint. Ported from:
// skia/shaper/script_iterator.go's getScriptTag, using unicode.Scripts
// (stdlib — see DESIGN.md for why no pack library offers this).
func scriptOf(r rune) uint32 {
	if unicode.Is(unicode.Latin, r) {
		return scriptLatin
	}
	if unicode.Is(unicode.Common, r) {
		return scriptCommon
	}
	if unicode.Is(unicode.Inherited, r) {
		return scriptInherited
	}
	for name, table := range unicode.Scripts {
		if unicode.Is(table, r) {
			if t, ok := scriptTagByName[name]; ok {
				return t
			}
			return scriptCommon
		}
	}
	return scriptCommon
}

// scriptRuns resolves Common/Inherited codepoints to their neighboring
// script (matching HarfBuzz/ICU script-run resolution) and returns, for
// each codepoint, its resolved script tag. Ported from:
// skia/shaper/script_iterator.go's computeScriptRuns, generalized from
// byte-range runs to a per-codepoint tag slice. The Font Run Builder
// records the tag at each segment's first codepoint as the run's Script;
// it does not start a new run where the script changes (segments split
// only on bidi level and resolved face).
func scriptRuns(codepoints []rune) []uint32 {
	tags := make([]uint32, len(codepoints))
	for i, r := range codepoints {
		tags[i] = scriptOf(r)
	}

	last := scriptCommon
	for i := range tags {
		if tags[i] == scriptCommon || tags[i] == scriptInherited {
			if last != scriptCommon && last != scriptInherited {
				tags[i] = last
			}
		} else {
			last = tags[i]
		}
	}
	for i := len(tags) - 1; i >= 0; i-- {
		if tags[i] == scriptCommon || tags[i] == scriptInherited {
			if i+1 < len(tags) {
				tags[i] = tags[i+1]
			}
		}
	}
	for i := range tags {
		if tags[i] == scriptCommon || tags[i] == scriptInherited {
			tags[i] = scriptLatin
		}
	}
	return tags
}

// isCombining reports whether r is a combining mark or zero-width joiner
// that must stay glued to the preceding base codepoint's font-affinity
// segment (spec.md §4.3 step 2: "Combining marks and ZWJ sequences must
// stay with their base cluster").
func isCombining(r rune) bool {
	const zwj = '‍'
	return r == zwj || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf)
}
