// Package fontmatch is the delegated font-matching/fallback registry
// spec.md §6 requires as an external collaborator: a pure function from
// (codepoint, style) to a resolved font.Face. The layout engine never
// implements font fallback itself; it only defines the Matcher boundary
// and ships one reference implementation a caller can register faces with.
//
// Ported from: skia/paragraph/font_collection.go and
// skia/paragraph/typeface_font_provider.go in the go-skia-support teacher
// (FontCollection.FindTypefaces / DefaultFallback, TypefaceFontProvider),
// generalized from family+FontStyle+SkFontMgr plumbing to the single
// Matcher function spec.md names.
package fontmatch

import (
	"sort"

	"github.com/glyphforge/textlayout/font"
)

// Matcher resolves a typeface for a codepoint under a requested family
// list, weight, and italic flag. Implementations should fall back across
// families in priority order and finally to a registry-wide default face
// capable of rendering the codepoint (matching the teacher's
// FontCollection.DefaultFallback).
type Matcher interface {
	Match(r rune, families []string, weight int, italic bool) (font.Face, error)
}

// ErrNoMatch is returned when neither the requested families nor the
// fallback list has any registered face.
type ErrNoMatch struct {
	Rune rune
}

func (e *ErrNoMatch) Error() string { return "fontmatch: no face resolves codepoint" }

// Registry is a minimal in-process Matcher, grounded on the teacher's
// TypefaceFontProvider: faces are registered under family aliases and
// matched by family name first, falling back to a registry-wide default
// (the teacher's FontCollection.GetFallbackManager) when no requested
// family has a registered face. It does not check whether a face covers
// the codepoint: the first requested family with any face wins.
type Registry struct {
	families map[string][]font.Face
	fallback []font.Face
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{families: make(map[string][]font.Face)}
}

// Register adds a face under the given family alias.
func (r *Registry) Register(family string, f font.Face) {
	r.families[family] = append(r.families[family], f)
}

// RegisterFallback adds a face to the registry-wide fallback list,
// consulted when no requested family resolves a codepoint (teacher:
// DefaultFallback / defaultFontManager).
func (r *Registry) RegisterFallback(f font.Face) {
	r.fallback = append(r.fallback, f)
}

// Match implements Matcher.
func (r *Registry) Match(cp rune, families []string, weight int, italic bool) (font.Face, error) {
	for _, family := range families {
		faces := r.families[family]
		if best := bestStyleMatch(faces, weight, italic); best != nil {
			return best, nil
		}
	}
	if best := bestStyleMatch(r.fallback, weight, italic); best != nil {
		return best, nil
	}
	return nil, &ErrNoMatch{Rune: cp}
}

// bestStyleMatch picks the closest weight/italic match, matching the
// teacher's TypefaceFontStyleSet.MatchStyle (exact match preferred,
// otherwise the closest by weight distance).
func bestStyleMatch(faces []font.Face, weight int, italic bool) font.Face {
	if len(faces) == 0 {
		return nil
	}
	sorted := make([]font.Face, len(faces))
	copy(sorted, faces)
	sort.SliceStable(sorted, func(i, j int) bool {
		wi := abs(weightOf(sorted[i]) - weight)
		wj := abs(weightOf(sorted[j]) - weight)
		if wi != wj {
			return wi < wj
		}
		return italicOf(sorted[i]) == italic && italicOf(sorted[j]) != italic
	})
	return sorted[0]
}

func weightOf(f font.Face) int {
	if f.Typeface().IsBold() {
		return 700
	}
	return 400
}

func italicOf(f font.Face) bool { return f.Typeface().IsItalic() }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
