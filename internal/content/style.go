package content

import (
	"maps"
	"slices"
	"sort"
)

// Mixed marks a style property whose value differs across a selection.
const Mixed = "mixed"

// Style is an allow-listed property map attached to roots, paragraphs and spans.
type Style map[string]string

// Clone returns a copy of the style. A nil style clones to an empty one.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	maps.Copy(out, s)
	return out
}

// Get returns the value for key, or "" when unset.
func (s Style) Get(key string) string {
	return s[key]
}

// Equal reports whether both styles hold the same properties.
func (s Style) Equal(other Style) bool {
	return maps.Equal(s, other)
}

// Keys returns the property names in sorted order.
func (s Style) Keys() []string {
	keys := slices.Collect(maps.Keys(s))
	sort.Strings(keys)
	return keys
}

// Only returns the subset of s whose keys are in allow.
func (s Style) Only(allow []string) Style {
	out := make(Style)
	for _, k := range allow {
		if v, ok := s[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Style property names.
const (
	FontID          = "font-id"
	FontFamily      = "font-family"
	FontSize        = "font-size"
	FontWeight      = "font-weight"
	FontStyle       = "font-style"
	FontVariantID   = "font-variant-id"
	TextDecoration  = "text-decoration"
	TextTransform   = "text-transform"
	LetterSpacing   = "letter-spacing"
	Fills           = "fills"
	TypographyRefID = "typography-ref-id"

	TextAlign     = "text-align"
	TextDirection = "text-direction"
	LineHeight    = "line-height"

	VerticalAlign = "vertical-align"
)

// TextSpanStyles lists the properties a text span may carry.
var TextSpanStyles = []string{
	FontID,
	FontFamily,
	FontSize,
	FontWeight,
	FontStyle,
	FontVariantID,
	TextDecoration,
	TextTransform,
	LetterSpacing,
	Fills,
	TypographyRefID,
}

// ParagraphOnlyStyles are the block-level properties that never live on spans.
var ParagraphOnlyStyles = []string{
	TextAlign,
	TextDirection,
	LineHeight,
}

// RootOnlyStyles are the properties only the root understands.
var RootOnlyStyles = []string{
	VerticalAlign,
}

// ParagraphStyles lists the properties a paragraph may carry. Span properties
// are accepted as paragraph-level defaults.
var ParagraphStyles = slices.Concat(ParagraphOnlyStyles, TextSpanStyles)

// RootStyles lists the properties the root may carry.
var RootStyles = slices.Concat(RootOnlyStyles, TextSpanStyles)

// IsStyleKey reports whether key is a known property at any level.
func IsStyleKey(key string) bool {
	return slices.Contains(TextSpanStyles, key) ||
		slices.Contains(ParagraphOnlyStyles, key) ||
		slices.Contains(RootOnlyStyles, key)
}

// AllowList returns the style allow-list for a node kind, or nil for leaves.
func AllowList(kind Kind) []string {
	switch kind {
	case KindRoot:
		return RootStyles
	case KindParagraph:
		return ParagraphStyles
	case KindTextSpan:
		return TextSpanStyles
	default:
		return nil
	}
}

// MergeStyles combines the allow-listed values of existing with overrides.
// Overrides win; an override of "" removes the property.
func MergeStyles(allow []string, existing, overrides Style) Style {
	out := make(Style)
	for _, k := range allow {
		if v, ok := overrides[k]; ok {
			if v != "" {
				out[k] = v
			}
			continue
		}
		if v, ok := existing[k]; ok && v != "" {
			out[k] = v
		}
	}
	return out
}

// ResolveStyle computes the effective style at a span. Later layers override
// earlier ones: defaults, then root, paragraph and span.
func ResolveStyle(defaults, root, paragraph, span Style) Style {
	out := defaults.Clone()
	for _, layer := range []Style{root, paragraph, span} {
		for k, v := range layer {
			if v != "" {
				out[k] = v
			}
		}
	}
	return out
}

// SplitStyles partitions a style into its root-only, paragraph-only and span
// parts. Unknown properties are dropped.
func SplitStyles(s Style) (root, paragraph, span Style) {
	return s.Only(RootOnlyStyles), s.Only(ParagraphOnlyStyles), s.Only(TextSpanStyles)
}

// MergeMixed folds next into acc, marking differing properties as Mixed.
// A nil acc starts the fold.
func MergeMixed(acc, next Style) Style {
	if acc == nil {
		return next.Clone()
	}
	for k, v := range acc {
		if nv, ok := next[k]; !ok || nv != v {
			acc[k] = Mixed
		}
	}
	for k := range next {
		if _, ok := acc[k]; !ok {
			acc[k] = Mixed
		}
	}
	return acc
}
