package content

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeClass is the word-boundary class of a grapheme cluster.
type GraphemeClass int

const (
	GraphemeWhitespace GraphemeClass = iota
	GraphemeWord
	GraphemePunctuation
)

// GraphemeCount returns the number of grapheme clusters in s.
// For example: "hello" = 5, "h😀llo" = 5.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Returns 0 for idx <= 0 and len(s) for idx past the end.
func GraphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		n++
		if n == idx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// ByteToGraphemeOffset converts a byte offset to the index of the grapheme
// containing it. Returns the grapheme count for offsets past the end.
func ByteToGraphemeOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return GraphemeCount(s)
	}
	idx := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		next := pos + len(cluster)
		if byteOffset < next {
			return idx
		}
		idx++
		pos = next
		s = rest
		state = newState
	}
	return idx
}

// SliceByGraphemes returns s from grapheme start to end (exclusive).
func SliceByGraphemes(s string, start, end int) string {
	start = max(start, 0)
	if end <= start {
		return ""
	}
	return s[GraphemeToByteOffset(s, start):GraphemeToByteOffset(s, end)]
}

// InsertAtGrapheme inserts insert before grapheme idx. It also returns the
// grapheme index just past the inserted text in the result, which can differ
// from idx+GraphemeCount(insert) when clusters join across the seam.
func InsertAtGrapheme(s string, idx int, insert string) (string, int) {
	at := GraphemeToByteOffset(s, idx)
	out := s[:at] + insert + s[at:]
	return out, GraphemeCount(out[:at+len(insert)])
}

// DeleteGraphemeRange removes graphemes start to end (exclusive).
func DeleteGraphemeRange(s string, start, end int) string {
	if end <= start {
		return s
	}
	return s[:GraphemeToByteOffset(s, start)] + s[GraphemeToByteOffset(s, end):]
}

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		out = append(out, cluster)
		s = rest
		state = newState
	}
	return out
}

// ClassifyGrapheme returns the word-boundary class of a cluster.
//
//   - Whitespace: space, tab, newline, carriage return, other unicode spaces
//   - Word: letters, numbers and underscore
//   - Punctuation: everything else, including emoji
func ClassifyGrapheme(cluster string) GraphemeClass {
	for _, r := range cluster {
		switch {
		case unicode.IsSpace(r):
			return GraphemeWhitespace
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			return GraphemeWord
		default:
			return GraphemePunctuation
		}
	}
	return GraphemeWhitespace
}

// DisplayWidth returns the terminal cell width of s.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
