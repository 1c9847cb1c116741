package content

import (
	"fmt"
	"strings"
)

// Fragment is pasted content built in the document's arena but not attached.
//
// Inline fragments hold a single paragraph whose spans are spliced into the
// caret's span sequence. Block fragments hold paragraphs spliced as siblings
// of the caret's paragraph.
type Fragment struct {
	Paragraphs []NodeID
	Inline     bool
}

// NewFragment validates detached paragraphs and wraps them in a fragment.
// inline is honoured only for a single paragraph.
func (d *Document) NewFragment(paragraphs []NodeID, inline bool) (*Fragment, error) {
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("%w: fragment needs at least one paragraph", ErrStructure)
	}
	for _, p := range paragraphs {
		if !d.IsParagraph(p) {
			return nil, fmt.Errorf("%w: fragment children must all be paragraphs", ErrStructure)
		}
		if err := d.checkDetached(p); err != nil {
			return nil, err
		}
	}
	return &Fragment{
		Paragraphs: paragraphs,
		Inline:     inline && len(paragraphs) == 1,
	}, nil
}

// Text returns the plain text of the fragment.
func (f *Fragment) Text(d *Document) string {
	parts := make([]string, len(f.Paragraphs))
	for i, p := range f.Paragraphs {
		parts[i] = d.ParagraphText(p)
	}
	return strings.Join(parts, "\n")
}

// Discard removes fragment nodes that were never attached.
func (f *Fragment) Discard(d *Document) {
	for _, p := range f.Paragraphs {
		if d.Exists(p) && d.Parent(p) == 0 {
			d.drop(p)
		}
	}
}

// FragmentFromText builds a fragment from plain text. A single line becomes an
// inline fragment; several lines become block content, one paragraph per line.
// Blank lines become canonical empty paragraphs.
func FragmentFromText(d *Document, text string, spanStyle Style) (*Fragment, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	paragraphs := make([]NodeID, 0, len(lines))
	for _, line := range lines {
		span := d.NewTextSpanWithText(line, spanStyle)
		p, err := d.NewParagraph([]NodeID{span}, nil)
		if err != nil {
			return nil, err
		}
		paragraphs = append(paragraphs, p)
	}
	return d.NewFragment(paragraphs, len(lines) == 1)
}
