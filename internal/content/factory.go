package content

import "fmt"

// NewText creates a detached text leaf. Empty text is rejected; use
// NewLineBreak for zero-length content.
func (d *Document) NewText(text string) (NodeID, error) {
	if text == "" {
		return 0, ErrEmptyText
	}
	return d.alloc(&node{kind: KindText, text: text}), nil
}

// NewLineBreak creates a detached line break leaf.
func (d *Document) NewLineBreak() NodeID {
	return d.alloc(&node{kind: KindLineBreak})
}

// NewTextSpan creates a detached span around leaf.
func (d *Document) NewTextSpan(leaf NodeID, style Style) (NodeID, error) {
	if !d.IsLeaf(leaf) {
		return 0, fmt.Errorf("%w: span child must be a text or line break", ErrStructure)
	}
	if err := d.checkDetached(leaf); err != nil {
		return 0, err
	}
	span := d.alloc(&node{kind: KindTextSpan, style: MergeStyles(TextSpanStyles, nil, style)})
	d.link(span, leaf, 0)
	return span, nil
}

// NewTextSpanWithText creates a span holding text, or a line break when text
// is empty.
func (d *Document) NewTextSpanWithText(text string, style Style) NodeID {
	leaf := d.NewLineBreak()
	if text != "" {
		leaf, _ = d.NewText(text)
	}
	span, _ := d.NewTextSpan(leaf, style)
	return span
}

// NewParagraph creates a detached paragraph holding spans.
func (d *Document) NewParagraph(spans []NodeID, style Style) (NodeID, error) {
	if len(spans) == 0 {
		return 0, fmt.Errorf("%w: paragraph needs at least one span", ErrStructure)
	}
	for _, s := range spans {
		if !d.IsTextSpan(s) {
			return 0, fmt.Errorf("%w: paragraph children must all be spans", ErrStructure)
		}
		if err := d.checkDetached(s); err != nil {
			return 0, err
		}
	}
	p := d.alloc(&node{kind: KindParagraph, style: MergeStyles(ParagraphStyles, nil, style)})
	for i, s := range spans {
		d.link(p, s, i)
	}
	return p, nil
}

// NewEmptyParagraph creates a detached canonical empty paragraph.
func (d *Document) NewEmptyParagraph(paragraphStyle, spanStyle Style) NodeID {
	span, _ := d.NewTextSpan(d.NewLineBreak(), spanStyle)
	p, _ := d.NewParagraph([]NodeID{span}, paragraphStyle)
	return p
}

// ResetRoot replaces every paragraph of the root with paragraphs. The previous
// paragraphs are removed from the arena and returned.
func (d *Document) ResetRoot(paragraphs []NodeID, style Style) ([]NodeID, error) {
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("%w: root needs at least one paragraph", ErrStructure)
	}
	for _, p := range paragraphs {
		if !d.IsParagraph(p) {
			return nil, fmt.Errorf("%w: root children must all be paragraphs", ErrStructure)
		}
		if err := d.checkDetached(p); err != nil {
			return nil, err
		}
	}
	old := d.Children(d.root)
	for _, p := range old {
		d.unlink(p)
		d.drop(p)
	}
	for i, p := range paragraphs {
		d.link(d.root, p, i)
	}
	if style != nil {
		d.nodes[d.root].style = MergeStyles(RootStyles, nil, style)
	}
	d.revision++
	return old, nil
}

func (d *Document) checkDetached(id NodeID) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	if n.parent != 0 || id == d.root {
		return fmt.Errorf("%w: node %d already has a parent", ErrStructure, id)
	}
	return nil
}
