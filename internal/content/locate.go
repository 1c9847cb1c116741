package content

import "fmt"

// LeafAt returns the leaf of the span-th span of the paragraph-th paragraph.
func (d *Document) LeafAt(paragraph, span int) (NodeID, error) {
	p := d.Child(d.root, paragraph)
	if p == 0 {
		return 0, fmt.Errorf("%w: paragraph %d of %d", ErrRange, paragraph, d.ChildCount(d.root))
	}
	s := d.Child(p, span)
	if s == 0 {
		return 0, fmt.Errorf("%w: span %d of %d", ErrRange, span, d.ChildCount(p))
	}
	return d.Leaf(s), nil
}

// TextLen returns the length of the document in graphemes, counting one
// separator between consecutive paragraphs.
func (d *Document) TextLen() int {
	total := 0
	for i, p := range d.Paragraphs() {
		if i > 0 {
			total++
		}
		for _, s := range d.Children(p) {
			total += d.TextLength(d.Leaf(s))
		}
	}
	return total
}

// Locate maps a linear grapheme position (paragraphs separated by one unit)
// to a leaf and offset. On a boundary between spans the earlier leaf wins.
// Positions past the end clamp to the end of the document.
func (d *Document) Locate(pos int) (NodeID, int) {
	pos = max(pos, 0)
	paragraphs := d.Paragraphs()
	for i, p := range paragraphs {
		spans := d.Children(p)
		for _, s := range spans {
			leaf := d.Leaf(s)
			n := d.TextLength(leaf)
			if pos <= n {
				return leaf, pos
			}
			pos -= n
		}
		if i < len(paragraphs)-1 {
			pos-- // paragraph separator
		}
	}
	last := d.LastLeaf(d.root)
	return last, d.TextLength(last)
}

// PositionOf is the inverse of Locate.
func (d *Document) PositionOf(leaf NodeID, offset int) (int, error) {
	if !d.IsLeaf(leaf) {
		return 0, fmt.Errorf("%w: node %d", ErrNotLeaf, leaf)
	}
	pos := 0
	for i, p := range d.Paragraphs() {
		if i > 0 {
			pos++
		}
		for _, s := range d.Children(p) {
			l := d.Leaf(s)
			if l == leaf {
				return pos + min(offset, d.TextLength(l)), nil
			}
			pos += d.TextLength(l)
		}
	}
	return 0, fmt.Errorf("%w: leaf %d", ErrDetached, leaf)
}
