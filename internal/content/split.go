package content

import "fmt"

// SplitTextSpan cuts the text of span at offset and returns a new span holding
// the tail, inserted right after span when span is attached. The new span
// copies the style of the original. offset must fall strictly inside the
// text so that neither half is empty. The caret is not touched.
func (d *Document) SplitTextSpan(span NodeID, offset int) (NodeID, error) {
	if !d.IsTextSpan(span) {
		return 0, fmt.Errorf("%w: node %d is not a span", ErrStructure, span)
	}
	leaf := d.Leaf(span)
	if !d.IsText(leaf) {
		return 0, fmt.Errorf("%w: cannot split an empty span", ErrRange)
	}
	text := d.Text(leaf)
	length := GraphemeCount(text)
	if offset <= 0 || offset >= length {
		return 0, fmt.Errorf("%w: split offset %d of %d", ErrRange, offset, length)
	}
	at := GraphemeToByteOffset(text, offset)
	tailLeaf, err := d.NewText(text[at:])
	if err != nil {
		return 0, err
	}
	tail, err := d.NewTextSpan(tailLeaf, d.Style(span))
	if err != nil {
		return 0, err
	}
	if err := d.SetText(leaf, text[:at]); err != nil {
		return 0, err
	}
	if d.Parent(span) != 0 {
		if err := d.InsertAfter(span, tail); err != nil {
			return 0, err
		}
	}
	return tail, nil
}

// SplitParagraph splits paragraph at offset inside span and returns the new
// paragraph holding everything after that point. The new paragraph copies the
// style of the original and is inserted after it. Splitting at the very start
// or end of the paragraph is rejected because one side would be empty; callers
// insert an empty sibling paragraph instead.
func (d *Document) SplitParagraph(paragraph, span NodeID, offset int) (NodeID, error) {
	if !d.IsParagraph(paragraph) {
		return 0, fmt.Errorf("%w: node %d is not a paragraph", ErrStructure, paragraph)
	}
	if d.Parent(span) != paragraph {
		return 0, fmt.Errorf("%w: span %d is not in paragraph %d", ErrNotFound, span, paragraph)
	}
	idx := d.ChildIndex(span)
	length := d.TextLength(d.Leaf(span))
	var from int
	switch {
	case offset <= 0:
		from = idx
	case offset >= length:
		from = idx + 1
	default:
		if _, err := d.SplitTextSpan(span, offset); err != nil {
			return 0, err
		}
		from = idx + 1
	}
	children := d.Children(paragraph)
	if from <= 0 || from >= len(children) {
		return 0, fmt.Errorf("%w: split would leave an empty paragraph", ErrRange)
	}
	moved := children[from:]
	for _, c := range moved {
		d.unlink(c)
	}
	tail, err := d.NewParagraph(moved, d.Style(paragraph))
	if err != nil {
		return 0, err
	}
	if d.Parent(paragraph) != 0 {
		if err := d.InsertAfter(paragraph, tail); err != nil {
			return 0, err
		}
	}
	return tail, nil
}
