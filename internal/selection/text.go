package selection

import (
	"fmt"

	"github.com/zjrosen/spanedit/internal/content"
)

// InsertText splices text at the caret and moves the caret to the end of the
// inserted text. On a line break the marker is replaced by a text leaf.
func (c *Controller) InsertText(text string) error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	if c.doc.IsLineBreak(p.Node) {
		return c.ReplaceLineBreak(text)
	}
	out, caret := content.InsertAtGrapheme(c.doc.Text(p.Node), p.Offset, text)
	if err := c.doc.SetText(p.Node, out); err != nil {
		return err
	}
	c.tracker.Update(c.doc.Parent(p.Node))
	return c.setCaret(p.Node, caret)
}

// ReplaceLineBreak swaps the line break at the caret for a text leaf holding
// text. The caret lands at the end of the new text.
func (c *Controller) ReplaceLineBreak(text string) error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	if !c.doc.IsLineBreak(p.Node) {
		return fmt.Errorf("%w: focus %d is not a line break", content.ErrRange, p.Node)
	}
	if text == "" {
		return nil
	}
	leaf, err := c.doc.NewText(text)
	if err != nil {
		return err
	}
	span := c.doc.Parent(p.Node)
	if err := c.doc.Replace(p.Node, leaf); err != nil {
		return err
	}
	c.tracker.Update(span)
	return c.caretAtEnd(leaf)
}

// ReplaceText replaces a selection inside one text leaf with text. Empty text
// removes the selection.
func (c *Controller) ReplaceText(text string) error {
	r, err := c.current()
	if err != nil {
		return err
	}
	if r.Anchor.Node != r.Focus.Node {
		return fmt.Errorf("%w: selection spans more than one leaf", content.ErrRange)
	}
	if r.Collapsed() {
		return c.InsertText(text)
	}
	if text == "" {
		return c.RemoveSelected(RemoveOptions{Direction: DirectionBackward})
	}
	start, end := c.ordered(r)
	leaf := start.Node
	out := content.DeleteGraphemeRange(c.doc.Text(leaf), start.Offset, end.Offset)
	out, caret := content.InsertAtGrapheme(out, start.Offset, text)
	if err := c.doc.SetText(leaf, out); err != nil {
		return err
	}
	c.tracker.Update(c.doc.Parent(leaf))
	return c.setCaret(leaf, caret)
}

// ReplaceTextSpans removes a selection of any extent and inserts text at the
// resulting caret.
func (c *Controller) ReplaceTextSpans(text string) error {
	if err := c.RemoveSelected(RemoveOptions{Direction: DirectionBackward}); err != nil {
		return err
	}
	return c.InsertText(text)
}

// RemoveBackwardText deletes the grapheme before the caret within the
// caret's paragraph. At the start of a leaf it deletes from the end of the
// previous leaf. At the start of the paragraph it does nothing.
func (c *Controller) RemoveBackwardText() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	leaf, off := p.Node, p.Offset
	if off == 0 {
		prev := c.doc.PreviousSibling(c.doc.Parent(leaf))
		if prev == 0 {
			return nil
		}
		if c.doc.IsEmptyTextSpan(prev) {
			return c.dropEmptySpan(prev, p)
		}
		leaf = c.doc.Leaf(prev)
		off = c.doc.TextLength(leaf)
	}
	out := content.DeleteGraphemeRange(c.doc.Text(leaf), off-1, off)
	if out == "" {
		return c.emptyLeaf(leaf, DirectionBackward)
	}
	if err := c.doc.SetText(leaf, out); err != nil {
		return err
	}
	c.tracker.Update(c.doc.Parent(leaf))
	return c.setCaret(leaf, off-1)
}

// RemoveForwardText deletes the grapheme after the caret within the caret's
// paragraph. At the end of a leaf it deletes from the start of the next leaf.
// At the end of the paragraph it does nothing.
func (c *Controller) RemoveForwardText() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	leaf, off := p.Node, p.Offset
	if off == c.doc.TextLength(leaf) {
		next := c.doc.NextSibling(c.doc.Parent(leaf))
		if next == 0 {
			return nil
		}
		if c.doc.IsEmptyTextSpan(next) {
			return c.dropEmptySpan(next, p)
		}
		leaf = c.doc.Leaf(next)
		off = 0
	}
	out := content.DeleteGraphemeRange(c.doc.Text(leaf), off, off+1)
	if out == "" {
		return c.emptyLeaf(leaf, DirectionForward)
	}
	if err := c.doc.SetText(leaf, out); err != nil {
		return err
	}
	c.tracker.Update(c.doc.Parent(leaf))
	return c.setCaret(leaf, off)
}

// RemoveWordBackward deletes back to the previous word boundary: a run of
// whitespace, then one run of word or punctuation characters. At the start of
// a leaf it continues in the previous leaf; at the start of a paragraph it
// joins the paragraph with the previous one.
func (c *Controller) RemoveWordBackward() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	leaf, off := p.Node, p.Offset
	if off == 0 {
		prev := c.doc.PreviousSibling(c.doc.Parent(leaf))
		switch {
		case prev == 0 && c.doc.IsLineBreak(leaf):
			return c.RemoveBackwardParagraph()
		case prev == 0:
			return c.MergeBackwardParagraph()
		case c.doc.IsEmptyTextSpan(prev):
			return c.dropEmptySpan(prev, p)
		}
		leaf = c.doc.Leaf(prev)
		off = c.doc.TextLength(leaf)
	}
	text := c.doc.Text(leaf)
	from := wordStart(content.Graphemes(text), off)
	out := content.DeleteGraphemeRange(text, from, off)
	if out == "" {
		return c.emptyLeaf(leaf, DirectionBackward)
	}
	if err := c.doc.SetText(leaf, out); err != nil {
		return err
	}
	c.tracker.Update(c.doc.Parent(leaf))
	return c.setCaret(leaf, from)
}

// wordStart returns the index a backward word deletion from off stops at.
func wordStart(graphemes []string, off int) int {
	i := min(off, len(graphemes))
	for i > 0 && content.ClassifyGrapheme(graphemes[i-1]) == content.GraphemeWhitespace {
		i--
	}
	if i == 0 {
		return 0
	}
	class := content.ClassifyGrapheme(graphemes[i-1])
	for i > 0 && content.ClassifyGrapheme(graphemes[i-1]) == class {
		i--
	}
	return i
}

// emptyLeaf handles a text leaf whose whole content is being deleted. The
// only span of a paragraph collapses to a line break; otherwise the span is
// removed and the caret moves to a neighbour. Backward deletions prefer the
// end of the previous leaf, forward deletions the start of the next.
func (c *Controller) emptyLeaf(leaf content.NodeID, dir Direction) error {
	span := c.doc.Parent(leaf)
	paragraph := c.doc.Parent(span)
	if c.doc.ChildCount(paragraph) == 1 {
		br := c.doc.NewLineBreak()
		if err := c.doc.Replace(leaf, br); err != nil {
			return err
		}
		c.tracker.Update(span)
		return c.setCaret(br, 0)
	}
	target, offset := c.landing(span, span, dir)
	if err := c.doc.Remove(span); err != nil {
		return err
	}
	c.tracker.Remove(span)
	c.tracker.Update(paragraph)
	return c.setCaret(target, offset)
}

// landing picks where the caret goes when the spans from first to last are
// about to be removed. It returns the neighbouring leaf and offset.
func (c *Controller) landing(first, last content.NodeID, dir Direction) (content.NodeID, int) {
	prev := c.doc.PreviousSibling(first)
	next := c.doc.NextSibling(last)
	if (dir == DirectionForward && next != 0) || prev == 0 {
		return c.doc.Leaf(next), 0
	}
	leaf := c.doc.Leaf(prev)
	return leaf, c.doc.TextLength(leaf)
}

// dropEmptySpan removes a line-break span next to the caret and keeps the
// caret at p.
func (c *Controller) dropEmptySpan(span content.NodeID, p Point) error {
	paragraph := c.doc.Parent(span)
	if err := c.doc.Remove(span); err != nil {
		return err
	}
	c.tracker.Remove(span)
	c.tracker.Update(paragraph)
	return c.setCaret(p.Node, p.Offset)
}
