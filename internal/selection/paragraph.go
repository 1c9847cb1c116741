package selection

import (
	"github.com/zjrosen/spanedit/internal/content"
)

// InsertParagraph breaks the paragraph at the caret. A ranged selection is
// removed first.
func (c *Controller) InsertParagraph() error {
	r, err := c.current()
	if err != nil {
		return err
	}
	if !r.Collapsed() {
		return c.ReplaceWithParagraph()
	}
	return c.SplitParagraph()
}

// SplitParagraph splits the caret's paragraph at the caret and moves the
// caret to the start of the new paragraph. At the start or end of the
// paragraph an empty sibling is inserted instead, so no empty text leaf is
// ever produced.
func (c *Controller) SplitParagraph() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	switch {
	case c.IsParagraphStart():
		return c.InsertParagraphBefore()
	case c.IsParagraphEnd():
		return c.InsertParagraphAfter()
	}
	span := c.doc.Parent(p.Node)
	paragraph := c.doc.Parent(span)
	splitsSpan := p.Offset > 0 && p.Offset < c.doc.TextLength(p.Node)
	tail, err := c.doc.SplitParagraph(paragraph, span, p.Offset)
	if err != nil {
		return err
	}
	if splitsSpan {
		c.tracker.Add(c.doc.Child(tail, 0))
		c.tracker.Update(span)
	}
	c.tracker.Add(tail)
	c.tracker.Update(paragraph)
	return c.setCaret(c.doc.FirstLeaf(tail), 0)
}

// InsertParagraphBefore inserts an empty paragraph before the caret's
// paragraph. The caret stays where it is.
func (c *Controller) InsertParagraphBefore() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	span := c.doc.Parent(p.Node)
	paragraph := c.doc.Parent(span)
	empty := c.doc.NewEmptyParagraph(c.doc.Style(paragraph), c.doc.Style(span))
	if err := c.doc.InsertBefore(paragraph, empty); err != nil {
		return err
	}
	c.tracker.Add(empty)
	return c.setCaret(p.Node, p.Offset)
}

// InsertParagraphAfter inserts an empty paragraph after the caret's paragraph
// and moves the caret into it.
func (c *Controller) InsertParagraphAfter() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	span := c.doc.Parent(p.Node)
	paragraph := c.doc.Parent(span)
	empty := c.doc.NewEmptyParagraph(c.doc.Style(paragraph), c.doc.Style(span))
	if err := c.doc.InsertAfter(paragraph, empty); err != nil {
		return err
	}
	c.tracker.Add(empty)
	return c.setCaret(c.doc.FirstLeaf(empty), 0)
}

// ReplaceWithParagraph removes the selection and breaks the paragraph at the
// resulting caret.
func (c *Controller) ReplaceWithParagraph() error {
	if err := c.RemoveSelected(RemoveOptions{Direction: DirectionBackward}); err != nil {
		return err
	}
	return c.SplitParagraph()
}

// MergeBackwardParagraph joins the caret's paragraph onto the previous one.
// The caret lands at the join point. Does nothing in the first paragraph.
func (c *Controller) MergeBackwardParagraph() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	paragraph := c.doc.Parent(c.doc.Parent(p.Node))
	prev := c.doc.PreviousSibling(paragraph)
	if prev == 0 {
		return nil
	}
	switch {
	case c.doc.IsEmptyParagraph(paragraph):
		if err := c.removeParagraph(paragraph); err != nil {
			return err
		}
		c.tracker.Update(prev)
		return c.caretAtEnd(c.doc.LastLeaf(prev))
	case c.doc.IsEmptyParagraph(prev):
		if err := c.absorbInto(prev, paragraph); err != nil {
			return err
		}
		return c.setCaret(c.doc.FirstLeaf(prev), 0)
	}
	join := c.doc.LastLeaf(prev)
	if err := c.appendParagraph(prev, paragraph); err != nil {
		return err
	}
	return c.caretAtEnd(join)
}

// MergeForwardParagraph joins the next paragraph onto the caret's paragraph.
// The caret stays at the join point. Does nothing in the last paragraph.
func (c *Controller) MergeForwardParagraph() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	paragraph := c.doc.Parent(c.doc.Parent(p.Node))
	next := c.doc.NextSibling(paragraph)
	if next == 0 {
		return nil
	}
	switch {
	case c.doc.IsEmptyParagraph(next):
		if err := c.removeParagraph(next); err != nil {
			return err
		}
		c.tracker.Update(paragraph)
		return c.setCaret(p.Node, p.Offset)
	case c.doc.IsEmptyParagraph(paragraph):
		if err := c.absorbInto(paragraph, next); err != nil {
			return err
		}
		return c.setCaret(c.doc.FirstLeaf(paragraph), 0)
	}
	if err := c.appendParagraph(paragraph, next); err != nil {
		return err
	}
	return c.setCaret(p.Node, p.Offset)
}

// RemoveBackwardParagraph deletes the empty content at the caret. In a
// paragraph with several spans the caret's line-break span is removed;
// otherwise the empty paragraph itself goes and the caret moves to the end
// of the previous paragraph. A paragraph with text is merged instead.
func (c *Controller) RemoveBackwardParagraph() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	span := c.doc.Parent(p.Node)
	paragraph := c.doc.Parent(span)
	if c.doc.IsLineBreak(p.Node) && c.doc.ChildCount(paragraph) > 1 {
		return c.removeSpanAt(span, DirectionBackward)
	}
	if !c.doc.IsEmptyParagraph(paragraph) {
		return c.MergeBackwardParagraph()
	}
	prev := c.doc.PreviousSibling(paragraph)
	if prev == 0 {
		return nil
	}
	if err := c.removeParagraph(paragraph); err != nil {
		return err
	}
	return c.caretAtEnd(c.doc.LastLeaf(prev))
}

// RemoveForwardParagraph is the forward counterpart of
// RemoveBackwardParagraph: an empty paragraph is removed and the caret moves
// to the start of the next one.
func (c *Controller) RemoveForwardParagraph() error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	span := c.doc.Parent(p.Node)
	paragraph := c.doc.Parent(span)
	if c.doc.IsLineBreak(p.Node) && c.doc.ChildCount(paragraph) > 1 {
		return c.removeSpanAt(span, DirectionForward)
	}
	if !c.doc.IsEmptyParagraph(paragraph) {
		return c.MergeForwardParagraph()
	}
	next := c.doc.NextSibling(paragraph)
	if next == 0 {
		return nil
	}
	if err := c.removeParagraph(paragraph); err != nil {
		return err
	}
	return c.setCaret(c.doc.FirstLeaf(next), 0)
}

// removeSpanAt removes a span of a multi-span paragraph and lands the caret on
// a neighbour.
func (c *Controller) removeSpanAt(span content.NodeID, dir Direction) error {
	paragraph := c.doc.Parent(span)
	target, offset := c.landing(span, span, dir)
	if err := c.doc.Remove(span); err != nil {
		return err
	}
	c.tracker.Remove(span)
	c.tracker.Update(paragraph)
	return c.setCaret(target, offset)
}

func (c *Controller) removeParagraph(paragraph content.NodeID) error {
	if err := c.doc.Remove(paragraph); err != nil {
		return err
	}
	c.tracker.Remove(paragraph)
	return nil
}

// appendParagraph moves the spans of from to the end of to and removes from.
func (c *Controller) appendParagraph(to, from content.NodeID) error {
	if err := c.doc.MoveChildren(from, to); err != nil {
		return err
	}
	c.tracker.Update(to)
	return c.removeParagraph(from)
}

// absorbInto replaces the single empty span of the empty paragraph dst with
// the spans of src, then removes src.
func (c *Controller) absorbInto(dst, src content.NodeID) error {
	placeholder := c.doc.Child(dst, 0)
	if err := c.appendParagraph(dst, src); err != nil {
		return err
	}
	if err := c.doc.Remove(placeholder); err != nil {
		return err
	}
	c.tracker.Remove(placeholder)
	return nil
}
