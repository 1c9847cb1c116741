package selection

import (
	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/log"
)

// RemoveOptions tunes RemoveSelected.
type RemoveOptions struct {
	// Direction decides where the caret lands when the spans at both ends of
	// the selection are emptied. DirectionNone behaves as backward.
	Direction Direction
}

// RemoveSelected deletes the selected content and collapses the caret at the
// start of the removed range. A collapsed selection is left untouched, so a
// second call is a no-op.
func (c *Controller) RemoveSelected(opts RemoveOptions) error {
	r, err := c.current()
	if err != nil {
		return err
	}
	if r.Collapsed() {
		return nil
	}
	if c.IsSelectAll() {
		return c.removeAll()
	}
	start, end := c.ordered(r)
	if start.Node == end.Node {
		return c.removeInLeaf(start, end, opts.Direction)
	}
	return c.removeAcross(start, end, opts.Direction)
}

// removeAll replaces the whole tree with one empty paragraph that keeps the
// style of the first paragraph and span.
func (c *Controller) removeAll() error {
	first := c.doc.Child(c.doc.Root(), 0)
	empty := c.doc.NewEmptyParagraph(c.doc.Style(first), c.doc.Style(c.doc.Child(first, 0)))
	old, err := c.doc.ResetRoot([]content.NodeID{empty}, nil)
	if err != nil {
		return err
	}
	for _, p := range old {
		c.tracker.Remove(p)
	}
	c.tracker.Add(empty)
	log.Debug(log.CatSelection, "select-all removed", "paragraphs", len(old))
	return c.setCaret(c.doc.FirstLeaf(empty), 0)
}

func (c *Controller) removeInLeaf(start, end Point, dir Direction) error {
	leaf := start.Node
	out := content.DeleteGraphemeRange(c.doc.Text(leaf), start.Offset, end.Offset)
	if out == "" {
		return c.emptyLeaf(leaf, dir)
	}
	if err := c.doc.SetText(leaf, out); err != nil {
		return err
	}
	c.tracker.Update(c.doc.Parent(leaf))
	return c.setCaret(leaf, start.Offset)
}

// removeAcross deletes a selection whose ends are in different leaves: the
// leaves strictly between are removed with their spans and emptied
// paragraphs, the end leaves are trimmed, the end paragraph is merged into the
// start paragraph, and finally spans left empty by the trim are resolved.
func (c *Controller) removeAcross(start, end Point, dir Direction) error {
	leaves, err := c.walk(start.Node, end.Node)
	if err != nil {
		return err
	}
	startSpan := c.doc.Parent(start.Node)
	endSpan := c.doc.Parent(end.Node)
	startParagraph := c.doc.Parent(startSpan)
	endParagraph := c.doc.Parent(endSpan)

	for _, leaf := range leaves[1 : len(leaves)-1] {
		span := c.doc.Parent(leaf)
		paragraph := c.doc.Parent(span)
		if err := c.doc.Remove(span); err != nil {
			return err
		}
		c.tracker.Remove(span)
		if paragraph != startParagraph && paragraph != endParagraph && c.doc.ChildCount(paragraph) == 0 {
			if err := c.removeParagraph(paragraph); err != nil {
				return err
			}
		}
	}

	startEmpty, err := c.keep(start.Node, 0, start.Offset)
	if err != nil {
		return err
	}
	endEmpty, err := c.keep(end.Node, end.Offset, c.doc.TextLength(end.Node))
	if err != nil {
		return err
	}

	if startParagraph != endParagraph {
		if err := c.appendParagraph(startParagraph, endParagraph); err != nil {
			return err
		}
	}

	switch {
	case !startEmpty && !endEmpty:
		return c.setCaret(start.Node, start.Offset)
	case startEmpty && !endEmpty:
		target, offset := c.doc.Leaf(c.doc.PreviousSibling(startSpan)), 0
		if dir == DirectionForward || target == 0 {
			target = end.Node
		} else {
			offset = c.doc.TextLength(target)
		}
		if err := c.dropSpan(startSpan); err != nil {
			return err
		}
		return c.setCaret(target, offset)
	case !startEmpty && endEmpty:
		target, offset := c.doc.Leaf(c.doc.NextSibling(endSpan)), 0
		if dir != DirectionForward || target == 0 {
			target, offset = start.Node, start.Offset
		}
		if err := c.dropSpan(endSpan); err != nil {
			return err
		}
		return c.setCaret(target, offset)
	}

	if c.doc.PreviousSibling(startSpan) == 0 && c.doc.NextSibling(endSpan) == 0 {
		fresh := c.doc.NewTextSpanWithText("", c.doc.Style(startSpan))
		if err := c.doc.InsertBefore(startSpan, fresh); err != nil {
			return err
		}
		c.tracker.Add(fresh)
		if err := c.dropSpan(startSpan); err != nil {
			return err
		}
		if err := c.dropSpan(endSpan); err != nil {
			return err
		}
		return c.setCaret(c.doc.Leaf(fresh), 0)
	}
	target, offset := c.landing(startSpan, endSpan, dir)
	if err := c.dropSpan(startSpan); err != nil {
		return err
	}
	if err := c.dropSpan(endSpan); err != nil {
		return err
	}
	return c.setCaret(target, offset)
}

// keep trims leaf down to the graphemes [from, to). It reports whether nothing
// would be left, in which case the leaf is not touched and the caller removes
// its span.
func (c *Controller) keep(leaf content.NodeID, from, to int) (bool, error) {
	if !c.doc.IsText(leaf) || from >= to {
		return true, nil
	}
	text := c.doc.Text(leaf)
	kept := content.SliceByGraphemes(text, from, to)
	if kept == text {
		return false, nil
	}
	if err := c.doc.SetText(leaf, kept); err != nil {
		return false, err
	}
	c.tracker.Update(c.doc.Parent(leaf))
	return false, nil
}

func (c *Controller) dropSpan(span content.NodeID) error {
	paragraph := c.doc.Parent(span)
	if err := c.doc.Remove(span); err != nil {
		return err
	}
	c.tracker.Remove(span)
	c.tracker.Update(paragraph)
	return nil
}
