package selection

import (
	"fmt"

	"github.com/zjrosen/spanedit/internal/content"
)

// InsertPaste splices a detached fragment in at the caret. Inline fragments
// join the caret's span sequence; block fragments become sibling paragraphs
// with the first and last merged into the caret's paragraph. Pasted spans and
// paragraphs inherit the style at the caret under their own overrides. The
// caret lands at the end of the pasted content.
func (c *Controller) InsertPaste(f *content.Fragment) error {
	p, err := c.caret()
	if err != nil {
		return err
	}
	if f == nil || len(f.Paragraphs) == 0 {
		return fmt.Errorf("%w: empty fragment", content.ErrStructure)
	}
	for _, fp := range f.Paragraphs {
		if !c.doc.IsParagraph(fp) || c.doc.Parent(fp) != 0 {
			return fmt.Errorf("%w: fragment paragraph %d must be detached", content.ErrStructure, fp)
		}
	}
	span := c.doc.Parent(p.Node)
	paragraph := c.doc.Parent(span)
	if err := c.inheritStyles(f, paragraph, span); err != nil {
		return err
	}
	if f.Inline || len(f.Paragraphs) == 1 {
		return c.pasteInline(p, f.Paragraphs[0])
	}
	return c.pasteBlock(p, f.Paragraphs)
}

// ReplaceWithPaste removes the selection and pastes at the resulting caret.
func (c *Controller) ReplaceWithPaste(f *content.Fragment) error {
	if err := c.RemoveSelected(RemoveOptions{Direction: DirectionBackward}); err != nil {
		return err
	}
	return c.InsertPaste(f)
}

func (c *Controller) inheritStyles(f *content.Fragment, paragraph, span content.NodeID) error {
	pStyle, sStyle := c.doc.Style(paragraph), c.doc.Style(span)
	for _, fp := range f.Paragraphs {
		if err := c.doc.ReplaceStyle(fp, content.MergeStyles(content.ParagraphStyles, pStyle, c.doc.Style(fp))); err != nil {
			return err
		}
		for _, fs := range c.doc.Children(fp) {
			if err := c.doc.ReplaceStyle(fs, content.MergeStyles(content.TextSpanStyles, sStyle, c.doc.Style(fs))); err != nil {
				return err
			}
		}
	}
	return nil
}

// pasteInline splices the text spans of one fragment paragraph into the
// caret's span sequence.
func (c *Controller) pasteInline(p Point, fragment content.NodeID) error {
	var spans []content.NodeID
	for _, s := range c.doc.Children(fragment) {
		if c.doc.IsEmptyTextSpan(s) {
			continue
		}
		spans = append(spans, s)
	}
	if len(spans) == 0 {
		return c.doc.Remove(fragment)
	}
	span := c.doc.Parent(p.Node)

	// A single run styled like the caret's span is plain text.
	if len(spans) == 1 && c.doc.Style(spans[0]).Equal(c.doc.Style(span)) {
		text := c.doc.Text(c.doc.Leaf(spans[0]))
		if err := c.doc.Remove(fragment); err != nil {
			return err
		}
		return c.InsertText(text)
	}

	for _, s := range spans {
		if err := c.doc.Detach(s); err != nil {
			return err
		}
	}
	if err := c.doc.Remove(fragment); err != nil {
		return err
	}

	switch {
	case c.doc.IsLineBreak(p.Node):
		if err := c.doc.InsertAfter(span, spans...); err != nil {
			return err
		}
		if err := c.dropSpan(span); err != nil {
			return err
		}
	case p.Offset == 0:
		if err := c.doc.InsertBefore(span, spans...); err != nil {
			return err
		}
	case p.Offset == c.doc.TextLength(p.Node):
		if err := c.doc.InsertAfter(span, spans...); err != nil {
			return err
		}
	default:
		tail, err := c.doc.SplitTextSpan(span, p.Offset)
		if err != nil {
			return err
		}
		c.tracker.Add(tail)
		c.tracker.Update(span)
		if err := c.doc.InsertAfter(span, spans...); err != nil {
			return err
		}
	}
	for _, s := range spans {
		c.tracker.Add(s)
	}
	c.tracker.Update(c.doc.Parent(spans[0]))
	return c.caretAtEnd(c.doc.Leaf(spans[len(spans)-1]))
}

// pasteBlock splices several fragment paragraphs around the caret. The caret
// paragraph is split into a head and a tail; the first fragment paragraph is
// appended to the head and the last prepended to the tail. An empty caret
// paragraph is replaced outright.
func (c *Controller) pasteBlock(p Point, fragment []content.NodeID) error {
	span := c.doc.Parent(p.Node)
	paragraph := c.doc.Parent(span)

	var head, tail content.NodeID
	switch {
	case c.doc.IsEmptyParagraph(paragraph):
	case c.IsParagraphStart():
		tail = paragraph
	case c.IsParagraphEnd():
		head = paragraph
	default:
		splitsSpan := p.Offset > 0 && p.Offset < c.doc.TextLength(p.Node)
		t, err := c.doc.SplitParagraph(paragraph, span, p.Offset)
		if err != nil {
			return err
		}
		if splitsSpan {
			c.tracker.Add(c.doc.Child(t, 0))
		}
		c.tracker.Add(t)
		head, tail = paragraph, t
	}

	last := fragment[len(fragment)-1]
	caretLeaf := c.doc.LastLeaf(last)
	caretAtTail := tail != 0 && c.doc.IsEmptyParagraph(last)

	middle := fragment
	if head != 0 {
		if err := c.mergeFragmentParagraph(middle[0], head, false); err != nil {
			return err
		}
		middle = middle[1:]
	}
	if tail != 0 {
		if err := c.mergeFragmentParagraph(last, tail, true); err != nil {
			return err
		}
		middle = middle[:len(middle)-1]
	}

	var err error
	switch {
	case head != 0:
		err = c.doc.InsertAfter(head, middle...)
	case tail != 0:
		err = c.doc.InsertBefore(tail, middle...)
	default:
		err = c.doc.InsertAfter(paragraph, middle...)
		if err == nil {
			err = c.removeParagraph(paragraph)
		}
	}
	if err != nil {
		return err
	}
	for _, fp := range middle {
		c.tracker.Add(fp)
	}
	if caretAtTail {
		return c.setCaret(c.doc.FirstLeaf(tail), 0)
	}
	return c.caretAtEnd(caretLeaf)
}

// mergeFragmentParagraph moves the text spans of a fragment paragraph onto
// the end of dst, or its start when prepend is set, and discards the
// fragment paragraph. An empty fragment paragraph contributes nothing.
func (c *Controller) mergeFragmentParagraph(fp, dst content.NodeID, prepend bool) error {
	if !c.doc.IsEmptyParagraph(fp) {
		for _, s := range c.doc.Children(fp) {
			c.tracker.Add(s)
		}
		var err error
		if prepend {
			err = c.doc.PrependChildren(fp, dst)
		} else {
			err = c.doc.MoveChildren(fp, dst)
		}
		if err != nil {
			return err
		}
		c.tracker.Update(dst)
	}
	return c.doc.Remove(fp)
}
