package selection

import (
	"fmt"

	"github.com/zjrosen/spanedit/internal/content"
)

// Direction is the document-order relation between anchor and focus.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// order returns a sortable key for a leaf point: paragraph index, span index,
// offset.
func (c *Controller) order(p Point) [3]int {
	span := c.doc.Parent(p.Node)
	paragraph := c.doc.Parent(span)
	return [3]int{c.doc.ChildIndex(paragraph), c.doc.ChildIndex(span), p.Offset}
}

func (c *Controller) compare(a, b Point) int {
	ka, kb := c.order(a), c.order(b)
	for i := range ka {
		if ka[i] != kb[i] {
			if ka[i] < kb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ordered returns the document-order start and end of r.
func (c *Controller) ordered(r Range) (Point, Point) {
	if c.compare(r.Anchor, r.Focus) > 0 {
		return r.Focus, r.Anchor
	}
	return r.Anchor, r.Focus
}

// IsCollapsed reports whether the selection is a caret. No selection counts
// as collapsed.
func (c *Controller) IsCollapsed() bool {
	r, err := c.current()
	return err != nil || r.Collapsed()
}

// Anchor returns the normalized anchor.
func (c *Controller) Anchor() Point {
	r, _ := c.current()
	return r.Anchor
}

// Focus returns the normalized focus.
func (c *Controller) Focus() Point {
	r, _ := c.current()
	return r.Focus
}

// Start returns the earlier end of the selection.
func (c *Controller) Start() Point {
	r, err := c.current()
	if err != nil {
		return Point{}
	}
	start, _ := c.ordered(r)
	return start
}

// End returns the later end of the selection.
func (c *Controller) End() Point {
	r, err := c.current()
	if err != nil {
		return Point{}
	}
	_, end := c.ordered(r)
	return end
}

func (c *Controller) AnchorNode() content.NodeID { return c.Anchor().Node }
func (c *Controller) AnchorOffset() int          { return c.Anchor().Offset }
func (c *Controller) FocusNode() content.NodeID  { return c.Focus().Node }
func (c *Controller) FocusOffset() int           { return c.Focus().Offset }

// FocusTextSpan returns the span holding the focus, or 0.
func (c *Controller) FocusTextSpan() content.NodeID {
	return c.doc.Parent(c.FocusNode())
}

// FocusParagraph returns the paragraph holding the focus, or 0.
func (c *Controller) FocusParagraph() content.NodeID {
	return c.doc.Parent(c.FocusTextSpan())
}

// AnchorTextSpan returns the span holding the anchor, or 0.
func (c *Controller) AnchorTextSpan() content.NodeID {
	return c.doc.Parent(c.AnchorNode())
}

// AnchorParagraph returns the paragraph holding the anchor, or 0.
func (c *Controller) AnchorParagraph() content.NodeID {
	return c.doc.Parent(c.AnchorTextSpan())
}

// IsTextFocus reports whether the focus is on a text leaf.
func (c *Controller) IsTextFocus() bool { return c.doc.IsText(c.FocusNode()) }

// IsTextAnchor reports whether the anchor is on a text leaf.
func (c *Controller) IsTextAnchor() bool { return c.doc.IsText(c.AnchorNode()) }

// IsLineBreakFocus reports whether the focus is on a line break.
func (c *Controller) IsLineBreakFocus() bool { return c.doc.IsLineBreak(c.FocusNode()) }

// IsTextSpanStart reports whether the focus is at offset 0 of its leaf.
func (c *Controller) IsTextSpanStart() bool {
	f := c.Focus()
	return f.Node != 0 && f.Offset == 0
}

// IsTextSpanEnd reports whether the focus is at the end of its leaf.
func (c *Controller) IsTextSpanEnd() bool {
	f := c.Focus()
	return f.Node != 0 && f.Offset == c.doc.TextLength(f.Node)
}

// IsParagraphStart reports whether the focus is at the start of its paragraph.
func (c *Controller) IsParagraphStart() bool {
	return c.IsTextSpanStart() && c.doc.PreviousSibling(c.FocusTextSpan()) == 0
}

// IsParagraphEnd reports whether the focus is at the end of its paragraph.
func (c *Controller) IsParagraphEnd() bool {
	return c.IsTextSpanEnd() && c.doc.NextSibling(c.FocusTextSpan()) == 0
}

// IsFirstParagraph reports whether the focus is in the first paragraph.
func (c *Controller) IsFirstParagraph() bool {
	p := c.FocusParagraph()
	return p != 0 && c.doc.PreviousSibling(p) == 0
}

// IsLastParagraph reports whether the focus is in the last paragraph.
func (c *Controller) IsLastParagraph() bool {
	p := c.FocusParagraph()
	return p != 0 && c.doc.NextSibling(p) == 0
}

// IsMultiParagraph reports whether anchor and focus are in different
// paragraphs.
func (c *Controller) IsMultiParagraph() bool {
	return c.AnchorParagraph() != c.FocusParagraph()
}

// IsMultiTextSpan reports whether anchor and focus are in different spans.
func (c *Controller) IsMultiTextSpan() bool {
	return c.AnchorTextSpan() != c.FocusTextSpan()
}

// Direction compares focus to anchor in document order.
func (c *Controller) Direction() Direction {
	r, err := c.current()
	if err != nil {
		return DirectionNone
	}
	switch c.compare(r.Anchor, r.Focus) {
	case -1:
		return DirectionForward
	case 1:
		return DirectionBackward
	default:
		return DirectionNone
	}
}

// IsSelectAll reports whether the selection covers the whole document.
func (c *Controller) IsSelectAll() bool {
	r, err := c.current()
	if err != nil || r.Collapsed() {
		return false
	}
	start, end := c.ordered(r)
	from, err := c.doc.PositionOf(start.Node, start.Offset)
	if err != nil {
		return false
	}
	to, err := c.doc.PositionOf(end.Node, end.Offset)
	if err != nil {
		return false
	}
	return from == 0 && to == c.doc.TextLen()
}

// SelectedText returns the selected text with paragraph breaks as newlines.
func (c *Controller) SelectedText() (string, error) {
	r, err := c.current()
	if err != nil || r.Collapsed() {
		return "", err
	}
	start, end := c.ordered(r)
	if start.Node == end.Node {
		return content.SliceByGraphemes(c.doc.Text(start.Node), start.Offset, end.Offset), nil
	}
	leaves, err := c.walk(start.Node, end.Node)
	if err != nil {
		return "", err
	}
	var out []byte
	prevParagraph := c.doc.Parent(c.doc.Parent(start.Node))
	for i, leaf := range leaves {
		p := c.doc.Parent(c.doc.Parent(leaf))
		if p != prevParagraph {
			out = append(out, '\n')
			prevParagraph = p
		}
		text := c.doc.Text(leaf)
		switch i {
		case 0:
			text = content.SliceByGraphemes(text, start.Offset, content.GraphemeCount(text))
		case len(leaves) - 1:
			text = content.SliceByGraphemes(text, 0, end.Offset)
		}
		out = append(out, text...)
	}
	return string(out), nil
}

// walk returns the leaves from first to last inclusive, in document order.
func (c *Controller) walk(first, last content.NodeID) ([]content.NodeID, error) {
	it, err := c.iterator()
	if err != nil {
		return nil, err
	}
	if err := it.SetCurrentNode(first); err != nil {
		return nil, err
	}
	leaves := []content.NodeID{first}
	for n := first; n != last; {
		n, err = it.NextNode()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: leaf %d does not follow %d", content.ErrRange, last, first)
		}
		leaves = append(leaves, n)
	}
	return leaves, nil
}
