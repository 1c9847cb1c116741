package selection

import (
	"fmt"

	"github.com/zjrosen/spanedit/internal/cachemanager"
	"github.com/zjrosen/spanedit/internal/content"
)

type styleInput struct {
	paragraph content.NodeID
	span      content.NodeID
}

func (c *Controller) resolveStyle(in styleInput) (content.Style, error) {
	return content.ResolveStyle(
		c.defaultStyle,
		c.doc.Style(c.doc.Root()),
		c.doc.Style(in.paragraph),
		c.doc.Style(in.span),
	), nil
}

// styleAt resolves the effective style of a span. Results are cached per
// document revision, so any edit invalidates them.
func (c *Controller) styleAt(span content.NodeID) content.Style {
	in := styleInput{paragraph: c.doc.Parent(span), span: span}
	key := fmt.Sprintf("%d:%d:%d", c.doc.Revision(), in.paragraph, in.span)
	s, _ := c.styles.Get(key, in, cachemanager.DefaultExpiration)
	return s.Clone()
}

// CurrentStyle returns the effective style at the focus: the editor default
// style overridden by root, paragraph and span style in that order.
func (c *Controller) CurrentStyle() content.Style {
	span := c.FocusTextSpan()
	if span == 0 {
		return content.ResolveStyle(c.defaultStyle, c.doc.Style(c.doc.Root()), nil, nil)
	}
	return c.styleAt(span)
}

// SelectionStyle folds the effective styles of every selected span.
// Properties that differ between spans read content.Mixed.
func (c *Controller) SelectionStyle() (content.Style, error) {
	r, err := c.current()
	if err != nil {
		return nil, err
	}
	if r.Collapsed() {
		return c.CurrentStyle(), nil
	}
	start, end := c.ordered(r)
	leaves, err := c.walk(start.Node, end.Node)
	if err != nil {
		return nil, err
	}
	var acc content.Style
	for i, leaf := range leaves {
		if len(leaves) > 1 {
			// ends that contribute no selected text
			if i == 0 && c.doc.IsText(leaf) && start.Offset == c.doc.TextLength(leaf) {
				continue
			}
			if i == len(leaves)-1 && c.doc.IsText(leaf) && end.Offset == 0 {
				continue
			}
		}
		acc = content.MergeMixed(acc, c.styleAt(c.doc.Parent(leaf)))
	}
	if acc == nil {
		return c.CurrentStyle(), nil
	}
	return acc, nil
}

// ApplyStyles applies styles to the selection. Root properties go to the
// root; paragraph properties to every touched paragraph; span properties to
// the covered spans, splitting the spans at partial ends so that only the
// selected text changes. A caret styles its whole span. The selection is
// re-established over the styled text in its original direction.
func (c *Controller) ApplyStyles(styles content.Style) error {
	r, err := c.current()
	if err != nil {
		return err
	}
	rootStyle, paragraphStyle, spanStyle := content.SplitStyles(styles)
	if len(rootStyle) > 0 {
		if err := c.doc.SetStyle(c.doc.Root(), rootStyle); err != nil {
			return err
		}
		c.tracker.Update(c.doc.Root())
	}
	if r.Collapsed() {
		return c.styleSpans([]content.NodeID{c.doc.Parent(r.Focus.Node)}, paragraphStyle, spanStyle)
	}
	start, end := c.ordered(r)
	backward := c.compare(r.Anchor, r.Focus) > 0

	var first, last Point
	if start.Node == end.Node {
		first, last, err = c.applyInLeaf(start, end, paragraphStyle, spanStyle)
	} else {
		first, last, err = c.applyAcross(start, end, paragraphStyle, spanStyle)
	}
	if err != nil {
		return err
	}
	if backward {
		first, last = last, first
	}
	c.write(Range{Anchor: first, Focus: last})
	return nil
}

func (c *Controller) applyInLeaf(start, end Point, paragraphStyle, spanStyle content.Style) (Point, Point, error) {
	leaf := start.Node
	span := c.doc.Parent(leaf)
	length := c.doc.TextLength(leaf)
	if start.Offset > 0 || end.Offset < length {
		if end.Offset < length {
			tail, err := c.doc.SplitTextSpan(span, end.Offset)
			if err != nil {
				return Point{}, Point{}, err
			}
			c.tracker.Add(tail)
		}
		if start.Offset > 0 {
			middle, err := c.doc.SplitTextSpan(span, start.Offset)
			if err != nil {
				return Point{}, Point{}, err
			}
			c.tracker.Add(middle)
			c.tracker.Update(span)
			span = middle
			leaf = c.doc.Leaf(middle)
		}
	}
	if err := c.styleSpans([]content.NodeID{span}, paragraphStyle, spanStyle); err != nil {
		return Point{}, Point{}, err
	}
	return Point{Node: leaf}, Point{Node: leaf, Offset: c.doc.TextLength(leaf)}, nil
}

func (c *Controller) applyAcross(start, end Point, paragraphStyle, spanStyle content.Style) (Point, Point, error) {
	endSpan := c.doc.Parent(end.Node)
	if c.doc.IsText(end.Node) && end.Offset > 0 && end.Offset < c.doc.TextLength(end.Node) {
		tail, err := c.doc.SplitTextSpan(endSpan, end.Offset)
		if err != nil {
			return Point{}, Point{}, err
		}
		c.tracker.Add(tail)
	}
	firstLeaf := start.Node
	skipFirst := false
	if c.doc.IsText(start.Node) && start.Offset > 0 {
		if start.Offset < c.doc.TextLength(start.Node) {
			middle, err := c.doc.SplitTextSpan(c.doc.Parent(start.Node), start.Offset)
			if err != nil {
				return Point{}, Point{}, err
			}
			c.tracker.Add(middle)
			firstLeaf = c.doc.Leaf(middle)
		} else {
			skipFirst = true
		}
	}
	leaves, err := c.walk(firstLeaf, end.Node)
	if err != nil {
		return Point{}, Point{}, err
	}
	if skipFirst {
		leaves = leaves[1:]
	}
	if n := len(leaves); n > 0 && c.doc.IsText(end.Node) && end.Offset == 0 {
		leaves = leaves[:n-1]
	}
	if len(leaves) == 0 {
		return start, end, nil
	}
	spans := make([]content.NodeID, len(leaves))
	for i, leaf := range leaves {
		spans[i] = c.doc.Parent(leaf)
	}
	if err := c.styleSpans(spans, paragraphStyle, spanStyle); err != nil {
		return Point{}, Point{}, err
	}
	last := leaves[len(leaves)-1]
	return Point{Node: leaves[0]}, Point{Node: last, Offset: c.doc.TextLength(last)}, nil
}

// styleSpans merges spanStyle into each span and paragraphStyle into each
// distinct paragraph holding one.
func (c *Controller) styleSpans(spans []content.NodeID, paragraphStyle, spanStyle content.Style) error {
	seen := make(map[content.NodeID]bool)
	for _, span := range spans {
		if len(spanStyle) > 0 {
			if err := c.doc.SetStyle(span, spanStyle); err != nil {
				return err
			}
			c.tracker.Update(span)
		}
		paragraph := c.doc.Parent(span)
		if len(paragraphStyle) == 0 || seen[paragraph] {
			continue
		}
		seen[paragraph] = true
		if err := c.doc.SetStyle(paragraph, paragraphStyle); err != nil {
			return err
		}
		c.tracker.Update(paragraph)
	}
	return nil
}
