package selection

// CaretContext classifies the selection for the command decision tables.
type CaretContext uint8

const (
	// ContextNone means there is no usable selection.
	ContextNone CaretContext = iota
	// CollapsedInText is a caret strictly inside a text leaf.
	CollapsedInText
	// CollapsedAtLeafStart is a caret at offset 0 of a text leaf.
	CollapsedAtLeafStart
	// CollapsedAtLeafEnd is a caret at the end of a text leaf.
	CollapsedAtLeafEnd
	// CollapsedOnMarker is a caret on a line break.
	CollapsedOnMarker
	// RangeSingleLeaf is a range inside one leaf.
	RangeSingleLeaf
	// RangeMultiLeaf is a range across leaves of one paragraph.
	RangeMultiLeaf
	// RangeMultiParagraph is a range across paragraphs.
	RangeMultiParagraph
)

func (k CaretContext) String() string {
	switch k {
	case CollapsedInText:
		return "collapsed-in-text"
	case CollapsedAtLeafStart:
		return "collapsed-at-leaf-start"
	case CollapsedAtLeafEnd:
		return "collapsed-at-leaf-end"
	case CollapsedOnMarker:
		return "collapsed-on-marker"
	case RangeSingleLeaf:
		return "range-single-leaf"
	case RangeMultiLeaf:
		return "range-multi-leaf"
	case RangeMultiParagraph:
		return "range-multi-paragraph"
	default:
		return "none"
	}
}

// IsCollapsed reports whether the context describes a caret.
func (k CaretContext) IsCollapsed() bool {
	return k >= CollapsedInText && k <= CollapsedOnMarker
}

// IsRange reports whether the context describes a ranged selection.
func (k CaretContext) IsRange() bool {
	return k >= RangeSingleLeaf
}

// CaretContext computes the context of the current selection.
func (c *Controller) CaretContext() CaretContext {
	r, err := c.current()
	if err != nil {
		return ContextNone
	}
	if !r.Collapsed() {
		switch {
		case r.Anchor.Node == r.Focus.Node:
			return RangeSingleLeaf
		case c.doc.Parent(c.doc.Parent(r.Anchor.Node)) == c.doc.Parent(c.doc.Parent(r.Focus.Node)):
			return RangeMultiLeaf
		default:
			return RangeMultiParagraph
		}
	}
	f := r.Focus
	switch {
	case c.doc.IsLineBreak(f.Node):
		return CollapsedOnMarker
	case f.Offset == 0:
		return CollapsedAtLeafStart
	case f.Offset == c.doc.TextLength(f.Node):
		return CollapsedAtLeafEnd
	default:
		return CollapsedInText
	}
}
