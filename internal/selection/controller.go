// Package selection implements the controller that turns caret and selection
// state into tree mutations.
//
// The Controller reads the live selection from a Surface, answers predicates
// about where the caret sits, and performs every editing operation the
// command layer dispatches. Each mutating operation leaves the document
// structurally valid and repositions the caret through the surface.
package selection

import (
	"fmt"
	"time"

	"github.com/zjrosen/spanedit/internal/cachemanager"
	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/log"
	"github.com/zjrosen/spanedit/internal/mutation"
)

// Controller owns one document and its selection. A document must not be
// shared between controllers.
type Controller struct {
	doc          *content.Document
	surface      Surface
	saved        *Range
	defaultStyle content.Style
	tracker      *mutation.Tracker
	budget       time.Duration
	styleCache   cachemanager.CacheManager[string, content.Style]
	styles       *cachemanager.ReadThroughCache[string, content.Style, styleInput]
}

// Option configures a Controller.
type Option func(*Controller)

// WithDefaultStyle sets the editor default style, the first layer of the
// style cascade.
func WithDefaultStyle(s content.Style) Option {
	return func(c *Controller) {
		c.defaultStyle = s.Clone()
	}
}

// WithTracker records mutations into t instead of a private tracker.
func WithTracker(t *mutation.Tracker) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracker = t
		}
	}
}

// WithTraversalBudget bounds each leaf iterator step.
func WithTraversalBudget(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.budget = d
		}
	}
}

// WithStyleCache sets the cache backing CurrentStyle.
func WithStyleCache(cache cachemanager.CacheManager[string, content.Style]) Option {
	return func(c *Controller) {
		if cache != nil {
			c.styleCache = cache
		}
	}
}

// NewController creates a controller over doc and surface.
func NewController(doc *content.Document, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		doc:          doc,
		surface:      surface,
		defaultStyle: content.Style{},
		budget:       content.DefaultTraversalBudget,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracker == nil {
		c.tracker = mutation.NewTracker()
	}
	if c.styleCache == nil {
		c.styleCache = cachemanager.NewInMemoryCacheManager[string, content.Style](
			"current-style", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	}
	c.styles = cachemanager.NewReadThroughCache(c.styleCache, c.resolveStyle, false)
	return c
}

// Document returns the controlled document.
func (c *Controller) Document() *content.Document { return c.doc }

// Tracker returns the mutation tracker operations report into.
func (c *Controller) Tracker() *mutation.Tracker { return c.tracker }

// Range returns the normalized selection. A saved selection shadows the
// surface.
func (c *Controller) Range() (Range, bool) {
	r, err := c.current()
	return r, err == nil
}

// HasSelection reports whether there is a usable selection.
func (c *Controller) HasSelection() bool {
	_, err := c.current()
	return err == nil
}

func (c *Controller) current() (Range, error) {
	var r Range
	if c.saved != nil {
		r = *c.saved
	} else {
		var ok bool
		r, ok = c.surface.Selection()
		if !ok {
			return Range{}, ErrNoSelection
		}
	}
	return c.normalizeRange(r)
}

func (c *Controller) normalizeRange(r Range) (Range, error) {
	anchor, err := c.normalize(r.Anchor)
	if err != nil {
		return Range{}, err
	}
	focus, err := c.normalize(r.Focus)
	if err != nil {
		return Range{}, err
	}
	return Range{Anchor: anchor, Focus: focus}, nil
}

// normalize maps p onto a leaf. Container points use child-index offsets.
func (c *Controller) normalize(p Point) (Point, error) {
	if !c.doc.IsAttached(p.Node) {
		return Point{}, fmt.Errorf("%w: selection node %d", content.ErrDetached, p.Node)
	}
	switch {
	case c.doc.IsText(p.Node):
		return Point{Node: p.Node, Offset: max(0, min(p.Offset, c.doc.TextLength(p.Node)))}, nil
	case c.doc.IsLineBreak(p.Node):
		return Point{Node: p.Node}, nil
	}
	if p.Offset >= 0 && p.Offset < c.doc.ChildCount(p.Node) {
		leaf := c.doc.FirstLeaf(c.doc.Child(p.Node, p.Offset))
		if leaf == 0 {
			return Point{}, fmt.Errorf("%w: container %d has no leaf", content.ErrStructure, p.Node)
		}
		return Point{Node: leaf}, nil
	}
	leaf := c.doc.LastLeaf(p.Node)
	if leaf == 0 {
		return Point{}, fmt.Errorf("%w: container %d has no leaf", content.ErrStructure, p.Node)
	}
	return Point{Node: leaf, Offset: c.doc.TextLength(leaf)}, nil
}

// write stores r on the surface, and in the saved snapshot when one is held.
func (c *Controller) write(r Range) {
	if c.saved != nil {
		*c.saved = r
	}
	c.surface.SetSelection(r)
}

// SetSelection validates and normalizes r and makes it the selection.
func (c *Controller) SetSelection(r Range) error {
	n, err := c.normalizeRange(r)
	if err != nil {
		return err
	}
	c.write(n)
	return nil
}

// Collapse places the caret at p.
func (c *Controller) Collapse(p Point) error {
	return c.SetSelection(Caret(p))
}

// CollapseToStart collapses the selection onto its document-order start.
func (c *Controller) CollapseToStart() error {
	r, err := c.current()
	if err != nil {
		return err
	}
	start, _ := c.ordered(r)
	c.write(Caret(start))
	return nil
}

// CollapseToEnd collapses the selection onto its document-order end.
func (c *Controller) CollapseToEnd() error {
	r, err := c.current()
	if err != nil {
		return err
	}
	_, end := c.ordered(r)
	c.write(Caret(end))
	return nil
}

// SelectAll selects the whole document.
func (c *Controller) SelectAll() {
	root := c.doc.Root()
	last := c.doc.LastLeaf(root)
	c.write(Range{
		Anchor: Point{Node: c.doc.FirstLeaf(root)},
		Focus:  Point{Node: last, Offset: c.doc.TextLength(last)},
	})
}

// MoveFocus moves the focus by delta grapheme positions, counting one
// position per paragraph break. With extend the anchor stays put; otherwise
// the selection collapses at the new focus.
func (c *Controller) MoveFocus(delta int, extend bool) error {
	r, err := c.current()
	if err != nil {
		return err
	}
	pos, err := c.doc.PositionOf(r.Focus.Node, r.Focus.Offset)
	if err != nil {
		return err
	}
	leaf, off := c.doc.Locate(max(0, min(pos+delta, c.doc.TextLen())))
	focus := Point{Node: leaf, Offset: off}
	if extend {
		c.write(Range{Anchor: r.Anchor, Focus: focus})
	} else {
		c.write(Caret(focus))
	}
	return nil
}

// MoveFocusToParagraphEdge moves the focus to the start or end of its
// paragraph.
func (c *Controller) MoveFocusToParagraphEdge(end, extend bool) error {
	r, err := c.current()
	if err != nil {
		return err
	}
	p, err := c.doc.ParagraphOf(r.Focus.Node)
	if err != nil {
		return err
	}
	focus := Point{Node: c.doc.FirstLeaf(p)}
	if end {
		last := c.doc.LastLeaf(p)
		focus = Point{Node: last, Offset: c.doc.TextLength(last)}
	}
	if extend {
		c.write(Range{Anchor: r.Anchor, Focus: focus})
	} else {
		c.write(Caret(focus))
	}
	return nil
}

// SaveSelection snapshots the live selection. Until restored the snapshot
// shadows the surface.
func (c *Controller) SaveSelection() error {
	r, ok := c.surface.Selection()
	if !ok {
		return ErrNoSelection
	}
	n, err := c.normalizeRange(r)
	if err != nil {
		return err
	}
	c.saved = &n
	log.Debug(log.CatSelection, "selection saved", "anchor", n.Anchor.Node, "focus", n.Focus.Node)
	return nil
}

// RestoreSelection writes the saved snapshot back to the surface and drops
// it. A snapshot that no longer points into the tree collapses to the end of
// the document.
func (c *Controller) RestoreSelection() {
	if c.saved == nil {
		return
	}
	saved := *c.saved
	c.saved = nil
	r, err := c.normalizeRange(saved)
	if err != nil {
		log.Warn(log.CatSelection, "saved selection is stale", "error", err)
		last := c.doc.LastLeaf(c.doc.Root())
		r = Caret(Point{Node: last, Offset: c.doc.TextLength(last)})
	}
	c.surface.SetSelection(r)
}

// ClearSavedSelection drops the snapshot without restoring it.
func (c *Controller) ClearSavedSelection() { c.saved = nil }

// HasSavedSelection reports whether a snapshot is held.
func (c *Controller) HasSavedSelection() bool { return c.saved != nil }

// caret returns the focus of a collapsed selection.
func (c *Controller) caret() (Point, error) {
	r, err := c.current()
	if err != nil {
		return Point{}, err
	}
	if !r.Collapsed() {
		return Point{}, ErrNotCollapsed
	}
	return r.Focus, nil
}

// setCaret collapses the selection at leaf/offset, which must be attached.
func (c *Controller) setCaret(leaf content.NodeID, offset int) error {
	p, err := c.leafPoint(leaf, offset)
	if err != nil {
		return err
	}
	c.write(Caret(p))
	return nil
}

func (c *Controller) leafPoint(leaf content.NodeID, offset int) (Point, error) {
	if !c.doc.IsLeaf(leaf) {
		return Point{}, fmt.Errorf("%w: caret node %d", content.ErrNotLeaf, leaf)
	}
	if !c.doc.IsAttached(leaf) {
		return Point{}, fmt.Errorf("%w: caret node %d", content.ErrDetached, leaf)
	}
	return Point{Node: leaf, Offset: max(0, min(offset, c.doc.TextLength(leaf)))}, nil
}

// caretAtEnd collapses at the end of leaf.
func (c *Controller) caretAtEnd(leaf content.NodeID) error {
	return c.setCaret(leaf, c.doc.TextLength(leaf))
}

func (c *Controller) iterator() (*content.LeafIterator, error) {
	return content.NewLeafIterator(c.doc, c.doc.Root(), content.WithBudget(c.budget))
}
