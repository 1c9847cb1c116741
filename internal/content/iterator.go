package content

import (
	"fmt"
	"time"
)

// DefaultTraversalBudget bounds a single NextNode/PreviousNode call.
const DefaultTraversalBudget = time.Second

// LeafIterator walks the leaves (text and line breaks) under one container in
// document order, skipping every container node.
type LeafIterator struct {
	doc       *Document
	container NodeID
	current   NodeID
	budget    time.Duration
}

// IteratorOption configures a LeafIterator.
type IteratorOption func(*LeafIterator)

// WithBudget sets the wall-clock budget of a single step.
func WithBudget(d time.Duration) IteratorOption {
	return func(it *LeafIterator) {
		if d > 0 {
			it.budget = d
		}
	}
}

// NewLeafIterator creates an iterator positioned on the first leaf under
// container. CurrentNode is 0 when the container has no leaf.
func NewLeafIterator(doc *Document, container NodeID, opts ...IteratorOption) (*LeafIterator, error) {
	if !doc.Exists(container) {
		return nil, fmt.Errorf("%w: container %d", ErrNotFound, container)
	}
	it := &LeafIterator{doc: doc, container: container, budget: DefaultTraversalBudget}
	for _, opt := range opts {
		opt(it)
	}
	if doc.IsLeaf(container) {
		it.current = container
		return it, nil
	}
	first, stop, err := it.descend(container, true, it.guard())
	if err != nil {
		return nil, err
	}
	if first == 0 && stop != container {
		first, err = it.step(stop, true)
		if err != nil {
			return nil, err
		}
	}
	it.current = first
	return it, nil
}

// CurrentNode returns the leaf the iterator is on, or 0.
func (it *LeafIterator) CurrentNode() NodeID {
	return it.current
}

// SetCurrentNode moves the iterator to leaf, which must be a leaf inside the
// iterator's container.
func (it *LeafIterator) SetCurrentNode(leaf NodeID) error {
	if !it.doc.IsLeaf(leaf) {
		return fmt.Errorf("%w: node %d", ErrNotLeaf, leaf)
	}
	if !it.doc.Contains(it.container, leaf) {
		return fmt.Errorf("%w: node %d is outside container %d", ErrRange, leaf, it.container)
	}
	it.current = leaf
	return nil
}

// NextNode advances to the next leaf and returns it, or 0 at the end.
func (it *LeafIterator) NextNode() (NodeID, error) {
	return it.advance(true)
}

// PreviousNode moves to the previous leaf and returns it, or 0 at the start.
func (it *LeafIterator) PreviousNode() (NodeID, error) {
	return it.advance(false)
}

func (it *LeafIterator) advance(forward bool) (NodeID, error) {
	if it.current == 0 {
		return 0, nil
	}
	next, err := it.step(it.current, forward)
	if err != nil {
		return 0, err
	}
	if next != 0 {
		it.current = next
	}
	return next, nil
}

// guard returns a check that fails once the walk exceeds the arena size in
// steps or the configured time budget. Either means the tree is corrupt.
func (it *LeafIterator) guard() func() error {
	deadline := time.Now().Add(it.budget)
	limit := 4*it.doc.Len() + 16
	steps := 0
	return func() error {
		steps++
		if steps > limit || time.Now().After(deadline) {
			return fmt.Errorf("%w: after %d steps", ErrTraversalTimeout, steps)
		}
		return nil
	}
}

// step finds the leaf after (or before) from: climb until a sibling exists,
// then descend into the sibling's subtree.
func (it *LeafIterator) step(from NodeID, forward bool) (NodeID, error) {
	check := it.guard()
	n := from
	for {
		if err := check(); err != nil {
			return 0, err
		}
		if n == it.container || n == 0 {
			return 0, nil
		}
		var sib NodeID
		if forward {
			sib = it.doc.NextSibling(n)
		} else {
			sib = it.doc.PreviousSibling(n)
		}
		if sib == 0 {
			n = it.doc.Parent(n)
			continue
		}
		leaf, stop, err := it.descend(sib, forward, check)
		if err != nil {
			return 0, err
		}
		if leaf != 0 {
			return leaf, nil
		}
		// Empty container: keep looking past it.
		n = stop
	}
}

// descend returns the first (or last) leaf under n. When the walk reaches a
// container without children it returns 0 and that container.
func (it *LeafIterator) descend(n NodeID, forward bool, check func() error) (NodeID, NodeID, error) {
	for {
		if err := check(); err != nil {
			return 0, 0, err
		}
		if it.doc.IsLeaf(n) {
			return n, n, nil
		}
		children := it.doc.Children(n)
		if len(children) == 0 {
			return 0, n, nil
		}
		if forward {
			n = children[0]
		} else {
			n = children[len(children)-1]
		}
	}
}
