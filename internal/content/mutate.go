package content

import (
	"fmt"
	"slices"
)

// link attaches a detached child at index without validation.
func (d *Document) link(parent, child NodeID, index int) {
	p := d.nodes[parent]
	index = max(0, min(index, len(p.children)))
	p.children = slices.Insert(p.children, index, child)
	d.nodes[child].parent = parent
	d.revision++
}

// unlink detaches child from its parent without validation.
func (d *Document) unlink(child NodeID) {
	c := d.nodes[child]
	if c.parent == 0 {
		return
	}
	p := d.nodes[c.parent]
	if i := slices.Index(p.children, child); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	c.parent = 0
	d.revision++
}

// drop deletes a detached subtree from the arena.
func (d *Document) drop(id NodeID) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	for _, c := range n.children {
		d.drop(c)
	}
	delete(d.nodes, id)
}

// accepts reports whether a node of kind child may live under kind parent.
func accepts(parent, child Kind) bool {
	switch parent {
	case KindRoot:
		return child == KindParagraph
	case KindParagraph:
		return child == KindTextSpan
	case KindTextSpan:
		return child == KindText || child == KindLineBreak
	default:
		return false
	}
}

// InsertChild attaches a detached child under parent at index.
func (d *Document) InsertChild(parent NodeID, index int, child NodeID) error {
	p, err := d.get(parent)
	if err != nil {
		return err
	}
	c, err := d.get(child)
	if err != nil {
		return err
	}
	if !accepts(p.kind, c.kind) {
		return fmt.Errorf("%w: %s cannot hold %s", ErrStructure, p.kind, c.kind)
	}
	if p.kind == KindTextSpan && len(p.children) > 0 {
		return fmt.Errorf("%w: span already holds a leaf", ErrStructure)
	}
	if err := d.checkDetached(child); err != nil {
		return err
	}
	if index < 0 || index > len(p.children) {
		return fmt.Errorf("%w: child index %d of %d", ErrRange, index, len(p.children))
	}
	d.link(parent, child, index)
	return nil
}

// Append attaches children at the end of parent, in order.
func (d *Document) Append(parent NodeID, children ...NodeID) error {
	for _, c := range children {
		if err := d.InsertChild(parent, d.ChildCount(parent), c); err != nil {
			return err
		}
	}
	return nil
}

// Prepend attaches children at the start of parent, keeping their order.
func (d *Document) Prepend(parent NodeID, children ...NodeID) error {
	for i, c := range children {
		if err := d.InsertChild(parent, i, c); err != nil {
			return err
		}
	}
	return nil
}

// InsertBefore attaches nodes as siblings immediately before ref.
func (d *Document) InsertBefore(ref NodeID, nodes ...NodeID) error {
	parent := d.Parent(ref)
	if parent == 0 {
		return fmt.Errorf("%w: reference node %d", ErrDetached, ref)
	}
	at := d.ChildIndex(ref)
	for i, n := range nodes {
		if err := d.InsertChild(parent, at+i, n); err != nil {
			return err
		}
	}
	return nil
}

// InsertAfter attaches nodes as siblings immediately after ref.
func (d *Document) InsertAfter(ref NodeID, nodes ...NodeID) error {
	parent := d.Parent(ref)
	if parent == 0 {
		return fmt.Errorf("%w: reference node %d", ErrDetached, ref)
	}
	at := d.ChildIndex(ref) + 1
	for i, n := range nodes {
		if err := d.InsertChild(parent, at+i, n); err != nil {
			return err
		}
	}
	return nil
}

// Detach unlinks id from its parent and keeps it in the arena.
func (d *Document) Detach(id NodeID) error {
	if _, err := d.get(id); err != nil {
		return err
	}
	if id == d.root {
		return fmt.Errorf("%w: root cannot be detached", ErrStructure)
	}
	d.unlink(id)
	return nil
}

// Remove unlinks id and deletes it and its subtree from the arena.
func (d *Document) Remove(id NodeID) error {
	if err := d.Detach(id); err != nil {
		return err
	}
	d.drop(id)
	return nil
}

// Replace swaps old for the detached node replacement. old is removed.
func (d *Document) Replace(old, replacement NodeID) error {
	parent := d.Parent(old)
	if parent == 0 {
		return fmt.Errorf("%w: node %d", ErrDetached, old)
	}
	o := d.nodes[old]
	r, err := d.get(replacement)
	if err != nil {
		return err
	}
	if r.kind != o.kind && !(isLeafKind(r.kind) && isLeafKind(o.kind)) {
		return fmt.Errorf("%w: cannot replace %s with %s", ErrStructure, o.kind, r.kind)
	}
	if err := d.checkDetached(replacement); err != nil {
		return err
	}
	at := d.ChildIndex(old)
	d.unlink(old)
	d.drop(old)
	d.link(parent, replacement, at)
	return nil
}

func isLeafKind(k Kind) bool { return k == KindText || k == KindLineBreak }

// MoveChildren moves every child of from to the end of to.
func (d *Document) MoveChildren(from, to NodeID) error {
	src, err := d.get(from)
	if err != nil {
		return err
	}
	dst, err := d.get(to)
	if err != nil {
		return err
	}
	if src.kind != dst.kind {
		return fmt.Errorf("%w: cannot move children of %s into %s", ErrStructure, src.kind, dst.kind)
	}
	for _, c := range slices.Clone(src.children) {
		d.unlink(c)
		d.link(to, c, len(dst.children))
	}
	return nil
}

// PrependChildren moves every child of from to the start of to, keeping their
// order.
func (d *Document) PrependChildren(from, to NodeID) error {
	src, err := d.get(from)
	if err != nil {
		return err
	}
	dst, err := d.get(to)
	if err != nil {
		return err
	}
	if src.kind != dst.kind {
		return fmt.Errorf("%w: cannot move children of %s into %s", ErrStructure, src.kind, dst.kind)
	}
	for i, c := range slices.Clone(src.children) {
		d.unlink(c)
		d.link(to, c, i)
	}
	return nil
}

// SetText rewrites the payload of a text leaf.
func (d *Document) SetText(leaf NodeID, text string) error {
	n, err := d.get(leaf)
	if err != nil {
		return err
	}
	if n.kind != KindText {
		return fmt.Errorf("%w: node %d is %s", ErrNotLeaf, leaf, n.kind)
	}
	if text == "" {
		return ErrEmptyText
	}
	if n.text != text {
		n.text = text
		d.revision++
	}
	return nil
}

// SetStyle merges overrides into the style of id, restricted to the
// allow-list of its kind.
func (d *Document) SetStyle(id NodeID, overrides Style) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	allow := AllowList(n.kind)
	if allow == nil {
		return fmt.Errorf("%w: %s does not carry style", ErrStructure, n.kind)
	}
	merged := MergeStyles(allow, n.style, overrides)
	if !merged.Equal(n.style) {
		n.style = merged
		d.revision++
	}
	return nil
}

// ReplaceStyle sets the allow-listed part of style on id, dropping every
// other property.
func (d *Document) ReplaceStyle(id NodeID, style Style) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	allow := AllowList(n.kind)
	if allow == nil {
		return fmt.Errorf("%w: %s does not carry style", ErrStructure, n.kind)
	}
	n.style = MergeStyles(allow, nil, style)
	d.revision++
	return nil
}
