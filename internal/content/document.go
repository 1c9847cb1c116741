// Package content implements the rich-text document model.
//
// A Document is an arena of nodes addressed by NodeID. The tree has a fixed
// shape:
//
//	Root -> Paragraph+ -> TextSpan+ -> (Text | LineBreak)
//
// A span holds exactly one leaf. Text leaves are never empty; zero-length
// content is always a LineBreak. Nodes are created detached by the factory
// functions, which validate child shape before anything is attached, and are
// then spliced into the tree with the mutation primitives.
//
// Offsets inside a text leaf are grapheme cluster indices, not bytes.
package content

import (
	"fmt"
	"slices"
	"strings"
)

// NodeID identifies a node in a Document. The zero value means "no node".
type NodeID uint32

// Kind classifies a node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindRoot
	KindParagraph
	KindTextSpan
	KindText
	KindLineBreak
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindParagraph:
		return "paragraph"
	case KindTextSpan:
		return "span"
	case KindText:
		return "text"
	case KindLineBreak:
		return "br"
	default:
		return "invalid"
	}
}

type node struct {
	kind     Kind
	parent   NodeID
	children []NodeID
	text     string
	style    Style
}

// Document owns every node of one editor's tree.
type Document struct {
	nodes    map[NodeID]*node
	root     NodeID
	next     NodeID
	revision uint64
}

// New creates a document holding one canonical empty paragraph.
func New(rootStyle Style) *Document {
	d := &Document{nodes: make(map[NodeID]*node)}
	d.root = d.alloc(&node{kind: KindRoot, style: MergeStyles(RootStyles, nil, rootStyle)})
	p := d.NewEmptyParagraph(nil, nil)
	d.link(d.root, p, 0)
	return d
}

func (d *Document) alloc(n *node) NodeID {
	d.next++
	d.nodes[d.next] = n
	d.revision++
	return d.next
}

func (d *Document) get(id NodeID) (*node, error) {
	n, ok := d.nodes[id]
	if !ok || id == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return n, nil
}

// Root returns the root node id.
func (d *Document) Root() NodeID { return d.root }

// Revision increases on every structural, text or style change.
func (d *Document) Revision() uint64 { return d.revision }

// Len returns the number of nodes in the arena, attached or not.
func (d *Document) Len() int { return len(d.nodes) }

// Exists reports whether id is a node of this document.
func (d *Document) Exists(id NodeID) bool {
	_, ok := d.nodes[id]
	return ok && id != 0
}

// Kind returns the kind of id, or KindInvalid when unknown.
func (d *Document) Kind(id NodeID) Kind {
	if n, ok := d.nodes[id]; ok {
		return n.kind
	}
	return KindInvalid
}

func (d *Document) IsRoot(id NodeID) bool      { return d.Kind(id) == KindRoot }
func (d *Document) IsParagraph(id NodeID) bool { return d.Kind(id) == KindParagraph }
func (d *Document) IsTextSpan(id NodeID) bool  { return d.Kind(id) == KindTextSpan }
func (d *Document) IsText(id NodeID) bool      { return d.Kind(id) == KindText }
func (d *Document) IsLineBreak(id NodeID) bool { return d.Kind(id) == KindLineBreak }

// IsLeaf reports whether id is a text leaf or a line break.
func (d *Document) IsLeaf(id NodeID) bool {
	k := d.Kind(id)
	return k == KindText || k == KindLineBreak
}

// IsEmptyTextSpan reports whether a span holds a line break.
func (d *Document) IsEmptyTextSpan(id NodeID) bool {
	n, ok := d.nodes[id]
	return ok && n.kind == KindTextSpan && len(n.children) == 1 && d.IsLineBreak(n.children[0])
}

// IsEmptyParagraph reports whether a paragraph is the canonical empty form:
// a single span holding a line break.
func (d *Document) IsEmptyParagraph(id NodeID) bool {
	n, ok := d.nodes[id]
	return ok && n.kind == KindParagraph && len(n.children) == 1 && d.IsEmptyTextSpan(n.children[0])
}

// Parent returns the parent of id, or 0.
func (d *Document) Parent(id NodeID) NodeID {
	if n, ok := d.nodes[id]; ok {
		return n.parent
	}
	return 0
}

// Children returns a copy of the child list of id.
func (d *Document) Children(id NodeID) []NodeID {
	if n, ok := d.nodes[id]; ok {
		return slices.Clone(n.children)
	}
	return nil
}

// ChildCount returns the number of children of id.
func (d *Document) ChildCount(id NodeID) int {
	if n, ok := d.nodes[id]; ok {
		return len(n.children)
	}
	return 0
}

// Child returns the i-th child of id, or 0.
func (d *Document) Child(id NodeID, i int) NodeID {
	if n, ok := d.nodes[id]; ok && i >= 0 && i < len(n.children) {
		return n.children[i]
	}
	return 0
}

// ChildIndex returns the position of id in its parent, or -1.
func (d *Document) ChildIndex(id NodeID) int {
	p, ok := d.nodes[d.Parent(id)]
	if !ok {
		return -1
	}
	return slices.Index(p.children, id)
}

// PreviousSibling returns the sibling before id, or 0.
func (d *Document) PreviousSibling(id NodeID) NodeID {
	i := d.ChildIndex(id)
	if i <= 0 {
		return 0
	}
	return d.nodes[d.Parent(id)].children[i-1]
}

// NextSibling returns the sibling after id, or 0.
func (d *Document) NextSibling(id NodeID) NodeID {
	i := d.ChildIndex(id)
	if i < 0 {
		return 0
	}
	siblings := d.nodes[d.Parent(id)].children
	if i+1 >= len(siblings) {
		return 0
	}
	return siblings[i+1]
}

// Contains reports whether id is ancestor or a descendant of ancestor.
func (d *Document) Contains(ancestor, id NodeID) bool {
	for steps := 0; id != 0 && steps <= len(d.nodes); steps++ {
		if id == ancestor {
			return true
		}
		id = d.Parent(id)
	}
	return false
}

// IsAttached reports whether id is reachable from the root.
func (d *Document) IsAttached(id NodeID) bool {
	return d.Exists(id) && d.Contains(d.root, id)
}

// Text returns the payload of a text leaf, or "" for any other node.
func (d *Document) Text(id NodeID) string {
	if n, ok := d.nodes[id]; ok && n.kind == KindText {
		return n.text
	}
	return ""
}

// TextLength returns the grapheme length of a leaf. Line breaks are zero.
func (d *Document) TextLength(id NodeID) int {
	return GraphemeCount(d.Text(id))
}

// Style returns a copy of the style of id.
func (d *Document) Style(id NodeID) Style {
	if n, ok := d.nodes[id]; ok {
		return n.style.Clone()
	}
	return Style{}
}

// Leaf returns the leaf held by a span, or 0.
func (d *Document) Leaf(span NodeID) NodeID {
	n, ok := d.nodes[span]
	if !ok || n.kind != KindTextSpan || len(n.children) == 0 {
		return 0
	}
	return n.children[0]
}

// SpanOf returns the span that is or contains id.
func (d *Document) SpanOf(id NodeID) (NodeID, error) {
	return d.ancestor(id, KindTextSpan)
}

// ParagraphOf returns the paragraph that is or contains id.
func (d *Document) ParagraphOf(id NodeID) (NodeID, error) {
	return d.ancestor(id, KindParagraph)
}

func (d *Document) ancestor(id NodeID, kind Kind) (NodeID, error) {
	start := id
	for steps := 0; id != 0 && steps <= len(d.nodes); steps++ {
		if d.Kind(id) == kind {
			return id, nil
		}
		id = d.Parent(id)
	}
	return 0, fmt.Errorf("%w: no %s above node %d", ErrNotFound, kind, start)
}

// Paragraphs returns the paragraphs of the root in order.
func (d *Document) Paragraphs() []NodeID {
	return d.Children(d.root)
}

// FirstLeaf returns the first leaf under id.
func (d *Document) FirstLeaf(id NodeID) NodeID {
	for steps := 0; d.Exists(id) && steps <= len(d.nodes); steps++ {
		if d.IsLeaf(id) {
			return id
		}
		id = d.Child(id, 0)
	}
	return 0
}

// LastLeaf returns the last leaf under id.
func (d *Document) LastLeaf(id NodeID) NodeID {
	for steps := 0; d.Exists(id) && steps <= len(d.nodes); steps++ {
		if d.IsLeaf(id) {
			return id
		}
		id = d.Child(id, d.ChildCount(id)-1)
	}
	return 0
}

// ParagraphText returns the concatenated text of a paragraph.
func (d *Document) ParagraphText(paragraph NodeID) string {
	var sb strings.Builder
	for _, span := range d.Children(paragraph) {
		sb.WriteString(d.Text(d.Leaf(span)))
	}
	return sb.String()
}

// DocumentText returns the text of the whole document with paragraphs
// separated by newlines.
func (d *Document) DocumentText() string {
	paragraphs := d.Paragraphs()
	parts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		parts[i] = d.ParagraphText(p)
	}
	return strings.Join(parts, "\n")
}
