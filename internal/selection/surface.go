package selection

import "github.com/zjrosen/spanedit/internal/content"

// Point is a position in the document. On a text leaf Offset counts grapheme
// clusters; on a line break it is always 0; on a container it is a child
// index, and the point is normalized to the nearest leaf when read.
type Point struct {
	Node   content.NodeID
	Offset int
}

// Range is an anchor/focus pair. The anchor is where the selection started;
// the focus is where the caret is.
type Range struct {
	Anchor Point
	Focus  Point
}

// Caret returns a collapsed range at p.
func Caret(p Point) Range {
	return Range{Anchor: p, Focus: p}
}

// Collapsed reports whether anchor and focus coincide.
func (r Range) Collapsed() bool {
	return r.Anchor == r.Focus
}

// Surface is the host's live selection projection. The controller only reads
// and writes anchor/focus pairs through it; the host owns everything else
// about the editable surface.
type Surface interface {
	Selection() (Range, bool)
	SetSelection(Range)
}

// MemorySurface is a Surface backed by a plain field. It is the surface used
// by headless hosts and tests.
type MemorySurface struct {
	r   Range
	set bool
}

// NewMemorySurface creates a surface without a selection.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (s *MemorySurface) Selection() (Range, bool) {
	return s.r, s.set
}

func (s *MemorySurface) SetSelection(r Range) {
	s.r = r
	s.set = true
}

// Clear drops the selection, as when the surface loses focus.
func (s *MemorySurface) Clear() {
	s.r = Range{}
	s.set = false
}
