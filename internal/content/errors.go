package content

import "errors"

// ErrStructure is returned when a factory receives children of the wrong shape.
var ErrStructure = errors.New("invalid structure")

// ErrRange is returned for offsets outside a leaf or nodes outside a container.
var ErrRange = errors.New("out of range")

// ErrDetached is returned when an operation needs a node attached to the root.
var ErrDetached = errors.New("node is not attached to the document")

// ErrNotFound is returned for unknown node ids or missing ancestors.
var ErrNotFound = errors.New("node not found")

// ErrNotLeaf is returned when a text leaf or line break was expected.
var ErrNotLeaf = errors.New("node is not a leaf")

// ErrEmptyText is returned when a text leaf would hold zero-length text.
// Empty content is always represented by a line break.
var ErrEmptyText = errors.New("text leaf cannot be empty")

// ErrTraversalTimeout is returned when a tree walk exceeds its step or time budget.
var ErrTraversalTimeout = errors.New("traversal budget exceeded")
