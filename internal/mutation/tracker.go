// Package mutation records which nodes a command added, updated or removed so
// a layout consumer knows what to re-measure.
package mutation

import (
	"maps"
	"slices"

	"github.com/zjrosen/spanedit/internal/content"
)

// Tracker accumulates node ids in three sets. It has plain set semantics: a
// node may be reported in more than one set and callers are responsible for
// not double-reporting.
type Tracker struct {
	added   map[content.NodeID]struct{}
	updated map[content.NodeID]struct{}
	removed map[content.NodeID]struct{}
}

// Set is an immutable copy of a tracker's contents.
type Set struct {
	Added   []content.NodeID
	Updated []content.NodeID
	Removed []content.NodeID
}

// Empty reports whether the set holds no ids.
func (s Set) Empty() bool {
	return len(s.Added) == 0 && len(s.Updated) == 0 && len(s.Removed) == 0
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.Clear()
	return t
}

// Add records a node created by the current command.
func (t *Tracker) Add(id content.NodeID) {
	if t.added != nil && id != 0 {
		t.added[id] = struct{}{}
	}
}

// Update records a node whose content or style changed.
func (t *Tracker) Update(id content.NodeID) {
	if t.updated != nil && id != 0 {
		t.updated[id] = struct{}{}
	}
}

// Remove records a node that left the tree.
func (t *Tracker) Remove(id content.NodeID) {
	if t.removed != nil && id != 0 {
		t.removed[id] = struct{}{}
	}
}

// Clear empties all three sets.
func (t *Tracker) Clear() {
	t.added = make(map[content.NodeID]struct{})
	t.updated = make(map[content.NodeID]struct{})
	t.removed = make(map[content.NodeID]struct{})
}

// Dispose releases the sets. Later calls to Add, Update and Remove are ignored.
func (t *Tracker) Dispose() {
	t.added = nil
	t.updated = nil
	t.removed = nil
}

// HasChanges reports whether any set is non-empty.
func (t *Tracker) HasChanges() bool {
	return len(t.added) > 0 || len(t.updated) > 0 || len(t.removed) > 0
}

// Added returns the added ids in ascending order.
func (t *Tracker) Added() []content.NodeID { return sorted(t.added) }

// Updated returns the updated ids in ascending order.
func (t *Tracker) Updated() []content.NodeID { return sorted(t.updated) }

// Removed returns the removed ids in ascending order.
func (t *Tracker) Removed() []content.NodeID { return sorted(t.removed) }

// Snapshot copies the current sets.
func (t *Tracker) Snapshot() Set {
	return Set{Added: t.Added(), Updated: t.Updated(), Removed: t.Removed()}
}

func sorted(m map[content.NodeID]struct{}) []content.NodeID {
	return slices.Sorted(maps.Keys(m))
}
