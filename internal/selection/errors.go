package selection

import "errors"

var (
	// ErrNoSelection is returned by operations that need a caret when the
	// surface reports none.
	ErrNoSelection = errors.New("no selection")

	// ErrNotCollapsed is returned by caret operations given a ranged selection.
	ErrNotCollapsed = errors.New("selection is not collapsed")
)
