// Package command turns host edit intents into selection mutations. Each
// command is a decision table over the caret context that calls exactly one
// controller operation.
package command

import (
	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/selection"
)

// ExecuteResult indicates the outcome of command execution.
type ExecuteResult int

const (
	// Executed means the command ran a mutation and consumed the intent.
	Executed ExecuteResult = iota
	// PassThrough means the intent is left to the host (undo, composition).
	PassThrough
	// Skipped means pre-conditions weren't met (e.g. backspace at the very start).
	Skipped
)

func (r ExecuteResult) String() string {
	switch r {
	case Executed:
		return "executed"
	case PassThrough:
		return "pass-through"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Controller is the selection surface the commands drive.
// *selection.Controller satisfies it.
type Controller interface {
	CaretContext() selection.CaretContext
	IsParagraphStart() bool
	IsParagraphEnd() bool
	IsFirstParagraph() bool
	IsLastParagraph() bool

	InsertText(text string) error
	ReplaceText(text string) error
	ReplaceTextSpans(text string) error
	ReplaceLineBreak(text string) error

	SplitParagraph() error
	InsertParagraphBefore() error
	InsertParagraphAfter() error
	ReplaceWithParagraph() error

	RemoveSelected(opts selection.RemoveOptions) error
	RemoveBackwardText() error
	RemoveForwardText() error
	RemoveWordBackward() error
	MergeBackwardParagraph() error
	MergeForwardParagraph() error
	RemoveBackwardParagraph() error
	RemoveForwardParagraph() error

	InsertPaste(f *content.Fragment) error
	ReplaceWithPaste(f *content.Fragment) error
}

var _ Controller = (*selection.Controller)(nil)

// Command handles one or more edit intents.
type Command interface {
	// Execute inspects the controller and runs at most one mutation.
	// An error from the mutation is returned as is; the result is then
	// Executed since the tree may have been touched.
	Execute(c Controller, in Input) (ExecuteResult, error)

	// Intents returns the intents that trigger this command. The first is
	// the primary one; the rest are aliases.
	Intents() []Intent

	// ID returns a hierarchical identifier used in logs and spans,
	// e.g. "insert.text" or "delete.backward".
	ID() string

	// ChangesContent reports whether an executed run modifies the tree.
	ChangesContent() bool
}

// EditBase provides defaults for commands that modify content.
type EditBase struct{}

func (EditBase) ChangesContent() bool { return true }

// run wraps a single mutation call in the Execute return shape.
func run(err error) (ExecuteResult, error) {
	return Executed, err
}
