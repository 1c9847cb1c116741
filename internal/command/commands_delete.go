package command

import (
	"github.com/zjrosen/spanedit/internal/selection"
)

// ============================================================================
// Delete Commands
// ============================================================================

// DeleteContentBackwardCommand is backspace.
type DeleteContentBackwardCommand struct {
	EditBase
}

func (*DeleteContentBackwardCommand) Execute(c Controller, _ Input) (ExecuteResult, error) {
	ctx := c.CaretContext()
	switch ctx {
	case selection.ContextNone:
		return Skipped, nil
	case selection.CollapsedInText, selection.CollapsedAtLeafEnd:
		return run(c.RemoveBackwardText())
	case selection.CollapsedAtLeafStart:
		if !c.IsParagraphStart() {
			return run(c.RemoveBackwardText())
		}
		if c.IsFirstParagraph() {
			return Skipped, nil
		}
		return run(c.MergeBackwardParagraph())
	case selection.CollapsedOnMarker:
		if c.IsParagraphStart() && c.IsFirstParagraph() {
			return Skipped, nil
		}
		return run(c.RemoveBackwardParagraph())
	default:
		return run(c.RemoveSelected(selection.RemoveOptions{Direction: selection.DirectionBackward}))
	}
}

func (*DeleteContentBackwardCommand) Intents() []Intent {
	return []Intent{IntentDeleteContentBackward}
}

func (*DeleteContentBackwardCommand) ID() string { return "delete.backward" }

// DeleteContentForwardCommand is the delete key.
type DeleteContentForwardCommand struct {
	EditBase
}

func (*DeleteContentForwardCommand) Execute(c Controller, _ Input) (ExecuteResult, error) {
	ctx := c.CaretContext()
	switch ctx {
	case selection.ContextNone:
		return Skipped, nil
	case selection.CollapsedInText, selection.CollapsedAtLeafStart:
		return run(c.RemoveForwardText())
	case selection.CollapsedAtLeafEnd:
		if !c.IsParagraphEnd() {
			return run(c.RemoveForwardText())
		}
		if c.IsLastParagraph() {
			return Skipped, nil
		}
		return run(c.MergeForwardParagraph())
	case selection.CollapsedOnMarker:
		if c.IsParagraphEnd() && c.IsLastParagraph() {
			return Skipped, nil
		}
		return run(c.RemoveForwardParagraph())
	default:
		return run(c.RemoveSelected(selection.RemoveOptions{Direction: selection.DirectionForward}))
	}
}

func (*DeleteContentForwardCommand) Intents() []Intent {
	return []Intent{IntentDeleteContentForward}
}

func (*DeleteContentForwardCommand) ID() string { return "delete.forward" }

// DeleteWordBackwardCommand is ctrl+backspace.
type DeleteWordBackwardCommand struct {
	EditBase
}

func (*DeleteWordBackwardCommand) Execute(c Controller, _ Input) (ExecuteResult, error) {
	ctx := c.CaretContext()
	switch {
	case ctx == selection.ContextNone:
		return Skipped, nil
	case ctx.IsRange():
		return run(c.RemoveSelected(selection.RemoveOptions{Direction: selection.DirectionBackward}))
	case c.IsParagraphStart() && c.IsFirstParagraph():
		return Skipped, nil
	default:
		return run(c.RemoveWordBackward())
	}
}

func (*DeleteWordBackwardCommand) Intents() []Intent {
	return []Intent{IntentDeleteWordBackward}
}

func (*DeleteWordBackwardCommand) ID() string { return "delete.word_backward" }

// DeleteByCutCommand removes the selection after the host copied it.
type DeleteByCutCommand struct {
	EditBase
}

func (*DeleteByCutCommand) Execute(c Controller, _ Input) (ExecuteResult, error) {
	if !c.CaretContext().IsRange() {
		return Skipped, nil
	}
	return run(c.RemoveSelected(selection.RemoveOptions{Direction: selection.DirectionBackward}))
}

func (*DeleteByCutCommand) Intents() []Intent {
	return []Intent{IntentDeleteByCut}
}

func (*DeleteByCutCommand) ID() string { return "delete.cut" }
