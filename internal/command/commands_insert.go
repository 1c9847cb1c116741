package command

import (
	"github.com/zjrosen/spanedit/internal/selection"
)

// ============================================================================
// Insert Commands
// ============================================================================

// InsertTextCommand inserts typed text. A selection inside one leaf is
// rewritten in place; a wider selection is removed first. On a line break the
// marker gives way to a text leaf.
type InsertTextCommand struct {
	EditBase
}

func (*InsertTextCommand) Execute(c Controller, in Input) (ExecuteResult, error) {
	if in.Data == "" {
		return Skipped, nil
	}
	switch c.CaretContext() {
	case selection.RangeSingleLeaf:
		return run(c.ReplaceText(in.Data))
	case selection.RangeMultiLeaf, selection.RangeMultiParagraph:
		return run(c.ReplaceTextSpans(in.Data))
	case selection.CollapsedOnMarker:
		return run(c.ReplaceLineBreak(in.Data))
	case selection.CollapsedInText, selection.CollapsedAtLeafStart, selection.CollapsedAtLeafEnd:
		return run(c.InsertText(in.Data))
	default:
		return Skipped, nil
	}
}

func (*InsertTextCommand) Intents() []Intent {
	return []Intent{IntentInsertText, IntentInsertReplacementText, IntentInsertCompositionText}
}

func (*InsertTextCommand) ID() string { return "insert.text" }

// InsertParagraphCommand breaks the paragraph at the caret. At either edge of
// a paragraph an empty sibling is added so no empty text leaf appears.
type InsertParagraphCommand struct {
	EditBase
}

func (*InsertParagraphCommand) Execute(c Controller, _ Input) (ExecuteResult, error) {
	ctx := c.CaretContext()
	switch {
	case ctx == selection.ContextNone:
		return Skipped, nil
	case ctx.IsRange():
		return run(c.ReplaceWithParagraph())
	case c.IsParagraphStart():
		return run(c.InsertParagraphBefore())
	case c.IsParagraphEnd():
		return run(c.InsertParagraphAfter())
	default:
		return run(c.SplitParagraph())
	}
}

func (*InsertParagraphCommand) Intents() []Intent {
	return []Intent{IntentInsertParagraph, IntentInsertLineBreak}
}

func (*InsertParagraphCommand) ID() string { return "insert.paragraph" }
