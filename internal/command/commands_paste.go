package command

// InsertFromPasteCommand splices the fragment carried by the input. A
// selection is replaced.
type InsertFromPasteCommand struct {
	EditBase
}

func (*InsertFromPasteCommand) Execute(c Controller, in Input) (ExecuteResult, error) {
	if in.Fragment == nil || len(in.Fragment.Paragraphs) == 0 {
		return Skipped, nil
	}
	ctx := c.CaretContext()
	switch {
	case ctx.IsRange():
		return run(c.ReplaceWithPaste(in.Fragment))
	case ctx.IsCollapsed():
		return run(c.InsertPaste(in.Fragment))
	default:
		return Skipped, nil
	}
}

func (*InsertFromPasteCommand) Intents() []Intent {
	return []Intent{IntentInsertFromPaste}
}

func (*InsertFromPasteCommand) ID() string { return "insert.paste" }
