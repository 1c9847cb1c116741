package tracing

// Span attribute keys for editor tracing.
const (
	AttrSessionID     = "editor.session.id"
	AttrIntent        = "editor.intent"
	AttrCommandID     = "editor.command.id"
	AttrCommandResult = "editor.command.result"
	AttrCaretContext  = "editor.caret.context"
	AttrRevision      = "document.revision"

	AttrNodesAdded   = "mutation.added"
	AttrNodesUpdated = "mutation.updated"
	AttrNodesRemoved = "mutation.removed"

	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanHandleInput = "editor.handle_input"
	SpanApplyStyles = "editor.apply_styles"
	SpanPaste       = "editor.paste"
	SpanReplayStep  = "replay.step"
)

// Event names for span events.
const (
	EventValidated     = "document.validated"
	EventChangeQueued  = "change.queued"
	EventErrorOccurred = "error.occurred"
)
