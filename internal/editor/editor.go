// Package editor is the host-facing facade of the editing core. An Editor
// owns one document, its selection controller, the command registry and the
// change coordinator, and runs every edit as one traced, logged command.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/spanedit/internal/cachemanager"
	"github.com/zjrosen/spanedit/internal/change"
	"github.com/zjrosen/spanedit/internal/command"
	"github.com/zjrosen/spanedit/internal/config"
	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/log"
	"github.com/zjrosen/spanedit/internal/mutation"
	"github.com/zjrosen/spanedit/internal/selection"
	"github.com/zjrosen/spanedit/internal/tracing"
)

var (
	// ErrDisposed is returned by operations on a disposed editor.
	ErrDisposed = errors.New("editor disposed")
	// ErrInvalidDocument wraps an invariant violation found after a command.
	ErrInvalidDocument = errors.New("document invariant violated")
)

// Editor runs edit commands against one document.
type Editor struct {
	id  string
	cfg config.EditorConfig

	doc      *content.Document
	surface  selection.Surface
	ctrl     *selection.Controller
	tracker  *mutation.Tracker
	styles   cachemanager.CacheManager[string, content.Style]
	registry *command.Registry
	changes  *change.Coordinator
	tracer   trace.Tracer

	changeOpts []change.Option
	focused    bool
	disposed   bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithDocument edits doc instead of a fresh empty document.
func WithDocument(doc *content.Document) Option {
	return func(e *Editor) {
		if doc != nil {
			e.doc = doc
		}
	}
}

// WithSurface binds the editor to a host surface.
func WithSurface(s selection.Surface) Option {
	return func(e *Editor) {
		if s != nil {
			e.surface = s
		}
	}
}

// WithTracer records a span per command.
func WithTracer(t trace.Tracer) Option {
	return func(e *Editor) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithRegistry replaces the default command registry.
func WithRegistry(r *command.Registry) Option {
	return func(e *Editor) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithChangeCallback is called synchronously for every change notification.
func WithChangeCallback(fn func(change.Notification)) Option {
	return func(e *Editor) {
		e.changeOpts = append(e.changeOpts, change.WithCallback(fn))
	}
}

// New creates an editor. Without WithDocument it edits an empty document;
// without WithSurface it keeps its selection in memory. A surface without a
// selection gets a caret at the start of the document.
func New(cfg config.EditorConfig, opts ...Option) *Editor {
	e := &Editor{
		id:       uuid.NewString(),
		cfg:      cfg,
		tracker:  mutation.NewTracker(),
		registry: command.DefaultRegistry(),
		tracer:   noop.NewTracerProvider().Tracer(tracing.DefaultServiceName),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.doc == nil {
		e.doc = content.New(nil)
	}
	if e.surface == nil {
		e.surface = selection.NewMemorySurface()
	}
	ttl := cfg.StyleCacheTTL
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	e.styles = cachemanager.NewInMemoryCacheManager[string, content.Style](
		"style:"+e.id, ttl, cachemanager.DefaultCleanupInterval)
	e.changes = change.New(change.Config{Debounce: cfg.ChangeDebounce}, e.changeOpts...)
	e.bind()

	log.Info(log.CatEditor, "editor created", "session", e.id, "paragraphs", len(e.doc.Paragraphs()))
	return e
}

// bind builds the controller over the current document.
func (e *Editor) bind() {
	e.ctrl = selection.NewController(e.doc, e.surface,
		selection.WithDefaultStyle(content.Style(e.cfg.DefaultStyle)),
		selection.WithTracker(e.tracker),
		selection.WithTraversalBudget(e.cfg.TraversalBudget),
		selection.WithStyleCache(e.styles),
	)
	if !e.ctrl.HasSelection() {
		_ = e.ctrl.Collapse(selection.Point{Node: e.doc.FirstLeaf(e.doc.Root())})
	}
}

// SessionID identifies the editor in logs and traces.
func (e *Editor) SessionID() string { return e.id }

// Document returns the edited document.
func (e *Editor) Document() *content.Document { return e.doc }

// Controller returns the selection controller, for caret movement and
// queries.
func (e *Editor) Controller() *selection.Controller { return e.ctrl }

// Changes returns the change coordinator.
func (e *Editor) Changes() *change.Coordinator { return e.changes }

// Text returns the document text with newline-separated paragraphs.
func (e *Editor) Text() string { return e.doc.DocumentText() }

// Tracer returns the tracer command spans are recorded on.
func (e *Editor) Tracer() trace.Tracer { return e.tracer }

// Focused reports whether the editor holds focus.
func (e *Editor) Focused() bool { return e.focused }

// Mutations returns what the last command added, updated and removed. It is
// reset when the next command starts.
func (e *Editor) Mutations() mutation.Set { return e.tracker.Snapshot() }

// CurrentStyle returns the cascade-resolved style at the caret.
func (e *Editor) CurrentStyle() content.Style { return e.ctrl.CurrentStyle() }

// SelectionStyle returns the merged style of the selection; properties that
// differ read content.Mixed.
func (e *Editor) SelectionStyle() (content.Style, error) { return e.ctrl.SelectionStyle() }

// HandleInput runs one host edit intent.
func (e *Editor) HandleInput(ctx context.Context, in command.Input) (command.Outcome, error) {
	if e.disposed {
		return command.Outcome{}, ErrDisposed
	}
	e.tracker.Clear()
	_, span := e.tracer.Start(ctx, tracing.SpanHandleInput, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, e.id),
		attribute.String(tracing.AttrIntent, string(in.Type)),
		attribute.String(tracing.AttrCaretContext, e.ctrl.CaretContext().String()),
	))
	defer span.End()

	out, err := e.registry.Dispatch(e.ctrl, in)
	if out.Command != nil {
		span.SetAttributes(attribute.String(tracing.AttrCommandID, out.Command.ID()))
	}
	span.SetAttributes(attribute.String(tracing.AttrCommandResult, out.Result.String()))

	err = e.finish(span, err)
	log.Debug(log.CatEditor, "input handled",
		"session", e.id, "intent", in.Type, "result", out.Result, "revision", e.doc.Revision())
	return out, err
}

// ApplyStyles styles the selection as one command.
func (e *Editor) ApplyStyles(ctx context.Context, style content.Style) error {
	if e.disposed {
		return ErrDisposed
	}
	e.tracker.Clear()
	_, span := e.tracer.Start(ctx, tracing.SpanApplyStyles, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, e.id),
		attribute.StringSlice("style.keys", style.Keys()),
	))
	defer span.End()

	return e.finish(span, e.ctrl.ApplyStyles(style))
}

// Paste splices a detached fragment at the selection.
func (e *Editor) Paste(ctx context.Context, f *content.Fragment) (command.Outcome, error) {
	ctx, span := e.tracer.Start(ctx, tracing.SpanPaste)
	defer span.End()
	return e.HandleInput(ctx, command.Input{Type: command.IntentInsertFromPaste, Fragment: f})
}

// PasteText pastes plain text; each line becomes a paragraph.
func (e *Editor) PasteText(ctx context.Context, text string) (command.Outcome, error) {
	if e.disposed {
		return command.Outcome{}, ErrDisposed
	}
	f, err := content.FragmentFromText(e.doc, text, nil)
	if err != nil {
		return command.Outcome{}, err
	}
	return e.Paste(ctx, f)
}

// finish closes out a command: it records the mutation sets on the span,
// validates the tree when configured and schedules a change notification if
// anything was touched. A failed command that still mutated the tree is
// reported as changed.
func (e *Editor) finish(span trace.Span, err error) error {
	set := e.tracker.Snapshot()
	span.SetAttributes(
		attribute.Int(tracing.AttrNodesAdded, len(set.Added)),
		attribute.Int(tracing.AttrNodesUpdated, len(set.Updated)),
		attribute.Int(tracing.AttrNodesRemoved, len(set.Removed)),
		attribute.Int64(tracing.AttrRevision, int64(e.doc.Revision())),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatEditor, "command failed", err, "session", e.id)
	}
	if set.Empty() {
		return err
	}
	if e.cfg.Validate {
		if verr := e.doc.Validate(); verr != nil {
			verr = fmt.Errorf("%w: %w", ErrInvalidDocument, verr)
			span.RecordError(verr)
			span.SetStatus(codes.Error, verr.Error())
			log.ErrorErr(log.CatEditor, "invariant check failed", verr, "session", e.id)
			err = errors.Join(err, verr)
		} else {
			span.AddEvent(tracing.EventValidated)
		}
	}
	e.changes.Notify()
	span.AddEvent(tracing.EventChangeQueued)
	return err
}

// Reset swaps in a new document, for example after the file was reloaded.
// The caret moves to the start and consumers are notified at once.
func (e *Editor) Reset(doc *content.Document) error {
	if e.disposed {
		return ErrDisposed
	}
	if doc == nil {
		return fmt.Errorf("%w: nil document", content.ErrStructure)
	}
	e.tracker.Clear()
	e.styles.Flush()
	e.doc = doc
	e.bind()
	if err := e.ctrl.Collapse(selection.Point{Node: doc.FirstLeaf(doc.Root())}); err != nil {
		return err
	}
	e.changes.NotifyImmediate()
	log.Info(log.CatEditor, "document reset", "session", e.id, "paragraphs", len(doc.Paragraphs()))
	return nil
}

// Focus restores a selection saved on Blur.
func (e *Editor) Focus() {
	if e.disposed || e.focused {
		return
	}
	e.ctrl.RestoreSelection()
	e.focused = true
	log.Debug(log.CatEditor, "focus", "session", e.id)
}

// Blur saves the selection so it survives while the surface has no focus,
// and flushes change notifications immediately.
func (e *Editor) Blur() {
	if e.disposed {
		return
	}
	if err := e.ctrl.SaveSelection(); err != nil {
		log.Debug(log.CatEditor, "blur without selection", "session", e.id, "error", err)
	}
	e.focused = false
	e.changes.NotifyImmediate()
	log.Debug(log.CatEditor, "blur", "session", e.id)
}

// Dispose flushes pending notifications and releases the editor. Later
// calls are no-ops.
func (e *Editor) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.changes.Dispose()
	e.tracker.Dispose()
	e.styles.Flush()
	log.Info(log.CatEditor, "editor disposed", "session", e.id)
}
