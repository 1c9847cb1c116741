package docfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/spanedit/internal/command"
	"github.com/zjrosen/spanedit/internal/config"
	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/editor"
	"github.com/zjrosen/spanedit/internal/log"
	"github.com/zjrosen/spanedit/internal/selection"
	"github.com/zjrosen/spanedit/internal/tracing"
)

// ErrExpectation is returned when a step's expected text does not match.
var ErrExpectation = errors.New("expectation failed")

// Script is a document plus a sequence of edit steps replayed against it.
type Script struct {
	Document     *File  `yaml:"document,omitempty"`
	DocumentFile string `yaml:"document_file,omitempty"`
	Steps        []Step `yaml:"steps"`
}

// PasteFragment is a structured paste payload.
type PasteFragment struct {
	Inline     bool        `yaml:"inline,omitempty"`
	Paragraphs []Paragraph `yaml:"paragraphs"`
}

// Step is one action. Exactly one action field is set; Expect may ride along
// with an action or stand alone.
type Step struct {
	Caret         *Position         `yaml:"caret,omitempty"`
	Select        *Selection        `yaml:"select,omitempty"`
	SelectAll     bool              `yaml:"select_all,omitempty"`
	Move          *int              `yaml:"move,omitempty"`
	Extend        *int              `yaml:"extend,omitempty"`
	Input         string            `yaml:"input,omitempty"`
	Data          string            `yaml:"data,omitempty"`
	Composing     bool              `yaml:"composing,omitempty"`
	Style         map[string]string `yaml:"style,omitempty"`
	Paste         *string           `yaml:"paste,omitempty"`
	PasteFragment *PasteFragment    `yaml:"paste_fragment,omitempty"`
	Blur          bool              `yaml:"blur,omitempty"`
	Focus         bool              `yaml:"focus,omitempty"`
	Expect        *string           `yaml:"expect,omitempty"`
}

// Kind names the step's action.
func (s Step) Kind() (string, error) {
	var kinds []string
	add := func(set bool, name string) {
		if set {
			kinds = append(kinds, name)
		}
	}
	add(s.Caret != nil, "caret")
	add(s.Select != nil, "select")
	add(s.SelectAll, "select_all")
	add(s.Move != nil, "move")
	add(s.Extend != nil, "extend")
	add(s.Input != "", "input")
	add(s.Style != nil, "style")
	add(s.Paste != nil, "paste")
	add(s.PasteFragment != nil, "paste_fragment")
	add(s.Blur, "blur")
	add(s.Focus, "focus")
	switch {
	case len(kinds) == 1:
		return kinds[0], nil
	case len(kinds) == 0 && s.Expect != nil:
		return "expect", nil
	case len(kinds) == 0:
		return "", fmt.Errorf("%w: step has no action", ErrInvalidFile)
	default:
		return "", fmt.Errorf("%w: step has several actions %v", ErrInvalidFile, kinds)
	}
}

// DecodeScript reads a script and checks every step names one action.
func DecodeScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty script", ErrInvalidFile)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if s.Document != nil && s.DocumentFile != "" {
		return nil, fmt.Errorf("%w: document and document_file are exclusive", ErrInvalidFile)
	}
	for i, step := range s.Steps {
		if _, err := step.Kind(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Input != "" {
			if _, err := command.ParseIntent(step.Input); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return &s, nil
}

// LoadScript reads a script from disk. A relative document_file is resolved
// against the script's directory and loaded.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user supplied script path
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := DecodeScript(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.DocumentFile != "" {
		docPath := s.DocumentFile
		if !filepath.IsAbs(docPath) {
			docPath = filepath.Join(filepath.Dir(path), docPath)
		}
		if s.Document, err = Load(docPath); err != nil {
			return nil, err
		}
	}
	log.Debug(log.CatDocfile, "script loaded", "path", path, "steps", len(s.Steps))
	return s, nil
}

// StepResult records what one step did. Result is Skipped for steps that run
// no command.
type StepResult struct {
	Index  int
	Kind   string
	Result command.ExecuteResult
	Text   string
}

// Initial builds the script's starting document and selection.
func (s *Script) Initial() (*content.Document, selection.Range, bool, error) {
	if s.Document == nil {
		return content.New(nil), selection.Range{}, false, nil
	}
	return s.Document.Build()
}

// NewEditor builds an editor over the script's starting document with the
// stored selection applied.
func (s *Script) NewEditor(cfg config.EditorConfig, opts ...editor.Option) (*editor.Editor, error) {
	doc, sel, ok, err := s.Initial()
	if err != nil {
		return nil, err
	}
	e := editor.New(cfg, append([]editor.Option{editor.WithDocument(doc)}, opts...)...)
	if ok {
		if err := e.Controller().SetSelection(sel); err != nil {
			e.Dispose()
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
	}
	return e, nil
}

// Run replays the steps against e, stopping at the first failing step. The
// results of the steps that ran are returned either way.
func (s *Script) Run(ctx context.Context, e *editor.Editor) ([]StepResult, error) {
	results := make([]StepResult, 0, len(s.Steps))
	for i, step := range s.Steps {
		res, err := runStep(ctx, e, i+1, step)
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, res.Kind, err)
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}
	}
	return results, nil
}

func runStep(ctx context.Context, e *editor.Editor, index int, step Step) (res StepResult, err error) {
	kind, err := step.Kind()
	res = StepResult{Index: index, Kind: kind, Result: command.Skipped}
	if err != nil {
		return res, err
	}
	ctx, span := e.Tracer().Start(ctx, tracing.SpanReplayStep, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, e.SessionID()),
		attribute.Int("replay.step.index", index),
		attribute.String("replay.step.kind", kind),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctrl := e.Controller()
	doc := e.Document()
	switch kind {
	case "caret":
		var p selection.Point
		if p, err = step.Caret.Resolve(doc); err == nil {
			err = ctrl.Collapse(p)
		}
	case "select":
		var r selection.Range
		if r, err = step.Select.Resolve(doc); err == nil {
			err = ctrl.SetSelection(r)
		}
	case "select_all":
		ctrl.SelectAll()
	case "move":
		err = ctrl.MoveFocus(*step.Move, false)
	case "extend":
		err = ctrl.MoveFocus(*step.Extend, true)
	case "input":
		var out command.Outcome
		out, err = e.HandleInput(ctx, command.Input{
			Type:        command.Intent(step.Input),
			Data:        step.Data,
			IsComposing: step.Composing,
		})
		res.Result = out.Result
	case "style":
		if err = e.ApplyStyles(ctx, content.Style(step.Style)); err == nil {
			res.Result = command.Executed
		}
	case "paste":
		var out command.Outcome
		out, err = e.PasteText(ctx, *step.Paste)
		res.Result = out.Result
	case "paste_fragment":
		var f *content.Fragment
		if f, err = Fragment(doc, step.PasteFragment.Paragraphs, step.PasteFragment.Inline); err == nil {
			var out command.Outcome
			out, err = e.Paste(ctx, f)
			res.Result = out.Result
		}
	case "blur":
		e.Blur()
	case "focus":
		e.Focus()
	}
	res.Text = e.Text()
	span.SetAttributes(attribute.String(tracing.AttrCommandResult, res.Result.String()))
	if err != nil {
		return res, err
	}
	if step.Expect != nil && *step.Expect != res.Text {
		return res, fmt.Errorf("%w: want %q, got %q", ErrExpectation, *step.Expect, res.Text)
	}
	return res, nil
}
