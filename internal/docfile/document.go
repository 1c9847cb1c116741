// Package docfile reads and writes documents and replay scripts as YAML and
// exports documents as markdown.
package docfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/log"
	"github.com/zjrosen/spanedit/internal/selection"
)

// ErrInvalidFile is returned for files that decode but describe no valid
// document, script or position.
var ErrInvalidFile = errors.New("invalid document file")

// File is the on-disk form of a document.
type File struct {
	Style      map[string]string `yaml:"style,omitempty"`
	Paragraphs []Paragraph       `yaml:"paragraphs"`
	Selection  *Selection        `yaml:"selection,omitempty"`
}

// Paragraph is one paragraph. A paragraph without spans is empty.
type Paragraph struct {
	Style map[string]string `yaml:"style,omitempty"`
	Spans []Span            `yaml:"spans,omitempty"`
}

// Span is one text span. Empty text is a line break.
type Span struct {
	Text  string            `yaml:"text"`
	Style map[string]string `yaml:"style,omitempty"`
}

// Position addresses a leaf by paragraph and span index.
type Position struct {
	Paragraph int `yaml:"paragraph"`
	Span      int `yaml:"span"`
	Offset    int `yaml:"offset"`
}

// Selection is an anchor/focus pair of positions.
type Selection struct {
	Anchor Position `yaml:"anchor"`
	Focus  Position `yaml:"focus"`
}

// Decode reads a document file.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return &f, nil
}

// Load reads a document file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user supplied document path
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug(log.CatDocfile, "document loaded", "path", path, "paragraphs", len(f.Paragraphs))
	return f, nil
}

// Encode writes f as YAML.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return enc.Close()
}

// Save writes f to path atomically.
func Save(path string, f *File) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}
	temp, err := os.CreateTemp(dir, ".spanedit.doc.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()
	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	log.Debug(log.CatDocfile, "document saved", "path", path, "paragraphs", len(f.Paragraphs))
	return nil
}

func (p Paragraph) spec() content.ParagraphSpec {
	spans := make([]content.SpanSpec, len(p.Spans))
	for i, s := range p.Spans {
		spans[i] = content.SpanSpec{Text: s.Text, Style: content.Style(s.Style)}
	}
	return content.ParagraphSpec{Spans: spans, Style: content.Style(p.Style)}
}

// Build creates the document. The stored selection, if any, is resolved
// against it; ok is false when the file has none.
func (f *File) Build() (doc *content.Document, sel selection.Range, ok bool, err error) {
	specs := make([]content.ParagraphSpec, len(f.Paragraphs))
	for i, p := range f.Paragraphs {
		specs[i] = p.spec()
	}
	doc, err = content.Build(content.Style(f.Style), specs...)
	if err != nil {
		return nil, selection.Range{}, false, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if f.Selection == nil {
		return doc, selection.Range{}, false, nil
	}
	sel, err = f.Selection.Resolve(doc)
	if err != nil {
		return nil, selection.Range{}, false, err
	}
	return doc, sel, true, nil
}

// Fragment builds detached paragraphs for pasting into doc.
func Fragment(doc *content.Document, paragraphs []Paragraph, inline bool) (*content.Fragment, error) {
	specs := make([]content.ParagraphSpec, len(paragraphs))
	for i, p := range paragraphs {
		specs[i] = p.spec()
	}
	ids, err := doc.BuildParagraphs(specs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return doc.NewFragment(ids, inline)
}

// Resolve turns a position into a point of doc.
func (p Position) Resolve(doc *content.Document) (selection.Point, error) {
	leaf, err := doc.LeafAt(p.Paragraph, p.Span)
	if err != nil {
		return selection.Point{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if p.Offset < 0 || p.Offset > doc.TextLength(leaf) {
		return selection.Point{}, fmt.Errorf("%w: offset %d outside span %d.%d of length %d",
			ErrInvalidFile, p.Offset, p.Paragraph, p.Span, doc.TextLength(leaf))
	}
	return selection.Point{Node: leaf, Offset: p.Offset}, nil
}

// Resolve turns a stored selection into a range of doc.
func (s Selection) Resolve(doc *content.Document) (selection.Range, error) {
	anchor, err := s.Anchor.Resolve(doc)
	if err != nil {
		return selection.Range{}, fmt.Errorf("anchor: %w", err)
	}
	focus, err := s.Focus.Resolve(doc)
	if err != nil {
		return selection.Range{}, fmt.Errorf("focus: %w", err)
	}
	return selection.Range{Anchor: anchor, Focus: focus}, nil
}

// PositionOf addresses a leaf point by indices.
func PositionOf(doc *content.Document, p selection.Point) Position {
	span := doc.Parent(p.Node)
	return Position{
		Paragraph: doc.ChildIndex(doc.Parent(span)),
		Span:      doc.ChildIndex(span),
		Offset:    p.Offset,
	}
}

// FromDocument captures doc, and the selection when r is not nil.
func FromDocument(doc *content.Document, r *selection.Range) *File {
	f := &File{Style: plain(doc.Style(doc.Root()))}
	for _, p := range doc.Paragraphs() {
		fp := Paragraph{Style: plain(doc.Style(p))}
		if !doc.IsEmptyParagraph(p) || len(doc.Style(doc.Child(p, 0))) > 0 {
			for _, s := range doc.Children(p) {
				fp.Spans = append(fp.Spans, Span{Text: doc.Text(doc.Leaf(s)), Style: plain(doc.Style(s))})
			}
		}
		f.Paragraphs = append(f.Paragraphs, fp)
	}
	if r != nil {
		f.Selection = &Selection{Anchor: PositionOf(doc, r.Anchor), Focus: PositionOf(doc, r.Focus)}
	}
	return f
}

func plain(s content.Style) map[string]string {
	if len(s) == 0 {
		return nil
	}
	return map[string]string(s)
}
