package content

// SpanSpec describes a span for Build. Empty text yields a line break.
type SpanSpec struct {
	Text  string
	Style Style
}

// ParagraphSpec describes a paragraph for Build.
type ParagraphSpec struct {
	Spans []SpanSpec
	Style Style
}

// Paragraph is shorthand for an unstyled paragraph with one span per text.
// With no texts it describes an empty paragraph.
func Paragraph(texts ...string) ParagraphSpec {
	if len(texts) == 0 {
		texts = []string{""}
	}
	spans := make([]SpanSpec, len(texts))
	for i, t := range texts {
		spans[i] = SpanSpec{Text: t}
	}
	return ParagraphSpec{Spans: spans}
}

// Build creates a document from paragraph descriptions. With no paragraphs
// the document holds one empty paragraph.
func Build(rootStyle Style, paragraphs ...ParagraphSpec) (*Document, error) {
	d := New(rootStyle)
	if len(paragraphs) == 0 {
		return d, nil
	}
	ids, err := d.BuildParagraphs(paragraphs...)
	if err != nil {
		return nil, err
	}
	if _, err := d.ResetRoot(ids, nil); err != nil {
		return nil, err
	}
	return d, nil
}

// BuildParagraphs creates detached paragraphs from descriptions.
func (d *Document) BuildParagraphs(paragraphs ...ParagraphSpec) ([]NodeID, error) {
	ids := make([]NodeID, 0, len(paragraphs))
	for _, ps := range paragraphs {
		specs := ps.Spans
		if len(specs) == 0 {
			specs = []SpanSpec{{}}
		}
		spans := make([]NodeID, 0, len(specs))
		for _, ss := range specs {
			spans = append(spans, d.NewTextSpanWithText(ss.Text, ss.Style))
		}
		p, err := d.NewParagraph(spans, ps.Style)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p)
	}
	return ids, nil
}
