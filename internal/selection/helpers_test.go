package selection

import (
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spanedit/internal/content"
)

type testingT interface {
	require.TestingT
	Helper()
}

func newTestController(t testingT, paragraphs ...content.ParagraphSpec) (*Controller, *content.Document) {
	t.Helper()
	d, err := content.Build(nil, paragraphs...)
	require.NoError(t, err)
	return NewController(d, NewMemorySurface()), d
}

func leafAt(t testingT, d *content.Document, paragraph, span int) content.NodeID {
	t.Helper()
	leaf, err := d.LeafAt(paragraph, span)
	require.NoError(t, err)
	return leaf
}

func pointAt(t testingT, d *content.Document, paragraph, span, offset int) Point {
	t.Helper()
	return Point{Node: leafAt(t, d, paragraph, span), Offset: offset}
}

func caretAt(t testingT, c *Controller, paragraph, span, offset int) {
	t.Helper()
	require.NoError(t, c.Collapse(pointAt(t, c.doc, paragraph, span, offset)))
}

func selectBetween(t testingT, c *Controller, anchor, focus [3]int) {
	t.Helper()
	require.NoError(t, c.SetSelection(Range{
		Anchor: pointAt(t, c.doc, anchor[0], anchor[1], anchor[2]),
		Focus:  pointAt(t, c.doc, focus[0], focus[1], focus[2]),
	}))
}

// spanTexts lists each paragraph's span texts; line breaks read "".
func spanTexts(d *content.Document) [][]string {
	var out [][]string
	for _, p := range d.Paragraphs() {
		var spans []string
		for _, s := range d.Children(p) {
			spans = append(spans, d.Text(d.Leaf(s)))
		}
		out = append(out, spans)
	}
	return out
}

func requireFocus(t testingT, c *Controller, leaf content.NodeID, offset int) {
	t.Helper()
	require.True(t, c.IsCollapsed(), "selection should be collapsed")
	require.Equal(t, Point{Node: leaf, Offset: offset}, c.Focus())
}

func requireCanonicalEmpty(t testingT, d *content.Document) {
	t.Helper()
	require.NoError(t, d.Validate())
	paragraphs := d.Paragraphs()
	require.Len(t, paragraphs, 1)
	require.True(t, d.IsEmptyParagraph(paragraphs[0]))
}
