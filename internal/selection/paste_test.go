package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spanedit/internal/content"
)

var bold = content.Style{content.FontWeight: "700"}

func fragment(t *testing.T, d *content.Document, text string, style content.Style) *content.Fragment {
	t.Helper()
	f, err := content.FragmentFromText(d, text, style)
	require.NoError(t, err)
	return f
}

func TestInsertPaste_InlineStyledSplitsSpan(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	caretAt(t, c, 0, 0, 2)

	require.NoError(t, c.InsertPaste(fragment(t, d, "XY", bold)))

	require.Equal(t, [][]string{{"He", "XY", "llo"}}, spanTexts(d))
	p := d.Paragraphs()[0]
	require.Equal(t, "700", d.Style(d.Child(p, 1)).Get(content.FontWeight))
	require.Empty(t, d.Style(d.Child(p, 0)).Get(content.FontWeight))
	requireFocus(t, c, leafAt(t, d, 0, 1), 2)
	require.NoError(t, d.Validate())
}

func TestInsertPaste_InlinePlainJoinsText(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	caretAt(t, c, 0, 0, 2)

	require.NoError(t, c.InsertPaste(fragment(t, d, "XY", nil)))

	require.Equal(t, [][]string{{"HeXYllo"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 0, 0), 4)
}

func TestInsertPaste_InlineInheritsCaretStyle(t *testing.T) {
	d, err := content.Build(nil, content.ParagraphSpec{
		Spans: []content.SpanSpec{{Text: "ab", Style: content.Style{content.FontFamily: "Inter"}}},
	})
	require.NoError(t, err)
	c := NewController(d, NewMemorySurface())
	caretAt(t, c, 0, 0, 2)

	require.NoError(t, c.InsertPaste(fragment(t, d, "cd", bold)))

	span := d.Child(d.Paragraphs()[0], 1)
	require.Equal(t, content.Style{content.FontFamily: "Inter", content.FontWeight: "700"}, d.Style(span))
}

func TestInsertPaste_InlineOnLineBreak(t *testing.T) {
	c, d := newTestController(t, content.Paragraph())
	caretAt(t, c, 0, 0, 0)

	require.NoError(t, c.InsertPaste(fragment(t, d, "XY", bold)))

	require.Equal(t, [][]string{{"XY"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 0, 0), 2)
	require.NoError(t, d.Validate())
}

func TestInsertPaste_InlineAtSpanEdges(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("ab"))
	caretAt(t, c, 0, 0, 0)
	require.NoError(t, c.InsertPaste(fragment(t, d, "<", bold)))

	caretAt(t, c, 0, 1, 2)
	require.NoError(t, c.InsertPaste(fragment(t, d, ">", bold)))

	require.Equal(t, [][]string{{"<", "ab", ">"}}, spanTexts(d))
}

func TestInsertPaste_BlockInMiddle(t *testing.T) {
	d, err := content.Build(nil, content.ParagraphSpec{
		Spans: []content.SpanSpec{{Text: "Hello"}},
		Style: content.Style{content.TextAlign: "center"},
	})
	require.NoError(t, err)
	c := NewController(d, NewMemorySurface())
	caretAt(t, c, 0, 0, 2)

	require.NoError(t, c.InsertPaste(fragment(t, d, "one\ntwo\nthree", nil)))

	require.Equal(t, [][]string{{"He", "one"}, {"two"}, {"three", "llo"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 2, 0), 5)
	require.Equal(t, "center", d.Style(d.Paragraphs()[1]).Get(content.TextAlign))
	require.NoError(t, d.Validate())
}

func TestInsertPaste_BlockAtParagraphEnd(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	caretAt(t, c, 0, 0, 5)

	require.NoError(t, c.InsertPaste(fragment(t, d, "a\nb", nil)))

	require.Equal(t, [][]string{{"Hello", "a"}, {"b"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 1, 0), 1)
}

func TestInsertPaste_BlockAtParagraphStart(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	caretAt(t, c, 0, 0, 0)

	require.NoError(t, c.InsertPaste(fragment(t, d, "a\nb", nil)))

	require.Equal(t, [][]string{{"a"}, {"b", "Hello"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 1, 0), 1)
}

func TestInsertPaste_BlockReplacesEmptyParagraph(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("x"), content.Paragraph())
	caretAt(t, c, 1, 0, 0)

	require.NoError(t, c.InsertPaste(fragment(t, d, "a\nb", nil)))

	require.Equal(t, [][]string{{"x"}, {"a"}, {"b"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 2, 0), 1)
	require.NoError(t, d.Validate())
}

func TestInsertPaste_BlockWithTrailingNewline(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("xy"))
	caretAt(t, c, 0, 0, 1)

	require.NoError(t, c.InsertPaste(fragment(t, d, "a\n", nil)))

	require.Equal(t, [][]string{{"x", "a"}, {"y"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 1, 0), 0)
}

func TestInsertPaste_BlockWithLeadingNewline(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("xy"))
	caretAt(t, c, 0, 0, 2)

	require.NoError(t, c.InsertPaste(fragment(t, d, "\nb", nil)))

	require.Equal(t, [][]string{{"xy"}, {"b"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 1, 0), 1)
}

func TestReplaceWithPaste(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello World"))
	selectBetween(t, c, [3]int{0, 0, 6}, [3]int{0, 0, 11})

	require.NoError(t, c.ReplaceWithPaste(fragment(t, d, "Go", nil)))

	require.Equal(t, "Hello Go", d.DocumentText())
	requireFocus(t, c, leafAt(t, d, 0, 0), 8)
}

func TestInsertPaste_RejectsBadFragments(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	caretAt(t, c, 0, 0, 1)

	require.ErrorIs(t, c.InsertPaste(nil), content.ErrStructure)
	err := c.InsertPaste(&content.Fragment{Paragraphs: d.Paragraphs()})
	require.ErrorIs(t, err, content.ErrStructure)
}
