package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spanedit/internal/content"
)

func TestCurrentStyle_Cascade(t *testing.T) {
	d, err := content.Build(content.Style{content.FontFamily: "Inter", content.FontSize: "14"},
		content.ParagraphSpec{
			Spans: []content.SpanSpec{{Text: "a", Style: content.Style{content.FontSize: "20"}}},
			Style: content.Style{content.TextAlign: "right"},
		})
	require.NoError(t, err)
	c := NewController(d, NewMemorySurface(), WithDefaultStyle(content.Style{
		content.FontFamily: "sans",
		content.LineHeight: "1.2",
	}))
	caretAt(t, c, 0, 0, 1)

	require.Equal(t, content.Style{
		content.FontFamily: "Inter",
		content.FontSize:   "20",
		content.TextAlign:  "right",
		content.LineHeight: "1.2",
	}, c.CurrentStyle())
}

func TestCurrentStyle_TracksEdits(t *testing.T) {
	c, _ := newTestController(t, content.Paragraph("Hello"))
	caretAt(t, c, 0, 0, 2)
	require.Empty(t, c.CurrentStyle().Get(content.FontWeight))

	require.NoError(t, c.ApplyStyles(bold))

	require.Equal(t, "700", c.CurrentStyle().Get(content.FontWeight))
}

func TestCurrentStyle_ReturnsCopy(t *testing.T) {
	c, _ := newTestController(t, content.Paragraph("Hello"))
	caretAt(t, c, 0, 0, 2)

	s := c.CurrentStyle()
	s[content.FontWeight] = "900"

	require.Empty(t, c.CurrentStyle().Get(content.FontWeight))
}

func TestSelectionStyle_Mixed(t *testing.T) {
	d, err := content.Build(nil, content.ParagraphSpec{Spans: []content.SpanSpec{
		{Text: "a", Style: content.Style{content.FontWeight: "700", content.FontFamily: "Inter"}},
		{Text: "b", Style: content.Style{content.FontFamily: "Inter"}},
	}})
	require.NoError(t, err)
	c := NewController(d, NewMemorySurface())
	selectBetween(t, c, [3]int{0, 0, 0}, [3]int{0, 1, 1})

	got, err := c.SelectionStyle()
	require.NoError(t, err)
	require.Equal(t, content.Mixed, got.Get(content.FontWeight))
	require.Equal(t, "Inter", got.Get(content.FontFamily))

	// an end that selects no text does not count
	selectBetween(t, c, [3]int{0, 0, 0}, [3]int{0, 1, 0})
	got, err = c.SelectionStyle()
	require.NoError(t, err)
	require.Equal(t, "700", got.Get(content.FontWeight))
}

func TestApplyStyles_WholeLeafKeepsSpanCount(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	selectBetween(t, c, [3]int{0, 0, 0}, [3]int{0, 0, 5})

	require.NoError(t, c.ApplyStyles(content.Style{content.FontWeight: "700", content.TextAlign: "center"}))

	p := d.Paragraphs()[0]
	require.Equal(t, 1, d.ChildCount(p))
	require.Equal(t, "700", d.Style(d.Child(p, 0)).Get(content.FontWeight))
	require.Equal(t, "center", d.Style(p).Get(content.TextAlign))
	require.Empty(t, d.Style(d.Child(p, 0)).Get(content.TextAlign), "paragraph property stays off the span")
}

func TestApplyStyles_PartialLeafSplitsIntoThree(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	selectBetween(t, c, [3]int{0, 0, 3}, [3]int{0, 0, 1})

	require.NoError(t, c.ApplyStyles(bold))

	require.Equal(t, [][]string{{"H", "el", "lo"}}, spanTexts(d))
	p := d.Paragraphs()[0]
	require.Empty(t, d.Style(d.Child(p, 0)).Get(content.FontWeight))
	require.Equal(t, "700", d.Style(d.Child(p, 1)).Get(content.FontWeight))
	require.Empty(t, d.Style(d.Child(p, 2)).Get(content.FontWeight))

	require.Equal(t, DirectionBackward, c.Direction())
	text, err := c.SelectedText()
	require.NoError(t, err)
	require.Equal(t, "el", text)
	require.NoError(t, d.Validate())
}

func TestApplyStyles_PrefixAddsOneSpan(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	selectBetween(t, c, [3]int{0, 0, 0}, [3]int{0, 0, 2})

	require.NoError(t, c.ApplyStyles(bold))

	require.Equal(t, [][]string{{"He", "llo"}}, spanTexts(d))
	require.Equal(t, "700", d.Style(d.Child(d.Paragraphs()[0], 0)).Get(content.FontWeight))
}

func TestApplyStyles_AcrossParagraphs(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"), content.Paragraph("big"), content.Paragraph("World"))
	selectBetween(t, c, [3]int{0, 0, 2}, [3]int{2, 0, 3})

	require.NoError(t, c.ApplyStyles(content.Style{content.FontWeight: "700", content.TextAlign: "center"}))

	require.Equal(t, [][]string{{"He", "llo"}, {"big"}, {"Wor", "ld"}}, spanTexts(d))
	weights := make([]string, 0, 5)
	for _, p := range d.Paragraphs() {
		require.Equal(t, "center", d.Style(p).Get(content.TextAlign))
		for _, s := range d.Children(p) {
			weights = append(weights, d.Style(s).Get(content.FontWeight))
		}
	}
	require.Equal(t, []string{"", "700", "700", "700", ""}, weights)

	text, err := c.SelectedText()
	require.NoError(t, err)
	require.Equal(t, "llo\nbig\nWor", text)
	require.Equal(t, DirectionForward, c.Direction())
}

func TestApplyStyles_SkipsEndsWithoutSelectedText(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("ab", "cd", "ef"))
	selectBetween(t, c, [3]int{0, 0, 2}, [3]int{0, 2, 0})

	require.NoError(t, c.ApplyStyles(bold))

	require.Equal(t, [][]string{{"ab", "cd", "ef"}}, spanTexts(d))
	p := d.Paragraphs()[0]
	require.Empty(t, d.Style(d.Child(p, 0)).Get(content.FontWeight))
	require.Equal(t, "700", d.Style(d.Child(p, 1)).Get(content.FontWeight))
	require.Empty(t, d.Style(d.Child(p, 2)).Get(content.FontWeight))
}

func TestApplyStyles_CaretStylesWholeSpan(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("ab", "cd"))
	caretAt(t, c, 0, 1, 1)

	require.NoError(t, c.ApplyStyles(bold))

	p := d.Paragraphs()[0]
	require.Equal(t, 2, d.ChildCount(p))
	require.Equal(t, "700", d.Style(d.Child(p, 1)).Get(content.FontWeight))
	requireFocus(t, c, leafAt(t, d, 0, 1), 1)
}

func TestApplyStyles_RootProperty(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("ab"))
	caretAt(t, c, 0, 0, 1)

	require.NoError(t, c.ApplyStyles(content.Style{content.VerticalAlign: "center"}))

	require.Equal(t, "center", d.Style(d.Root()).Get(content.VerticalAlign))
	require.Contains(t, c.Tracker().Updated(), d.Root())
}

func TestApplyStyles_EmptyValueRemovesProperty(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("ab"))
	caretAt(t, c, 0, 0, 1)
	require.NoError(t, c.ApplyStyles(bold))

	require.NoError(t, c.ApplyStyles(content.Style{content.FontWeight: ""}))

	require.Empty(t, d.Style(d.Child(d.Paragraphs()[0], 0)))
}
