package docfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spanedit/internal/content"
)

func TestMarkdown(t *testing.T) {
	doc, err := content.Build(nil,
		content.ParagraphSpec{Spans: []content.SpanSpec{
			{Text: "Title", Style: content.Style{content.FontSize: "32"}},
		}},
		content.ParagraphSpec{Spans: []content.SpanSpec{
			{Text: "Hello "},
			{Text: "bold ", Style: content.Style{content.FontWeight: "700"}},
			{Text: "and "},
			{Text: "both", Style: content.Style{content.FontWeight: "bold", content.FontStyle: "italic"}},
			{Text: " 2*3"},
		}},
		content.Paragraph(),
		content.ParagraphSpec{
			Style: content.Style{content.TextDecoration: "line-through"},
			Spans: []content.SpanSpec{{Text: "gone"}},
		},
	)
	require.NoError(t, err)

	want := "# Title\n\n" +
		"Hello **bold** and **_both_** 2\\*3\n\n" +
		"\n\n" +
		"~~gone~~\n"
	require.Equal(t, want, Markdown(doc))
}

func TestHeadingPrefix(t *testing.T) {
	require.Equal(t, "# ", headingPrefix("28"))
	require.Equal(t, "## ", headingPrefix("24px"))
	require.Equal(t, "### ", headingPrefix("18"))
	require.Equal(t, "", headingPrefix("14"))
	require.Equal(t, "", headingPrefix("large"))
}

func TestEmphasize_KeepsWhitespaceOutside(t *testing.T) {
	bold := content.Style{content.FontWeight: "600"}
	require.Equal(t, " **x y** ", emphasize(" x y ", bold))
	require.Equal(t, "   ", emphasize("   ", bold))
	require.Equal(t, "plain", emphasize("plain", content.Style{content.FontWeight: "400"}))
}

func TestTree(t *testing.T) {
	doc, err := content.Build(content.Style{content.FontSize: "14"},
		content.ParagraphSpec{Spans: []content.SpanSpec{{Text: "Hi", Style: content.Style{content.FontWeight: "700"}}}},
		content.Paragraph(),
	)
	require.NoError(t, err)

	out := Tree(doc)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	require.True(t, strings.HasPrefix(lines[0], "root #"))
	require.Contains(t, lines[0], "{font-size:14}")
	require.True(t, strings.HasPrefix(lines[1], "  paragraph #"))
	require.Contains(t, lines[2], "{font-weight:700}")
	require.Contains(t, lines[3], `"Hi"`)
	require.True(t, strings.HasPrefix(lines[6], "      br #"))
}
