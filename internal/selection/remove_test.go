package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spanedit/internal/content"
)

func TestRemoveSelected_SelectAllYieldsCanonicalEmpty(t *testing.T) {
	d, err := content.Build(nil,
		content.ParagraphSpec{
			Spans: []content.SpanSpec{{Text: "Hello", Style: content.Style{content.FontWeight: "700"}}, {Text: " there"}},
			Style: content.Style{content.TextAlign: "center"},
		},
		content.Paragraph(),
		content.Paragraph("World"),
	)
	require.NoError(t, err)
	c := NewController(d, NewMemorySurface())
	c.SelectAll()

	require.NoError(t, c.RemoveSelected(RemoveOptions{}))

	requireCanonicalEmpty(t, d)
	p := d.Paragraphs()[0]
	require.Equal(t, "center", d.Style(p).Get(content.TextAlign))
	require.Equal(t, "700", d.Style(d.Child(p, 0)).Get(content.FontWeight))
	require.True(t, c.IsLineBreakFocus())
	require.Len(t, c.Tracker().Removed(), 3)
}

func TestRemoveSelected_SelectAllBackward(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("ab"), content.Paragraph("cd"))
	selectBetween(t, c, [3]int{1, 0, 2}, [3]int{0, 0, 0})

	require.NoError(t, c.RemoveSelected(RemoveOptions{Direction: DirectionForward}))
	requireCanonicalEmpty(t, d)
}

func TestRemoveSelected_IsIdempotent(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"), content.Paragraph("World"))
	selectBetween(t, c, [3]int{0, 0, 2}, [3]int{1, 0, 3})

	require.NoError(t, c.RemoveSelected(RemoveOptions{}))
	require.Equal(t, "Held", d.DocumentText())
	require.True(t, c.IsCollapsed())
	rev := d.Revision()
	focus := c.Focus()

	require.NoError(t, c.RemoveSelected(RemoveOptions{}))
	require.Equal(t, rev, d.Revision())
	require.Equal(t, focus, c.Focus())
}

func TestRemoveSelected_WithinLeaf(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("Hello"))
	selectBetween(t, c, [3]int{0, 0, 4}, [3]int{0, 0, 1})

	require.NoError(t, c.RemoveSelected(RemoveOptions{}))

	require.Equal(t, "Ho", d.DocumentText())
	requireFocus(t, c, leafAt(t, d, 0, 0), 1)
}

func TestRemoveSelected_AcrossParagraphs(t *testing.T) {
	c, d := newTestController(t,
		content.Paragraph("Hello"),
		content.Paragraph("big", "wide"),
		content.Paragraph(),
		content.Paragraph("World", "!"),
	)
	selectBetween(t, c, [3]int{0, 0, 2}, [3]int{3, 0, 3})

	require.NoError(t, c.RemoveSelected(RemoveOptions{}))

	require.Equal(t, [][]string{{"He", "ld", "!"}}, spanTexts(d))
	requireFocus(t, c, leafAt(t, d, 0, 0), 2)
	require.NoError(t, d.Validate())
}

// Caret landing when one or both end spans are emptied differs between
// backward and forward removal.
func TestRemoveSelected_StartEmptied(t *testing.T) {
	tests := []struct {
		dir       Direction
		wantSpan  int
		wantCaret int
	}{
		{DirectionBackward, 0, 2},
		{DirectionForward, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c, d := newTestController(t, content.Paragraph("ab", "cd", "ef"))
			selectBetween(t, c, [3]int{0, 1, 0}, [3]int{0, 2, 1})

			require.NoError(t, c.RemoveSelected(RemoveOptions{Direction: tt.dir}))

			require.Equal(t, [][]string{{"ab", "f"}}, spanTexts(d))
			requireFocus(t, c, leafAt(t, d, 0, tt.wantSpan), tt.wantCaret)
		})
	}
}

func TestRemoveSelected_EndEmptied(t *testing.T) {
	tests := []struct {
		dir       Direction
		wantSpan  int
		wantCaret int
	}{
		{DirectionBackward, 0, 1},
		{DirectionForward, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c, d := newTestController(t, content.Paragraph("ab", "cd", "ef"))
			selectBetween(t, c, [3]int{0, 0, 1}, [3]int{0, 1, 2})

			require.NoError(t, c.RemoveSelected(RemoveOptions{Direction: tt.dir}))

			require.Equal(t, [][]string{{"a", "ef"}}, spanTexts(d))
			requireFocus(t, c, leafAt(t, d, 0, tt.wantSpan), tt.wantCaret)
		})
	}
}

func TestRemoveSelected_BothEmptied(t *testing.T) {
	tests := []struct {
		dir       Direction
		wantSpan  int
		wantCaret int
	}{
		{DirectionBackward, 0, 2},
		{DirectionForward, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c, d := newTestController(t, content.Paragraph("ab", "cd", "ef", "gh"))
			selectBetween(t, c, [3]int{0, 1, 0}, [3]int{0, 2, 2})

			require.NoError(t, c.RemoveSelected(RemoveOptions{Direction: tt.dir}))

			require.Equal(t, [][]string{{"ab", "gh"}}, spanTexts(d))
			requireFocus(t, c, leafAt(t, d, 0, tt.wantSpan), tt.wantCaret)
		})
	}
}

func TestRemoveSelected_BothEmptiedWithoutNeighbours(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("x"), content.Paragraph("ab"), content.Paragraph("cd"))
	selectBetween(t, c, [3]int{1, 0, 0}, [3]int{2, 0, 2})

	require.NoError(t, c.RemoveSelected(RemoveOptions{}))

	require.Equal(t, [][]string{{"x"}, {""}}, spanTexts(d))
	require.True(t, c.IsLineBreakFocus())
	require.Equal(t, d.Paragraphs()[1], c.FocusParagraph())
	require.NoError(t, d.Validate())
}

func TestRemoveSelected_BetweenEmptyParagraphs(t *testing.T) {
	c, d := newTestController(t, content.Paragraph(), content.Paragraph(), content.Paragraph("x"))
	selectBetween(t, c, [3]int{0, 0, 0}, [3]int{1, 0, 0})

	require.NoError(t, c.RemoveSelected(RemoveOptions{}))

	require.Equal(t, [][]string{{""}, {"x"}}, spanTexts(d))
	require.NoError(t, d.Validate())
}

func TestRemoveSelected_CollapsedIsNoop(t *testing.T) {
	c, d := newTestController(t, content.Paragraph("abc"))
	caretAt(t, c, 0, 0, 1)
	rev := d.Revision()

	require.NoError(t, c.RemoveSelected(RemoveOptions{}))
	require.Equal(t, rev, d.Revision())
}
