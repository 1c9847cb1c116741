package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeStyles_OverridesWin(t *testing.T) {
	existing := Style{FontWeight: "400", FontSize: "14", TextAlign: "left"}
	overrides := Style{FontWeight: "700"}

	got := MergeStyles(TextSpanStyles, existing, overrides)

	require.Equal(t, Style{FontWeight: "700", FontSize: "14"}, got)
}

func TestMergeStyles_EmptyOverrideDeletes(t *testing.T) {
	got := MergeStyles(TextSpanStyles, Style{FontStyle: "italic"}, Style{FontStyle: ""})
	require.Empty(t, got)
}

func TestMergeStyles_DoesNotAlias(t *testing.T) {
	existing := Style{FontSize: "14"}
	got := MergeStyles(TextSpanStyles, existing, nil)
	got[FontSize] = "20"
	require.Equal(t, "14", existing[FontSize])
}

func TestResolveStyle_Cascade(t *testing.T) {
	defaults := Style{FontFamily: "sans", FontSize: "14", FontWeight: "400"}
	root := Style{FontSize: "16"}
	paragraph := Style{FontWeight: "500", TextAlign: "center"}
	span := Style{FontWeight: "700"}

	got := ResolveStyle(defaults, root, paragraph, span)

	require.Equal(t, Style{
		FontFamily: "sans",
		FontSize:   "16",
		FontWeight: "700",
		TextAlign:  "center",
	}, got)
	require.Equal(t, "400", defaults[FontWeight], "defaults untouched")
}

func TestSplitStyles(t *testing.T) {
	root, paragraph, span := SplitStyles(Style{
		VerticalAlign: "center",
		TextAlign:     "right",
		FontWeight:    "700",
		"unknown":     "x",
	})
	require.Equal(t, Style{VerticalAlign: "center"}, root)
	require.Equal(t, Style{TextAlign: "right"}, paragraph)
	require.Equal(t, Style{FontWeight: "700"}, span)
}

func TestMergeMixed(t *testing.T) {
	var acc Style
	acc = MergeMixed(acc, Style{FontWeight: "700", FontSize: "14"})
	acc = MergeMixed(acc, Style{FontWeight: "400", FontSize: "14", FontStyle: "italic"})

	require.Equal(t, Style{FontWeight: Mixed, FontSize: "14", FontStyle: Mixed}, acc)
}

func TestAllowList(t *testing.T) {
	require.Contains(t, AllowList(KindRoot), VerticalAlign)
	require.Contains(t, AllowList(KindParagraph), LineHeight)
	require.NotContains(t, AllowList(KindTextSpan), TextAlign)
	require.Nil(t, AllowList(KindText))
}

func TestSetStyle_RejectsLeaves(t *testing.T) {
	d := New(nil)
	require.ErrorIs(t, d.SetStyle(d.FirstLeaf(d.Root()), Style{FontWeight: "700"}), ErrStructure)
}
