package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func TestRenderPane(t *testing.T) {
	tests := []struct {
		name         string
		lines        []string
		title        string
		hint         string
		width        int
		height       int
		wantContains []string
		wantRows     int
	}{
		{
			name:         "title and hint",
			lines:        []string{"Hello"},
			title:        "Document",
			hint:         "note.yaml",
			width:        40,
			wantContains: []string{"╭─ Document (note.yaml) ", "│Hello", "╰"},
			wantRows:     3,
		},
		{
			name:         "no title",
			lines:        []string{"x"},
			width:        10,
			wantContains: []string{"╭────────╮", "│x       │", "╰────────╯"},
			wantRows:     3,
		},
		{
			name:     "padded to height",
			lines:    []string{"a"},
			title:    "Tree",
			width:    12,
			height:   4,
			wantRows: 6,
		},
		{
			name:         "long lines truncated",
			lines:        []string{"abcdefghijklmnop"},
			width:        10,
			wantContains: []string{"│abcde...│"},
			wantRows:     3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderPane(tt.lines, tt.title, tt.hint, tt.width, tt.height, false)
			for _, want := range tt.wantContains {
				require.Contains(t, out, want)
			}
			rows := strings.Split(out, "\n")
			require.Len(t, rows, tt.wantRows)
			for _, row := range rows {
				require.Equal(t, tt.width, lipgloss.Width(row), "row %q", row)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "", TruncateString("abc", 0))
	require.Equal(t, "abc", TruncateString("abc", 3))
	require.Equal(t, "ab", TruncateString("abcdef", 2))
	require.Equal(t, "a...", TruncateString("abcdef", 4))
}
