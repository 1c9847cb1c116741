package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/docfile"
	"github.com/zjrosen/spanedit/internal/selection"
	"github.com/zjrosen/spanedit/internal/ui/styles"
)

// caretInfo locates the caret for the status bar.
type caretInfo struct {
	Paragraph int // zero based
	Column    int // one based, in terminal cells
}

// marks holds the selection as linear document positions.
type marks struct {
	start, end int // selected range, empty when collapsed
	caret      int // -1 when no caret is drawn
}

func selectionMarks(doc *content.Document, ctrl *selection.Controller, focused bool) marks {
	m := marks{caret: -1}
	if _, ok := ctrl.Range(); !ok {
		return m
	}
	start, err := doc.PositionOf(ctrl.Start().Node, ctrl.Start().Offset)
	if err != nil {
		return m
	}
	end, err := doc.PositionOf(ctrl.End().Node, ctrl.End().Offset)
	if err != nil {
		return m
	}
	if start == end {
		if focused {
			m.caret = start
		}
		return m
	}
	m.start, m.end = start, end
	return m
}

// spanStyle maps the style properties a terminal can show.
func spanStyle(s content.Style) lipgloss.Style {
	out := lipgloss.NewStyle()
	if docfile.IsBold(s.Get(content.FontWeight)) {
		out = out.Bold(true)
	}
	if s.Get(content.FontStyle) == "italic" {
		out = out.Italic(true)
	}
	decoration := s.Get(content.TextDecoration)
	if strings.Contains(decoration, "underline") {
		out = out.Underline(true)
	}
	if strings.Contains(decoration, "line-through") {
		out = out.Strikethrough(true)
	}
	if fill := s.Get(content.Fills); strings.HasPrefix(fill, "#") {
		out = out.Foreground(lipgloss.Color(fill))
	}
	return out
}

// runBuilder accumulates graphemes of one span that share a selection state.
type runBuilder struct {
	out      strings.Builder
	run      strings.Builder
	span     content.NodeID
	style    lipgloss.Style
	selected bool
}

func (b *runBuilder) add(span content.NodeID, g string, style lipgloss.Style, selected bool) {
	if b.run.Len() > 0 && (span != b.span || selected != b.selected) {
		b.flush()
	}
	b.span, b.style, b.selected = span, style, selected
	b.run.WriteString(g)
}

func (b *runBuilder) caret(g string, style lipgloss.Style) {
	b.flush()
	b.out.WriteString(styles.CaretStyle.Inherit(style).Render(g))
}

func (b *runBuilder) flush() {
	if b.run.Len() == 0 {
		return
	}
	style := b.style
	if b.selected {
		style = style.Inherit(styles.SelectionStyle)
	}
	b.out.WriteString(style.Render(b.run.String()))
	b.run.Reset()
}

func (b *runBuilder) String() string {
	b.flush()
	return b.out.String()
}

// renderParagraph draws one paragraph with its selection and caret, starting
// at linear position pos.
func renderParagraph(doc *content.Document, p content.NodeID, pos int, defaults content.Style, mk marks) (string, int) {
	var b runBuilder
	root := doc.Style(doc.Root())
	for _, span := range doc.Children(p) {
		style := spanStyle(content.ResolveStyle(defaults, root, doc.Style(p), doc.Style(span)))
		leaf := doc.Leaf(span)
		if !doc.IsText(leaf) {
			continue
		}
		for _, g := range content.Graphemes(doc.Text(leaf)) {
			if pos == mk.caret {
				b.caret(g, style)
			} else {
				b.add(span, g, style, pos >= mk.start && pos < mk.end)
			}
			pos++
		}
	}
	if pos == mk.caret {
		b.caret(" ", lipgloss.NewStyle())
	}
	return b.String(), pos
}

// renderDocument lays the document out at width columns. It returns the lines
// and the index of the first line of the caret's paragraph.
func renderDocument(doc *content.Document, ctrl *selection.Controller, defaults content.Style, width int, focused bool) ([]string, int) {
	mk := selectionMarks(doc, ctrl, focused)
	focusParagraph := ctrl.FocusParagraph()
	var lines []string
	caretLine := 0
	pos := 0
	for i, p := range doc.Paragraphs() {
		if i > 0 {
			pos++ // paragraph separator
		}
		var text string
		text, pos = renderParagraph(doc, p, pos, defaults, mk)
		if p == focusParagraph {
			caretLine = len(lines)
		}
		lines = append(lines, layoutParagraph(text, doc.Style(p).Get(content.TextAlign), width)...)
	}
	return lines, caretLine
}

// layoutParagraph wraps a styled paragraph and aligns its lines.
func layoutParagraph(text, align string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	wrapped := wrap.String(wordwrap.String(text, width), width)
	lines := strings.Split(wrapped, "\n")
	var pos lipgloss.Position
	switch align {
	case "center":
		pos = lipgloss.Center
	case "right", "end":
		pos = lipgloss.Right
	default:
		return lines
	}
	aligned := lipgloss.NewStyle().Width(width).Align(pos)
	for i, line := range lines {
		lines[i] = aligned.Render(line)
	}
	return lines
}

// locateCaret reports the caret's paragraph and display column.
func locateCaret(doc *content.Document, ctrl *selection.Controller) (caretInfo, bool) {
	focus := ctrl.Focus()
	if focus.Node == 0 {
		return caretInfo{}, false
	}
	span := doc.Parent(focus.Node)
	paragraph := doc.Parent(span)
	var prefix strings.Builder
	for _, s := range doc.Children(paragraph) {
		if s == span {
			prefix.WriteString(content.SliceByGraphemes(doc.Text(focus.Node), 0, focus.Offset))
			break
		}
		prefix.WriteString(doc.Text(doc.Leaf(s)))
	}
	return caretInfo{
		Paragraph: doc.ChildIndex(paragraph),
		Column:    runewidth.StringWidth(prefix.String()) + 1,
	}, true
}

// summarizeStyle renders the properties worth showing in the status bar.
func summarizeStyle(s content.Style) string {
	var parts []string
	for _, key := range []string{content.FontFamily, content.FontSize, content.FontWeight, content.FontStyle, content.TextDecoration, content.TextAlign} {
		if v := s.Get(key); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// treeLines renders the node tree with the focus leaf marked.
func treeLines(doc *content.Document, focus content.NodeID) []string {
	kindStyle := lipgloss.NewStyle().Foreground(styles.TreeKindColor)
	textStyle := lipgloss.NewStyle().Foreground(styles.TreeTextColor)
	idStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var lines []string
	var walk func(id content.NodeID, depth int)
	walk = func(id content.NodeID, depth int) {
		marker := "  "
		if id == focus {
			marker = "▶ "
		}
		line := marker + strings.Repeat("  ", depth) + kindStyle.Render(doc.Kind(id).String()) + idStyle.Render(fmt.Sprintf(" #%d", id))
		if doc.IsText(id) {
			line += " " + textStyle.Render(fmt.Sprintf("%q", doc.Text(id)))
		}
		if s := doc.Style(id); len(s) > 0 {
			line += idStyle.Render(" " + strings.Join(styleKeys(s), ","))
		}
		lines = append(lines, line)
		for _, child := range doc.Children(id) {
			walk(child, depth+1)
		}
	}
	walk(doc.Root(), 0)
	return lines
}

func styleKeys(s content.Style) []string {
	keys := s.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + "=" + s[k]
	}
	return out
}
