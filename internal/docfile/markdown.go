package docfile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/zjrosen/spanedit/internal/content"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "~", `\~`, "`", "\\`",
	"[", `\[`, "]", `\]`, "#", `\#`, "<", `\<`,
)

// Markdown renders doc as markdown. Bold, italic and strikethrough come from
// span styles; a large font size on a paragraph's first span makes it a
// heading. Other properties are dropped.
func Markdown(doc *content.Document) string {
	root := doc.Style(doc.Root())
	blocks := make([]string, 0, len(doc.Paragraphs()))
	for _, p := range doc.Paragraphs() {
		var b strings.Builder
		spans := doc.Children(p)
		if len(spans) > 0 {
			first := content.ResolveStyle(nil, root, doc.Style(p), doc.Style(spans[0]))
			b.WriteString(headingPrefix(first.Get(content.FontSize)))
		}
		for _, s := range spans {
			leaf := doc.Leaf(s)
			if !doc.IsText(leaf) {
				continue
			}
			style := content.ResolveStyle(nil, root, doc.Style(p), doc.Style(s))
			b.WriteString(emphasize(markdownEscaper.Replace(doc.Text(leaf)), style))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func headingPrefix(size string) string {
	n, err := strconv.ParseFloat(strings.TrimSuffix(size, "px"), 64)
	if err != nil {
		return ""
	}
	switch {
	case n >= 28:
		return "# "
	case n >= 22:
		return "## "
	case n >= 18:
		return "### "
	}
	return ""
}

// emphasize wraps text in markers for the style. Surrounding whitespace stays
// outside the markers.
func emphasize(text string, style content.Style) string {
	var markers []string
	if IsBold(style.Get(content.FontWeight)) {
		markers = append(markers, "**")
	}
	if style.Get(content.FontStyle) == "italic" {
		markers = append(markers, "_")
	}
	if strings.Contains(style.Get(content.TextDecoration), "line-through") {
		markers = append(markers, "~~")
	}
	core := strings.TrimSpace(text)
	if len(markers) == 0 || core == "" {
		return text
	}
	lead := text[:strings.Index(text, core)]
	trail := text[len(lead)+len(core):]
	closing := slices.Clone(markers)
	slices.Reverse(closing)
	return lead + strings.Join(markers, "") + core + strings.Join(closing, "") + trail
}

// IsBold reports whether a font-weight value renders bold.
func IsBold(weight string) bool {
	if weight == "bold" || weight == "bolder" {
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

// Tree dumps the node tree, one node per line, for debugging.
func Tree(doc *content.Document) string {
	var b strings.Builder
	var walk func(id content.NodeID, depth int)
	walk = func(id content.NodeID, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, "%s #%d", doc.Kind(id), id)
		if doc.IsText(id) {
			fmt.Fprintf(&b, " %q", doc.Text(id))
		}
		if s := formatStyle(doc.Style(id)); s != "" {
			b.WriteString(" " + s)
		}
		b.WriteByte('\n')
		for _, child := range doc.Children(id) {
			walk(child, depth+1)
		}
	}
	walk(doc.Root(), 0)
	return b.String()
}

func formatStyle(s content.Style) string {
	if len(s) == 0 {
		return ""
	}
	keys := s.Keys()
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ":" + s[k]
	}
	return "{" + strings.Join(pairs, "; ") + "}"
}
