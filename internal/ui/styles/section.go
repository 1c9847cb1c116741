package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPane renders lines inside a rounded border with the title inlined in
// the top edge: ╭─ Title (hint) ───╮. Lines wider than the pane are
// truncated; missing lines up to height are padded blank. A height below the
// line count shows every line.
func RenderPane(lines []string, title, hint string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderHighlightFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	hintStyle := lipgloss.NewStyle().Foreground(TextMutedColor)

	innerWidth := max(width-2, 1)

	var top string
	if title == "" {
		top = borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	} else {
		label := title
		if hint != "" {
			label += " (" + hint + ")"
		}
		dashes := max(innerWidth-lipgloss.Width(label)-3, 0)
		top = borderStyle.Render(borderTopLeft+borderHorizontal+" ") + titleStyle.Render(title)
		if hint != "" {
			top += " " + hintStyle.Render("("+hint+")")
		}
		top += borderStyle.Render(" " + strings.Repeat(borderHorizontal, dashes) + borderTopRight)
	}

	rows := make([]string, 0, max(len(lines), height))
	for _, line := range lines {
		line = TruncateString(line, innerWidth)
		pad := max(innerWidth-lipgloss.Width(line), 0)
		rows = append(rows, borderStyle.Render(borderVertical)+line+strings.Repeat(" ", pad)+borderStyle.Render(borderVertical))
	}
	for len(rows) < height {
		rows = append(rows, borderStyle.Render(borderVertical)+strings.Repeat(" ", innerWidth)+borderStyle.Render(borderVertical))
	}

	bottom := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)
	return top + "\n" + strings.Join(append(rows, bottom), "\n")
}
