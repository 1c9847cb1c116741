// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"} // Document text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Status bar values
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"} // Hints, tree ids

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Caret and selection
	CaretColor     = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#3498DB"}
	SelectionColor = lipgloss.AdaptiveColor{Light: "#D6EAF8", Dark: "#1A5276"}

	// Tree pane
	TreeKindColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	TreeTextColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}

	CaretStyle     = lipgloss.NewStyle().Reverse(true).Foreground(CaretColor)
	SelectionStyle = lipgloss.NewStyle().Background(SelectionColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
)
