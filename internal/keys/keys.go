// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the editor playground. Keys that match
// no binding are typed as text.
type KeyMap struct {
	// Navigation
	Left        key.Binding
	Right       key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding
	LineStart   key.Binding
	LineEnd     key.Binding
	SelectAll   key.Binding

	// Editing
	Backspace  key.Binding
	Delete     key.Binding
	DeleteWord key.Binding
	Enter      key.Binding
	LineBreak  key.Binding
	Copy       key.Binding
	Cut        key.Binding
	Paste      key.Binding
	Undo       key.Binding
	Redo       key.Binding

	// Styling
	Bold          key.Binding
	Italic        key.Binding
	Underline     key.Binding
	Strikethrough key.Binding
	Grow          key.Binding
	Shrink        key.Binding
	Align         key.Binding

	// General
	Save          key.Binding
	SaveStyle     key.Binding
	ToggleTree    key.Binding
	TogglePreview key.Binding
	ToggleStatus  key.Binding
	ToggleLog     key.Binding
	Blur          key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "caret left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "caret right"),
		),
		ExtendLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "extend left"),
		),
		ExtendRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "extend right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "paragraph start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "paragraph end"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("alt+a"),
			key.WithHelp("alt+a", "select all"),
		),

		// Editing
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete backward"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete forward"),
		),
		DeleteWord: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
			key.WithHelp("ctrl+w", "delete word"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new paragraph"),
		),
		LineBreak: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "line break"),
		),
		Copy: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("alt+c", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "cut"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "redo"),
		),

		// Styling
		Bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		Italic: key.NewBinding(
			key.WithKeys("alt+i"),
			key.WithHelp("alt+i", "italic"),
		),
		Underline: key.NewBinding(
			key.WithKeys("alt+u"),
			key.WithHelp("alt+u", "underline"),
		),
		Strikethrough: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "strikethrough"),
		),
		Grow: key.NewBinding(
			key.WithKeys("alt+="),
			key.WithHelp("alt+=", "larger text"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("alt+-"),
			key.WithHelp("alt+-", "smaller text"),
		),
		Align: key.NewBinding(
			key.WithKeys("alt+l"),
			key.WithHelp("alt+l", "cycle alignment"),
		),

		// General
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		SaveStyle: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "style as default"),
		),
		ToggleTree: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle tree"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "toggle preview"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle status bar"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle debug log"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "blur"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Bold, k.ToggleTree, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.ExtendLeft, k.ExtendRight, k.LineStart, k.LineEnd, k.SelectAll},                       // Navigation
		{k.Backspace, k.Delete, k.DeleteWord, k.Enter, k.LineBreak, k.Copy, k.Cut, k.Paste, k.Undo, k.Redo},       // Editing
		{k.Bold, k.Italic, k.Underline, k.Strikethrough, k.Grow, k.Shrink, k.Align},                               // Styling
		{k.Save, k.SaveStyle, k.ToggleTree, k.TogglePreview, k.ToggleStatus, k.ToggleLog, k.Blur, k.Help, k.Quit}, // General
	}
}

// All returns every binding, for conflict checks.
func (k KeyMap) All() []key.Binding {
	var out []key.Binding
	for _, group := range k.FullHelp() {
		out = append(out, group...)
	}
	return out
}
