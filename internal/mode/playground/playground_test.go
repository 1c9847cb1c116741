package playground

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spanedit/internal/change"
	"github.com/zjrosen/spanedit/internal/config"
	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/docfile"
	"github.com/zjrosen/spanedit/internal/log"
	"github.com/zjrosen/spanedit/internal/mode"
	"github.com/zjrosen/spanedit/internal/mode/shared"
	"github.com/zjrosen/spanedit/internal/pubsub"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Editor.ChangeDebounce = 0
	cfg.Editor.Validate = true
	cfg.UI.AutoReload = false
	cfg.UI.MarkdownStyle = "notty"
	return &cfg
}

func newTestModel(t *testing.T, services mode.Services) Model {
	t.Helper()
	if services.Config == nil {
		services.Config = testConfig()
	}
	if services.Clipboard == nil {
		services.Clipboard = &shared.MemoryClipboard{}
	}
	if services.Clock == nil {
		services.Clock = fixedClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	}
	m, err := New(services)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNew_EmptyScratchDocument(t *testing.T) {
	m := newTestModel(t, mode.Services{})

	require.Equal(t, "", m.Editor().Text())
	require.True(t, m.Editor().Focused())
}

func TestNew_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")
	m := newTestModel(t, mode.Services{DocumentPath: path})

	require.Equal(t, "", m.Editor().Text())
}

func TestNew_LoadsDocumentAndSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, docfile.Save(path, &docfile.File{
		Paragraphs: []docfile.Paragraph{{Spans: []docfile.Span{{Text: "Hello"}}}},
		Selection: &docfile.Selection{
			Anchor: docfile.Position{Offset: 2},
			Focus:  docfile.Position{Offset: 2},
		},
	}))

	m := newTestModel(t, mode.Services{DocumentPath: path})
	require.Equal(t, "Hello", m.Editor().Text())
	require.Equal(t, 2, m.Editor().Controller().FocusOffset())
}

func TestNew_InvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bogus: true\n"), 0o600))

	_, err := New(mode.Services{Config: testConfig(), DocumentPath: path})
	require.ErrorIs(t, err, docfile.ErrInvalidFile)
}

func TestUpdate_TypingAndParagraphs(t *testing.T) {
	m := newTestModel(t, mode.Services{})

	m = update(t, m, runes("Hi"), keyType(tea.KeySpace), runes("there"))
	require.Equal(t, "Hi there", m.Editor().Text())

	m = update(t, m, keyType(tea.KeyEnter), runes("x"))
	require.Equal(t, "Hi there\nx", m.Editor().Text())

	m = update(t, m, keyType(tea.KeyBackspace))
	require.Equal(t, "Hi there\n", m.Editor().Text())
	require.Equal(t, "delete.backward executed", m.status)
}

func TestUpdate_MovementExtendsSelection(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, runes("abc"), keyType(tea.KeyLeft), keyType(tea.KeyShiftLeft))

	text, err := m.Editor().Controller().SelectedText()
	require.NoError(t, err)
	require.Equal(t, "b", text)

	m = update(t, m, keyType(tea.KeyHome), runes(">"))
	require.Equal(t, ">abc", m.Editor().Text())
}

func TestUpdate_BoldToggles(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, runes("Hi"), alt('a'), keyType(tea.KeyCtrlB))

	style, err := m.Editor().SelectionStyle()
	require.NoError(t, err)
	require.Equal(t, "700", style.Get(content.FontWeight))

	m = update(t, m, keyType(tea.KeyCtrlB))
	style, err = m.Editor().SelectionStyle()
	require.NoError(t, err)
	require.Equal(t, "400", style.Get(content.FontWeight))
}

func TestUpdate_FontSizeAndAlignment(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, runes("Hi"), alt('a'), alt('='), alt('='))
	require.Equal(t, "18", m.Editor().CurrentStyle().Get(content.FontSize))

	m = update(t, m, alt('-'))
	require.Equal(t, "16", m.Editor().CurrentStyle().Get(content.FontSize))

	m = update(t, m, alt('l'))
	require.Equal(t, "center", m.Editor().CurrentStyle().Get(content.TextAlign))
	m = update(t, m, alt('l'), alt('l'), alt('l'))
	require.Equal(t, "left", m.Editor().CurrentStyle().Get(content.TextAlign))
}

func TestUpdate_ClipboardRoundTrip(t *testing.T) {
	clip := &shared.MemoryClipboard{}
	m := newTestModel(t, mode.Services{Clipboard: clip})
	m = update(t, m, runes("Hello"), alt('a'), alt('c'))
	require.Equal(t, "Hello", clip.Text)
	require.Equal(t, "copied 5 characters", m.status)

	m = update(t, m, keyType(tea.KeyCtrlX))
	require.Equal(t, "", m.Editor().Text())

	m = update(t, m, keyType(tea.KeyCtrlV), keyType(tea.KeyCtrlV))
	require.Equal(t, "HelloHello", m.Editor().Text())
}

func TestUpdate_CopyWithoutSelectionIsIgnored(t *testing.T) {
	clip := &shared.MemoryClipboard{Text: "kept"}
	m := newTestModel(t, mode.Services{Clipboard: clip})
	m = update(t, m, runes("abc"), alt('c'))

	require.Equal(t, "kept", clip.Text)
}

func TestUpdate_BracketedPaste(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("one\ntwo"), Paste: true})

	require.Equal(t, "one\ntwo", m.Editor().Text())
	require.Equal(t, "paste executed", m.status)
}

func TestUpdate_UndoPassesThrough(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, keyType(tea.KeyCtrlZ))

	require.Equal(t, "historyUndo pass-through", m.status)
	require.False(t, m.statusErr)
}

func TestUpdate_SaveWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	m := newTestModel(t, mode.Services{DocumentPath: path})
	m = update(t, m,
		runes("Saved"),
		pubsub.Event[change.Notification]{Type: pubsub.ContentChangedEvent, Payload: change.Notification{Seq: 1}},
	)
	require.True(t, m.dirty)

	m = update(t, m, keyType(tea.KeyCtrlS))
	require.False(t, m.statusErr, m.status)
	require.False(t, m.dirty)
	require.Equal(t, "saved doc.yaml", m.status)

	f, err := docfile.Load(path)
	require.NoError(t, err)
	require.Len(t, f.Paragraphs, 1)
	require.Equal(t, "Saved", f.Paragraphs[0].Spans[0].Text)
	require.NotNil(t, f.Selection)
	require.Equal(t, 5, f.Selection.Focus.Offset)
}

func TestUpdate_SaveWithoutFileReportsError(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, keyType(tea.KeyCtrlS))

	require.True(t, m.statusErr)
	require.Contains(t, m.status, "no document file")
}

func TestUpdate_SaveStyleUpdatesConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	m := newTestModel(t, mode.Services{ConfigPath: configPath})
	m = update(t, m, runes("x"), alt('a'), keyType(tea.KeyCtrlB), keyType(tea.KeyCtrlD))
	require.False(t, m.statusErr, m.status)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "default_style")
	require.Contains(t, string(data), "font-weight: \"700\"")
	require.NotContains(t, string(data), "text-align")
}

func TestUpdate_ReloadReplacesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, docfile.Save(path, &docfile.File{
		Paragraphs: []docfile.Paragraph{{Spans: []docfile.Span{{Text: "before"}}}},
	}))
	m := newTestModel(t, mode.Services{DocumentPath: path})

	require.NoError(t, docfile.Save(path, &docfile.File{
		Paragraphs: []docfile.Paragraph{
			{Spans: []docfile.Span{{Text: "after"}}},
			{Spans: []docfile.Span{{Text: "more"}}},
		},
	}))
	m = update(t, m, fileChangedMsg{})

	require.Equal(t, "after\nmore", m.Editor().Text())
	require.Equal(t, "reloaded doc.yaml", m.status)
}

func TestUpdate_ReloadIgnoresOwnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	m := newTestModel(t, mode.Services{DocumentPath: path})
	m = update(t, m, runes("mine"), keyType(tea.KeyCtrlS), fileChangedMsg{})

	require.Equal(t, "saved doc.yaml", m.status)
	require.Equal(t, 4, m.Editor().Controller().FocusOffset())
}

func TestUpdate_BlurAndRefocus(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, runes("ab"), keyType(tea.KeyEsc))
	require.False(t, m.Editor().Focused())

	m = update(t, m, keyType(tea.KeyEsc))
	require.True(t, m.Editor().Focused())

	m = update(t, m, keyType(tea.KeyEsc), runes("c"))
	require.True(t, m.Editor().Focused())
	require.Equal(t, "abc", m.Editor().Text())
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	next, cmd := m.Update(keyType(tea.KeyCtrlC))

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Equal(t, "", next.View())
}

func TestView_StatusBar(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 24}, runes("Hi"))

	view := ansi.Strip(m.View())
	require.Contains(t, view, "scratch")
	require.Contains(t, view, "Hi")
	require.Contains(t, view, "Ln 1, Col 3")
	require.Contains(t, view, "rev ")

	m = update(t, m, keyType(tea.KeyCtrlG))
	require.NotContains(t, ansi.Strip(m.View()), "Ln 1, Col 3")
}

func TestView_SidePanes(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, runes("Hi"))
	require.NotContains(t, ansi.Strip(m.View()), "Tree")

	m = update(t, m, keyType(tea.KeyCtrlT))
	view := ansi.Strip(m.View())
	require.Contains(t, view, "Tree")
	require.Contains(t, view, "paragraph")

	m = update(t, m, keyType(tea.KeyCtrlP))
	view = ansi.Strip(m.View())
	require.Contains(t, view, "Tree")
	require.Contains(t, view, "Preview")
}

func TestView_ModifiedHint(t *testing.T) {
	m := newTestModel(t, mode.Services{})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	require.NotContains(t, ansi.Strip(m.View()), "modified")

	m = update(t, m, pubsub.Event[change.Notification]{Type: pubsub.ContentChangedEvent, Payload: change.Notification{Seq: 2}})
	require.Contains(t, ansi.Strip(m.View()), "modified")
	require.Equal(t, uint64(2), m.lastSeq)
}

func TestView_DebugLogPane(t *testing.T) {
	log.InitWriter(io.Discard)
	m := newTestModel(t, mode.Services{})
	require.NotNil(t, m.logs)

	m = update(t, m,
		tea.WindowSizeMsg{Width: 120, Height: 30},
		log.LogEvent{Type: pubsub.LogEntryEvent, Payload: "2026-01-02T03:04:05 [INFO] [mode] pane check\n"},
		keyType(tea.KeyCtrlL),
	)
	view := ansi.Strip(m.View())
	require.Contains(t, view, "Log")
	require.Contains(t, view, "pane check")

	m = update(t, m, keyType(tea.KeyCtrlL))
	require.NotContains(t, ansi.Strip(m.View()), "pane check")
}
