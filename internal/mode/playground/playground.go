// Package playground is an interactive terminal editor over one document.
package playground

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/spanedit/internal/change"
	"github.com/zjrosen/spanedit/internal/command"
	"github.com/zjrosen/spanedit/internal/config"
	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/docfile"
	"github.com/zjrosen/spanedit/internal/editor"
	"github.com/zjrosen/spanedit/internal/keys"
	"github.com/zjrosen/spanedit/internal/log"
	"github.com/zjrosen/spanedit/internal/mode"
	"github.com/zjrosen/spanedit/internal/mode/shared"
	"github.com/zjrosen/spanedit/internal/pubsub"
	"github.com/zjrosen/spanedit/internal/ui/markdown"
	"github.com/zjrosen/spanedit/internal/ui/styles"
	"github.com/zjrosen/spanedit/internal/watcher"
)

var alignments = []string{"left", "center", "right", "justify"}

// Model holds the playground state.
type Model struct {
	services mode.Services
	cfg      config.Config
	editor   *editor.Editor
	keys     keys.KeyMap
	help     help.Model

	ctx      context.Context
	listener *pubsub.ContinuousListener[change.Notification]
	logs     *log.LogListener // nil unless debug logging is on
	reloads  <-chan struct{}
	shutdown func()

	preview *previewCache

	// View state
	showTree    bool
	showPreview bool
	showStatus  bool
	showLog     bool
	logLines    []string
	status      string
	statusErr   bool
	lastSeq     uint64
	dirty       bool
	savedAt     time.Time

	// Dimensions
	width    int
	height   int
	quitting bool
}

// maxLogLines bounds the debug log pane's history.
const maxLogLines = 200

// fileChangedMsg reports that the document file changed on disk.
type fileChangedMsg struct{}

// New opens the document at services.DocumentPath, or an empty document when
// the path is empty or does not exist yet.
func New(services mode.Services) (Model, error) {
	cfg := config.Defaults()
	if services.Config != nil {
		cfg = *services.Config
	}
	if services.Clipboard == nil {
		services.Clipboard = &shared.SystemClipboard{}
	}
	if services.Clock == nil {
		services.Clock = shared.RealClock{}
	}

	doc := content.New(nil)
	var file *docfile.File
	if services.DocumentPath != "" {
		f, err := docfile.Load(services.DocumentPath)
		switch {
		case err == nil:
			file = f
		case errors.Is(err, os.ErrNotExist):
		default:
			return Model{}, err
		}
	}
	var opts []editor.Option
	if services.Tracer != nil {
		opts = append(opts, editor.WithTracer(services.Tracer))
	}
	if file != nil {
		built, sel, ok, err := file.Build()
		if err != nil {
			return Model{}, err
		}
		doc = built
		e := editor.New(cfg.Editor, append(opts, editor.WithDocument(doc))...)
		if ok {
			if err := e.Controller().SetSelection(sel); err != nil {
				log.Warn(log.CatMode, "stored selection ignored", "error", err)
			}
		}
		return newModel(services, cfg, e)
	}
	return newModel(services, cfg, editor.New(cfg.Editor, append(opts, editor.WithDocument(doc))...))
}

func newModel(services mode.Services, cfg config.Config, e *editor.Editor) (Model, error) {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		services:   services,
		cfg:        cfg,
		editor:     e,
		keys:       keys.DefaultKeyMap(),
		help:       help.New(),
		ctx:        ctx,
		listener:   pubsub.NewContinuousListener(ctx, e.Changes().Broker()),
		logs:       log.NewListener(ctx),
		preview:    &previewCache{},
		showTree:   cfg.UI.ShowTree,
		showStatus: cfg.UI.ShowStatusBar,
	}

	var w *watcher.Watcher
	if cfg.UI.AutoReload && services.DocumentPath != "" {
		var err error
		if w, err = watcher.New(watcher.DefaultConfig(services.DocumentPath)); err == nil {
			m.reloads, err = w.Start()
		}
		if err != nil {
			log.Warn(log.CatMode, "auto reload disabled", "path", services.DocumentPath, "error", err)
			m.reloads = nil
		}
	}
	m.shutdown = sync.OnceFunc(func() {
		cancel()
		if w != nil {
			_ = w.Stop()
		}
		e.Dispose()
	})
	e.Focus()
	return m, nil
}

// Close releases the editor and the file watcher. It is safe to call more
// than once.
func (m Model) Close() {
	m.shutdown()
}

// Editor returns the editor session.
func (m Model) Editor() *editor.Editor { return m.editor }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listener.Listen(), m.waitForReload(), m.listenLogs())
}

func (m Model) listenLogs() tea.Cmd {
	if m.logs == nil {
		return nil
	}
	return m.logs.Listen()
}

func (m Model) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch, ctx := m.reloads, m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return fileChangedMsg{}
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pubsub.Event[change.Notification]:
		m.lastSeq = msg.Payload.Seq
		m.dirty = true
		return m, m.listener.Listen()

	case log.LogEvent:
		m.logLines = append(m.logLines, strings.TrimRight(msg.Payload, "\n"))
		if n := len(m.logLines); n > maxLogLines {
			m.logLines = m.logLines[n-maxLogLines:]
		}
		return m, m.listenLogs()

	case fileChangedMsg:
		m.reload()
		return m, m.waitForReload()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Blur) {
		if m.editor.Focused() {
			m.editor.Blur()
			m.setStatus("blurred")
		} else {
			m.editor.Focus()
			m.setStatus("focused")
		}
		return m, nil
	}
	if !m.editor.Focused() {
		m.editor.Focus()
	}
	if msg.Paste {
		m.paste(string(msg.Runes))
		return m, nil
	}

	ctrl := m.editor.Controller()
	switch {
	// Navigation
	case key.Matches(msg, m.keys.Left):
		m.report(ctrl.MoveFocus(-1, false))
	case key.Matches(msg, m.keys.Right):
		m.report(ctrl.MoveFocus(1, false))
	case key.Matches(msg, m.keys.ExtendLeft):
		m.report(ctrl.MoveFocus(-1, true))
	case key.Matches(msg, m.keys.ExtendRight):
		m.report(ctrl.MoveFocus(1, true))
	case key.Matches(msg, m.keys.LineStart):
		m.report(ctrl.MoveFocusToParagraphEdge(false, false))
	case key.Matches(msg, m.keys.LineEnd):
		m.report(ctrl.MoveFocusToParagraphEdge(true, false))
	case key.Matches(msg, m.keys.SelectAll):
		ctrl.SelectAll()

	// Editing
	case key.Matches(msg, m.keys.Backspace):
		m.input(command.IntentDeleteContentBackward, "")
	case key.Matches(msg, m.keys.Delete):
		m.input(command.IntentDeleteContentForward, "")
	case key.Matches(msg, m.keys.DeleteWord):
		m.input(command.IntentDeleteWordBackward, "")
	case key.Matches(msg, m.keys.Enter):
		m.input(command.IntentInsertParagraph, "")
	case key.Matches(msg, m.keys.LineBreak):
		m.input(command.IntentInsertLineBreak, "")
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
	case key.Matches(msg, m.keys.Cut):
		if m.copySelection() {
			m.input(command.IntentDeleteByCut, "")
		}
	case key.Matches(msg, m.keys.Paste):
		text, err := m.services.Clipboard.Paste()
		if err != nil {
			m.setError(fmt.Errorf("reading clipboard: %w", err))
			break
		}
		m.paste(text)
	case key.Matches(msg, m.keys.Undo):
		m.input(command.IntentHistoryUndo, "")
	case key.Matches(msg, m.keys.Redo):
		m.input(command.IntentHistoryRedo, "")

	// Styling
	case key.Matches(msg, m.keys.Bold):
		m.toggle(content.FontWeight, "700", "400", docfile.IsBold)
	case key.Matches(msg, m.keys.Italic):
		m.toggle(content.FontStyle, "italic", "normal", equals("italic"))
	case key.Matches(msg, m.keys.Underline):
		m.toggle(content.TextDecoration, "underline", "none", equals("underline"))
	case key.Matches(msg, m.keys.Strikethrough):
		m.toggle(content.TextDecoration, "line-through", "none", equals("line-through"))
	case key.Matches(msg, m.keys.Grow):
		m.resize(2)
	case key.Matches(msg, m.keys.Shrink):
		m.resize(-2)
	case key.Matches(msg, m.keys.Align):
		m.cycleAlign()

	// General
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.SaveStyle):
		m.saveStyle()
	case key.Matches(msg, m.keys.ToggleTree):
		m.showTree = !m.showTree
	case key.Matches(msg, m.keys.TogglePreview):
		m.showPreview = !m.showPreview
	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus
	case key.Matches(msg, m.keys.ToggleLog):
		if m.logs == nil {
			m.setStatus("debug log is off; run with --debug")
			break
		}
		m.showLog = !m.showLog
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case msg.Type == tea.KeySpace:
		m.input(command.IntentInsertText, " ")
	case msg.Type == tea.KeyRunes:
		m.input(command.IntentInsertText, string(msg.Runes))
	}
	return m, nil
}

func equals(want string) func(string) bool {
	return func(v string) bool { return v == want }
}

// input dispatches one intent and reports the outcome.
func (m *Model) input(intent command.Intent, data string) {
	out, err := m.editor.HandleInput(m.ctx, command.Input{Type: intent, Data: data})
	if err != nil {
		m.setError(err)
		return
	}
	name := string(intent)
	if out.Command != nil {
		name = out.Command.ID()
	}
	m.setStatus(name + " " + out.Result.String())
}

func (m *Model) paste(text string) {
	if text == "" {
		return
	}
	out, err := m.editor.PasteText(m.ctx, text)
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus("paste " + out.Result.String())
}

// copySelection copies the selected text and reports whether there was any.
func (m *Model) copySelection() bool {
	text, err := m.editor.Controller().SelectedText()
	if err != nil {
		m.setError(err)
		return false
	}
	if text == "" {
		return false
	}
	if err := m.services.Clipboard.Copy(text); err != nil {
		m.setError(fmt.Errorf("writing clipboard: %w", err))
		return false
	}
	m.setStatus(fmt.Sprintf("copied %d characters", content.GraphemeCount(text)))
	return true
}

// toggle sets key to on unless the whole selection already has it.
func (m *Model) toggle(key, on, off string, isOn func(string) bool) {
	current, err := m.editor.SelectionStyle()
	if err != nil {
		m.setError(err)
		return
	}
	value := on
	if isOn(current.Get(key)) {
		value = off
	}
	m.applyStyle(content.Style{key: value})
}

func (m *Model) resize(delta int) {
	current, err := m.editor.SelectionStyle()
	if err != nil {
		m.setError(err)
		return
	}
	size, err := strconv.Atoi(strings.TrimSuffix(current.Get(content.FontSize), "px"))
	if err != nil {
		size = 14
	}
	m.applyStyle(content.Style{content.FontSize: strconv.Itoa(max(size+delta, 6))})
}

func (m *Model) cycleAlign() {
	current := m.editor.CurrentStyle().Get(content.TextAlign)
	next := alignments[0]
	for i, a := range alignments {
		if a == current {
			next = alignments[(i+1)%len(alignments)]
		}
	}
	m.applyStyle(content.Style{content.TextAlign: next})
}

func (m *Model) applyStyle(style content.Style) {
	if err := m.editor.ApplyStyles(m.ctx, style); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("styled " + summarizeStyle(style))
}

func (m *Model) save() {
	path := m.services.DocumentPath
	if path == "" {
		m.setError(errors.New("no document file; start with --file"))
		return
	}
	var f *docfile.File
	if r, ok := m.editor.Controller().Range(); ok {
		f = docfile.FromDocument(m.editor.Document(), &r)
	} else {
		f = docfile.FromDocument(m.editor.Document(), nil)
	}
	if err := docfile.Save(path, f); err != nil {
		m.setError(err)
		return
	}
	m.editor.Changes().Flush()
	m.dirty = false
	m.savedAt = m.services.Clock.Now()
	m.setStatus("saved " + filepath.Base(path))
}

// saveStyle stores the span properties at the caret as the editor default.
func (m *Model) saveStyle() {
	if m.services.ConfigPath == "" {
		m.setError(errors.New("no config file"))
		return
	}
	style := make(map[string]string)
	for k, v := range m.editor.CurrentStyle().Only(content.TextSpanStyles) {
		if v != content.Mixed {
			style[k] = v
		}
	}
	if err := config.SaveDefaultStyle(m.services.ConfigPath, style); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("default style saved")
}

// reload replaces the document with the file's contents unless they match
// what the editor already holds.
func (m *Model) reload() {
	path := m.services.DocumentPath
	f, err := docfile.Load(path)
	if err != nil {
		m.setError(err)
		return
	}
	f.Selection = nil
	if sameDocument(f, docfile.FromDocument(m.editor.Document(), nil)) {
		return
	}
	doc, _, _, err := f.Build()
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.editor.Reset(doc); err != nil {
		m.setError(err)
		return
	}
	m.dirty = false
	m.setStatus("reloaded " + filepath.Base(path))
}

func sameDocument(a, b *docfile.File) bool {
	var ab, bb bytes.Buffer
	if docfile.Encode(&ab, a) != nil || docfile.Encode(&bb, b) != nil {
		return false
	}
	return bytes.Equal(ab.Bytes(), bb.Bytes())
}

func (m *Model) report(err error) {
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	log.ErrorErr(log.CatMode, "playground action failed", err)
	m.status, m.statusErr = err.Error(), true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width, height := max(m.width, 20), max(m.height, 8)

	footer := m.help.View(m.keys)
	bodyHeight := height - lipgloss.Height(footer)
	if m.showStatus {
		bodyHeight--
	}

	docWidth := width
	side := m.showTree || m.showPreview || m.showLog
	if side {
		docWidth = width - width*2/5
	}
	body := m.renderDocumentPane(docWidth, bodyHeight)
	if side {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderSidePanes(width-docWidth, bodyHeight))
	}

	parts := []string{body}
	if m.showStatus {
		parts = append(parts, m.renderStatusBar(width))
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderDocumentPane(width, height int) string {
	inner := max(height-2, 1)
	defaults := content.Style(m.cfg.Editor.DefaultStyle)
	wrap := max(width-2, 1)
	if m.cfg.UI.WrapWidth > 0 {
		wrap = min(wrap, m.cfg.UI.WrapWidth)
	}
	lines, caretLine := renderDocument(m.editor.Document(), m.editor.Controller(), defaults, wrap, m.editor.Focused())
	if caretLine >= inner {
		lines = lines[caretLine-inner+1:]
	}
	if len(lines) > inner {
		lines = lines[:inner]
	}

	title := "scratch"
	if m.services.DocumentPath != "" {
		title = filepath.Base(m.services.DocumentPath)
	}
	hint := ""
	if m.dirty {
		hint = "modified"
	}
	return styles.RenderPane(lines, title, hint, width, inner, m.editor.Focused())
}

// renderSidePanes stacks the enabled tree, preview and log panes, splitting
// the height evenly. The last pane takes the remainder.
func (m Model) renderSidePanes(width, height int) string {
	type pane struct {
		title string
		lines func(height int) []string
	}
	var enabled []pane
	if m.showTree {
		enabled = append(enabled, pane{"Tree", func(int) []string {
			return treeLines(m.editor.Document(), m.editor.Controller().FocusNode())
		}})
	}
	if m.showPreview {
		enabled = append(enabled, pane{"Preview", func(int) []string {
			return m.previewLines(width - 2)
		}})
	}
	if m.showLog {
		enabled = append(enabled, pane{"Log", func(h int) []string {
			return m.logLines[max(len(m.logLines)-h, 0):]
		}})
	}

	out := make([]string, 0, len(enabled))
	remaining := height
	for i, p := range enabled {
		h := height / len(enabled)
		if i == len(enabled)-1 {
			h = remaining
		}
		remaining -= h
		inner := max(h-2, 0)
		out = append(out, styles.RenderPane(clip(p.lines(inner), inner), p.title, "", width, inner, false))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// previewCache keeps the markdown renderer across frames. Renderers are
// rebuilt when the pane width changes.
type previewCache struct {
	renderer *markdown.Renderer
}

func (m Model) previewLines(width int) []string {
	if m.preview.renderer == nil || m.preview.renderer.Width() != width {
		r, err := markdown.New(width, m.cfg.UI.MarkdownStyle)
		if err != nil {
			return []string{styles.ErrorStyle.Render(err.Error())}
		}
		m.preview.renderer = r
	}
	out, err := m.preview.renderer.Render(docfile.Markdown(m.editor.Document()))
	if err != nil {
		return []string{styles.ErrorStyle.Render(err.Error())}
	}
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func clip(lines []string, n int) []string {
	if n < 0 {
		return nil
	}
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

func (m Model) renderStatusBar(width int) string {
	ctrl := m.editor.Controller()
	var parts []string
	if info, ok := locateCaret(m.editor.Document(), ctrl); ok {
		parts = append(parts, fmt.Sprintf("Ln %d, Col %d", info.Paragraph+1, info.Column))
	}
	parts = append(parts, ctrl.CaretContext().String())
	if style, err := m.editor.SelectionStyle(); err == nil {
		parts = append(parts, summarizeStyle(style))
	}
	parts = append(parts, fmt.Sprintf("rev %d", m.editor.Document().Revision()))
	if m.services.DocumentPath != "" {
		parts = append(parts, "saved "+shared.FormatSince(m.savedAt, m.services.Clock))
	}
	if m.status != "" {
		status := m.status
		if m.statusErr {
			status = styles.ErrorStyle.Render(status)
		}
		parts = append(parts, status)
	}
	sep := styles.StatusKeyStyle.Render(" │ ")
	return styles.StatusBarStyle.Render(styles.TruncateString(strings.Join(parts, sep), max(width-2, 1)))
}
