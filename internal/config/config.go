// Package config provides configuration types and defaults for spanedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/log"
)

// Config holds all configuration options for spanedit.
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor"`
	UI      UIConfig      `mapstructure:"ui"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// EditorConfig holds options for the editing core.
type EditorConfig struct {
	// DefaultStyle is the bottom of the style cascade, below root style.
	DefaultStyle map[string]string `mapstructure:"default_style"`

	// ChangeDebounce is the idle window before a change notification.
	// Zero notifies after every command.
	ChangeDebounce time.Duration `mapstructure:"change_debounce"`

	// TraversalBudget bounds the wall-clock time of one leaf traversal.
	TraversalBudget time.Duration `mapstructure:"traversal_budget"`

	// StyleCacheTTL is how long a resolved style stays cached.
	StyleCacheTTL time.Duration `mapstructure:"style_cache_ttl"`

	// Validate runs the document invariant check after every command.
	Validate bool `mapstructure:"validate"`
}

// UIConfig holds playground options.
type UIConfig struct {
	WrapWidth     int    `mapstructure:"wrap_width"`      // 0 wraps at the terminal width
	ShowTree      bool   `mapstructure:"show_tree"`       // Show the node tree pane
	ShowStatusBar bool   `mapstructure:"show_status_bar"` // Show caret context and style
	AutoReload    bool   `mapstructure:"auto_reload"`     // Reload the document when its file changes
	MarkdownStyle string `mapstructure:"markdown_style"`  // "dark" (default), "light" or "notty"
}

// TracingConfig controls per-command spans. An empty FilePath resolves to
// DefaultTracesFilePath at startup.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file, stdout or otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"` // 0.0 to 1.0
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/spanedit/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spanedit", "traces", "traces.jsonl")
}

// DefaultStyle returns the style a fresh editor starts from.
func DefaultStyle() map[string]string {
	return map[string]string{
		"font-family": "sourcesanspro",
		"font-size":   "14",
		"font-weight": "400",
		"font-style":  "normal",
		"text-align":  "left",
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			DefaultStyle:    DefaultStyle(),
			ChangeDebounce:  250 * time.Millisecond,
			TraversalBudget: time.Second,
			StyleCacheTTL:   10 * time.Minute,
			Validate:        false,
		},
		UI: UIConfig{
			WrapWidth:     0,
			ShowTree:      false,
			ShowStatusBar: true,
			AutoReload:    true,
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateEditor checks editor configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateEditor(editor EditorConfig) error {
	for key := range editor.DefaultStyle {
		if !content.IsStyleKey(key) {
			return fmt.Errorf("editor.default_style: unknown property %q", key)
		}
	}
	if editor.ChangeDebounce < 0 {
		return fmt.Errorf("editor.change_debounce must not be negative, got %v", editor.ChangeDebounce)
	}
	if editor.TraversalBudget < 0 {
		return fmt.Errorf("editor.traversal_budget must not be negative, got %v", editor.TraversalBudget)
	}
	if editor.StyleCacheTTL < 0 {
		return fmt.Errorf("editor.style_cache_ttl must not be negative, got %v", editor.StyleCacheTTL)
	}
	return nil
}

var (
	markdownStyles = []string{"", "dark", "light", "notty"}
	exporterNames  = []string{"", "none", "file", "stdout", "otlp"}
)

// ValidateUI checks playground configuration for errors.
func ValidateUI(ui UIConfig) error {
	if ui.WrapWidth < 0 {
		return fmt.Errorf("ui.wrap_width must not be negative, got %d", ui.WrapWidth)
	}
	if !slices.Contains(markdownStyles, ui.MarkdownStyle) {
		return fmt.Errorf("ui.markdown_style must be \"dark\", \"light\", or \"notty\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors. Path and endpoint
// are only required while tracing is enabled.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}
	if !slices.Contains(exporterNames, tracing.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}
	if !tracing.Enabled {
		return nil
	}
	switch {
	case tracing.Exporter == "file" && tracing.FilePath == "":
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	case tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "":
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# spanedit configuration

# Editing core
editor:
  # Bottom of the style cascade: root, paragraph and span styles override it
  default_style:
    font-family: sourcesanspro
    font-size: "14"
    font-weight: "400"
    font-style: normal
    text-align: left
  change_debounce: 250ms   # Idle window before a change notification (0 = every command)
  traversal_budget: 1s     # Wall-clock bound on one leaf traversal
  style_cache_ttl: 10m     # How long a resolved style stays cached
  validate: false          # Check document invariants after every command

# Playground settings
ui:
  wrap_width: 0            # Wrap paragraphs at this width (0 = terminal width)
  show_tree: false         # Show the node tree pane (toggle with ctrl+t)
  show_status_bar: true    # Show caret context and current style
  auto_reload: true        # Reload the document when its file changes on disk
  # markdown_style: dark   # replay --render style: "dark" (default), "light" or "notty"

# Distributed tracing
# Emits one span per editing command
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/spanedit/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to path, creating the
// parent directory. An existing file is only replaced when overwrite is set.
func WriteDefaultConfig(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	log.Info(log.CatConfig, "wrote default config", "path", path)
	return nil
}

// ErrConfigExists is returned by WriteDefaultConfig when it would replace a
// file.
var ErrConfigExists = errors.New("config file already exists")
