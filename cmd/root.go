package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/spanedit/internal/config"
	"github.com/zjrosen/spanedit/internal/log"
	"github.com/zjrosen/spanedit/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".spanedit/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "spanedit [file]",
	Short: "A rich-text editing core with a terminal playground",
	Long: `spanedit edits styled documents made of paragraphs and text spans.

Run without a subcommand to open a document in the terminal playground.
Documents are YAML files; a missing file is created on first save.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runPlayground,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/spanedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also SPANEDIT_DEBUG=1; path from SPANEDIT_LOG)")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"do not reload the document when its file changes")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.default_style", defaults.Editor.DefaultStyle)
	viper.SetDefault("editor.change_debounce", defaults.Editor.ChangeDebounce)
	viper.SetDefault("editor.traversal_budget", defaults.Editor.TraversalBudget)
	viper.SetDefault("editor.style_cache_ttl", defaults.Editor.StyleCacheTTL)
	viper.SetDefault("editor.validate", defaults.Editor.Validate)
	viper.SetDefault("ui.wrap_width", defaults.UI.WrapWidth)
	viper.SetDefault("ui.show_tree", defaults.UI.ShowTree)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.auto_reload", defaults.UI.AutoReload)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .spanedit/config.yaml (current directory)
		// 2. ~/.config/spanedit/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "spanedit"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "spanedit: reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
}

// configFilePath returns the file style defaults are saved to.
func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return localConfigPath
}

// initLogging enables the debug log when requested by flag or environment.
// The returned cleanup is never nil.
func initLogging(prefix string) (func(), error) {
	if os.Getenv("SPANEDIT_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("SPANEDIT_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	level, err := log.ParseLevel(os.Getenv("SPANEDIT_LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "spanedit starting", "version", version, "logPath", logPath, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

// initTracing builds the trace provider from the loaded configuration.
func initTracing() (*tracing.Provider, func(), error) {
	provider, err := tracing.NewProvider(tracing.FromConfig(cfg.Tracing))
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracer shutdown failed", err)
		}
	}
	return provider, shutdown, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
