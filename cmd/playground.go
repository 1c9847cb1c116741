package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/spanedit/internal/mode"
	"github.com/zjrosen/spanedit/internal/mode/playground"
	"github.com/zjrosen/spanedit/internal/mode/shared"
)

var playgroundCmd = &cobra.Command{
	Use:     "playground [file]",
	Aliases: []string{"edit"},
	Short:   "Open a document in the terminal playground",
	Long: `Launch the interactive playground: type to insert text, use the style
keys to format the selection and ctrl+s to save. Press f1 for all keys.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlayground,
}

func init() {
	playgroundCmd.Flags().Bool("no-auto-reload", false,
		"do not reload the document when its file changes")
	rootCmd.AddCommand(playgroundCmd)
}

func runPlayground(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("spanedit")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.UI.AutoReload = false
	}

	provider, shutdown, err := initTracing()
	if err != nil {
		return err
	}
	defer shutdown()

	services := mode.Services{
		Config:     &cfg,
		ConfigPath: configFilePath(),
		Clipboard:  &shared.SystemClipboard{},
		Clock:      shared.RealClock{},
		Tracer:     provider.Tracer(),
	}
	if len(args) == 1 {
		services.DocumentPath = args[0]
	}

	model, err := playground.New(services)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	return nil
}
