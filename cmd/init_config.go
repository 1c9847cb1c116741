package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spanedit/internal/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Long: `Write the default configuration to .spanedit/config.yaml, or to the
file named by --config. An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := configFilePath()
		if err := config.WriteDefaultConfig(path, force); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().BoolP("force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initConfigCmd)
}
