package cmd

import (
	"rmod/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initializeCmd)
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Generates a new configuration file with sample values",
	Long:  `A new configuration file is written to ~/.rmod-config.yaml with a 'default' context for the current kubeconfig and a 'local' context backed by a file. The 'default' context is selected. The file is not created if it already exists.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectInitializeCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return handler.Handle()
	},
}
