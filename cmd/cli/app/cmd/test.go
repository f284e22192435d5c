package cmd

import (
	"fmt"

	"rmod/cmd/cli/app"
	"rmod/internal/core/handler"
	"rmod/internal/ports"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func init() {
	testCmd.Flags().StringP("file", "f", "", "Manifests to transform, multi-document YAML or JSON")
	testCmd.Flags().StringArrayP("modifier", "m", nil, "Stored modifier to apply, repeatable")
	testCmd.Flags().StringArray("from-file", nil, "RestoreModifier document to apply without storing it, repeatable")
	testCmd.Flags().StringP("output", "o", string(ports.FormatYAML), "Output format (yaml, json)")
	testCmd.MarkFlagRequired("file")
	testCmd.RegisterFlagCompletionFunc("modifier", ModifierArgsCompletion)

	rootCmd.AddCommand(testCmd)
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Shows what modifiers do to manifests without restoring anything",
	Long: heredoc.Doc(`
		Applies modifiers to copies of the given manifests and prints the result on
		stdout. A summary of the matched selectors and applied actions is printed on
		stderr. Modifiers run in the order given, stored ones first, and each sees the
		output of the previous one. Nothing is written to the store.

		The command fails when an action could not be applied; the manifests are
		still printed with every other action applied.
	`),
	Example: heredoc.Doc(`
		$ rmod test -f backup.yaml --modifier ports
		$ rmod test -f backup.yaml --modifier ports --modifier secrets -o json
		$ rmod test -f backup.yaml --from-file draft.yaml
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		modifiers, _ := cmd.Flags().GetStringArray("modifier")
		modifierFiles, _ := cmd.Flags().GetStringArray("from-file")
		format, _ := cmd.Flags().GetString("output")
		if format != string(ports.FormatYAML) && format != string(ports.FormatJSON) {
			return fmt.Errorf("unsupported output format '%s', expected yaml or json", format)
		}

		h, err := app.InjectTestCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.Handle(cmd.Context(), handler.TestRequest{
			ManifestFile:  file,
			Modifiers:     modifiers,
			ModifierFiles: modifierFiles,
			Format:        ports.ManifestFormat(format),
		})
	},
}
