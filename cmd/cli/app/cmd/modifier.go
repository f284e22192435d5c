package cmd

import (
	"fmt"

	"rmod/cmd/cli/app"
	"rmod/internal/core/handler"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func init() {
	modifierShowCmd.Flags().StringP("output", "o", "table", "Output format (table, yaml, json)")
	modifierCreateCmd.Flags().StringP("file", "f", "", "RestoreModifier document to seed the modifier from")
	modifierCreateCmd.Flags().Bool("replace", false, "Replace a stored modifier of the same name")

	modifierCmd.AddCommand(modifierListCmd)
	modifierCmd.AddCommand(modifierShowCmd)
	modifierCmd.AddCommand(modifierCreateCmd)
	modifierCmd.AddCommand(modifierDeleteCmd)
	rootCmd.AddCommand(modifierCmd)
}

var modifierCmd = &cobra.Command{
	Use:     "modifier",
	Aliases: []string{"modifiers", "rm"},
	Short:   "Manages restore modifiers",
	Long:    `Commands for listing, showing, creating and deleting the restore modifiers of the current context`,
}

var modifierListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the restore modifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := app.InjectModifierCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.HandleList(cmd.Context())
	},
}

var modifierShowCmd = &cobra.Command{
	Use:               "show <name>",
	Short:             "Shows the selectors and actions of a modifier",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ModifierArgsCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		h, err := app.InjectModifierCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.HandleShow(cmd.Context(), args[0], format)
	},
}

var modifierCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Creates a restore modifier",
	Long: heredoc.Doc(`
		Creates a restore modifier. Without --file the modifier starts empty; add
		selectors and actions to it afterwards. With --file the selectors and actions
		of a RestoreModifier document are saved in a single write, the name argument
		overriding the document name.
	`),
	Example: heredoc.Doc(`
		$ rmod modifier create secrets
		$ rmod modifier create -f ports.yaml
		$ rmod modifier create ports-lab -f ports.yaml --replace
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		replace, _ := cmd.Flags().GetBool("replace")
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		if name == "" && file == "" {
			return fmt.Errorf("a name or --file is required")
		}

		h, err := app.InjectModifierCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.HandleCreate(cmd.Context(), handler.CreateModifierRequest{
			Name:    name,
			File:    file,
			Replace: replace,
		})
	},
}

var modifierDeleteCmd = &cobra.Command{
	Use:               "delete <name>",
	Short:             "Deletes a restore modifier",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ModifierArgsCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := app.InjectModifierCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.HandleDelete(cmd.Context(), args[0])
	},
}
