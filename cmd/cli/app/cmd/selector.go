package cmd

import (
	"rmod/cmd/cli/app"
	"rmod/internal/core/handler"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func init() {
	flags := selectorAddCmd.Flags()
	flags.String("id", "", "Selector id, generated when omitted")
	flags.String("kind", "", "Kind pattern, e.g. Deployment or Config*")
	flags.String("name", "", "Name pattern, e.g. nginx-*")
	flags.String("namespace", "", "Namespace pattern")
	flags.StringToString("label", nil, "Label that must be present, repeatable (key=value)")
	flags.String("field-path", "", "Field to test, e.g. spec.replicas or /spec/ports/0/port")
	flags.String("field-value", "", "Value the field is compared with")
	flags.Bool("exact", false, "Compare the whole field instead of searching a substring")
	flags.String("criteria", "Contains", "Contains or DoesNotContain")

	selectorCmd.AddCommand(selectorAddCmd)
	selectorCmd.AddCommand(selectorDeleteCmd)
	rootCmd.AddCommand(selectorCmd)
}

var selectorCmd = &cobra.Command{
	Use:   "selector",
	Short: "Manages the selectors of a modifier",
	Long:  `A selector decides which manifests a modifier's actions apply to. All criteria of one selector must match.`,
}

var selectorAddCmd = &cobra.Command{
	Use:   "add <modifier>",
	Short: "Adds a selector to a modifier",
	Example: heredoc.Doc(`
		$ rmod selector add secrets --kind Secret --namespace ns
		$ rmod selector add web --name 'nginx-*' --label tier=frontend
		$ rmod selector add scale --id three --field-path spec.replicas --field-value 3 --exact
	`),
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ModifierArgsCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		id, _ := flags.GetString("id")
		kind, _ := flags.GetString("kind")
		name, _ := flags.GetString("name")
		namespace, _ := flags.GetString("namespace")
		labels, _ := flags.GetStringToString("label")
		fieldPath, _ := flags.GetString("field-path")
		fieldValue, _ := flags.GetString("field-value")
		exact, _ := flags.GetBool("exact")
		criteria, _ := flags.GetString("criteria")
		if !flags.Changed("criteria") {
			criteria = ""
		}

		h, err := app.InjectSelectorCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.HandleAdd(cmd.Context(), args[0], handler.AddSelectorRequest{
			ID:         id,
			Kind:       kind,
			Name:       name,
			Namespace:  namespace,
			Labels:     labels,
			FieldPath:  fieldPath,
			FieldValue: fieldValue,
			Exact:      exact,
			Criteria:   criteria,
		})
	},
}

var selectorDeleteCmd = &cobra.Command{
	Use:               "delete <modifier> <selector-id>",
	Short:             "Deletes a selector that no action references",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: ModifierArgsCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := app.InjectSelectorCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.HandleDelete(cmd.Context(), args[0], args[1])
	},
}
