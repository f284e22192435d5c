package cmd

import (
	"fmt"
	"strconv"

	"rmod/cmd/cli/app"
	"rmod/internal/core/handler"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func init() {
	flags := actionAddCmd.Flags()
	flags.String("selector-id", "", "Selector that gates the action")
	flags.String("action", "", "Add, Delete or Modify")
	flags.String("path", "", "Field path, e.g. metadata.labels.tier or /spec/ports/0/port")
	flags.String("value", "", "Add: the value to set. Modify: the current value to match")
	flags.String("new-value", "", "Modify: the replacement value")
	flags.String("parameters", "Exact", "Modify: Exact or Contains")
	actionAddCmd.MarkFlagRequired("selector-id")
	actionAddCmd.MarkFlagRequired("action")
	actionAddCmd.MarkFlagRequired("path")

	actionCmd.AddCommand(actionAddCmd)
	actionCmd.AddCommand(actionDeleteCmd)
	rootCmd.AddCommand(actionCmd)
}

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Manages the actions of a modifier",
	Long:  `An action changes a field of every manifest its selector matches. Actions run in the order they were added.`,
}

var actionAddCmd = &cobra.Command{
	Use:   "add <modifier>",
	Short: "Adds an action to a modifier",
	Long: heredoc.Doc(`
		Adds an action to a modifier. Values are read as YAML, so 5 is stored as a
		number and true as a boolean; quote them ('"5"') to keep a string.
	`),
	Example: heredoc.Doc(`
		$ rmod action add secrets --selector-id s1 --action Add --path metadata.labels.restored --value true
		$ rmod action add secrets --selector-id s1 --action Delete --path metadata.annotations.owner
		$ rmod action add ports --selector-id svc --action Modify --path /spec/ports/0/port --value 80 --new-value 81
		$ rmod action add images --selector-id web --action Modify --path 'spec.template.spec.containers[0].image' \
		    --value 1.25 --new-value 1.27 --parameters Contains
	`),
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ModifierArgsCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		selectorID, _ := flags.GetString("selector-id")
		action, _ := flags.GetString("action")
		path, _ := flags.GetString("path")
		value, _ := flags.GetString("value")
		newValue, _ := flags.GetString("new-value")
		parameters, _ := flags.GetString("parameters")

		h, err := app.InjectActionCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.HandleAdd(cmd.Context(), args[0], handler.AddActionRequest{
			SelectorID:  selectorID,
			Action:      action,
			Path:        path,
			Value:       value,
			NewValue:    newValue,
			Parameters:  parameters,
			ValueSet:    flags.Changed("value"),
			NewValueSet: flags.Changed("new-value"),
		})
	},
}

var actionDeleteCmd = &cobra.Command{
	Use:               "delete <modifier> <index>",
	Short:             "Deletes the action at a 0-based index",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: ModifierArgsCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("action index must be a number: %s", args[1])
		}
		h, err := app.InjectActionCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return h.HandleDelete(cmd.Context(), args[0], index)
	},
}
