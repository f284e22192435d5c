package cmd

import (
	"rmod/cmd/cli/app"

	"github.com/spf13/cobra"
)

// ModifierArgsCompletion completes the first argument with stored modifier names.
func ModifierArgsCompletion(
	cmd *cobra.Command,
	args []string,
	toComplete string,
) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	store, err := app.InjectModifierStore(contextOverride())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	modifiers, err := store.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, m := range modifiers {
		names = append(names, m.Name)
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}
