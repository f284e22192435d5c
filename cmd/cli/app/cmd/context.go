package cmd

import (
	"fmt"

	"rmod/cmd/cli/app"
	"rmod/internal/core/domain"
	"rmod/internal/core/handler"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func init() {
	contextAddCmd.Flags().String("backend", string(domain.BackendKubernetes), "Where modifiers are stored (kubernetes, file)")
	contextAddCmd.Flags().String("kubeconfig", "", "Kubeconfig file, default ~/.kube/config")
	contextAddCmd.Flags().String("kube-context", "", "Context inside the kubeconfig file")
	contextAddCmd.Flags().String("server", "", "API server URL, authenticates with a service account token")
	contextAddCmd.Flags().String("token", "", "Service account token for --server, prompted for when omitted")
	contextAddCmd.Flags().Bool("insecure", false, "Skip TLS verification of the API server")
	contextAddCmd.Flags().String("namespace", "", "Namespace of the modifiers, default "+domain.RestoreModifierNamespace)
	contextAddCmd.Flags().String("store-path", "", "Modifier file of the file backend, default ~/.rmod/<name>/modifiers.yaml")
	contextAddCmd.Flags().Bool("use", false, "Switch to the new context")

	contextCmd.AddCommand(contextListCmd)
	contextCmd.AddCommand(contextPrintCmd)
	contextCmd.AddCommand(contextSetCmd)
	contextCmd.AddCommand(contextAddCmd)
	rootCmd.AddCommand(contextCmd)
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manages the configuration context",
	Long:  `Commands for managing and viewing the configuration context. A context names the cluster or file that modifiers are stored in.`,
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the available contexts",
	Long:  `Reads the available contexts from the configuration file and prints them to stdout. The current context is marked with *.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectContextCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return handler.HandleList()
	},
}

var contextPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Prints the current context",
	Long:  `Prints the configuration of the current context as JSON`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectContextCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return handler.HandlePrint()
	},
}

var contextSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Sets the current context",
	Long:  `Sets the current context to the specified context`,
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		configRepo, err := app.InjectConfigRepo(contextOverride())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		config, err := configRepo.LoadConfig()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var contexts []string
		for _, context := range config.Contexts {
			contexts = append(contexts, context.Name)
		}
		return contexts, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectContextCommandHandler(contextOverride())
		if err != nil {
			return err
		}

		return handler.HandleSet(args[0])
	},
}

var contextAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Adds a context to the configuration file",
	Long: heredoc.Doc(`
		Adds a context to ~/.rmod-config.yaml.

		A kubernetes context reaches the cluster through a kubeconfig file, or through
		--server with a service account token. The token is kept in the OS keyring.
		A file context keeps modifiers in a local YAML file.
	`),
	Example: heredoc.Doc(`
		$ rmod context add lab --kube-context lab-admin
		$ rmod context add qa --server https://10.0.0.1:6443 --insecure
		$ rmod context add offline --backend file --use
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		backend, _ := flags.GetString("backend")
		kubeconfig, _ := flags.GetString("kubeconfig")
		kubeContext, _ := flags.GetString("kube-context")
		server, _ := flags.GetString("server")
		token, _ := flags.GetString("token")
		insecure, _ := flags.GetBool("insecure")
		namespace, _ := flags.GetString("namespace")
		storePath, _ := flags.GetString("store-path")
		use, _ := flags.GetBool("use")

		if domain.Backend(backend) == domain.BackendKubernetes && kubeconfig == "" && server == "" {
			kubeconfig = "~/.kube/config"
		}

		h, err := app.InjectContextCommandHandler(contextOverride())
		if err != nil {
			return err
		}
		err = h.HandleAdd(handler.AddContextRequest{
			Context: domain.Context{
				Name:        args[0],
				Backend:     domain.Backend(backend),
				Kubeconfig:  kubeconfig,
				KubeContext: kubeContext,
				Server:      server,
				Insecure:    insecure,
				Namespace:   namespace,
				StorePath:   storePath,
			},
			Token:    token,
			Activate: use,
		})
		if err != nil {
			return fmt.Errorf("failed to add context %s: %w", args[0], err)
		}
		return nil
	},
}
