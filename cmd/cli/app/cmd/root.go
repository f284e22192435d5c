package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"rmod/internal/core"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "rmod",
	Short: "Manages restore modifiers for Kubernetes restores",
	Long: heredoc.Doc(`
		rmod manages restore modifiers: named rules that select Kubernetes manifests
		and add, delete or modify fields in them while they are restored.

		Modifiers are stored as RestoreModifier resources (k8s.cv.io/v1) in the
		cv-config namespace, or in a local file for offline work.

		Configuration is stored in ~/.rmod-config.yaml. Run 'rmod initialize' to create
		a sample configuration file.
	`),
	Example: heredoc.Doc(`
		$ rmod modifier create ports
		$ rmod selector add ports --id svc --kind Service
		$ rmod action add ports --selector-id svc --action Modify --path /spec/ports/0/port --value 80 --new-value 81
		$ rmod test -f backup.yaml --modifier ports
	`),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch viper.GetString("log-level") {
		case "debug":
			log.SetLevel(log.DebugLevel)
		case "warn":
			log.SetLevel(log.WarnLevel)
		case "error":
			log.SetLevel(log.ErrorLevel)
		default:
			log.SetLevel(log.InfoLevel)
		}
		return nil
	},
}

func init() {
	viper.SetEnvPrefix("RMOD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("log-level", "info", "Set the logging level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("context", "", "Context to use instead of the current context")
	viper.BindPFlag("context", rootCmd.PersistentFlags().Lookup("context"))
}

// contextOverride is the context chosen with --context or RMOD_CONTEXT.
func contextOverride() core.ContextOverride {
	return core.ContextOverride(viper.GetString("context"))
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
