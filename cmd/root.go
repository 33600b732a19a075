package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predictor",
		Short: "Client for the ML Workshop prediction backend",
		Long: `Predictor submits CSV datasets to the ML Workshop prediction backend
and renders the returned predictions.

It discovers a reachable backend among the usual local addresses, shows
model metadata, and can run a local mock backend for development.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newPredictCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDatasetCmd())

	return cmd
}
