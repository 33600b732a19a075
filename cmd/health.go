package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ml-workshop/predictor/internal/render"
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether a prediction backend is reachable and healthy",
		Long: `Probes the candidate backend addresses in order, then runs a health
check against the first one that answers. Only a backend reporting the
literal status "healthy" counts as connected.`,
		Example: `  # Discover and check the local backend
  predictor health

  # Check a specific backend
  predictor health --url http://127.0.0.1:5000/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			client, err := newBackendClient(ctx, baseURL)
			if err != nil {
				return err
			}

			status, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("not connected: %w", err)
			}

			render.HealthStatus(os.Stdout, client.BaseURL(), status)
			if !status.Healthy() {
				return fmt.Errorf("backend reported status %q", status.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Backend base URL (skips discovery)")

	return cmd
}
