package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ml-workshop/predictor/internal/backend"
	"github.com/ml-workshop/predictor/internal/render"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show metadata about the currently loaded model",
		Example: `  # Show model info from the discovered backend
  predictor info`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			client, err := newBackendClient(ctx, baseURL)
			if err != nil {
				return err
			}

			info, err := client.ModelInfo(ctx)
			if err != nil {
				var transportErr *backend.TransportError
				if errors.As(err, &transportErr) {
					return fmt.Errorf("not connected: %w", err)
				}
				return err
			}

			render.ModelInfo(os.Stdout, info)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Backend base URL (skips discovery)")

	return cmd
}
