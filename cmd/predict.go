package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ml-workshop/predictor/internal/backend"
	"github.com/ml-workshop/predictor/internal/render"
	"github.com/ml-workshop/predictor/internal/results"
	"github.com/spf13/cobra"
)

func newPredictCmd() *cobra.Command {
	var baseURL string
	var output string
	var timeoutSec int

	cmd := &cobra.Command{
		Use:   "predict <file.csv>",
		Short: "Upload a CSV file and render the returned predictions",
		Long: `Uploads a CSV file to the prediction backend and prints the results.

The file must be named *.csv; the check happens before any request is
sent. At most the first 10 predictions are printed individually, the
rest are summarized by count. Use --output to save the complete run,
including every prediction row, to a YAML file.`,
		Example: `  # Predict against the discovered backend
  predictor predict data.csv

  # Save the full run to a file
  predictor predict data.csv --output run.yaml

  # Predict against a specific backend with a tighter deadline
  predictor predict data.csv --url http://127.0.0.1:5000/api --timeout 15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSec)*time.Second)
			defer cancel()

			client, err := newBackendClient(ctx, baseURL)
			if err != nil {
				return err
			}

			slog.Info("Uploading file for prediction", "file", path, "backend", client.BaseURL())

			result, err := client.Predict(ctx, path)
			if err != nil {
				var apiErr *backend.APIError
				if errors.As(err, &apiErr) {
					// The backend's own message, verbatim.
					return fmt.Errorf("prediction failed: %s", apiErr.Message)
				}
				var transportErr *backend.TransportError
				if errors.As(err, &transportErr) {
					return fmt.Errorf("connection error: %w", err)
				}
				return err
			}

			render.PredictionResult(os.Stdout, result)

			if output != "" {
				if err := results.Save(output, client.BaseURL(), path, result); err != nil {
					return err
				}
				fmt.Printf("\nFull results saved to: %s\n", output)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Backend base URL (skips discovery)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the full prediction run to a YAML file")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 60, "Request deadline in seconds")

	return cmd
}
