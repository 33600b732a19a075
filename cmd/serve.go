package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ml-workshop/predictor/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local mock prediction backend",
		Long: `Starts a local backend serving the prediction API: /api/health,
/api/model-info and /api/predict.

Predictions come from a mock classifier until a trained model is
delivered, so the client can be exercised end to end without one.`,
		Example: `  # Start the backend on the default port 5000
  predictor serve

  # Start on a custom port with a custom data directory
  predictor serve --port 8000 --data-dir /tmp/predictor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := server.New(dataDir)
			if err != nil {
				return err
			}

			addr := ":" + port
			srv := &http.Server{
				Addr:    addr,
				Handler: handler.Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Prediction backend available", "addr", addr, "url", "http://localhost"+addr+"/api")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "5000", "Port to listen on")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "Directory for model metadata and uploads")

	return cmd
}
