package cmd

import (
	"context"
	"fmt"

	"github.com/ml-workshop/predictor/internal/backend"
	"github.com/ml-workshop/predictor/internal/endpoint"
)

// newBackendClient builds a client for the given base URL, discovering
// one among the candidate origins when none is given. Resolution runs
// once per command; a later request failure is an ordinary request
// error, not a re-resolution trigger.
func newBackendClient(ctx context.Context, baseURL string) (*backend.Client, error) {
	if baseURL == "" {
		resolved, err := endpoint.NewResolver().Resolve(ctx, endpoint.DefaultCandidates())
		if err != nil {
			return nil, fmt.Errorf("not connected: %w", err)
		}
		baseURL = resolved
	}
	return backend.NewClient(baseURL), nil
}
