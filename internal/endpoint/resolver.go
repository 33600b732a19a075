// Package endpoint discovers a reachable prediction backend among a
// fixed, ordered list of candidate base URLs.
package endpoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoBackend is returned when every candidate base URL failed its
// health probe.
var ErrNoBackend = errors.New("no reachable backend")

const defaultProbeTimeout = 3 * time.Second

// DefaultCandidates returns the base URLs to probe, in order. The
// built-in list covers the usual local addresses the backend binds to;
// PREDICT_API_CANDIDATES (comma separated) overrides it.
func DefaultCandidates() []string {
	if v := os.Getenv("PREDICT_API_CANDIDATES"); v != "" {
		var candidates []string
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				candidates = append(candidates, c)
			}
		}
		if len(candidates) > 0 {
			return candidates
		}
	}
	return []string{
		"http://127.0.0.1:5000/api",
		"http://0.0.0.0:5000/api",
		"http://localhost:5000/api",
	}
}

// Resolver probes candidate base URLs against their health path.
type Resolver struct {
	httpClient   *http.Client
	probeTimeout time.Duration
}

// NewResolver creates a resolver. The per-candidate probe timeout
// defaults to 3 seconds so a dead first candidate cannot stall
// discovery; ENDPOINT_PROBE_TIMEOUT_SEC overrides it.
func NewResolver() *Resolver {
	timeout := defaultProbeTimeout
	if v := os.Getenv("ENDPOINT_PROBE_TIMEOUT_SEC"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}
	return &Resolver{
		httpClient:   &http.Client{},
		probeTimeout: timeout,
	}
}

// Resolve tries each candidate strictly in order and returns the first
// one whose health probe completes with a 2xx response. Candidates
// after the winner are not contacted. When all candidates fail it
// returns ErrNoBackend.
func (r *Resolver) Resolve(ctx context.Context, candidates []string) (string, error) {
	for _, base := range candidates {
		if err := r.probe(ctx, base); err != nil {
			slog.Debug("Candidate not reachable", "url", base, "err", err)
			continue
		}
		slog.Info("Resolved backend", "url", base)
		return base, nil
	}
	return "", fmt.Errorf("tried %d candidate(s): %w", len(candidates), ErrNoBackend)
}

func (r *Resolver) probe(ctx context.Context, base string) error {
	probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()

	url := strings.TrimRight(base, "/") + "/health"
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The probe only cares that the round trip completed; the body is
	// drained so the connection can be reused by later calls.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode)
	}
	return nil
}
