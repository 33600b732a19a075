package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Client talks to a prediction backend. The base URL is injected by the
// caller, normally the output of endpoint.Resolver, so tests can point
// it at a local server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// predictMu is a latch, not a lock: Predict tries to take it and
	// fails fast with ErrPredictionInFlight instead of queueing.
	predictMu sync.Mutex
}

// NewClient creates a client for the given base URL (including any
// path prefix such as /api).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the backend base URL this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ModelInfo fetches metadata about the currently loaded model.
func (c *Client) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	const op = "model-info"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model-info", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var parsed modelInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("status %d: %w", resp.StatusCode, err)}
	}

	if !parsed.Success {
		return nil, &APIError{Op: op, Message: errorMessage(parsed.Error, resp.StatusCode)}
	}

	return &ModelInfo{
		Status:      parsed.Status,
		ModelType:   parsed.ModelType,
		Accuracy:    parsed.Accuracy,
		LastTrained: parsed.LastTrained,
		Features:    parsed.Features,
	}, nil
}

// Health runs a health check against the backend. Callers decide
// connectedness via HealthStatus.Healthy.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	const op = "health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("status %d: %w", resp.StatusCode, err)}
	}

	return &status, nil
}

// Predict uploads the CSV file at path and returns the backend's
// predictions. The file is validated before any network I/O: a name
// not ending in .csv whose extension doesn't map to the CSV MIME type
// is rejected locally with ErrNotCSV. At most one Predict per client
// may be in flight at a time.
func (c *Client) Predict(ctx context.Context, path string) (*PredictionResult, error) {
	const op = "predict"

	name := filepath.Base(path)
	if !IsCSV(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotCSV)
	}

	if !c.predictMu.TryLock() {
		return nil, ErrPredictionInFlight
	}
	defer c.predictMu.Unlock()

	body, contentType, err := buildUploadBody(path, name)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("status %d: %w", resp.StatusCode, err)}
	}

	if !parsed.Success {
		return nil, &APIError{Op: op, Message: errorMessage(parsed.Error, resp.StatusCode)}
	}

	return &PredictionResult{
		Summary:     parsed.Summary,
		Predictions: parsed.Predictions,
	}, nil
}

// IsCSV reports whether a filename should be accepted for upload:
// either the name ends in .csv or its extension maps to text/csv.
func IsCSV(name string) bool {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(filepath.Ext(name)))
	if err != nil {
		return false
	}
	return mediaType == "text/csv"
}

// buildUploadBody assembles a multipart body with the file under the
// single form field "file", matching what the backend expects.
func buildUploadBody(path, name string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("failed to read file contents: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize upload body: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}

func errorMessage(msg string, statusCode int) string {
	if msg != "" {
		return msg
	}
	return fmt.Sprintf("backend returned status %d", statusCode)
}
