package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return h
}

func multipartBody(t *testing.T, filename, contents string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	payload := decode(t, rr)
	if payload["status"] != "healthy" {
		t.Errorf("expected status healthy, got %v", payload["status"])
	}
}

func TestHandleModelInfo(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/model-info", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	payload := decode(t, rr)
	if payload["success"] != true {
		t.Fatalf("expected success true, got %v", payload["success"])
	}
	if payload["model_type"] != "Random Forest (Mock)" {
		t.Errorf("expected mock model type, got %v", payload["model_type"])
	}
	if payload["accuracy"] != 0.85 {
		t.Errorf("expected mock accuracy 0.85, got %v", payload["accuracy"])
	}
}

func TestHandlePredict(t *testing.T) {
	h := newTestHandler(t)

	body, contentType := multipartBody(t, "data.csv", "a,b\n1,2\n3,4\n5,6\n")
	req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var payload struct {
		Success     bool `json:"success"`
		Predictions []struct {
			ID         int      `json:"id"`
			Prediction string   `json:"prediction"`
			Confidence *float64 `json:"confidence"`
		} `json:"predictions"`
		Summary struct {
			TotalSamples int    `json:"total_samples"`
			ModelUsed    string `json:"model_used"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !payload.Success {
		t.Fatal("expected success true")
	}
	if payload.Summary.TotalSamples != 3 {
		t.Errorf("expected 3 samples (header excluded), got %d", payload.Summary.TotalSamples)
	}
	if len(payload.Predictions) != 3 {
		t.Fatalf("expected 3 predictions, got %d", len(payload.Predictions))
	}
	for i, p := range payload.Predictions {
		if p.ID != i+1 {
			t.Errorf("expected 1-based IDs, got %d at index %d", p.ID, i)
		}
		if p.Confidence == nil || *p.Confidence < 0.70 || *p.Confidence >= 0.95 {
			t.Errorf("expected confidence in [0.70, 0.95), got %v", p.Confidence)
		}
		switch p.Prediction {
		case "Class A", "Class B", "Class C":
		default:
			t.Errorf("unexpected class %q", p.Prediction)
		}
	}
}

func TestHandlePredictValidation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		contents string
		body     bool
		expected string
	}{
		{name: "missing file field", body: false, expected: "No file uploaded"},
		{name: "non-CSV rejected", filename: "data.txt", contents: "a,b\n1,2\n", body: true, expected: "File must be CSV format"},
		{name: "header-only CSV", filename: "data.csv", contents: "a,b\n", body: true, expected: "CSV file is empty"},
		{name: "empty CSV", filename: "data.csv", contents: "", body: true, expected: "CSV file is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			var req *http.Request
			if tt.body {
				body, contentType := multipartBody(t, tt.filename, tt.contents)
				req = httptest.NewRequest(http.MethodPost, "/api/predict", body)
				req.Header.Set("Content-Type", contentType)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/api/predict", nil)
			}

			rr := httptest.NewRecorder()
			h.Routes().ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			payload := decode(t, rr)
			if payload["success"] != false {
				t.Errorf("expected success false, got %v", payload["success"])
			}
			if payload["error"] != tt.expected {
				t.Errorf("expected error %q, got %v", tt.expected, payload["error"])
			}
		})
	}
}

func TestHandlePredictMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/predict", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}

func TestHandleUploadModelStub(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-model", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	payload := decode(t, rr)
	if payload["success"] != false {
		t.Errorf("expected not-implemented stub to report success false, got %v", payload["success"])
	}
}

func TestMetadataPersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadMetadata(dir)
	if err != nil {
		t.Fatalf("failed to seed metadata: %v", err)
	}

	second, err := LoadMetadata(dir)
	if err != nil {
		t.Fatalf("failed to reload metadata: %v", err)
	}

	if first.Get().LastTrained != second.Get().LastTrained {
		t.Error("expected reload to read the persisted metadata, not reseed it")
	}
}
