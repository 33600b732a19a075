// Package server implements a local prediction backend compatible with
// the client: health, model-info and predict endpoints backed by a
// mock classifier.
package server

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ml-workshop/predictor/internal/backend"
)

const maxUploadBytes = 10 * 1024 * 1024

// Handler serves the prediction API.
type Handler struct {
	meta      *MetadataStore
	model     *MockModel
	uploadDir string
}

// New creates a handler that keeps model metadata and uploads under
// dataDir.
func New(dataDir string) (*Handler, error) {
	meta, err := LoadMetadata(filepath.Join(dataDir, "trained_model"))
	if err != nil {
		return nil, err
	}

	uploadDir := filepath.Join(dataDir, "uploads")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &Handler{
		meta:      meta,
		model:     NewMockModel(time.Now().UnixNano()),
		uploadDir: uploadDir,
	}, nil
}

// Routes wires the API endpoints onto a mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", withCORS(h.HandleHealth))
	mux.HandleFunc("/api/model-info", withCORS(h.HandleModelInfo))
	mux.HandleFunc("/api/predict", withCORS(h.HandlePredict))
	mux.HandleFunc("/api/upload-model", withCORS(h.HandleUploadModel))
	mux.HandleFunc("/", withCORS(h.HandleIndex))
	return mux
}

// withCORS lets the browser-based client on another origin talk to us.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, backend.HealthStatus{
		Status:      "healthy",
		Timestamp:   time.Now().Format(time.RFC3339),
		Message:     "ML Workshop Backend is running",
		ModelStatus: h.meta.Get().Status,
	})
}

func (h *Handler) HandleModelInfo(w http.ResponseWriter, r *http.Request) {
	meta := h.meta.Get()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"model_type":   meta.ModelType,
		"accuracy":     meta.Accuracy,
		"last_trained": meta.LastTrained,
		"features":     meta.Features,
		"status":       meta.Status,
	})
}

func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.writeError(w, http.StatusBadRequest, "No file selected")
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		h.writeError(w, http.StatusBadRequest, "File must be CSV format")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to read file contents")
		return
	}
	if len(data) >= maxUploadBytes {
		h.writeError(w, http.StatusBadRequest, "File too large (max 10MB)")
		return
	}

	uploadName := fmt.Sprintf("upload_%s.csv", time.Now().Format("20060102_150405"))
	uploadPath := filepath.Join(h.uploadDir, uploadName)
	if err := os.WriteFile(uploadPath, data, 0644); err != nil {
		slog.Error("Failed to save upload", "path", uploadPath, "err", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Error reading CSV: "+err.Error())
		return
	}

	// The first row is the header; samples are the data rows.
	samples := len(records) - 1
	if samples <= 0 {
		h.writeError(w, http.StatusBadRequest, "CSV file is empty")
		return
	}

	slog.Info("Loaded CSV for prediction", "rows", samples, "columns", len(records[0]), "file", header.Filename)

	meta := h.meta.Get()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"predictions": h.model.Predict(samples),
		"summary": backend.Summary{
			TotalSamples: samples,
			ModelUsed:    meta.ModelType,
			Accuracy:     meta.Accuracy,
		},
	})
}

// HandleUploadModel is a stub until the real model delivery pipeline
// exists.
func (h *Handler) HandleUploadModel(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": false,
		"error":   "Model upload endpoint not implemented yet",
		"message": "This endpoint will be used to upload a trained model",
	})
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "ML Workshop Backend API",
		"endpoints": map[string]string{
			"health":       "/api/health",
			"model_info":   "/api/model-info",
			"predict":      "/api/predict",
			"upload_model": "/api/upload-model",
		},
		"status": "running",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message string) {
	slog.Error(message)
	h.writeJSON(w, code, map[string]any{
		"success": false,
		"error":   message,
	})
}
