package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Metadata describes the model the server pretends to have loaded.
type Metadata struct {
	ModelType   string   `json:"model_type"`
	Accuracy    *float64 `json:"accuracy"`
	LastTrained string   `json:"last_trained"`
	Features    []string `json:"features"`
	Status      string   `json:"status"`
}

// MetadataStore persists model metadata as a JSON file next to the
// model, loading it at startup and seeding mock metadata when no model
// has been trained yet.
type MetadataStore struct {
	path string
	mu   sync.RWMutex
	meta Metadata
}

const metadataFilename = "model_metadata.json"

// LoadMetadata opens or seeds the metadata file under modelDir.
func LoadMetadata(modelDir string) (*MetadataStore, error) {
	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	store := &MetadataStore{path: filepath.Join(modelDir, metadataFilename)}

	data, err := os.ReadFile(store.path)
	if err == nil {
		if err := json.Unmarshal(data, &store.meta); err != nil {
			return nil, fmt.Errorf("failed to parse model metadata: %w", err)
		}
		slog.Info("Loaded model metadata", "path", store.path, "model_type", store.meta.ModelType)
		return store, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read model metadata: %w", err)
	}

	// No trained model yet: seed mock metadata so the API has
	// something to serve.
	accuracy := 0.85
	store.meta = Metadata{
		ModelType:   "Random Forest (Mock)",
		Accuracy:    &accuracy,
		LastTrained: time.Now().Format(time.RFC3339),
		Features:    []string{"Feature1", "Feature2", "Feature3", "Feature4"},
		Status:      "Mock model loaded for testing",
	}
	if err := store.save(); err != nil {
		return nil, err
	}
	slog.Info("Seeded mock model metadata", "path", store.path)

	return store, nil
}

// Get returns a copy of the current metadata.
func (s *MetadataStore) Get() Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

func (s *MetadataStore) save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model metadata: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model metadata: %w", err)
	}
	return nil
}
