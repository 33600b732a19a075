package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ml-workshop/predictor/internal/backend"
	"gopkg.in/yaml.v3"
)

func TestSaveWritesFullResultSet(t *testing.T) {
	confidence := 0.88
	result := &backend.PredictionResult{
		Summary: backend.Summary{TotalSamples: 12, ModelUsed: "Random Forest (Mock)"},
	}
	for i := 1; i <= 12; i++ {
		result.Predictions = append(result.Predictions, backend.Prediction{
			ID:         i,
			Prediction: "Class A",
			Confidence: &confidence,
		})
	}

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, "http://127.0.0.1:5000/api", "data.csv", result); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read results file: %v", err)
	}

	var spec RunSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("failed to parse results file: %v", err)
	}

	// The export keeps all rows, unlike the 10-row terminal preview.
	if len(spec.Predictions) != 12 {
		t.Errorf("expected all 12 rows persisted, got %d", len(spec.Predictions))
	}
	if spec.Summary.TotalSamples != 12 {
		t.Errorf("expected total samples 12, got %d", spec.Summary.TotalSamples)
	}
	if spec.Config.InputFile != "data.csv" {
		t.Errorf("expected input file recorded, got %q", spec.Config.InputFile)
	}
}
