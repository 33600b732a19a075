// Package results persists prediction runs to YAML files.
package results

import (
	"fmt"
	"os"
	"time"

	"github.com/ml-workshop/predictor/internal/backend"
	"gopkg.in/yaml.v3"
)

// RunConfig records where and how a prediction run was made
type RunConfig struct {
	BaseURL   string `yaml:"baseurl"`
	InputFile string `yaml:"inputfile"`
	Timestamp string `yaml:"timestamp"`
}

// RunSummary mirrors the backend's run summary
type RunSummary struct {
	TotalSamples int      `yaml:"totalsamples"`
	ModelUsed    string   `yaml:"modelused"`
	Accuracy     *float64 `yaml:"accuracy,omitempty"`
}

// RunRow is a single prediction row
type RunRow struct {
	ID         int      `yaml:"id"`
	Prediction string   `yaml:"prediction"`
	Confidence *float64 `yaml:"confidence,omitempty"`
}

// RunSpec is the complete persisted run. It always carries every
// prediction row, not just the rows the terminal preview showed.
type RunSpec struct {
	Config      RunConfig  `yaml:"config"`
	Summary     RunSummary `yaml:"summary"`
	Predictions []RunRow   `yaml:"predictions"`
}

// Save writes a prediction run to the given YAML file.
func Save(path, baseURL, inputFile string, result *backend.PredictionResult) error {
	spec := RunSpec{
		Config: RunConfig{
			BaseURL:   baseURL,
			InputFile: inputFile,
			Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		},
		Summary: RunSummary{
			TotalSamples: result.Summary.TotalSamples,
			ModelUsed:    result.Summary.ModelUsed,
			Accuracy:     result.Summary.Accuracy,
		},
		Predictions: make([]RunRow, 0, len(result.Predictions)),
	}

	for _, p := range result.Predictions {
		spec.Predictions = append(spec.Predictions, RunRow{
			ID:         p.ID,
			Prediction: p.Prediction,
			Confidence: p.Confidence,
		})
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return nil
}
