// Package render prints backend responses for the terminal.
package render

import (
	"fmt"
	"io"

	"github.com/ml-workshop/predictor/internal/backend"
)

// PreviewLimit is how many prediction rows are printed individually;
// anything beyond it is summarized by count. The full result set stays
// in the PredictionResult, this is display truncation only.
const PreviewLimit = 10

// PredictionResult prints the run summary and a preview of the
// prediction rows.
func PredictionResult(w io.Writer, result *backend.PredictionResult) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Prediction Results")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Total Samples:  %d\n", result.Summary.TotalSamples)
	fmt.Fprintf(w, "Model Used:     %s\n", result.Summary.ModelUsed)
	if result.Summary.Accuracy != nil {
		fmt.Fprintf(w, "Model Accuracy: %.2f%%\n", *result.Summary.Accuracy*100)
	}
	fmt.Fprintln(w)

	if len(result.Predictions) == 0 {
		fmt.Fprintln(w, "No predictions returned.")
		return
	}

	fmt.Fprintf(w, "%-6s  %-24s  %s\n", "ID", "Prediction", "Confidence")

	shown := result.Predictions
	if len(shown) > PreviewLimit {
		shown = shown[:PreviewLimit]
	}
	for _, p := range shown {
		fmt.Fprintf(w, "%-6d  %-24s  %s\n", p.ID, p.Prediction, formatConfidence(p.Confidence))
	}

	if extra := len(result.Predictions) - PreviewLimit; extra > 0 {
		fmt.Fprintf(w, "... and %d more\n", extra)
	}
}

// ModelInfo prints model metadata.
func ModelInfo(w io.Writer, info *backend.ModelInfo) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Model Info")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Status:       %s\n", info.Status)
	fmt.Fprintf(w, "Model Type:   %s\n", info.ModelType)
	fmt.Fprintf(w, "Accuracy:     %s\n", formatConfidence(info.Accuracy))
	if info.LastTrained != "" {
		fmt.Fprintf(w, "Last Trained: %s\n", info.LastTrained)
	} else {
		fmt.Fprintf(w, "Last Trained: n/a\n")
	}
	if len(info.Features) > 0 {
		fmt.Fprintf(w, "Features:     %d\n", len(info.Features))
		for _, f := range info.Features {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}

// HealthStatus prints the outcome of a health check.
func HealthStatus(w io.Writer, base string, status *backend.HealthStatus) {
	if status.Healthy() {
		fmt.Fprintf(w, "Connected to backend at %s\n", base)
	} else {
		fmt.Fprintf(w, "Backend at %s is not healthy (status: %s)\n", base, status.Status)
	}
	if status.Message != "" {
		fmt.Fprintf(w, "  %s\n", status.Message)
	}
	if status.ModelStatus != "" {
		fmt.Fprintf(w, "  Model: %s\n", status.ModelStatus)
	}
}

func formatConfidence(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
