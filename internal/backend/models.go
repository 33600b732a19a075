package backend

// ModelInfo describes the model currently loaded on the backend
type ModelInfo struct {
	Status      string   `json:"status"`
	ModelType   string   `json:"model_type"`
	Accuracy    *float64 `json:"accuracy"`
	LastTrained string   `json:"last_trained"`
	Features    []string `json:"features,omitempty"`
}

// HealthStatus is the backend's health check payload
type HealthStatus struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp,omitempty"`
	Message     string `json:"message,omitempty"`
	ModelStatus string `json:"model_status,omitempty"`
}

// Healthy reports whether the backend declared itself healthy.
// Only the literal status "healthy" counts; "degraded" or anything
// else is treated as not connected.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// Prediction is a single row of model output
type Prediction struct {
	ID         int      `json:"id"`
	Prediction string   `json:"prediction"`
	Confidence *float64 `json:"confidence"`
}

// Summary describes an entire prediction run
type Summary struct {
	TotalSamples int      `json:"total_samples"`
	ModelUsed    string   `json:"model_used"`
	Accuracy     *float64 `json:"accuracy"`
}

// PredictionResult is the full output of a predict call. Predictions
// holds every row the backend returned; display truncation is the
// renderer's concern.
type PredictionResult struct {
	Summary     Summary      `json:"summary"`
	Predictions []Prediction `json:"predictions"`
}

// Wire envelopes. Every backend response carries a success flag; on
// failure the error string is meant to be shown to the user verbatim.

type modelInfoResponse struct {
	Success     bool     `json:"success"`
	Status      string   `json:"status"`
	ModelType   string   `json:"model_type"`
	Accuracy    *float64 `json:"accuracy"`
	LastTrained string   `json:"last_trained"`
	Features    []string `json:"features"`
	Error       string   `json:"error"`
}

type predictResponse struct {
	Success     bool         `json:"success"`
	Summary     Summary      `json:"summary"`
	Predictions []Prediction `json:"predictions"`
	Error       string       `json:"error"`
}
