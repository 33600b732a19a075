package server

import (
	"math/rand"
	"sync"

	"github.com/ml-workshop/predictor/internal/backend"
)

var mockClasses = []string{"Class A", "Class B", "Class C"}

// MockModel stands in for a trained classifier until the real model is
// wired up: it assigns a random class per sample with a confidence
// drawn from [0.70, 0.95).
type MockModel struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockModel creates a mock model seeded from the given source.
func NewMockModel(seed int64) *MockModel {
	return &MockModel{rng: rand.New(rand.NewSource(seed))}
}

// Predict produces one prediction per sample, with 1-based IDs.
func (m *MockModel) Predict(samples int) []backend.Prediction {
	m.mu.Lock()
	defer m.mu.Unlock()

	predictions := make([]backend.Prediction, 0, samples)
	for i := 0; i < samples; i++ {
		confidence := 0.70 + m.rng.Float64()*0.25
		predictions = append(predictions, backend.Prediction{
			ID:         i + 1,
			Prediction: mockClasses[m.rng.Intn(len(mockClasses))],
			Confidence: &confidence,
		})
	}
	return predictions
}
