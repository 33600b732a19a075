package backend

import (
	"errors"
	"fmt"
)

// ErrPredictionInFlight is returned when a Predict call starts while a
// previous one has not finished yet.
var ErrPredictionInFlight = errors.New("a prediction is already in progress")

// ErrNotCSV is returned when the selected file is neither named *.csv
// nor declared as the CSV MIME type. No request is sent in that case.
var ErrNotCSV = errors.New("file must be CSV format")

// TransportError means the backend could not be reached or did not
// produce a readable response: connection refused, timeout, context
// cancellation, or a garbled body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: connection error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError means the backend answered but reported failure. Message is
// the backend's own error string and is surfaced to the user unchanged.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
