package dto

import "errors"

// Custom errors
var (
	// ErrEmptyInput signals that a document produced no text to process.
	// The accompanying result is still well-formed: all fields null,
	// confidence 0.0.
	ErrEmptyInput = errors.New("no text to process")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Message string `json:"message"`
}

// ExtractionResponse wraps a single-document extraction result
type ExtractionResponse struct {
	Status     string  `json:"status"`
	RequestID  string  `json:"request_id"`
	Data       any     `json:"data"`
	Confidence float64 `json:"confidence"`
}

// BatchItemResult is the per-file outcome of a batch request
type BatchItemResult struct {
	Filename string            `json:"filename"`
	Status   string            `json:"status"`
	Data     *ExtractionResult `json:"data,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// BatchResponse is the final batch response structure
type BatchResponse struct {
	Results []BatchItemResult `json:"results"`
	Total   int               `json:"total"`
}
