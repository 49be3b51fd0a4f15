package backend

import (
	"errors"
	"fmt"
)

// ErrInvalidBaseURL is returned by NewClient when the base URL is not an
// absolute http(s) URL.
var ErrInvalidBaseURL = errors.New("invalid API base URL: must be an absolute http or https URL")

// Messages used when the backend gives no detail.
const (
	// unknownBackendError is used when a failure body is not JSON.
	unknownBackendError = "Unknown Backend Error"

	// genericAnalysisError is used when a JSON failure body has no detail.
	genericAnalysisError = "Backend error"

	// genericGenerationError is used when a generation failure has no detail.
	genericGenerationError = "Generation failed"
)

// AnalysisError is returned when the analyze call fails, either with a
// non-2xx status or at the transport level.
type AnalysisError struct {
	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int

	// Detail is the backend-provided message, if any.
	Detail string

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	return "analysis failed: " + e.Message()
}

// Message returns the text to show the user.
func (e *AnalysisError) Message() string {
	return message(e.Detail, e.Err, genericAnalysisError)
}

// Unwrap returns the transport error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// GenerationError is returned when the generate call fails, either with a
// non-2xx status or at the transport level.
type GenerationError struct {
	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int

	// Detail is the backend-provided message, if any.
	Detail string

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return "generation failed: " + e.Message()
}

// Message returns the text to show the user.
func (e *GenerationError) Message() string {
	return message(e.Detail, e.Err, genericGenerationError)
}

// Unwrap returns the transport error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a 2xx response body does not match
// the expected shape.
type MalformedResponseError struct {
	// Endpoint is the path that was called, e.g. "/analyze".
	Endpoint string

	// Err describes what did not match.
	Err error
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the decoding or validation error.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func message(detail string, err error, fallback string) string {
	switch {
	case detail != "":
		return detail
	case err != nil:
		return err.Error()
	default:
		return fallback
	}
}
