package domain

import (
	"errors"
	"fmt"
)

// ErrGenerationInFlight is returned when a generation is requested while a
// previous one for the same generator has not finished.
var ErrGenerationInFlight = errors.New("quiz generation already in flight")

// GenerationError reasons. A GenerationError is terminal for the run that
// produced it; no session exists on that path.
const (
	ReasonParseFailed      = "parse failed"
	ReasonNoValidQuestions = "no valid questions"
)

// ValidationError reports caller input or a single question record that failed
// structural checks. Index is -1 for request-level failures, otherwise the
// position of the offending record in the decoded batch.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return "invalid request: " + e.Reason
	}
	return fmt.Sprintf("question at index %d: %s", e.Index, e.Reason)
}

// TransportError reports a network failure or a non-success status from the
// generation service. StatusCode is zero when the request never completed.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return "transport: " + e.Err.Error()
	}
	return fmt.Sprintf("transport: request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExtractionError reports a response envelope missing an expected field.
// Detail names the first missing link.
type ExtractionError struct {
	Detail string
}

func (e *ExtractionError) Error() string {
	return "invalid response envelope: " + e.Detail
}

// GenerationError is the terminal failure of a generation run.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *GenerationError) Unwrap() error { return e.Err }
