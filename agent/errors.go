package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxTurns is returned when the tool-call loop reaches its hard
	// iteration cap without producing a final answer.
	ErrMaxTurns = errors.New("agent: max turns reached without final response")

	// ErrOutputValidation is returned when structured output still fails
	// validation after all retries were consumed.
	ErrOutputValidation = errors.New("agent: output validation failed")

	// ErrNoResponse is returned when the model closes the stream without a
	// final response.
	ErrNoResponse = errors.New("agent: model returned no final response")
)

// RetryError signals from an output validator that the model should produce a
// corrected response. The reason is fed back to the model verbatim.
type RetryError struct {
	Reason string
}

// Error implements the error interface.
func (e *RetryError) Error() string { return "retry requested: " + e.Reason }

// Retry constructs a RetryError with a formatted reason.
func Retry(format string, args ...any) *RetryError {
	return &RetryError{Reason: fmt.Sprintf(format, args...)}
}
