package llm

import "errors"

var (
	// ErrUnavailable indicates the completion backend is unreachable.
	ErrUnavailable = errors.New("completion service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("completion request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("completion retry attempts exhausted")
)
