package llm

import "errors"

var (
	// ErrDisabled is returned when drafting is requested but the model is
	// switched off in configuration.
	ErrDisabled = errors.New("llm drafting is disabled")

	// ErrOllamaUnavailable indicates the Ollama server is unreachable.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrEmptyOutput indicates the model answered with no text.
	ErrEmptyOutput = errors.New("llm returned no output")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
