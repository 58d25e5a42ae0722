// Package llm isolates the generative-AI backend behind a narrow interface:
// prompt in, raw payload out. Retry and parsing policy live with the caller,
// so providers stay interchangeable and tests can substitute a stub.
package llm

import (
	"context"
	"errors"
)

// Request carries one generation call.
type Request struct {
	Prompt       string
	SystemPrompt string
	JSONResponse bool // ask the backend for a JSON-typed response
}

// Provider is the AI backend boundary.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// TransientError marks a failure that a retry may fix: timeouts, rate
// limits, 5xx-equivalent backend errors. Schema and validation failures are
// never transient.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient backend error: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
