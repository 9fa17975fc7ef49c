package completion

import (
	"errors"
	"fmt"
)

const systemInstruction = "Responde únicamente con un objeto JSON válido, sin texto adicional antes ni después."

var (
	// ErrMissingCredential is a configuration error; it is never retried.
	ErrMissingCredential = errors.New("completion api key is not configured")
	// ErrCompletion is reported when the retry budget runs out without a captured cause.
	ErrCompletion        = errors.New("completion failed")
	errEmptyContent      = errors.New("completion response has no content")
)

// TransportError is a retryable failure talking to the completion endpoint: the
// request itself failed, or the endpoint answered with a non-2xx status.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion transport: %v", e.Err)
	}
	return fmt.Sprintf("completion status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CompletionError is returned once every attempt has failed.
type CompletionError struct {
	Attempts int
	Last     error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *CompletionError) Unwrap() error { return e.Last }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
