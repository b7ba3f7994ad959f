package gemini

import (
	"errors"
	"fmt"
)

var (
	ErrNoContent     = errors.New("no content generated from AI model")
	ErrMissingAPIKey = errors.New("gemini API key is required")
	ErrInvalidModel  = errors.New("model is required")
)

// StatusError is a non-2xx answer from the provider.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini status %d", e.StatusCode)
	}
	return fmt.Sprintf("gemini status %d: %s", e.StatusCode, e.Message)
}

const snippetLimit = 200

func bodySnippet(body []byte) string {
	if len(body) <= snippetLimit {
		return string(body)
	}
	return string(body[:snippetLimit])
}
