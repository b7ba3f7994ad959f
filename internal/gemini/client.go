// Package gemini talks to the Gemini generateContent endpoint and reduces its
// response to plain text.
package gemini

import "context"

// Client sends a single prompt and returns the extracted, trimmed text.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}
