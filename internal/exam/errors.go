package exam

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"examgen/internal/gemini"
)

// Kind is the caller-facing category of a failed request.
type Kind int

const (
	KindUpstream Kind = iota
	KindConfiguration
	KindValidation
	KindTimeout
	KindAuth
	KindRateLimit
	KindGeneration
)

const (
	msgConfiguration = "API configuration error. Set GEMINI_API_KEY."
	msgTimeout       = "Request timeout. Try again."
	msgAuth          = "API key authentication failed."
	msgRateLimit     = "Rate limited. Try later."

	msgExamFailed      = "Failed to generate exam. Please try again later."
	msgAnswerKeyFailed = "Failed to generate answer key. Please try again."
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindTimeout:
		return "timeout"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindGeneration:
		return "generation"
	default:
		return "upstream"
	}
}

// HTTPStatus is the response status for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindTimeout:
		return http.StatusRequestTimeout
	case KindAuth:
		return http.StatusForbidden
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a message safe to show to the caller; Err keeps the cause
// for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func newConfigurationError() *Error {
	return &Error{Kind: KindConfiguration, Message: msgConfiguration, Err: gemini.ErrMissingAPIKey}
}

// Classify maps a provider or transport failure to an error kind. Checks run
// in order: timeout or abort, provider auth failure, provider rate limit,
// empty output, anything else. genericMessage is used for the last two.
func Classify(err error, genericMessage string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Message: msgTimeout, Err: err}
	}

	var se *gemini.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Error{Kind: KindAuth, Message: msgAuth, Err: err}
		case http.StatusTooManyRequests:
			return &Error{Kind: KindRateLimit, Message: msgRateLimit, Err: err}
		}
	}

	if errors.Is(err, gemini.ErrNoContent) {
		return &Error{Kind: KindGeneration, Message: genericMessage, Err: err}
	}
	return &Error{Kind: KindUpstream, Message: genericMessage, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
