package exam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"examgen/internal/gemini"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		err     error
		kind    Kind
		status  int
		message string
	}{
		"deadline":       {fmt.Errorf("execute request: %w", context.DeadlineExceeded), KindTimeout, http.StatusRequestTimeout, msgTimeout},
		"canceled":       {context.Canceled, KindTimeout, http.StatusRequestTimeout, msgTimeout},
		"net timeout":    {fmt.Errorf("execute request: %w", timeoutErr{}), KindTimeout, http.StatusRequestTimeout, msgTimeout},
		"forbidden":      {&gemini.StatusError{StatusCode: http.StatusForbidden}, KindAuth, http.StatusForbidden, msgAuth},
		"unauthorized":   {&gemini.StatusError{StatusCode: http.StatusUnauthorized}, KindAuth, http.StatusForbidden, msgAuth},
		"rate limited":   {&gemini.StatusError{StatusCode: http.StatusTooManyRequests}, KindRateLimit, http.StatusTooManyRequests, msgRateLimit},
		"provider 500":   {&gemini.StatusError{StatusCode: http.StatusInternalServerError}, KindUpstream, http.StatusInternalServerError, msgExamFailed},
		"provider 400":   {&gemini.StatusError{StatusCode: http.StatusBadRequest}, KindUpstream, http.StatusInternalServerError, msgExamFailed},
		"no content":     {gemini.ErrNoContent, KindGeneration, http.StatusInternalServerError, msgExamFailed},
		"network":        {errors.New("connection refused"), KindUpstream, http.StatusInternalServerError, msgExamFailed},
		"already mapped": {newValidationError(msgQuestionCountRange), KindValidation, http.StatusBadRequest, msgQuestionCountRange},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := Classify(tc.err, msgExamFailed)
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, tc.status, e.Kind.HTTPStatus())
			assert.Equal(t, tc.message, e.Message)
		})
	}
}

func TestConfigurationErrorStatus(t *testing.T) {
	e := newConfigurationError()
	assert.Equal(t, http.StatusInternalServerError, e.Kind.HTTPStatus())
	assert.ErrorIs(t, e, gemini.ErrMissingAPIKey)
	assert.Equal(t, "configuration", e.Kind.String())
}
