package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestSDKClient(t *testing.T, handler http.HandlerFunc) *SDKClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewSDKClient(context.Background(), testConfig(server.URL), server.Client(), nil)
	require.NoError(t, err)
	return client
}

func TestNewSDKClientRequiresKey(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.APIKey = ""
	_, err := NewSDKClient(context.Background(), cfg, http.DefaultClient, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSDKClientExtractsText(t *testing.T) {
	client := newTestSDKClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"A"},{"text":"B"}]}}]}`))
	})

	text, err := client.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "A\nB", text)
	assert.Equal(t, "gemini-test", client.Model())
}

func TestSDKClientMapsAPIErrors(t *testing.T) {
	client := newTestSDKClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"slow down","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := client.Generate(context.Background(), "p")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
}

func TestFromSDKResponse(t *testing.T) {
	assert.Nil(t, fromSDKResponse(nil))

	resp := fromSDKResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: "x"}, nil, {Text: "y"}}}},
			nil,
		},
	})
	require.Len(t, resp.Candidates, 2)
	require.NotNil(t, resp.Candidates[0].Content)
	assert.Equal(t, []Part{{Text: "x"}, {Text: "y"}}, resp.Candidates[0].Content.Parts)
	assert.Nil(t, resp.Candidates[1].Content)
}

func TestMapSDKErrorWrapsOtherErrors(t *testing.T) {
	err := mapSDKError(context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = mapSDKError(genai.APIError{Code: http.StatusForbidden, Message: "nope"})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
}
