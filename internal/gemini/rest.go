package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"examgen/internal/config"
)

const apiKeyHeader = "x-goog-api-key"

// RESTClient calls generateContent over plain HTTPS.
type RESTClient struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewRESTClient(cfg config.GeminiConfig, httpClient *http.Client, logger *slog.Logger) (*RESTClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrInvalidModel
	}
	return &RESTClient{
		apiKey:     cfg.APIKey,
		endpoint:   fmt.Sprintf("%s/%s/models/%s:generateContent", cfg.BaseURL, cfg.APIVersion, url.PathEscape(cfg.Model)),
		model:      cfg.Model,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (c *RESTClient) Model() string {
	return c.model
}

func (c *RESTClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.doRequest(ctx, generateContentRequest{
		Contents: []Content{{Role: roleUser, Parts: []Part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	if c.logger != nil && resp.UsageMetadata != nil {
		c.logger.Debug("gemini usage",
			slog.String("model", c.model),
			slog.Int("prompt_tokens", int(resp.UsageMetadata.PromptTokenCount)),
			slog.Int("candidate_tokens", int(resp.UsageMetadata.CandidatesTokenCount)),
		)
	}
	return ExtractText(resp)
}

func (c *RESTClient) doRequest(ctx context.Context, body generateContentRequest) (*GenerateContentResponse, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, bodyBytes)
	}

	var parsed GenerateContentResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &parsed, nil
}

func newStatusError(code int, body []byte) *StatusError {
	se := &StatusError{StatusCode: code}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		se.Status = env.Error.Status
		se.Message = env.Error.Message
		return se
	}
	se.Message = bodySnippet(body)
	return se
}
