package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"examgen/internal/config"

	"google.golang.org/genai"
)

// SDKClient calls generateContent through the official Go SDK. Responses are
// converted to GenerateContentResponse so extraction stays in one place.
type SDKClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

func NewSDKClient(ctx context.Context, cfg config.GeminiConfig, httpClient *http.Client, logger *slog.Logger) (*SDKClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrInvalidModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL + "/",
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &SDKClient{client: client, model: cfg.Model, logger: logger}, nil
}

func (c *SDKClient) Model() string {
	return c.model
}

func (c *SDKClient) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Role:  roleUser,
		Parts: []*genai.Part{{Text: prompt}},
	}}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", mapSDKError(err)
	}
	return ExtractText(fromSDKResponse(result))
}

func fromSDKResponse(result *genai.GenerateContentResponse) *GenerateContentResponse {
	if result == nil {
		return nil
	}
	out := &GenerateContentResponse{ModelVersion: result.ModelVersion}
	for _, cand := range result.Candidates {
		if cand == nil {
			out.Candidates = append(out.Candidates, Candidate{})
			continue
		}
		c := Candidate{FinishReason: string(cand.FinishReason)}
		if cand.Content != nil {
			c.Content = &Content{Role: cand.Content.Role}
			for _, p := range cand.Content.Parts {
				if p == nil {
					continue
				}
				c.Content.Parts = append(c.Content.Parts, Part{Text: p.Text})
			}
		}
		out.Candidates = append(out.Candidates, c)
	}
	return out
}

// mapSDKError turns SDK API errors into *StatusError and leaves transport and
// context errors untouched.
func mapSDKError(err error) error {
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &StatusError{StatusCode: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	return fmt.Errorf("execute request: %w", err)
}
