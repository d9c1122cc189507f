package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	anthropicModel     = "claude-3-opus-20240229"
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 1000
)

// Anthropic calls the Messages API.
type Anthropic struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAnthropic creates an Anthropic client.
func NewAnthropic(client *http.Client, baseURL, apiKey string) *Anthropic {
	return &Anthropic{client: client, baseURL: baseURL, apiKey: apiKey}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete implements Provider.
func (a *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("anthropic: %w", ErrMissingAPIKey)
	}

	req := anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: anthropicMaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp anthropicResponse
	status, err := postJSON(ctx, a.client, a.baseURL+"/v1/messages", headers, req, &resp)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("anthropic: %w (status %d): no content", ErrMalformedResponse, status)
	}
	return resp.Content[0].Text, nil
}
