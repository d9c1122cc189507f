package llm

import (
	"context"
	"fmt"
	"net/http"
)

// OpenRouter calls the OpenRouter chat completions API for one model.
type OpenRouter struct {
	client    *http.Client
	baseURL   string
	model     string
	apiKey    string
	siteURL   string
	siteTitle string
}

// NewOpenRouter creates a client bound to model.
func NewOpenRouter(client *http.Client, baseURL, model, apiKey, siteURL, siteTitle string) *OpenRouter {
	return &OpenRouter{
		client:    client,
		baseURL:   baseURL,
		model:     model,
		apiKey:    apiKey,
		siteURL:   siteURL,
		siteTitle: siteTitle,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete implements Provider.
func (o *OpenRouter) Complete(ctx context.Context, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("%s: %w", o.model, ErrMissingAPIKey)
	}

	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}
	if o.siteURL != "" {
		headers["HTTP-Referer"] = o.siteURL
	}
	if o.siteTitle != "" {
		headers["X-Title"] = o.siteTitle
	}
	req := chatRequest{Model: o.model, Messages: []chatMessage{{Role: "user", Content: prompt}}}

	var resp chatResponse
	status, err := postJSON(ctx, o.client, o.baseURL+"/api/v1/chat/completions", headers, req, &resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", o.model, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s: %w (status %d): no choices", o.model, ErrMalformedResponse, status)
	}
	return resp.Choices[0].Message.Content, nil
}
