package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const geminiModel = "gemini-2.0-flash"

// Gemini calls the Google generateContent endpoint.
type Gemini struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewGemini creates a Gemini client.
func NewGemini(client *http.Client, baseURL, apiKey string) *Gemini {
	return &Gemini{client: client, baseURL: baseURL, apiKey: apiKey}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Complete implements Provider.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, geminiModel, url.QueryEscape(g.apiKey))
	req := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}

	var resp geminiResponse
	status, err := postJSON(ctx, g.client, endpoint, nil, req, &resp)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %w (status %d): no candidates", ErrMalformedResponse, status)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
