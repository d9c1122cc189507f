// Package llm holds the chat model clients behind POST /api/generate.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

var (
	// ErrUnsupportedModel is returned for a model name with no provider.
	ErrUnsupportedModel = errors.New("unsupported model")
	// ErrMissingAPIKey is returned when a provider has no key configured.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrMalformedResponse is returned when the upstream payload lacks the answer text.
	ErrMalformedResponse = errors.New("malformed response")
)

// Provider completes a single-turn prompt.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds API keys and endpoints for every provider.
type Config struct {
	GeminiAPIKey    string
	AnthropicAPIKey string
	DeepSeekAPIKey  string
	LlamaAPIKey     string
	QwenAPIKey      string
	GptOssAPIKey    string

	// Sent to OpenRouter as HTTP-Referer and X-Title when set.
	SiteURL   string
	SiteTitle string

	GeminiBaseURL     string
	AnthropicBaseURL  string
	OpenRouterBaseURL string

	Timeout time.Duration
}

const (
	defaultGeminiBaseURL     = "https://generativelanguage.googleapis.com"
	defaultAnthropicBaseURL  = "https://api.anthropic.com"
	defaultOpenRouterBaseURL = "https://openrouter.ai"
	defaultTimeout           = 60 * time.Second
)

func (c Config) httpClient() *http.Client {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return strings.TrimRight(v, "/")
}

// Registry maps model names to providers. Lookups ignore case.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// NewDefaultRegistry registers every supported model.
func NewDefaultRegistry(cfg Config) *Registry {
	client := cfg.httpClient()
	r := NewRegistry()
	r.Register("gemini", NewGemini(client, orDefault(cfg.GeminiBaseURL, defaultGeminiBaseURL), cfg.GeminiAPIKey))
	r.Register("claude", NewAnthropic(client, orDefault(cfg.AnthropicBaseURL, defaultAnthropicBaseURL), cfg.AnthropicAPIKey))

	base := orDefault(cfg.OpenRouterBaseURL, defaultOpenRouterBaseURL)
	openRouter := func(model, key string) Provider {
		return NewOpenRouter(client, base, model, key, cfg.SiteURL, cfg.SiteTitle)
	}
	r.Register("deepseek", openRouter("deepseek/deepseek-r1-0528-qwen3-8b:free", cfg.DeepSeekAPIKey))
	r.Register("llama", openRouter("meta-llama/llama-3.3-70b-instruct:free", cfg.LlamaAPIKey))
	r.Register("qwen2.5", openRouter("qwen/qwen2.5-vl-72b-instruct:free", cfg.QwenAPIKey))
	r.Register("gpt-oss-20b", openRouter("openai/gpt-oss-20b:free", cfg.GptOssAPIKey))
	return r
}

// Register binds a model name to a provider, replacing any previous binding.
func (r *Registry) Register(model string, p Provider) {
	r.providers[strings.ToLower(model)] = p
}

// Get returns the provider for model.
func (r *Registry) Get(model string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(model))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, model)
	}
	return p, nil
}

// Models returns the registered model names in sorted order.
func (r *Registry) Models() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// postJSON sends body as JSON and decodes a 200 response into out. It
// returns the response status code alongside any error.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w (status %d): %v", ErrMalformedResponse, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
