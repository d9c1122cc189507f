package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestRegistry_Get(t *testing.T) {
	r := NewDefaultRegistry(Config{})

	for _, model := range []string{"gemini", "GEMINI", " Llama ", "qwen2.5", "gpt-oss-20b", "deepseek", "Claude"} {
		if _, err := r.Get(model); err != nil {
			t.Errorf("Get(%q) failed: %v", model, err)
		}
	}

	_, err := r.Get("gpt-5")
	if !errors.Is(err, ErrUnsupportedModel) {
		t.Errorf("expected ErrUnsupportedModel, got %v", err)
	}

	want := []string{"claude", "deepseek", "gemini", "gpt-oss-20b", "llama", "qwen2.5"}
	if got := r.Models(); !slices.Equal(got, want) {
		t.Errorf("Models() = %v, want %v", got, want)
	}
}

func TestGemini_Complete(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.0-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "g-key" {
			t.Errorf("missing key query parameter")
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if req.Contents[0].Parts[0].Text != "plot a sine" {
			t.Errorf("prompt = %q", req.Contents[0].Parts[0].Text)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"here you go"}]}}]}`))
	})

	r := NewDefaultRegistry(Config{GeminiAPIKey: "g-key", GeminiBaseURL: srv.URL})
	p, _ := r.Get("gemini")
	got, err := p.Complete(context.Background(), "plot a sine")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "here you go" {
		t.Errorf("got %q", got)
	}
}

func TestAnthropic_Complete(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "a-key" || r.Header.Get("anthropic-version") != anthropicVersion {
			t.Errorf("missing headers: %v", r.Header)
		}
		var req anthropicRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != anthropicModel || req.MaxTokens != anthropicMaxTokens {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"answer"}]}`))
	})

	p := NewAnthropic(srv.Client(), srv.URL, "a-key")
	got, err := p.Complete(context.Background(), "hi")
	if err != nil || got != "answer" {
		t.Fatalf("Complete = %q, %v", got, err)
	}
}

func TestOpenRouter_Complete(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer q-key" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("HTTP-Referer") != "https://deepceutix.example" || r.Header.Get("X-Title") != "" {
			t.Errorf("site headers = %v", r.Header)
		}
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "qwen/qwen2.5-vl-72b-instruct:free" {
			t.Errorf("model = %q", req.Model)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	})

	r := NewDefaultRegistry(Config{QwenAPIKey: "q-key", OpenRouterBaseURL: srv.URL + "/", SiteURL: "https://deepceutix.example"})
	p, _ := r.Get("QWEN2.5")
	got, err := p.Complete(context.Background(), "hi")
	if err != nil || got != "ok" {
		t.Fatalf("Complete = %q, %v", got, err)
	}
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"missing choices", http.StatusOK, `{"error":{"message":"rate limited"}}`, ErrMalformedResponse, "status 200"},
		{"null message", http.StatusOK, `{"choices":[{"message":null}]}`, ErrMalformedResponse, "no choices"},
		{"not json", http.StatusOK, `<html>`, ErrMalformedResponse, "status 200"},
		{"upstream error", http.StatusTooManyRequests, `{"error":"slow down"}`, nil, "429"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			p := NewOpenRouter(srv.Client(), srv.URL, "openai/gpt-oss-20b:free", "k", "", "")
			_, err := p.Complete(context.Background(), "hi")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestComplete_MissingKey(t *testing.T) {
	r := NewDefaultRegistry(Config{})
	for _, model := range r.Models() {
		p, _ := r.Get(model)
		if _, err := p.Complete(context.Background(), "hi"); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("%s: expected ErrMissingAPIKey, got %v", model, err)
		}
	}
}
