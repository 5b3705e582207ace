package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeploc/internal/domain"
)

func openAIServer(t *testing.T, reply func(userContent string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		user := req.Messages[len(req.Messages)-1].Content
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, reply(user))
	}))
}

func TestTranslateOpenAIEnvelope(t *testing.T) {
	srv := openAIServer(t, func(string) string { return "译文" })
	defer srv.Close()

	c := NewOpenAI(domain.BackendConfig{APIKey: "sk-test", BaseURL: srv.URL})
	out, err := c.Translate(context.Background(), "Hello world")
	require.NoError(t, err)
	assert.Equal(t, "译文", out)
}

func TestTranslateProtectsPlaceholders(t *testing.T) {
	var seen string
	srv := openAIServer(t, func(user string) string {
		seen = user
		return user // echo back, markers included
	})
	defer srv.Close()

	c := NewOpenAI(domain.BackendConfig{APIKey: "sk-test", BaseURL: srv.URL})
	out, err := c.Translate(context.Background(), "Give [item] to [name]")
	require.NoError(t, err)

	assert.NotContains(t, seen, "[item]")
	assert.NotContains(t, seen, "[name]")
	assert.Equal(t, "Give [item] to [name]", out)
}

func TestTranslateMissingKey(t *testing.T) {
	c := NewOpenAI(domain.BackendConfig{})
	_, err := c.Translate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not set")
}

func TestTranslateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key"}}`)
	}))
	defer srv.Close()

	c := NewOpenAI(domain.BackendConfig{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := c.Translate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "bad key")
}

func TestTranslateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	c := NewOpenAI(domain.BackendConfig{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := c.Translate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices returned")
}

func TestTranslateHonorsCallerContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"late"}}]}`)
	}))
	defer srv.Close()

	c := NewOpenAI(domain.BackendConfig{APIKey: "sk-test", BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Translate(ctx, "hello")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClaudeEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		fmt.Fprint(w, `{"content":[{"type":"text","text":"译文"}]}`)
	}))
	defer srv.Close()

	c := NewClaude(domain.BackendConfig{APIKey: "sk-ant", BaseURL: srv.URL})
	out, err := c.Translate(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "译文", out)
}

func TestClaudeLegacyCompletionFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"completion":"旧版译文"}`)
	}))
	defer srv.Close()

	c := NewClaude(domain.BackendConfig{APIKey: "sk-ant", BaseURL: srv.URL})
	out, err := c.Translate(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "旧版译文", out)
}

func TestOpenRouterHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-or", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("HTTP-Referer"))
		assert.NotEmpty(t, r.Header.Get("X-Title"))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer srv.Close()

	c := NewOpenRouter(domain.BackendConfig{APIKey: "sk-or", BaseURL: srv.URL})
	require.NoError(t, c.TestConnection(context.Background()))
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		client *Client
		name   string
		model  string
		url    string
	}{
		{NewOpenAI(domain.BackendConfig{}), "openai", "gpt-4o", "https://api.openai.com/v1/chat/completions"},
		{NewClaude(domain.BackendConfig{}), "claude", "claude-3-opus-20240229", "https://api.anthropic.com/v1/messages"},
		{NewDeepSeek(domain.BackendConfig{}), "deepseek", "deepseek-chat", "https://api.deepseek.com/v1/chat/completions"},
		{NewOpenRouter(domain.BackendConfig{}), "openrouter", "anthropic/claude-3-opus:beta", "https://openrouter.ai/api/v1/chat/completions"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.client.Type())
		cfg := tt.client.Config()
		assert.Equal(t, tt.model, cfg.Model)
		assert.Equal(t, tt.url, cfg.BaseURL)
	}
}

func TestSettersOverrideDefaults(t *testing.T) {
	c := NewOpenAI(domain.BackendConfig{})
	c.SetAPIKey("sk-x")
	c.SetModel("gpt-4o-mini")
	c.SetBaseURL("http://localhost:1234/v1/chat/completions")
	cfg := c.Config()
	assert.Equal(t, "sk-x", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "http://localhost:1234/v1/chat/completions", cfg.BaseURL)
}
