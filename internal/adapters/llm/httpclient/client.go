// Package httpclient implements the chat-completion translation backends.
// All four variants share one resty-based call path; only the request
// envelope, headers and response extraction differ per variant.
package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"deeploc/internal/domain"
	"deeploc/internal/placeholder"
)

const (
	translateTimeout = 30 * time.Second
	testTimeout      = 10 * time.Second

	systemPrompt = "你是一名专业翻译，将以下英文文本翻译成优雅流畅的中文。保留原文的意思和语调。只返回翻译结果，不要添加解释或额外内容。"
	testText     = "Hello, this is a test."
)

// variant carries everything that distinguishes one backend from another:
// defaults, auth headers, request body shape and response extraction.
type variant struct {
	typeName     string
	defaultModel string
	defaultURL   string
	headers      func(apiKey string) map[string]string
	body         func(model, system, user string) map[string]any
	extract      func(resp []byte) (string, error)
}

type Client struct {
	v    variant
	cfg  domain.BackendConfig
	http *resty.Client
}

func newClient(v variant, cfg domain.BackendConfig) *Client {
	cfg.Type = v.typeName
	if cfg.Model == "" {
		cfg.Model = v.defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = v.defaultURL
	}
	return &Client{v: v, cfg: cfg, http: resty.New()}
}

func (c *Client) Type() string                 { return c.v.typeName }
func (c *Client) Config() domain.BackendConfig { return c.cfg }
func (c *Client) SetAPIKey(key string)         { c.cfg.APIKey = key }
func (c *Client) SetModel(model string)        { c.cfg.Model = model }
func (c *Client) SetBaseURL(url string)        { c.cfg.BaseURL = url }

// Translate protects bracket tokens with opaque markers, runs the backend
// call, and restores them in the result.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	protected, mapping := placeholder.Protect(text)
	out, err := c.doTranslate(ctx, protected, translateTimeout)
	if err != nil {
		return "", err
	}
	return placeholder.Restore(out, mapping), nil
}

// TestConnection fires one short fixed string at the backend and succeeds
// iff the envelope round-trips. Entry data is never touched.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.doTranslate(ctx, testText, testTimeout)
	return err
}

func (c *Client) doTranslate(ctx context.Context, text string, timeout time.Duration) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%s: API key not set", c.v.typeName)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	body := c.v.body(c.cfg.Model, systemPrompt, text)
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	for k, v := range c.v.headers(c.cfg.APIKey) {
		req.SetHeader(k, v)
	}
	resp, err := req.Post(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%s translate: %w", c.v.typeName, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%s translate: %s; body: %s", c.v.typeName, resp.Status(), abbreviate(resp.String(), 500))
	}
	out, err := c.v.extract(resp.Body())
	if err != nil {
		return "", fmt.Errorf("%s translate: %w", c.v.typeName, err)
	}
	return strings.TrimSpace(out), nil
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
