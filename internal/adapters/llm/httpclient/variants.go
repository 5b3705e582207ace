package httpclient

import (
	"encoding/json"
	"errors"

	"deeploc/internal/domain"
)

func bearerHeaders(apiKey string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + apiKey}
}

func openAIStyleBody(model, system, user string) map[string]any {
	return map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.3,
	}
}

// extractChoices pulls choices[0].message.content from an OpenAI-shaped
// response.
func extractChoices(resp []byte) (string, error) {
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return out.Choices[0].Message.Content, nil
}

// extractContentBlocks handles the Anthropic messages response: the first
// text content block, with a fallback to the legacy "completion" field.
func extractContentBlocks(resp []byte) (string, error) {
	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Completion string `json:"completion"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", err
	}
	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	if out.Completion != "" {
		return out.Completion, nil
	}
	return "", errors.New("no text content returned")
}

var openAIVariant = variant{
	typeName:     "openai",
	defaultModel: "gpt-4o",
	defaultURL:   "https://api.openai.com/v1/chat/completions",
	headers:      bearerHeaders,
	body:         openAIStyleBody,
	extract:      extractChoices,
}

var claudeVariant = variant{
	typeName:     "claude",
	defaultModel: "claude-3-opus-20240229",
	defaultURL:   "https://api.anthropic.com/v1/messages",
	headers: func(apiKey string) map[string]string {
		return map[string]string{
			"x-api-key":         apiKey,
			"anthropic-version": "2023-06-01",
		}
	},
	body: func(model, system, user string) map[string]any {
		// The messages API takes the instruction inline with the user turn.
		return map[string]any{
			"model": model,
			"messages": []map[string]string{
				{"role": "user", "content": system + "\n\n" + user},
			},
			"temperature": 0.3,
			"max_tokens":  4000,
		}
	},
	extract: extractContentBlocks,
}

var deepSeekVariant = variant{
	typeName:     "deepseek",
	defaultModel: "deepseek-chat",
	defaultURL:   "https://api.deepseek.com/v1/chat/completions",
	headers:      bearerHeaders,
	body:         openAIStyleBody,
	extract:      extractChoices,
}

var openRouterVariant = variant{
	typeName:     "openrouter",
	defaultModel: "anthropic/claude-3-opus:beta",
	defaultURL:   "https://openrouter.ai/api/v1/chat/completions",
	headers: func(apiKey string) map[string]string {
		return map[string]string{
			"Authorization": "Bearer " + apiKey,
			"HTTP-Referer":  "https://deeploc.app",
			"X-Title":       "deeploc",
		}
	},
	body:    openAIStyleBody,
	extract: extractChoices,
}

func NewOpenAI(cfg domain.BackendConfig) *Client     { return newClient(openAIVariant, cfg) }
func NewClaude(cfg domain.BackendConfig) *Client     { return newClient(claudeVariant, cfg) }
func NewDeepSeek(cfg domain.BackendConfig) *Client   { return newClient(deepSeekVariant, cfg) }
func NewOpenRouter(cfg domain.BackendConfig) *Client { return newClient(openRouterVariant, cfg) }
