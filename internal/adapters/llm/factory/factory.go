package factory

import (
	"strings"

	"deeploc/internal/adapters/llm/httpclient"
	"deeploc/internal/domain"
	"deeploc/internal/ports"
)

// New returns the backend for the given type name. Unrecognized names fall
// back to the OpenAI variant rather than failing.
func New(typeName string, cfg domain.BackendConfig) ports.Backend {
	switch strings.ToLower(typeName) {
	case "claude":
		return httpclient.NewClaude(cfg)
	case "deepseek":
		return httpclient.NewDeepSeek(cfg)
	case "openrouter":
		return httpclient.NewOpenRouter(cfg)
	default:
		return httpclient.NewOpenAI(cfg)
	}
}

// Types lists the supported backend type names.
func Types() []string { return []string{"openai", "claude", "deepseek", "openrouter"} }
